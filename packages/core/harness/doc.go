// Package harness ties the registration side and the runner together:
// one Harness owns a scope stack, a test registry, and the single
// result of its run cycle.
//
// Registration (Group, Add, hook methods) happens first; Run then
// drives a runner over the registry, forwards every lifecycle event to
// the configured reporters, optionally enforces a suite-level timeout,
// and resolves the harness result exactly once. Calling Run again
// returns the already-resolved result unchanged until Reset clears the
// harness for reuse.
package harness
