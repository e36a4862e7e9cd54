// Package runner executes registered tests strictly in registration
// order and streams lifecycle events while doing so.
//
// A Runner is constructed over the tests of one registry together with
// run-time settings: focus restriction ("only"-marked tests globally
// override the registry), filter and skip patterns, and fail-fast.
// Run produces exactly one start event, a testStart/testEnd pair per
// executed test (ignored tests included), and one terminal end event
// carrying the aggregate result. Each test races its own timeout; a
// timed-out body keeps running in the background but its result is
// discarded.
package runner
