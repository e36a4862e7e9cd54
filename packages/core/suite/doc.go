// Package suite holds the registration side of the test engine: scope
// frames with their hook lists and completion counters, the append-only
// test registry, and the hook composition that wraps every registered
// test function.
//
// A suite is built by pushing a frame per nested group, registering
// hooks against the innermost frame, and registering tests against a
// snapshot of the frames currently on the stack. The wrapped function
// produced at registration time runs the right beforeAll/beforeEach
// hooks before the test body and afterEach/afterAll hooks after it,
// firing each scope's beforeAll exactly once and its afterAll once the
// scope's completion quota is met.
package suite
