// Package output provides reporters that consume the runner's
// lifecycle event stream.
//
// Supported formats:
//   - Console: human-readable colored terminal output, line per test
//   - JSON: machine-readable report written at the end of the run
//   - JUnit: JUnit XML for CI integration
//   - TAP: Test Anything Protocol
//
// Every reporter exposes a Report method compatible with the harness
// reporter callback; accumulating formats write their document when the
// terminal end event arrives.
package output
