package runner

import "time"

// Status classifies a finished test.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusIgnored Status = "ignored"
)

// Outcome is the immutable record of one finished (or ignored) test.
type Outcome struct {
	Name     string
	Status   Status
	Duration time.Duration
	Err      error
}

// Result is the aggregate of one run: the ordered outcomes plus the
// counters derived from them.
//
// Timeout is zero unless the suite-level timer abandoned the run, in
// which case it holds the configured suite timeout and the per-test
// aggregates are meaningless.
type Result struct {
	RunID    string
	UsedOnly bool
	Duration time.Duration
	Results  []*Outcome
	Filtered int
	Ignored  int
	Passed   int
	Failed   int
	Timeout  time.Duration
}

// Failing reports whether the run should be treated as a failure: any
// failed test, a suite-level timeout, or a run that was focused with
// "only" (focused runs must not pass CI silently).
func (r *Result) Failing() bool {
	return r.Failed > 0 || r.Timeout > 0 || r.UsedOnly
}
