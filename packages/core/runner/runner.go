package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/suiterun/suiterun/packages/core/suite"
)

// ErrTimeout marks an outcome that failed because the test's own
// timeout fired before its body returned.
var ErrTimeout = errors.New("test timed out")

// Config holds the run-time settings for one Runner.
type Config struct {
	// Filter selects tests to run by fully qualified name; empty runs
	// everything. Patterns written as "/expr/" are regular expressions,
	// anything else matches by substring.
	Filter string

	// Skip excludes tests by the same pattern grammar.
	Skip string

	// FailFast stops the run after the first outcome that carries an
	// error; remaining tests are never started.
	FailFast bool
}

// Runner drives a fixed, ordered list of hook-wrapped tests to
// completion, one at a time.
type Runner struct {
	tests    []*suite.Test
	cfg      Config
	usedOnly bool
	filtered int
}

// New builds a Runner over tests. The focused subset is computed first:
// if any test is marked Only, only those tests are eligible and the
// result will record UsedOnly. Filter and skip then narrow the eligible
// set; every exclusion counts toward the filtered total.
func New(tests []*suite.Test, cfg Config) (*Runner, error) {
	filter, err := ParsePattern(cfg.Filter)
	if err != nil {
		return nil, err
	}
	skip, err := ParsePattern(cfg.Skip)
	if err != nil {
		return nil, err
	}

	eligible := tests
	usedOnly := false
	var focused []*suite.Test
	for _, t := range tests {
		if t.Only {
			focused = append(focused, t)
		}
	}
	if len(focused) > 0 {
		eligible = focused
		usedOnly = true
	}

	var runnable []*suite.Test
	for _, t := range eligible {
		if filter != nil && !filter.Match(t.Name) {
			continue
		}
		if skip.Match(t.Name) {
			continue
		}
		runnable = append(runnable, t)
	}

	return &Runner{
		tests:    runnable,
		cfg:      cfg,
		usedOnly: usedOnly,
		filtered: len(eligible) - len(runnable),
	}, nil
}

// Run executes the runnable tests in registration order on its own
// goroutine and returns the event stream. The channel is closed after
// the terminal end event. Cancelling ctx abandons the run; pending
// events are dropped rather than blocking forever on an undrained
// channel.
func (r *Runner) Run(ctx context.Context) <-chan Event {
	ch := make(chan Event)
	go func() {
		defer close(ch)
		r.run(ctx, ch)
	}()
	return ch
}

func (r *Runner) run(ctx context.Context, ch chan<- Event) {
	start := time.Now()
	res := &Result{
		RunID:    uuid.NewString(),
		UsedOnly: r.usedOnly,
		Filtered: r.filtered,
	}

	if !emit(ctx, ch, &StartEvent{Tests: r.tests}) {
		return
	}

	for _, t := range r.tests {
		if !emit(ctx, ch, &TestStartEvent{Test: t}) {
			return
		}

		var out *Outcome
		if t.Ignore {
			out = &Outcome{Name: t.Name, Status: StatusIgnored}
			res.Ignored++
		} else {
			out = r.execute(ctx, t)
			if out.Status == StatusPassed {
				res.Passed++
			} else {
				res.Failed++
			}
		}
		res.Results = append(res.Results, out)

		if !emit(ctx, ch, &TestEndEvent{Outcome: out}) {
			return
		}

		if r.cfg.FailFast && out.Err != nil {
			break
		}
	}

	res.Duration = time.Since(start)
	emit(ctx, ch, &EndEvent{Result: res})
}

// execute races the wrapped test function against its timeout. The
// loser of the race does not block the winner: on timeout the test's
// context is cancelled as a courtesy, but the body may keep running in
// the background and its eventual result is discarded.
func (r *Runner) execute(ctx context.Context, t *suite.Test) *Outcome {
	tctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	start := time.Now()
	go func() {
		done <- t.Fn(tctx)
	}()

	timer := time.NewTimer(t.Timeout)
	defer timer.Stop()

	out := &Outcome{Name: t.Name}
	select {
	case err := <-done:
		out.Duration = time.Since(start)
		if err != nil {
			out.Status = StatusFailed
			out.Err = err
		} else {
			out.Status = StatusPassed
		}
	case <-timer.C:
		out.Duration = time.Since(start)
		out.Status = StatusFailed
		out.Err = fmt.Errorf("%w after %s", ErrTimeout, t.Timeout)
	}
	return out
}

func emit(ctx context.Context, ch chan<- Event, ev Event) bool {
	select {
	case ch <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
