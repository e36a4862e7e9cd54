package harness

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/suiterun/suiterun/packages/core/runner"
	"github.com/suiterun/suiterun/packages/core/suite"
)

// overridable in tests
var osExit = os.Exit

// Options configures one run. Zero values inherit the harness defaults
// set at construction.
type Options struct {
	// Filter and Skip use the runner's pattern grammar: "/expr/" for a
	// regular expression, anything else for substring containment.
	Filter string
	Skip   string

	// FailFast stops after the first failing outcome.
	FailFast bool

	// Timeout bounds the whole run, as opposed to the per-test timeout
	// carried by each test. When it fires the run is abandoned
	// mid-stream and the result reports only the timeout.
	Timeout time.Duration

	// Reporter receives every lifecycle event, typically a formatter
	// from packages/output.
	Reporter func(runner.Event)

	// OnEvent is an additional per-event callback.
	OnEvent func(runner.Event)

	// Reset clears all harness state after this run completes, making
	// the harness reusable.
	Reset bool

	// ExitOnFail terminates the process with a non-zero status when the
	// resolved result is failing. Meant for script-style suites; the
	// CLI maps results to exit codes itself instead.
	ExitOnFail bool
}

// merged layers o over defaults. Boolean options merge by or: a
// default of true cannot be switched back off per call.
func (o Options) merged(defaults Options) Options {
	if o.Filter == "" {
		o.Filter = defaults.Filter
	}
	if o.Skip == "" {
		o.Skip = defaults.Skip
	}
	if !o.FailFast {
		o.FailFast = defaults.FailFast
	}
	if o.Timeout == 0 {
		o.Timeout = defaults.Timeout
	}
	if o.Reporter == nil {
		o.Reporter = defaults.Reporter
	}
	if o.OnEvent == nil {
		o.OnEvent = defaults.OnEvent
	}
	if !o.Reset {
		o.Reset = defaults.Reset
	}
	if !o.ExitOnFail {
		o.ExitOnFail = defaults.ExitOnFail
	}
	return o
}

// Harness owns the mutable state of one suite: the scope stack used
// during definition, the registry of wrapped tests, and the resolved
// result of the current run cycle.
type Harness struct {
	mu sync.Mutex

	// runMu serializes run cycles so concurrent Run calls cannot both
	// execute the suite; the loser observes the winner's cached result.
	runMu sync.Mutex

	name     string
	stack    *suite.Stack
	registry *suite.Registry
	defaults Options
	result   *runner.Result
}

// New creates a harness whose root scope carries name. The defaults
// apply to every Run call unless overridden per call.
func New(name string, defaults Options) *Harness {
	stack := suite.NewStack(name)
	return &Harness{
		name:     name,
		stack:    stack,
		registry: suite.NewRegistry(stack),
		defaults: defaults,
	}
}

// Name returns the suite name.
func (h *Harness) Name() string { return h.name }

// Group opens a named scope around def: a fresh frame is pushed, def
// registers hooks and tests against it, and the frame is popped when
// def returns, even on panic.
func (h *Harness) Group(name string, def func()) {
	h.stack.Push(name)
	defer h.stack.Pop()
	def()
}

// Add registers a test against the currently open scopes.
func (h *Harness) Add(t suite.Test) error {
	return h.registry.Add(t)
}

// Tests returns the registered tests in registration order.
func (h *Harness) Tests() []*suite.Test { return h.registry.Tests() }

// BeforeAll registers a once-per-scope setup hook on the innermost open scope.
func (h *Harness) BeforeAll(hk suite.Hook) { h.stack.BeforeAll(hk) }

// BeforeEach registers a per-test setup hook on the innermost open scope.
func (h *Harness) BeforeEach(hk suite.Hook) { h.stack.BeforeEach(hk) }

// AfterEach registers a per-test teardown hook on the innermost open scope.
func (h *Harness) AfterEach(hk suite.Hook) { h.stack.AfterEach(hk) }

// AfterAll registers a once-per-scope teardown hook on the innermost open scope.
func (h *Harness) AfterAll(hk suite.Hook) { h.stack.AfterAll(hk) }

// Run resolves the harness result. The first call executes the suite;
// later calls return the same result without re-executing anything
// until Reset (or Options.Reset) clears the cycle. Run is safe for
// concurrent use: calls are serialized, so the suite executes at most
// once per cycle.
func (h *Harness) Run(ctx context.Context, opts Options) (*runner.Result, error) {
	h.runMu.Lock()
	defer h.runMu.Unlock()

	h.mu.Lock()
	if h.result != nil {
		res := h.result
		h.mu.Unlock()
		return res, nil
	}
	h.mu.Unlock()

	o := opts.merged(h.defaults)

	r, err := runner.New(h.registry.Tests(), runner.Config{
		Filter:   o.Filter,
		Skip:     o.Skip,
		FailFast: o.FailFast,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var timeout <-chan time.Time
	if o.Timeout > 0 {
		timer := time.NewTimer(o.Timeout)
		defer timer.Stop()
		timeout = timer.C
	}

	events := r.Run(ctx)
	var res *runner.Result

drain:
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				break drain
			}
			if o.OnEvent != nil {
				o.OnEvent(ev)
			}
			if o.Reporter != nil {
				o.Reporter(ev)
			}
			if end, isEnd := ev.(*runner.EndEvent); isEnd {
				res = end.Result
			}
		case <-timeout:
			// The run is abandoned mid-stream; whatever test is in
			// flight keeps going in the background and its effects are
			// not retracted.
			cancel()
			res = &runner.Result{
				RunID:    uuid.NewString(),
				Duration: o.Timeout,
				Timeout:  o.Timeout,
			}
			// Reporters still get a terminal event so the accumulating
			// ones (json, junit, tap) write a document for the aborted run.
			end := &runner.EndEvent{Result: res}
			if o.OnEvent != nil {
				o.OnEvent(end)
			}
			if o.Reporter != nil {
				o.Reporter(end)
			}
			break drain
		}
	}

	if res == nil {
		// parent context cancelled before the stream terminated
		return nil, ctx.Err()
	}

	h.mu.Lock()
	h.result = res
	h.mu.Unlock()

	if o.Reset {
		h.Reset()
	}

	if o.ExitOnFail && res != nil && res.Failing() {
		osExit(1)
	}
	return res, nil
}

// Reset clears the registry, the scope stack, and the resolved result,
// returning the harness to its just-constructed state.
func (h *Harness) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stack = suite.NewStack(h.name)
	h.registry = suite.NewRegistry(h.stack)
	h.result = nil
}
