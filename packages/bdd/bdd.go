package bdd

import (
	"context"
	"time"

	"github.com/suiterun/suiterun/packages/core/harness"
	"github.com/suiterun/suiterun/packages/core/runner"
	"github.com/suiterun/suiterun/packages/core/suite"
)

// Suite is a fluent builder over one harness. All registration methods
// return the suite so calls can be chained.
type Suite struct {
	h *harness.Harness
}

// New creates a suite whose root scope carries name.
func New(name string) *Suite {
	return &Suite{h: harness.New(name, harness.Options{})}
}

// NewWithDefaults creates a suite with harness-level run defaults.
func NewWithDefaults(name string, defaults harness.Options) *Suite {
	return &Suite{h: harness.New(name, defaults)}
}

// Harness exposes the underlying harness for callers that need the
// lower-level registration surface.
func (s *Suite) Harness() *harness.Harness { return s.h }

// Describe opens a named group: def runs with the group's scope on the
// stack and everything it registers belongs to that scope.
func (s *Suite) Describe(name string, def func(s *Suite)) *Suite {
	s.h.Group(name, func() { def(s) })
	return s
}

// It registers a test with the default timeout.
func (s *Suite) It(name string, fn suite.Func) *Suite {
	return s.add(suite.Test{Name: name, Fn: fn})
}

// ItOnly registers a focused test; once any test is focused, a run
// executes focused tests exclusively.
func (s *Suite) ItOnly(name string, fn suite.Func) *Suite {
	return s.add(suite.Test{Name: name, Fn: fn, Only: true})
}

// ItIgnored registers a test that is reported but never executed.
func (s *Suite) ItIgnored(name string, fn suite.Func) *Suite {
	return s.add(suite.Test{Name: name, Fn: fn, Ignore: true})
}

// ItTimed registers a test with its own timeout.
func (s *Suite) ItTimed(name string, timeout time.Duration, fn suite.Func) *Suite {
	return s.add(suite.Test{Name: name, Fn: fn, Timeout: timeout})
}

// Case registers a test from its full record form.
func (s *Suite) Case(t suite.Test) *Suite {
	return s.add(t)
}

func (s *Suite) add(t suite.Test) *Suite {
	if err := s.h.Add(t); err != nil {
		panic(err)
	}
	return s
}

// BeforeAll registers a once-per-scope setup hook on the current scope.
func (s *Suite) BeforeAll(h suite.Hook) *Suite {
	s.h.BeforeAll(h)
	return s
}

// BeforeEach registers a per-test setup hook on the current scope.
func (s *Suite) BeforeEach(h suite.Hook) *Suite {
	s.h.BeforeEach(h)
	return s
}

// AfterEach registers a per-test teardown hook on the current scope.
func (s *Suite) AfterEach(h suite.Hook) *Suite {
	s.h.AfterEach(h)
	return s
}

// AfterAll registers a once-per-scope teardown hook on the current scope.
func (s *Suite) AfterAll(h suite.Hook) *Suite {
	s.h.AfterAll(h)
	return s
}

// Run resolves the suite result; see harness.Harness.Run for the
// once-per-cycle semantics.
func (s *Suite) Run(ctx context.Context, opts harness.Options) (*runner.Result, error) {
	return s.h.Run(ctx, opts)
}
