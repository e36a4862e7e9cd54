package suite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultTimeout is the per-test timeout applied when a test does not
// configure its own.
const DefaultTimeout = 2000 * time.Millisecond

// NameSeparator joins ancestor scope names into a fully qualified test name.
const NameSeparator = " > "

var (
	// ErrEmptyName is returned when a test is registered without a name.
	ErrEmptyName = errors.New("test name must not be empty")

	// ErrNilFunc is returned when a test is registered without a function.
	ErrNilFunc = errors.New("test function must not be nil")
)

// Func is a test body. A non-nil error fails the test.
type Func func(ctx context.Context) error

// Hook is a setup or teardown callback registered against a scope.
type Hook func(ctx context.Context) error

// Test is a single registered test case. Name is fully qualified once
// the test is stored in a Registry, and Fn is the hook-wrapped function
// rather than the bare body.
type Test struct {
	Name    string
	Fn      Func
	Ignore  bool
	Only    bool
	Timeout time.Duration
}

func (t *Test) validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if t.Fn == nil {
		return fmt.Errorf("test %q: %w", t.Name, ErrNilFunc)
	}
	return nil
}
