package suite

import "strings"

// Registry is the append-only, ordered collection of registered tests.
// Tests are stored already hook-wrapped against the frame snapshot that
// was current when Add was called.
type Registry struct {
	stack *Stack
	tests []*Test
}

// NewRegistry creates a registry that snapshots scopes from stack.
func NewRegistry(stack *Stack) *Registry {
	return &Registry{stack: stack}
}

// Add validates and registers a test. The test's name is qualified with
// the names of the scopes currently open, its defaults are filled in,
// and its function is replaced with the hook-wrapped version. Validation
// failures leave the registry untouched.
func (r *Registry) Add(t Test) error {
	if err := t.validate(); err != nil {
		return err
	}
	if t.Timeout <= 0 {
		t.Timeout = DefaultTimeout
	}

	frames := r.stack.Snapshot()
	t.Name = qualifyName(frames, t.Name)

	// Ignored tests never execute, so they take no part in the
	// waiting/only quotas that gate beforeAll and afterAll.
	if !t.Ignore {
		for _, f := range frames {
			f.waiting++
			if t.Only {
				f.only++
			}
		}
	}

	t.Fn = compose(t.Fn, t.Only, frames, &r.stack.mu)
	r.tests = append(r.tests, &t)
	return nil
}

// Tests returns the registered tests in registration order. The slice
// is shared; callers must not mutate it.
func (r *Registry) Tests() []*Test { return r.tests }

// Len returns the number of registered tests.
func (r *Registry) Len() int { return len(r.tests) }

func qualifyName(frames []*Frame, name string) string {
	parts := make([]string, 0, len(frames)+1)
	for _, f := range frames {
		if f.name != "" {
			parts = append(parts, f.name)
		}
	}
	parts = append(parts, name)
	return strings.Join(parts, NameSeparator)
}
