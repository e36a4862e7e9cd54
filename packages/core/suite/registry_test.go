package suite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(ctx context.Context) error { return nil }

func TestRegistry_Add_Validation(t *testing.T) {
	t.Run("empty name", func(t *testing.T) {
		r := NewRegistry(NewStack("root"))
		err := r.Add(Test{Name: "  ", Fn: noop})
		assert.ErrorIs(t, err, ErrEmptyName)
		assert.Equal(t, 0, r.Len())
	})

	t.Run("nil function", func(t *testing.T) {
		r := NewRegistry(NewStack("root"))
		err := r.Add(Test{Name: "broken"})
		assert.ErrorIs(t, err, ErrNilFunc)
		assert.Equal(t, 0, r.Len())
	})

	t.Run("failed add leaves counters untouched", func(t *testing.T) {
		stack := NewStack("root")
		r := NewRegistry(stack)
		_ = r.Add(Test{Name: ""})
		assert.Equal(t, 0, stack.Top().waiting)
	})
}

func TestRegistry_Add_Defaults(t *testing.T) {
	r := NewRegistry(NewStack(""))
	require.NoError(t, r.Add(Test{Name: "defaults", Fn: noop}))

	tc := r.Tests()[0]
	assert.Equal(t, DefaultTimeout, tc.Timeout)
	assert.False(t, tc.Ignore)
	assert.False(t, tc.Only)
}

func TestRegistry_QualifiedNames(t *testing.T) {
	stack := NewStack("api")
	r := NewRegistry(stack)

	require.NoError(t, r.Add(Test{Name: "ping", Fn: noop}))

	stack.Push("users")
	stack.Push("admin")
	require.NoError(t, r.Add(Test{Name: "create", Fn: noop}))
	stack.Pop()
	stack.Pop()

	assert.Equal(t, "api > ping", r.Tests()[0].Name)
	assert.Equal(t, "api > users > admin > create", r.Tests()[1].Name)
}

func TestRegistry_QualifiedNames_EmptyRoot(t *testing.T) {
	stack := NewStack("")
	r := NewRegistry(stack)
	require.NoError(t, r.Add(Test{Name: "solo", Fn: noop}))
	assert.Equal(t, "solo", r.Tests()[0].Name)
}

func TestRegistry_WaitingPropagation(t *testing.T) {
	stack := NewStack("root")
	r := NewRegistry(stack)
	root := stack.Top()

	outer := stack.Push("outer")
	inner := stack.Push("inner")
	require.NoError(t, r.Add(Test{Name: "deep", Fn: noop}))
	require.NoError(t, r.Add(Test{Name: "focused", Fn: noop, Only: true}))
	require.NoError(t, r.Add(Test{Name: "skipped", Fn: noop, Ignore: true}))
	stack.Pop()
	stack.Pop()

	require.NoError(t, r.Add(Test{Name: "shallow", Fn: noop}))

	// Ignored tests contribute to no counter; the focused test counts in
	// both waiting and only on every ancestor.
	assert.Equal(t, 3, root.waiting)
	assert.Equal(t, 2, outer.waiting)
	assert.Equal(t, 2, inner.waiting)
	assert.Equal(t, 1, root.only)
	assert.Equal(t, 1, outer.only)
	assert.Equal(t, 1, inner.only)
}

func TestTest_TimeoutPreserved(t *testing.T) {
	r := NewRegistry(NewStack(""))
	require.NoError(t, r.Add(Test{Name: "slow", Fn: noop, Timeout: 50 * time.Millisecond}))
	assert.Equal(t, 50*time.Millisecond, r.Tests()[0].Timeout)
}
