package suite

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trace records hook firing order across a run of wrapped tests. Hooks
// within one phase run concurrently, so recording takes a lock.
type trace struct {
	mu     sync.Mutex
	events []string
}

func (tr *trace) record(label string) {
	tr.mu.Lock()
	tr.events = append(tr.events, label)
	tr.mu.Unlock()
}

func (tr *trace) hook(label string) Hook {
	return func(ctx context.Context) error {
		tr.record(label)
		return nil
	}
}

func (tr *trace) test(label string) Func {
	return func(ctx context.Context) error {
		tr.record(label)
		return nil
	}
}

func (tr *trace) count(label string) int {
	n := 0
	for _, ev := range tr.events {
		if ev == label {
			n++
		}
	}
	return n
}

func runAll(t *testing.T, r *Registry) {
	t.Helper()
	for _, tc := range r.Tests() {
		require.NoError(t, tc.Fn(context.Background()))
	}
}

func TestCompose_HookOrdering(t *testing.T) {
	tr := &trace{}
	stack := NewStack("")
	r := NewRegistry(stack)

	stack.BeforeAll(tr.hook("root:beforeAll"))
	stack.BeforeEach(tr.hook("root:beforeEach"))
	stack.AfterEach(tr.hook("root:afterEach"))
	stack.AfterAll(tr.hook("root:afterAll"))

	stack.Push("group")
	stack.BeforeAll(tr.hook("group:beforeAll"))
	stack.BeforeEach(tr.hook("group:beforeEach"))
	stack.AfterEach(tr.hook("group:afterEach"))
	stack.AfterAll(tr.hook("group:afterAll"))
	require.NoError(t, r.Add(Test{Name: "one", Fn: tr.test("body")}))
	stack.Pop()

	runAll(t, r)

	assert.Equal(t, []string{
		"root:beforeAll", "root:beforeEach",
		"group:beforeAll", "group:beforeEach",
		"body",
		"group:afterEach", "group:afterAll",
		"root:afterEach", "root:afterAll",
	}, tr.events)
}

func TestCompose_BeforeAllOncePerScope(t *testing.T) {
	tr := &trace{}
	stack := NewStack("")
	r := NewRegistry(stack)

	stack.Push("group")
	stack.BeforeAll(tr.hook("beforeAll"))
	stack.BeforeEach(tr.hook("beforeEach"))
	stack.AfterEach(tr.hook("afterEach"))
	stack.AfterAll(tr.hook("afterAll"))
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, r.Add(Test{Name: name, Fn: tr.test("body")}))
	}
	stack.Pop()

	runAll(t, r)

	assert.Equal(t, 1, tr.count("beforeAll"))
	assert.Equal(t, 1, tr.count("afterAll"))
	assert.Equal(t, 3, tr.count("beforeEach"))
	assert.Equal(t, 3, tr.count("afterEach"))
}

func TestCompose_AfterAllPerSiblingScope(t *testing.T) {
	tr := &trace{}
	stack := NewStack("")
	r := NewRegistry(stack)

	stack.Push("first")
	stack.AfterAll(tr.hook("first:afterAll"))
	require.NoError(t, r.Add(Test{Name: "a", Fn: tr.test("a")}))
	stack.Pop()

	stack.Push("second")
	stack.AfterAll(tr.hook("second:afterAll"))
	require.NoError(t, r.Add(Test{Name: "b", Fn: tr.test("b")}))
	stack.Pop()

	// Running only the first sibling already fires its afterAll; the
	// second scope's completion is tracked independently.
	require.NoError(t, r.Tests()[0].Fn(context.Background()))
	assert.Equal(t, 1, tr.count("first:afterAll"))
	assert.Equal(t, 0, tr.count("second:afterAll"))

	require.NoError(t, r.Tests()[1].Fn(context.Background()))
	assert.Equal(t, 1, tr.count("second:afterAll"))
}

func TestCompose_TeardownRunsOnBodyFailure(t *testing.T) {
	tr := &trace{}
	stack := NewStack("")
	r := NewRegistry(stack)

	boom := errors.New("boom")
	stack.Push("group")
	stack.AfterEach(tr.hook("afterEach"))
	stack.AfterAll(tr.hook("afterAll"))
	require.NoError(t, r.Add(Test{Name: "failing", Fn: func(ctx context.Context) error {
		return boom
	}}))
	stack.Pop()

	err := r.Tests()[0].Fn(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, tr.count("afterEach"))
	assert.Equal(t, 1, tr.count("afterAll"))
}

func TestCompose_PanicBecomesError(t *testing.T) {
	stack := NewStack("")
	r := NewRegistry(stack)
	require.NoError(t, r.Add(Test{Name: "panics", Fn: func(ctx context.Context) error {
		panic("kaboom")
	}}))

	err := r.Tests()[0].Fn(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestCompose_SetupErrorPropagates(t *testing.T) {
	tr := &trace{}
	stack := NewStack("")
	r := NewRegistry(stack)

	bad := errors.New("db unavailable")
	stack.Push("group")
	stack.BeforeEach(func(ctx context.Context) error { return bad })
	stack.AfterEach(tr.hook("afterEach"))
	require.NoError(t, r.Add(Test{Name: "guarded", Fn: tr.test("body")}))
	stack.Pop()

	err := r.Tests()[0].Fn(context.Background())
	assert.ErrorIs(t, err, bad)
	// A setup failure aborts before the body and before any teardown of
	// this composition.
	assert.Equal(t, 0, tr.count("body"))
	assert.Equal(t, 0, tr.count("afterEach"))
}

func TestCompose_FocusedExhaustionFiresAfterAll(t *testing.T) {
	tr := &trace{}
	stack := NewStack("")
	r := NewRegistry(stack)

	stack.Push("group")
	stack.AfterAll(tr.hook("afterAll"))
	require.NoError(t, r.Add(Test{Name: "plain", Fn: tr.test("plain")}))
	require.NoError(t, r.Add(Test{Name: "focused", Fn: tr.test("focused"), Only: true}))
	stack.Pop()

	// In a focused run only the marked test executes; afterAll fires on
	// focused-subset exhaustion even though waiting was never met.
	require.NoError(t, r.Tests()[1].Fn(context.Background()))
	assert.Equal(t, 1, tr.count("afterAll"))
}

func TestCompose_BackgroundWrapperSharesCountersSafely(t *testing.T) {
	tr := &trace{}
	stack := NewStack("")
	r := NewRegistry(stack)

	release := make(chan struct{})
	g := stack.Push("group")
	stack.AfterAll(tr.hook("afterAll"))
	require.NoError(t, r.Add(Test{Name: "stalled", Fn: func(ctx context.Context) error {
		<-release
		return nil
	}}))
	require.NoError(t, r.Add(Test{Name: "prompt", Fn: func(ctx context.Context) error {
		close(release)
		return nil
	}}))
	stack.Pop()

	// The first wrapper keeps running in the background while the second
	// executes, as happens after a per-test timeout abandons it. Both
	// mutate the shared frame; the counters must stay consistent and the
	// scope teardown must fire exactly once.
	done := make(chan error, 1)
	go func() { done <- r.Tests()[0].Fn(context.Background()) }()
	require.NoError(t, r.Tests()[1].Fn(context.Background()))
	require.NoError(t, <-done)

	assert.Equal(t, 2, g.completed)
	assert.Equal(t, 1, tr.count("afterAll"))
}

func TestCompose_MultipleHooksOnePhaseAllRun(t *testing.T) {
	tr := &trace{}
	stack := NewStack("")
	r := NewRegistry(stack)

	stack.Push("group")
	stack.BeforeEach(tr.hook("setup"))
	stack.BeforeEach(tr.hook("setup"))
	stack.BeforeEach(tr.hook("setup"))
	require.NoError(t, r.Add(Test{Name: "t", Fn: tr.test("body")}))
	stack.Pop()

	runAll(t, r)
	assert.Equal(t, 3, tr.count("setup"))
}
