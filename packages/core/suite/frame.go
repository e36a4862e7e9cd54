package suite

import "sync"

// Frame is the per-scope state shared between registration and
// execution: the hook lists declared in that scope and the counters the
// composer consults to decide when beforeAll and afterAll fire.
//
// Execution is serial, but a test abandoned by its timeout finishes its
// wrapper in the background while the next test is already running, so
// counter access goes through the owning stack's mutex.
type Frame struct {
	name string

	beforeAll  []Hook
	beforeEach []Hook
	afterEach  []Hook
	afterAll   []Hook

	// waiting counts non-ignored tests registered in this scope's
	// subtree; completed counts how many of them have finished.
	waiting   int
	completed int

	// only / completedOnly track the focused subset of the same tests.
	only          int
	completedOnly int

	// afterAllRun keeps the scope teardown from firing twice when an
	// abandoned wrapper and the current one both meet the gate.
	afterAllRun bool
}

// Name returns the scope name the frame was created with.
func (f *Frame) Name() string { return f.name }

// Stack tracks the scope frames for the groups currently being defined.
// The bottom frame is the suite root; it stays on the stack for the
// suite's lifetime, while group frames are pushed when a group
// definition starts and popped when it returns.
type Stack struct {
	// mu guards the counters of every frame this stack created; see the
	// Frame doc for why serial execution alone is not enough.
	mu     sync.Mutex
	frames []*Frame
}

// NewStack creates a stack holding the root frame for a suite.
func NewStack(name string) *Stack {
	return &Stack{frames: []*Frame{{name: name}}}
}

// Push opens a new scope frame for a group being defined.
func (s *Stack) Push(name string) *Frame {
	f := &Frame{name: name}
	s.frames = append(s.frames, f)
	return f
}

// Pop closes the innermost scope frame. The root frame is never popped.
func (s *Stack) Pop() {
	if len(s.frames) > 1 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// Top returns the innermost frame, the one hooks register against.
func (s *Stack) Top() *Frame {
	return s.frames[len(s.frames)-1]
}

// Depth returns the number of open scopes, including the root.
func (s *Stack) Depth() int { return len(s.frames) }

// Snapshot copies the current frame sequence, root first. The frames
// themselves are shared with the live stack so their counters keep
// mutating as execution proceeds; only the sequence is fixed.
func (s *Stack) Snapshot() []*Frame {
	frames := make([]*Frame, len(s.frames))
	copy(frames, s.frames)
	return frames
}

// BeforeAll registers a once-per-scope setup hook on the innermost frame.
func (s *Stack) BeforeAll(h Hook) { top := s.Top(); top.beforeAll = append(top.beforeAll, h) }

// BeforeEach registers a per-test setup hook on the innermost frame.
func (s *Stack) BeforeEach(h Hook) { top := s.Top(); top.beforeEach = append(top.beforeEach, h) }

// AfterEach registers a per-test teardown hook on the innermost frame.
func (s *Stack) AfterEach(h Hook) { top := s.Top(); top.afterEach = append(top.afterEach, h) }

// AfterAll registers a once-per-scope teardown hook on the innermost frame.
func (s *Stack) AfterAll(h Hook) { top := s.Top(); top.afterAll = append(top.afterAll, h) }
