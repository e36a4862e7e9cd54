package runner

import "github.com/suiterun/suiterun/packages/core/suite"

// Event is one entry in the lifecycle stream emitted by Run. Exactly
// one of StartEvent, TestStartEvent, TestEndEvent, or EndEvent.
type Event interface {
	isEvent()
}

// StartEvent opens the stream and lists every test that will run.
type StartEvent struct {
	Tests []*suite.Test
}

// TestStartEvent announces that the named test is about to execute.
type TestStartEvent struct {
	Test *suite.Test
}

// TestEndEvent carries the finished outcome of one test.
type TestEndEvent struct {
	Outcome *Outcome
}

// EndEvent terminates the stream with the aggregate result.
type EndEvent struct {
	Result *Result
}

func (*StartEvent) isEvent()     {}
func (*TestStartEvent) isEvent() {}
func (*TestEndEvent) isEvent()   {}
func (*EndEvent) isEvent()       {}
