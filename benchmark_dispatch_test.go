package stateengine

import "testing"

// benchTransitionEvent moves the machine back and forth between two sibling
// leaf states under a shared parent, exercising the full exit/enter choreography on
// every dispatch without ever touching the history recorder (NopRecorder).
const benchTransitionEvent Event = FirstUserEvent

func newBenchMachine() (*Machine, *State, *State) {
	var left, right *State

	parent := NewState("parent", func(m *Machine, e Event) Result {
		if e == EventEnter || e == EventExit {
			return Handled()
		}
		return Unhandled(nil)
	})
	left = NewState("left", func(m *Machine, e Event) Result {
		switch e {
		case EventEnter, EventExit:
			return Handled()
		case benchTransitionEvent:
			return TransitionTo(right)
		default:
			return Unhandled(parent)
		}
	})
	right = NewState("right", func(m *Machine, e Event) Result {
		switch e {
		case EventEnter, EventExit:
			return Handled()
		case benchTransitionEvent:
			return TransitionTo(left)
		default:
			return Unhandled(parent)
		}
	})

	m := NewMachine()
	m.Init(left)
	return m, left, right
}

func BenchmarkDispatch_Transition(b *testing.B) {
	m, _, _ := newBenchMachine()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Dispatch(benchTransitionEvent)
	}
}

func BenchmarkDispatch_BubbleToRoot(b *testing.B) {
	m, _, _ := newBenchMachine()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Dispatch(benchTransitionEvent + 1)
	}
}
