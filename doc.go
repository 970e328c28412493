// Package stateengine implements a hierarchical finite state machine:
// states nest under parent states, an event unhandled by a state bubbles to
// its parent, and a requested transition is resolved against the lowest
// common ancestor of the source and target so only the states actually
// being left or entered run their Exit or Enter handler.
//
// A State is an opaque handle wrapping a Handler closure:
//
//	locked := stateengine.NewState("locked", func(m *stateengine.Machine, e stateengine.Event) stateengine.Result {
//		switch e {
//		case stateengine.EventEnter, stateengine.EventExit:
//			return stateengine.Handled()
//		case unlock:
//			return stateengine.TransitionTo(unlocked)
//		default:
//			return stateengine.Unhandled(nil) // root: no parent
//		}
//	})
//
// A Machine drives one active state at a time. Init seeds it and runs the
// Enter chain down to the initial state; Dispatch routes an event
// hierarchically, walking up through Unhandled parents; FlatDispatch routes
// an event to the current state only, without the ancestry walk.
//
// Routing an event that ends in Handled or Unhandled does not allocate.
// A transition does: every call builds its ancestry chains as new slices.
// Ancestry chains are bounded by MaxDepth (DefaultMaxDepth, or WithMaxDepth).
package stateengine
