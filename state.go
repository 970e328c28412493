package stateengine

// Handler interprets one Event for one State. Its only admissible effect on
// the machine is the Result it returns; per spec.md §9's redesign note, a
// handler never mutates shared machine state directly, which structurally
// enforces invariant I4 instead of relying on caller discipline.
type Handler func(m *Machine, e Event) Result

// State is an opaque handle to a Handler. Two states are the same state iff
// the handles are the same pointer; the engine calls a Handler only through
// Machine.invoke or the ancestry probe in Machine.parentOf, and never
// interprets its body.
type State struct {
	name    string
	handler Handler
}

// NewState wraps a Handler in an opaque, identity-comparable handle. name is
// used only for diagnostics (panic messages, %v formatting); it plays no
// role in dispatch.
func NewState(name string, handler Handler) *State {
	if handler == nil {
		panic(ErrNilState)
	}
	return &State{name: name, handler: handler}
}

// String returns the diagnostic name passed to NewState.
func (s *State) String() string {
	if s == nil {
		return "<nil>"
	}
	return s.name
}

// resultKind tags the three outcomes a Handler may produce.
type resultKind uint8

const (
	resultHandled resultKind = iota
	resultUnhandled
	resultTransition
)

// Result is the tagged return value of a Handler: exactly one of Handled,
// Unhandled(parent) or TransitionTo(target). It replaces the source engine's
// dual-purpose current_state field (spec.md §9) with a returned value. The
// zero Result is the same as Handled().
type Result struct {
	kind  resultKind
	state *State // parent for Unhandled, target for TransitionTo; unused for Handled
}

// Handled reports that the state consumed the event; the engine takes no
// further action.
func Handled() Result {
	return Result{kind: resultHandled}
}

// Unhandled reports that the state did not consume the event and the engine
// should retry against parent. parent is nil for the root state, which
// terminates the ancestry walk (invariant I2).
func Unhandled(parent *State) Result {
	return Result{kind: resultUnhandled, state: parent}
}

// TransitionTo reports that the state requests a transition to target.
func TransitionTo(target *State) Result {
	if target == nil {
		panic(ErrNilState)
	}
	return Result{kind: resultTransition, state: target}
}
