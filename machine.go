package stateengine

import (
	"fmt"
	"log/slog"
)

// DefaultMaxDepth is the MaxDepth a Machine uses when WithMaxDepth is not
// supplied, matching the MAX_NESTED_STATES default of spec.md §6.
const DefaultMaxDepth = 3

// Machine is a hierarchical state machine: it holds the current State and
// dispatches events to it, walking the ancestry chain on Unhandled and
// running the exit/enter choreography on Transition.
//
// Machine is not safe for concurrent use and handlers must not call Dispatch
// or FlatDispatch reentrantly on the same Machine (spec.md §5).
type Machine struct {
	current  *State
	maxDepth int
	recorder Recorder
	logger   *slog.Logger
}

// MachineOption configures a Machine at construction, mirroring the
// functional-option pattern of librescoot-librefsm's MachineOption/WithX.
type MachineOption func(*Machine)

// WithMaxDepth overrides DefaultMaxDepth, the maximum length of any
// reachable state's ancestry chain (I1).
func WithMaxDepth(n int) MachineOption {
	if n <= 0 {
		panic(fmt.Errorf("stateengine: MaxDepth must be positive, got %d", n))
	}
	return func(m *Machine) { m.maxDepth = n }
}

// WithRecorder injects a Recorder observing every dispatcher-driven handler
// invocation. The default is NopRecorder.
func WithRecorder(r Recorder) MachineOption {
	return func(m *Machine) { m.recorder = r }
}

// WithLogger sets the diagnostic logger used for Debug-level breadcrumbs
// around dispatch and transitions. The default is slog.Default().
func WithLogger(l *slog.Logger) MachineOption {
	return func(m *Machine) { m.logger = l }
}

// NewMachine constructs a Machine. Call Init before the first Dispatch or
// FlatDispatch.
func NewMachine(opts ...MachineOption) *Machine {
	m := &Machine{
		maxDepth: DefaultMaxDepth,
		recorder: NopRecorder,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Current returns the machine's current state. It is nil before Init.
func (m *Machine) Current() *State {
	return m.current
}

// IsIn reports whether s is the current state or an ancestor of it.
func (m *Machine) IsIn(s *State) bool {
	for cur := m.current; cur != nil; cur = m.parentOf(cur) {
		if cur == s {
			return true
		}
	}
	return false
}

// Init drives EventEnter down the ancestry of initial, from the topmost
// ancestor to initial itself, then leaves the machine ready for Dispatch.
// After Init returns, Current() == initial (spec.md §4.2).
func (m *Machine) Init(initial *State) {
	if initial == nil {
		panic(ErrNilState)
	}
	chain := m.ancestryChain(initial)
	for i := len(chain) - 1; i >= 0; i-- {
		s := chain[i]
		res := m.invoke(s, EventEnter)
		if res.kind != resultHandled {
			panic(fmt.Errorf("stateengine: %v returned %s from Enter during Init: %w", s, res.kind, ErrInvalidResult))
		}
	}
	m.current = initial
}

// Dispatch routes e to the current state, hierarchically: on Unhandled it
// retries against the parent the handler reported, up to a nil parent or
// until Handled or TransitionTo is returned (spec.md §4.2.1).
func (m *Machine) Dispatch(e Event) {
	if m.current == nil {
		panic(ErrNilState)
	}
	origin := m.current
	cur := origin
	depth := 0
	for {
		res := m.invoke(cur, e)
		switch res.kind {
		case resultHandled:
			return
		case resultTransition:
			m.transition(origin, res.state)
			return
		case resultUnhandled:
			if res.state == nil {
				return
			}
			depth++
			if depth >= m.maxDepth {
				panic(fmt.Errorf("stateengine: dispatch of %v from %v exceeds MaxDepth %d: %w", e, origin, m.maxDepth, ErrDepthExceeded))
			}
			cur = res.state
		default:
			panic(fmt.Errorf("stateengine: %v returned invalid result for %v: %w", cur, e, ErrInvalidResult))
		}
	}
}

// FlatDispatch routes e to the current state exactly once: on Unhandled it
// does nothing further, on TransitionTo it performs the same choreography as
// Dispatch but without ever walking up from the source (spec.md §4.2).
func (m *Machine) FlatDispatch(e Event) {
	if m.current == nil {
		panic(ErrNilState)
	}
	origin := m.current
	res := m.invoke(origin, e)
	switch res.kind {
	case resultHandled, resultUnhandled:
		return
	case resultTransition:
		m.transition(origin, res.state)
	default:
		panic(fmt.Errorf("stateengine: %v returned invalid result for %v: %w", origin, e, ErrInvalidResult))
	}
}

// invoke calls s's handler for e, recording the observation first. Ancestry
// probes (see parentOf) call the handler directly and bypass this method, so
// they are never recorded (spec.md §4.3).
func (m *Machine) invoke(s *State, e Event) Result {
	if s == nil {
		panic(ErrNilState)
	}
	m.recorder.Observe(s, e)
	m.logger.Debug("stateengine: dispatch", "state", s, "event", e)
	return s.handler(m, e)
}

// parentOf discovers s's parent by probing with the reserved EventNone,
// per spec.md §4.2.2. The probe is read-only: it is never recorded and must
// not be observably different from any other Unhandled-producing call.
func (m *Machine) parentOf(s *State) *State {
	if s == nil {
		return nil
	}
	res := s.handler(m, EventNone)
	if res.kind != resultUnhandled {
		panic(fmt.Errorf("stateengine: probing %v: handler returned %s instead of Unhandled: %w", s, res.kind, ErrInvalidResult))
	}
	return res.state
}

// ancestryChain returns s and its ancestors, s inclusive, ordered from s up
// to the root. Its length is bounded by MaxDepth (I1); exceeding it panics.
func (m *Machine) ancestryChain(s *State) []*State {
	chain := make([]*State, 0, m.maxDepth)
	for cur := s; cur != nil; cur = m.parentOf(cur) {
		if len(chain) >= m.maxDepth {
			panic(fmt.Errorf("stateengine: ancestry of %v exceeds MaxDepth %d: %w", s, m.maxDepth, ErrDepthExceeded))
		}
		chain = append(chain, cur)
	}
	return chain
}

// findLCA returns the deepest state common to both ancestry chains (both
// source-inclusive, ordered leaf-to-root), or nil if they share none.
func findLCA(ancestorsOfSource, ancestorsOfTarget []*State) *State {
	for _, s := range ancestorsOfSource {
		for _, t := range ancestorsOfTarget {
			if s == t {
				return s
			}
		}
	}
	return nil
}

// pathDown returns the states on target's ancestry path that lie strictly
// below entryLCA (entryLCA excluded, target included), ordered root-to-leaf
// so Enter is delivered in the correct order. entryLCA == nil means "below
// the root": the whole chain is returned.
func (m *Machine) pathDown(target, entryLCA *State) []*State {
	chain := m.ancestryChain(target)
	idx := len(chain)
	if entryLCA != nil {
		for i, s := range chain {
			if s == entryLCA {
				idx = i
				break
			}
		}
	}
	path := make([]*State, idx)
	for i := 0; i < idx; i++ {
		path[i] = chain[idx-1-i]
	}
	return path
}

// transition runs the exit/enter choreography of spec.md §4.2.3 from source
// to target, including the during-Enter/during-Exit preemption of §4.2.4.
//
// source is always the state the triggering Dispatch/FlatDispatch call was
// originally invoked on (see SPEC_FULL.md's "Open Question resolved" note),
// except for the recursive restarts driven by §4.2.4, which pass whatever
// state is dynamically active at the point of preemption.
func (m *Machine) transition(source, target *State) {
	var exitStop, entryLCA *State
	switch {
	case source == target:
		// Self-transition: exit then re-enter source itself (spec.md §4.2.3,
		// "If T == S").
		exitStop = m.parentOf(source)
		entryLCA = exitStop
	default:
		lca := findLCA(m.ancestryChain(source), m.ancestryChain(target))
		if lca == source {
			// source is an ancestor of target: still exit source, then enter
			// from source's child down to target (spec.md §4.2.3, "If S is
			// an ancestor of T").
			exitStop = m.parentOf(source)
			entryLCA = source
		} else {
			// Covers "T is an ancestor of S" (lca == target, so nothing is
			// entered) and the standard cross-tree case.
			exitStop = lca
			entryLCA = lca
		}
	}

	for cur := source; cur != exitStop; cur = m.parentOf(cur) {
		res := m.invoke(cur, EventExit)
		switch res.kind {
		case resultHandled:
		case resultTransition:
			// Exit preempts the pending target: cur is now inactive, so the
			// restart sources from whatever remains active above it.
			m.transition(m.parentOf(cur), res.state)
			return
		default:
			panic(fmt.Errorf("stateengine: %v returned %s from Exit: %w", cur, res.kind, ErrInvalidResult))
		}
	}

	for _, s := range m.pathDown(target, entryLCA) {
		res := m.invoke(s, EventEnter)
		switch res.kind {
		case resultHandled:
		case resultTransition:
			// Enter preempts the pending target: s just became active, so
			// the restart sources from s.
			m.transition(s, res.state)
			return
		default:
			panic(fmt.Errorf("stateengine: %v returned %s from Enter: %w", s, res.kind, ErrInvalidResult))
		}
	}

	m.current = target
}

func (k resultKind) String() string {
	switch k {
	case resultHandled:
		return "Handled"
	case resultUnhandled:
		return "Unhandled"
	case resultTransition:
		return "Transition"
	default:
		return fmt.Sprintf("resultKind(%d)", uint8(k))
	}
}
