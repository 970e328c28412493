package stateengine

// Record is one observation of a state handler invocation: the receiving
// state and the event delivered to it, including synthesized EventEnter and
// EventExit. Ancestry probes (EventNone) are never recorded (spec.md §4.3).
type Record struct {
	State *State
	Event Event
}

// Recorder receives one Observe call per dispatcher-driven handler
// invocation. Production code injects NopRecorder; tests inject a
// SliceRecorder to assert on the exact trace spec.md §8 specifies.
//
// Modeled on spec.md §9's guidance to avoid a process-wide singleton: the
// recorder is an explicit collaborator passed to NewMachine, the same shape
// as librescoot-librefsm's injected *slog.Logger (WithLogger).
type Recorder interface {
	Observe(state *State, event Event)
}

// nopRecorder is the zero-cost Recorder used when none is supplied.
type nopRecorder struct{}

func (nopRecorder) Observe(*State, Event) {}

// NopRecorder is the no-op Recorder used by production builds.
var NopRecorder Recorder = nopRecorder{}

// SliceRecorder is a test-only Recorder that appends every observation to an
// in-memory FIFO. It never auto-evicts within a test run.
type SliceRecorder struct {
	records []Record
}

// NewSliceRecorder returns an empty SliceRecorder.
func NewSliceRecorder() *SliceRecorder {
	return &SliceRecorder{}
}

// Observe appends (state, event) to the recorded history.
func (r *SliceRecorder) Observe(state *State, event Event) {
	r.records = append(r.records, Record{State: state, Event: event})
}

// Records returns the recorded history in observation order.
func (r *SliceRecorder) Records() []Record {
	return r.records
}

// Reset clears the recorded history, matching the "constructed empty at test
// init" lifecycle of spec.md §3.
func (r *SliceRecorder) Reset() {
	r.records = nil
}
