package stateengine

import "fmt"

var (
	// ErrQueueFull is the cause wrapped into the panic raised by Enqueue on a full queue.
	ErrQueueFull = fmt.Errorf("stateengine: queue is full")
	// ErrQueueEmpty is the cause wrapped into the panic raised by Dequeue on an empty queue.
	ErrQueueEmpty = fmt.Errorf("stateengine: queue is empty")
	// ErrDepthExceeded is the cause wrapped into the panic raised when an ancestry chain
	// exceeds a Machine's MaxDepth.
	ErrDepthExceeded = fmt.Errorf("stateengine: ancestry exceeds max nested states")
	// ErrInvalidResult is the cause wrapped into the panic raised when a Handler returns a
	// Result kind the engine does not accept at that point: anything but Handled from Enter
	// during Init, Unhandled from Enter or Exit, or anything but Unhandled from a probe.
	ErrInvalidResult = fmt.Errorf("stateengine: handler returned an invalid result")
	// ErrNilState is the cause wrapped into the panic raised when a nil *State is dispatched to.
	ErrNilState = fmt.Errorf("stateengine: nil state")
)
