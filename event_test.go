package stateengine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvent_String(t *testing.T) {
	tests := map[string]struct {
		given Event
		want  string
	}{
		"none":  {given: EventNone, want: "None"},
		"enter": {given: EventEnter, want: "Enter"},
		"exit":  {given: EventExit, want: "Exit"},
		"user":  {given: FirstUserEvent, want: "event(3)"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.given.String())
		})
	}
}

func TestNewQueue_PanicsOnNonPositiveCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		res := tryUnarySupplier(func() *Queue { return NewQueue(capacity) })
		require.True(t, res.panicked)
	}
}

func TestQueue_EnqueueDequeue_FIFO(t *testing.T) {
	q := NewQueue(3)
	require.True(t, q.IsEmpty())
	require.Equal(t, 3, q.Capacity())

	q.Enqueue(FirstUserEvent)
	q.Enqueue(FirstUserEvent + 1)
	require.Equal(t, 2, q.Len())
	require.False(t, q.IsEmpty())
	require.False(t, q.IsFull())

	require.Equal(t, FirstUserEvent, q.Dequeue())
	require.Equal(t, FirstUserEvent+1, q.Dequeue())
	require.True(t, q.IsEmpty())
}

func TestQueue_WrapsAroundModularly(t *testing.T) {
	q := NewQueue(2)
	q.Enqueue(FirstUserEvent)
	q.Dequeue()
	q.Enqueue(FirstUserEvent + 1)
	q.Enqueue(FirstUserEvent + 2)
	require.True(t, q.IsFull())
	require.Equal(t, FirstUserEvent+1, q.Dequeue())
	require.Equal(t, FirstUserEvent+2, q.Dequeue())
	require.True(t, q.IsEmpty())
}

func TestQueue_EnqueueOntoFullQueuePanics(t *testing.T) {
	q := NewQueue(1)
	q.Enqueue(FirstUserEvent)
	res := tryUnarySupplier(func() result[struct{}] {
		q.Enqueue(FirstUserEvent)
		return result[struct{}]{}
	})
	require.True(t, res.panicked)
}

func TestQueue_DequeueFromEmptyQueuePanics(t *testing.T) {
	q := NewQueue(1)
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		require.True(t, errors.Is(err, ErrQueueEmpty))
	}()
	q.Dequeue()
}

func TestQueue_Flush(t *testing.T) {
	q := NewQueue(4)
	q.Enqueue(FirstUserEvent)
	q.Enqueue(FirstUserEvent + 1)
	q.Flush()
	require.True(t, q.IsEmpty())
	require.Equal(t, 0, q.Len())
}
