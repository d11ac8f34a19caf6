package heap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pheap/heap"
)

type point struct {
	X, Y int64
}

func TestTypedHandleRoundTripsThroughCurrentManager(t *testing.T) {
	m := newTestManager(t, 64*1024)

	h, err := heap.Alloc[point](8)
	require.NoError(t, err)
	require.False(t, h.IsNull())

	v, err := h.Value()
	require.NoError(t, err)
	v.X, v.Y = 3, 4

	v2, err := h.Value()
	require.NoError(t, err)
	require.Equal(t, point{3, 4}, *v2)

	require.NoError(t, heap.Free(h))
	require.True(t, m.Validate())
}

func TestTypedHandleConvertsToAndFromUntyped(t *testing.T) {
	m := newTestManager(t, 64*1024)

	h, err := m.Allocate(16, 8)
	require.NoError(t, err)

	typed := heap.TypedHandle[point](h)
	require.Equal(t, h, typed.Untyped())
}

func TestTypedAllocWithNoCurrentManagerFails(t *testing.T) {
	_, err := heap.Alloc[point](8)
	require.ErrorIs(t, err, heap.ErrNoManager)
}
