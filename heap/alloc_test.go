package heap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pheap/heap"
)

func newTestManager(t *testing.T, size int) *heap.Manager {
	t.Helper()
	buf := make([]byte, size)
	m, err := heap.Create(buf)
	require.NoError(t, err)
	t.Cleanup(m.Destroy)
	return m
}

func TestCreateRejectsUndersizedBuffer(t *testing.T) {
	_, err := heap.Create(make([]byte, 4))
	require.ErrorIs(t, err, heap.ErrInvalidArgument)
}

func TestAllocateReturnsUsablePayload(t *testing.T) {
	m := newTestManager(t, 64*1024)

	h, err := m.Allocate(100, 8)
	require.NoError(t, err)
	require.False(t, h.IsNull())

	b, err := m.Bytes(h)
	require.NoError(t, err)
	require.Len(t, b, 100)

	for i := range b {
		b[i] = byte(i)
	}
	b2, err := m.Bytes(h)
	require.NoError(t, err)
	require.Equal(t, b, b2)
}

// TestAlignmentFanOut allocates across every supported alignment and checks
// each payload's offset actually satisfies it.
func TestAlignmentFanOut(t *testing.T) {
	m := newTestManager(t, 256*1024)

	for align := 8; align <= 4096; align *= 2 {
		h, err := m.Allocate(37, align)
		require.NoErrorf(t, err, "alignment %d", align)
		require.Zerof(t, h.Offset()%int64(align), "alignment %d: offset %d not aligned", align, h.Offset())
	}
	require.True(t, m.Validate())
}

func TestAllocateRejectsBadArguments(t *testing.T) {
	m := newTestManager(t, 4096)

	_, err := m.Allocate(0, 8)
	require.ErrorIs(t, err, heap.ErrInvalidArgument)

	_, err = m.Allocate(16, 3)
	require.ErrorIs(t, err, heap.ErrInvalidArgument)

	_, err = m.Allocate(16, heap.MinMemorySize*2)
	require.ErrorIs(t, err, heap.ErrInvalidArgument)
}

func TestSplitLeavesRemainderFree(t *testing.T) {
	m := newTestManager(t, 64*1024)

	before := m.Stats()
	_, err := m.Allocate(16, 8)
	require.NoError(t, err)
	after := m.Stats()

	require.Equal(t, before.BlockCount+1, after.BlockCount)
	require.Equal(t, before.AllocCount+1, after.AllocCount)
	require.True(t, m.Validate())
}
