package heap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pheap/heap"
)

func TestReallocateNullActsLikeAllocate(t *testing.T) {
	m := newTestManager(t, 64*1024)

	h, err := m.Reallocate(heap.Handle{}, 64)
	require.NoError(t, err)
	require.False(t, h.IsNull())
	b, err := m.Bytes(h)
	require.NoError(t, err)
	require.Len(t, b, 64)
}

func TestReallocateZeroActsLikeDeallocate(t *testing.T) {
	m := newTestManager(t, 64*1024)

	h, err := m.Allocate(64, 8)
	require.NoError(t, err)

	h2, err := m.Reallocate(h, 0)
	require.NoError(t, err)
	require.True(t, h2.IsNull())
	require.True(t, m.Validate())
}

func TestReallocateShrinkKeepsHandle(t *testing.T) {
	m := newTestManager(t, 64*1024)

	h, err := m.Allocate(128, 8)
	require.NoError(t, err)

	h2, err := m.Reallocate(h, 32)
	require.NoError(t, err)
	require.Equal(t, h, h2)
}

func TestReallocateGrowCopiesPayload(t *testing.T) {
	m := newTestManager(t, 64*1024)

	h, err := m.Allocate(16, 8)
	require.NoError(t, err)
	b, err := m.Bytes(h)
	require.NoError(t, err)
	for i := range b {
		b[i] = byte(i + 1)
	}

	h2, err := m.Reallocate(h, 256)
	require.NoError(t, err)
	require.NotEqual(t, h, h2)

	b2, err := m.Bytes(h2)
	require.NoError(t, err)
	require.Len(t, b2, 256)
	for i := 0; i < 16; i++ {
		require.Equal(t, byte(i+1), b2[i])
	}
	require.True(t, m.Validate())
}

// TestReallocateGrowPreservesAlignment checks the new block honors the
// original allocation's alignment, not just a default.
func TestReallocateGrowPreservesAlignment(t *testing.T) {
	m := newTestManager(t, 64*1024)

	h, err := m.Allocate(8, 64)
	require.NoError(t, err)

	h2, err := m.Reallocate(h, 512)
	require.NoError(t, err)
	require.Zero(t, h2.Offset()%64)
}
