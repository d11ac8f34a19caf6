package heap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pheap/heap"
)

func TestCreateInstallsCurrentManager(t *testing.T) {
	m := newTestManager(t, 64*1024)
	require.Same(t, m, heap.Current())
}

func TestDestroyClearsCurrentManager(t *testing.T) {
	buf := make([]byte, 64*1024)
	m, err := heap.Create(buf)
	require.NoError(t, err)
	require.Same(t, m, heap.Current())

	m.Destroy()
	require.Nil(t, heap.Current())
}

func TestLoadRebuildsFreeListWithoutTrustingImage(t *testing.T) {
	m := newTestManager(t, 64*1024)

	h1, err := m.Allocate(64, 8)
	require.NoError(t, err)
	_, err = m.Allocate(64, 8)
	require.NoError(t, err)
	require.NoError(t, m.Deallocate(h1))

	before := m.Stats()

	path := t.TempDir() + "/reload.pheap"
	require.NoError(t, m.Save(path))

	m2, err := heap.LoadFile(path)
	require.NoError(t, err)
	t.Cleanup(m2.Destroy)

	after := m2.Stats()
	require.Equal(t, before.FreeCount, after.FreeCount)
	require.Equal(t, before.AllocCount, after.AllocCount)
	require.True(t, m2.Validate())
}

// TestLoadNormalizesOwnsMemoryToFalse checks that a reloaded image never
// inherits a grown-and-saved manager's owns_memory=true: the buffer Load
// is handed was never grown by this process, so it is never the one
// Destroy must release itself.
func TestLoadNormalizesOwnsMemoryToFalse(t *testing.T) {
	m := newTestManager(t, heap.MinMemorySize+64)
	for i := 0; i < 32; i++ {
		_, err := m.Allocate(256, 8)
		require.NoError(t, err)
	}
	require.True(t, m.Info().OwnsMemory)

	path := t.TempDir() + "/owns.pheap"
	require.NoError(t, m.Save(path))

	m2, err := heap.LoadFile(path)
	require.NoError(t, err)
	t.Cleanup(m2.Destroy)

	require.False(t, m2.Info().OwnsMemory)
}

func TestLoadRejectsTruncatedImage(t *testing.T) {
	buf := make([]byte, 64*1024)
	m, err := heap.Create(buf)
	require.NoError(t, err)
	t.Cleanup(m.Destroy)

	_, err = heap.Load(buf[:heap.MinMemorySize-1])
	require.ErrorIs(t, err, heap.ErrInvalidArgument)
}
