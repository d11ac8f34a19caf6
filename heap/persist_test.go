package heap_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"pheap/heap"
)

// node is a persistent linked list entry addressed entirely by Handle, so
// its offsets survive being saved and reloaded at a new base address.
type node struct {
	Value int64
	Next  heap.Handle
}

func writeNode(t *testing.T, m *heap.Manager, h heap.Handle, n node) {
	t.Helper()
	b, err := m.Bytes(h)
	require.NoError(t, err)
	require.Len(t, b, 16)
	putInt64(b[0:8], n.Value)
	putInt64(b[8:16], n.Next.Offset())
}

func readNode(t *testing.T, m *heap.Manager, h heap.Handle) node {
	t.Helper()
	b, err := m.Bytes(h)
	require.NoError(t, err)
	return node{
		Value: getInt64(b[0:8]),
		Next:  heap.HandleFromOffset(getInt64(b[8:16])),
	}
}

func putInt64(b []byte, v int64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

func getInt64(b []byte) int64 {
	var v int64
	for i := 0; i < 8; i++ {
		v |= int64(b[i]) << (8 * i)
	}
	return v
}

// TestRoundTripPersistentLinkedList builds a linked list addressed only by
// Handle, saves the image to disk, reloads it into an unrelated buffer, and
// checks the list still walks correctly end to end.
func TestRoundTripPersistentLinkedList(t *testing.T) {
	m := newTestManager(t, 256*1024)

	var head heap.Handle
	for i := int64(4); i >= 0; i-- {
		h, err := m.Allocate(16, 8)
		require.NoError(t, err)
		writeNode(t, m, h, node{Value: i, Next: head})
		head = h
	}

	path := filepath.Join(t.TempDir(), "list.pheap")
	require.NoError(t, m.Save(path))

	m2, err := heap.LoadFile(path)
	require.NoError(t, err)
	t.Cleanup(m2.Destroy)

	require.True(t, m2.Validate())

	cur := head
	for want := int64(0); want < 5; want++ {
		n := readNode(t, m2, cur)
		require.Equal(t, want, n.Value)
		cur = n.Next
	}
	require.True(t, cur.IsNull())
}

func TestSaveRejectsDestroyedManager(t *testing.T) {
	m := newTestManager(t, 4096)
	m.Destroy()
	err := m.Save(filepath.Join(t.TempDir(), "out.pheap"))
	require.ErrorIs(t, err, heap.ErrNoManager)
}

func TestSaveToUnwritableDirWrapsErrIO(t *testing.T) {
	m := newTestManager(t, 4096)
	err := m.Save(filepath.Join(t.TempDir(), "missing-dir", "out.pheap"))
	require.ErrorIs(t, err, heap.ErrIO)
}

func TestLoadFileMissingPathWrapsErrIO(t *testing.T) {
	_, err := heap.LoadFile(filepath.Join(t.TempDir(), "does-not-exist.pheap"))
	require.ErrorIs(t, err, heap.ErrIO)
}
