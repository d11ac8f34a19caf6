package heap

import "pheap/internal/format"

// Deallocate releases the block named by h. A null handle is a no-op. A
// handle that cannot be recovered — already freed, or simply never valid —
// is also a no-op rather than an error: diagnosing a caller's bad handle
// is Validate/Diagnose's job, not Deallocate's.
func (m *Manager) Deallocate(h Handle) error {
	if h.IsNull() {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	off := recoverBlock(m.buf, h.offset)
	if off == format.NoOffset {
		return nil
	}

	m.releaseBlock(off)
	return nil
}

// releaseBlock marks the block at off free, folds it into the free list,
// and coalesces with its neighbors. Must be called with m.mu held.
func (m *Manager) releaseBlock(off int64) {
	buf := m.buf
	mh := newManagerHeader(buf)
	bh := newBlockHeader(buf, off)

	mh.setUsedSize(mh.usedSize() - bh.userSize())
	mh.setAllocCount(mh.allocCount() - 1)

	bh.setUsed(false)
	bh.setUserSize(0)
	insertFreeHead(buf, off)

	off = coalesceForward(buf, off)
	coalesceBackward(buf, off)
}

// coalesceForward merges the free block at off with its immediate
// neighbor in the all-blocks list, if that neighbor is also free. Returns
// the offset of the (possibly unchanged) surviving block.
func coalesceForward(buf []byte, off int64) int64 {
	bh := newBlockHeader(buf, off)
	nextOff := bh.nextOffset()
	if nextOff == format.NoOffset {
		return off
	}
	next := newBlockHeader(buf, nextOff)
	if next.used() {
		return off
	}

	unlinkFree(buf, nextOff)
	unlinkBlock(buf, nextOff)
	bh.setTotalSize(bh.totalSize() + next.totalSize())
	next.setMagic(0)

	return off
}

// coalesceBackward merges the free block at off with its immediate
// predecessor in the all-blocks list, if that predecessor is also free.
// Returns the offset of the surviving block.
func coalesceBackward(buf []byte, off int64) int64 {
	bh := newBlockHeader(buf, off)
	prevOff := bh.prevOffset()
	if prevOff == format.NoOffset {
		return off
	}
	prev := newBlockHeader(buf, prevOff)
	if prev.used() {
		return off
	}

	unlinkFree(buf, off)
	unlinkBlock(buf, off)
	prev.setTotalSize(prev.totalSize() + bh.totalSize())
	bh.setMagic(0)

	return prevOff
}
