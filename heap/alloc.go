package heap

import "pheap/internal/format"

// neededSize computes the total block size (header + alignment padding +
// payload) required to satisfy a request of userSize bytes at the given
// alignment
//
//	max(min_block_size, round_up(header_size + (align-1) + userSize, min_alignment))
func neededSize(userSize, alignment int) (int, bool) {
	withPad, ok := format.AddOverflowSafe(format.BlockHeaderSize, alignment-1)
	if !ok {
		return 0, false
	}
	withPad, ok = format.AddOverflowSafe(withPad, userSize)
	if !ok {
		return 0, false
	}
	rounded := format.AlignUp(withPad, format.DefaultAlignment)
	if rounded < format.MinBlockSize {
		rounded = format.MinBlockSize
	}
	return rounded, true
}

// userAddrOffset returns the offset, relative to the buffer start, of the
// first byte of a block's user area: the first address at or after the
// header's end that is a multiple of alignment.
func userAddrOffset(blockOff int64, alignment uint32) int64 {
	headerEnd := blockOff + format.BlockHeaderSize
	a := int64(alignment)
	return (headerEnd + a - 1) / a * a
}

// Allocate reserves a block of at least size bytes, aligned to alignment,
// and returns a Handle to its payload. alignment must be a power of two in
// [format.DefaultAlignment, format.MaxAlignment]. If no free block is large
// enough, Allocate grows the buffer and retries once.
func (m *Manager) Allocate(size int, alignment int) (Handle, error) {
	if size <= 0 {
		return Handle{}, ErrInvalidArgument
	}
	if alignment < format.DefaultAlignment || alignment > format.MaxAlignment || !format.IsPowerOfTwo(alignment) {
		return Handle{}, ErrInvalidArgument
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.allocateLocked(size, alignment)
}

// allocateLocked is Allocate's body, factored out so other operations that
// already hold m.mu for writing (Reallocate) can fold an allocation into
// their own critical section instead of composing the locking public
// method. Callers are responsible for validating size/alignment first.
func (m *Manager) allocateLocked(size, alignment int) (Handle, error) {
	need, ok := neededSize(size, alignment)
	if !ok {
		return Handle{}, ErrInvalidArgument
	}

	off := firstFit(m.buf, uint64(need))
	if off == format.NoOffset {
		if err := m.grow(need); err != nil {
			return Handle{}, err
		}
		off = firstFit(m.buf, uint64(need))
		if off == format.NoOffset {
			return Handle{}, ErrOutOfMemory
		}
	}

	m.commitAllocation(off, need, size, alignment)

	userOff := userAddrOffset(off, uint32(alignment))
	return Handle{offset: userOff}, nil
}

// commitAllocation unlinks the chosen free block, splits it if the
// remainder can stand on its own, and marks the survivor used.
func (m *Manager) commitAllocation(off int64, need, userSize, alignment int) {
	buf := m.buf
	mh := newManagerHeader(buf)
	unlinkFree(buf, off)

	bh := newBlockHeader(buf, off)
	oldTotal := bh.totalSize()

	if oldTotal >= uint64(need)+uint64(format.BlockHeaderSize)+uint64(format.MinBlockSize) {
		splitOff := off + int64(need)
		remainder := oldTotal - uint64(need)

		insertBlockAfter(buf, off, splitOff)
		rb := newBlockHeader(buf, splitOff)
		rb.setMagic(format.BlockMagic)
		rb.setTotalSize(remainder)
		rb.setUserSize(0)
		rb.setAlignment(format.DefaultAlignment)
		rb.setUsed(false)
		insertFreeHead(buf, splitOff)

		bh.setTotalSize(uint64(need))
	}

	bh.setUsed(true)
	bh.setUserSize(uint64(userSize))
	bh.setAlignment(uint32(alignment))

	mh.setAllocCount(mh.allocCount() + 1)
	mh.setUsedSize(mh.usedSize() + uint64(userSize))
}
