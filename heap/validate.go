package heap

import "pheap/internal/format"

// Validate reports whether the managed buffer's bookkeeping is internally
// consistent. It takes the shared lock, same as Stats and Iter, so it can
// run concurrently with other readers and with Diagnose, but never
// concurrently with an allocating write.
func (m *Manager) Validate() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.diagnose() == nil
}

// Diagnose is Validate's richer counterpart: it returns nil when the image
// is consistent, or the first *ValidationError it finds describing what
// is wrong and where.
func (m *Manager) Diagnose() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.diagnose()
}

func (m *Manager) diagnose() error {
	buf := m.buf
	if buf == nil {
		return &ValidationError{Kind: "manager", Message: "destroyed", Offset: -1}
	}

	mh := newManagerHeader(buf)
	if mh.magic() != format.ManagerMagic {
		return &ValidationError{Kind: "manager", Message: "bad magic", Offset: 0}
	}
	totalSize := mh.totalSize()
	if totalSize != uint64(len(buf)) {
		return &ValidationError{Kind: "manager", Message: "total_size does not match buffer length", Offset: format.MgrTotalSizeOff}
	}

	var (
		blocks       uint32
		frees        uint32
		allocs       uint32
		usedSize     = uint64(format.ManagerHeaderSize)
		spanCovered  = uint64(mh.firstBlockOffset())
		freeSeen     = make(map[int64]bool)
	)

	off := mh.firstBlockOffset()
	prevOff := int64(format.NoOffset)
	for off != format.NoOffset {
		if off < int64(format.ManagerHeaderSize) || off+format.BlockHeaderSize > int64(len(buf)) {
			return &ValidationError{Kind: "block", Message: "offset out of bounds", Offset: off}
		}
		bh := newBlockHeader(buf, off)
		if bh.magic() != format.BlockMagic {
			return &ValidationError{Kind: "block", Message: "bad magic", Offset: off}
		}
		if bh.prevOffset() != prevOff {
			return &ValidationError{Kind: "block", Message: "prev link does not match list walk", Offset: off}
		}
		if bh.totalSize() < uint64(format.MinBlockSize) {
			return &ValidationError{Kind: "block", Message: "total_size below minimum", Offset: off}
		}
		if bh.totalSize()%format.DefaultAlignment != 0 {
			return &ValidationError{Kind: "block", Message: "total_size not alignment-rounded", Offset: off}
		}

		blocks++
		if bh.used() {
			allocs++
			usedSize += bh.userSize()
			want := userAddrOffset(off, bh.alignment())
			if want+int64(bh.userSize()) > off+int64(bh.totalSize()) {
				return &ValidationError{Kind: "block", Message: "payload overruns block", Offset: off}
			}
		} else {
			frees++
		}

		spanCovered = uint64(off) + bh.totalSize()
		prevOff = off
		off = bh.nextOffset()
	}

	if blocks != mh.blockCount() {
		return &ValidationError{Kind: "manager", Message: "block_count mismatch", Offset: format.MgrBlockCountOff}
	}
	if frees != mh.freeCount() {
		return &ValidationError{Kind: "manager", Message: "free_count mismatch", Offset: format.MgrFreeCountOff}
	}
	if allocs != mh.allocCount() {
		return &ValidationError{Kind: "manager", Message: "alloc_count mismatch", Offset: format.MgrAllocCountOff}
	}
	if usedSize != mh.usedSize() {
		return &ValidationError{Kind: "manager", Message: "used_size mismatch", Offset: format.MgrUsedSizeOff}
	}
	if spanCovered != totalSize {
		return &ValidationError{Kind: "manager", Message: "blocks do not span the whole buffer", Offset: format.MgrTotalSizeOff}
	}

	// Free list membership must match exactly the set of blocks with
	// used == false, with no duplicates and no adjacent free/free pairs
	// left uncoalesced.
	freeOff := mh.firstFreeOffset()
	var freeWalked uint32
	for freeOff != format.NoOffset {
		if freeOff < int64(format.ManagerHeaderSize) || freeOff+format.BlockHeaderSize > int64(len(buf)) {
			return &ValidationError{Kind: "free-list", Message: "offset out of bounds", Offset: freeOff}
		}
		if freeSeen[freeOff] {
			return &ValidationError{Kind: "free-list", Message: "cycle detected", Offset: freeOff}
		}
		freeSeen[freeOff] = true
		fb := newBlockHeader(buf, freeOff)
		if fb.used() {
			return &ValidationError{Kind: "free-list", Message: "used block present in free list", Offset: freeOff}
		}
		freeWalked++
		freeOff = fb.freeNextOffset()
	}
	if freeWalked != frees {
		return &ValidationError{Kind: "free-list", Message: "free list length does not match free block count", Offset: format.MgrFirstFreeOff}
	}

	off = mh.firstBlockOffset()
	for off != format.NoOffset {
		bh := newBlockHeader(buf, off)
		next := bh.nextOffset()
		if next != format.NoOffset && !bh.used() && !newBlockHeader(buf, next).used() {
			return &ValidationError{Kind: "block", Message: "adjacent free blocks were not coalesced", Offset: off}
		}
		off = next
	}

	return nil
}
