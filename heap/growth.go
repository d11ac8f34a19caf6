package heap

import "pheap/internal/format"

// grow replaces m.buf with a larger buffer, satisfying a request that
// needed bytes to work with. The new size is
//
//	max(oldSize * 5/4, oldSize + needed + header-overhead)
//
// The old image is byte-copied into the new buffer's low prefix — every
// offset inside it remains valid unchanged, which is what lets handles
// obtained before a growth keep resolving afterward without any address
// translation. Exactly one generation of prior buffer is retained; grow
// always replaces it, so a second growth without an intervening access
// drops the grand-prior.
//
// Must be called with m.mu held for writing.
func (m *Manager) grow(needed int) error {
	mh := newManagerHeader(m.buf)
	oldTotal := int(mh.totalSize())

	grownNum, ok := format.MulOverflowSafe(oldTotal, format.GrowthNumerator)
	if !ok {
		return ErrOutOfMemory
	}
	byFactor := grownNum / format.GrowthDenominator

	byNeed, ok := format.AddOverflowSafe(oldTotal, needed)
	if !ok {
		return ErrOutOfMemory
	}
	byNeed, ok = format.AddOverflowSafe(byNeed, format.BlockHeaderSize)
	if !ok {
		return ErrOutOfMemory
	}

	newSize := byFactor
	if byNeed > newSize {
		newSize = byNeed
	}
	newSize = format.AlignUp(newSize, format.DefaultAlignment)

	newBuf := make([]byte, newSize)
	copy(newBuf, m.buf)

	oldOwns := m.ownsMemory
	oldGen := m.curGen
	oldBuf := m.buf

	extendTail(newBuf, oldTotal, newSize)

	newMh := newManagerHeader(newBuf)
	newMh.setTotalSize(uint64(newSize))
	newMh.setOwnsMemory(true)
	newMh.setPrevGeneration(oldGen)
	newMh.setPrevTotalSize(uint64(oldTotal))
	newMh.setPrevOwns(oldOwns)

	m.prevBuf = oldBuf
	m.prevOwns = oldOwns
	m.prevGen = oldGen
	m.buf = newBuf
	m.ownsMemory = true
	m.curGen++

	return nil
}

// extendTail grows the last block in the all-blocks list to cover the
// newly added bytes [oldTotal, newSize), or appends a fresh free block
// after it when the last block is in use.
func extendTail(buf []byte, oldTotal, newSize int) {
	added := uint64(newSize - oldTotal)

	lastOff := lastBlockOffset(buf)
	last := newBlockHeader(buf, lastOff)

	if !last.used() {
		unlinkFree(buf, lastOff)
		last.setTotalSize(last.totalSize() + added)
		insertFreeHead(buf, lastOff)
		return
	}

	newOff := lastOff + int64(last.totalSize())
	insertBlockAfter(buf, lastOff, newOff)

	nb := newBlockHeader(buf, newOff)
	nb.setMagic(format.BlockMagic)
	nb.setTotalSize(added)
	nb.setUserSize(0)
	nb.setAlignment(format.DefaultAlignment)
	nb.setUsed(false)
	insertFreeHead(buf, newOff)
}

// lastBlockOffset walks the all-blocks list to its tail.
func lastBlockOffset(buf []byte) int64 {
	mh := newManagerHeader(buf)
	off := mh.firstBlockOffset()
	for {
		bh := newBlockHeader(buf, off)
		next := bh.nextOffset()
		if next == format.NoOffset {
			return off
		}
		off = next
	}
}
