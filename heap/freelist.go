package heap

import "pheap/internal/format"

// insertFreeHead threads the block at off onto the head of the free list.
// The block's used bit must already be false. Head-insertion gives
// Allocate's first-fit walk a LIFO bias toward recently freed blocks.
func insertFreeHead(buf []byte, off int64) {
	mh := newManagerHeader(buf)
	bh := newBlockHeader(buf, off)

	oldHead := mh.firstFreeOffset()
	bh.setFreePrevOffset(format.NoOffset)
	bh.setFreeNextOffset(oldHead)
	if oldHead != format.NoOffset {
		newBlockHeader(buf, oldHead).setFreePrevOffset(off)
	}
	mh.setFirstFreeOffset(off)
	mh.setFreeCount(mh.freeCount() + 1)
}

// unlinkFree removes the block at off from the free list. The block must
// currently be linked into it.
func unlinkFree(buf []byte, off int64) {
	mh := newManagerHeader(buf)
	bh := newBlockHeader(buf, off)

	prev := bh.freePrevOffset()
	next := bh.freeNextOffset()

	if prev != format.NoOffset {
		newBlockHeader(buf, prev).setFreeNextOffset(next)
	} else {
		mh.setFirstFreeOffset(next)
	}
	if next != format.NoOffset {
		newBlockHeader(buf, next).setFreePrevOffset(prev)
	}

	bh.setFreePrevOffset(format.NoOffset)
	bh.setFreeNextOffset(format.NoOffset)
	mh.setFreeCount(mh.freeCount() - 1)
}

// firstFit walks the free list front-to-back and returns the offset of the
// first block whose total size is at least needed, or format.NoOffset.
func firstFit(buf []byte, needed uint64) int64 {
	mh := newManagerHeader(buf)
	off := mh.firstFreeOffset()
	for off != format.NoOffset {
		bh := newBlockHeader(buf, off)
		if bh.totalSize() >= needed {
			return off
		}
		off = bh.freeNextOffset()
	}
	return format.NoOffset
}
