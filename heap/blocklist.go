package heap

import "pheap/internal/format"

// insertBlockAfter splices a new block header at newOff into the
// all-blocks list immediately after afterOff, and increments blockCount.
// Used by split to introduce the carved-off remainder.
func insertBlockAfter(buf []byte, afterOff, newOff int64) {
	mh := newManagerHeader(buf)
	after := newBlockHeader(buf, afterOff)
	nextOff := after.nextOffset()

	newNode := newBlockHeader(buf, newOff)
	newNode.setPrevOffset(afterOff)
	newNode.setNextOffset(nextOff)

	after.setNextOffset(newOff)
	if nextOff != format.NoOffset {
		newBlockHeader(buf, nextOff).setPrevOffset(newOff)
	}

	mh.setBlockCount(mh.blockCount() + 1)
}

// unlinkBlock removes the block at off from the all-blocks list entirely
// and decrements blockCount. Used when coalesce absorbs a neighbor.
func unlinkBlock(buf []byte, off int64) {
	mh := newManagerHeader(buf)
	node := newBlockHeader(buf, off)
	prevOff := node.prevOffset()
	nextOff := node.nextOffset()

	if prevOff != format.NoOffset {
		newBlockHeader(buf, prevOff).setNextOffset(nextOff)
	} else {
		mh.setFirstBlockOffset(nextOff)
	}
	if nextOff != format.NoOffset {
		newBlockHeader(buf, nextOff).setPrevOffset(prevOff)
	}

	mh.setBlockCount(mh.blockCount() - 1)
}
