package heap

import "pheap/internal/format"

// managerHeader is a zero-copy view over the fixed manager header at the
// start of a managed buffer. All accessors read/write directly through buf;
// managerHeader itself holds no state of its own.
type managerHeader struct {
	buf []byte
}

func newManagerHeader(buf []byte) managerHeader {
	return managerHeader{buf: buf[:format.ManagerHeaderSize:format.ManagerHeaderSize]}
}

func (h managerHeader) magic() uint64      { return format.ReadU64(h.buf, format.MgrMagicOff) }
func (h managerHeader) setMagic(v uint64)  { format.PutU64(h.buf, format.MgrMagicOff, v) }
func (h managerHeader) totalSize() uint64  { return format.ReadU64(h.buf, format.MgrTotalSizeOff) }
func (h managerHeader) setTotalSize(v uint64) {
	format.PutU64(h.buf, format.MgrTotalSizeOff, v)
}
func (h managerHeader) usedSize() uint64 { return format.ReadU64(h.buf, format.MgrUsedSizeOff) }
func (h managerHeader) setUsedSize(v uint64) {
	format.PutU64(h.buf, format.MgrUsedSizeOff, v)
}
func (h managerHeader) blockCount() uint32 { return format.ReadU32(h.buf, format.MgrBlockCountOff) }
func (h managerHeader) setBlockCount(v uint32) {
	format.PutU32(h.buf, format.MgrBlockCountOff, v)
}
func (h managerHeader) freeCount() uint32 { return format.ReadU32(h.buf, format.MgrFreeCountOff) }
func (h managerHeader) setFreeCount(v uint32) {
	format.PutU32(h.buf, format.MgrFreeCountOff, v)
}
func (h managerHeader) allocCount() uint32 { return format.ReadU32(h.buf, format.MgrAllocCountOff) }
func (h managerHeader) setAllocCount(v uint32) {
	format.PutU32(h.buf, format.MgrAllocCountOff, v)
}
func (h managerHeader) firstBlockOffset() int64 {
	return format.ReadI64(h.buf, format.MgrFirstBlockOff)
}
func (h managerHeader) setFirstBlockOffset(v int64) {
	format.PutI64(h.buf, format.MgrFirstBlockOff, v)
}
func (h managerHeader) firstFreeOffset() int64 {
	return format.ReadI64(h.buf, format.MgrFirstFreeOff)
}
func (h managerHeader) setFirstFreeOffset(v int64) {
	format.PutI64(h.buf, format.MgrFirstFreeOff, v)
}
func (h managerHeader) ownsMemory() bool { return format.ReadU8(h.buf, format.MgrOwnsMemoryOff) != 0 }
func (h managerHeader) setOwnsMemory(v bool) {
	format.PutU8(h.buf, format.MgrOwnsMemoryOff, boolByte(v))
}
func (h managerHeader) prevGeneration() uint64 {
	return format.ReadU64(h.buf, format.MgrPrevGenerationOff)
}
func (h managerHeader) setPrevGeneration(v uint64) {
	format.PutU64(h.buf, format.MgrPrevGenerationOff, v)
}
func (h managerHeader) prevTotalSize() uint64 {
	return format.ReadU64(h.buf, format.MgrPrevTotalSizeOff)
}
func (h managerHeader) setPrevTotalSize(v uint64) {
	format.PutU64(h.buf, format.MgrPrevTotalSizeOff, v)
}
func (h managerHeader) prevOwns() bool {
	return format.ReadU8(h.buf, format.MgrPrevOwnsOff) != 0
}
func (h managerHeader) setPrevOwns(v bool) {
	format.PutU8(h.buf, format.MgrPrevOwnsOff, boolByte(v))
}

// blockHeader is a zero-copy view over a single block header, used or free.
type blockHeader struct {
	buf []byte // the block's header bytes only, not its payload
}

func newBlockHeader(buf []byte, offset int64) blockHeader {
	return blockHeader{buf: buf[offset : offset+format.BlockHeaderSize : offset+format.BlockHeaderSize]}
}

func (b blockHeader) magic() uint64     { return format.ReadU64(b.buf, format.BlkMagicOff) }
func (b blockHeader) setMagic(v uint64) { format.PutU64(b.buf, format.BlkMagicOff, v) }
func (b blockHeader) prevOffset() int64 { return format.ReadI64(b.buf, format.BlkPrevOff) }
func (b blockHeader) setPrevOffset(v int64) {
	format.PutI64(b.buf, format.BlkPrevOff, v)
}
func (b blockHeader) nextOffset() int64 { return format.ReadI64(b.buf, format.BlkNextOff) }
func (b blockHeader) setNextOffset(v int64) {
	format.PutI64(b.buf, format.BlkNextOff, v)
}
func (b blockHeader) totalSize() uint64 { return format.ReadU64(b.buf, format.BlkTotalSizeOff) }
func (b blockHeader) setTotalSize(v uint64) {
	format.PutU64(b.buf, format.BlkTotalSizeOff, v)
}
func (b blockHeader) userSize() uint64 { return format.ReadU64(b.buf, format.BlkUserSizeOff) }
func (b blockHeader) setUserSize(v uint64) {
	format.PutU64(b.buf, format.BlkUserSizeOff, v)
}
func (b blockHeader) alignment() uint32 { return format.ReadU32(b.buf, format.BlkAlignmentOff) }
func (b blockHeader) setAlignment(v uint32) {
	format.PutU32(b.buf, format.BlkAlignmentOff, v)
}
func (b blockHeader) used() bool { return format.ReadU8(b.buf, format.BlkUsedOff) != 0 }
func (b blockHeader) setUsed(v bool) {
	format.PutU8(b.buf, format.BlkUsedOff, boolByte(v))
}
func (b blockHeader) freePrevOffset() int64 { return format.ReadI64(b.buf, format.BlkFreePrevOff) }
func (b blockHeader) setFreePrevOffset(v int64) {
	format.PutI64(b.buf, format.BlkFreePrevOff, v)
}
func (b blockHeader) freeNextOffset() int64 { return format.ReadI64(b.buf, format.BlkFreeNextOff) }
func (b blockHeader) setFreeNextOffset(v int64) {
	format.PutI64(b.buf, format.BlkFreeNextOff, v)
}

func boolByte(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}
