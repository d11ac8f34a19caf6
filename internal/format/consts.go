// Package format houses the wire-level layout of the heap: magic numbers,
// fixed field offsets, alignment rules, and little-endian encode/decode
// helpers. It is deliberately free of any allocation policy or locking so
// higher-level packages can orchestrate the bytes in a more ergonomic form.
package format

const (
	// ManagerMagic identifies a buffer as holding a manager header.
	ManagerMagic uint64 = 0x504845415001 // "PHEAP" + version nibble

	// BlockMagic identifies a buffer position as holding a block header.
	// Distinct from ManagerMagic so a block can never be mistaken for a
	// manager header during recovery scans.
	BlockMagic uint64 = 0x424c4f434b01 // "BLOCK" + version nibble

	// NoOffset is the sentinel stored in place of a missing offset link.
	NoOffset int64 = -1

	// DefaultAlignment is the minimum alignment every block and every field
	// within the manager/block headers respects.
	DefaultAlignment = 8

	// MaxAlignment bounds the alignment a caller may request. The backward
	// scan used to recover a block header from a user offset (see the heap
	// package's recoverBlock) costs (MaxAlignment+BlockHeaderSize)/
	// DefaultAlignment steps in the worst case, so this is a published
	// constant rather than a runtime knob.
	MaxAlignment = 4096

	// GrowthNumerator / GrowthDenominator fix the 25% growth factor:
	// newSize = max(oldSize * 5/4, oldSize + needed + overhead).
	GrowthNumerator   = 5
	GrowthDenominator = 4
)

// Manager header field offsets (little-endian, fixed layout at buffer byte 0).
const (
	MgrMagicOff           = 0x00 // uint64
	MgrTotalSizeOff       = 0x08 // uint64
	MgrUsedSizeOff        = 0x10 // uint64
	MgrBlockCountOff      = 0x18 // uint32
	MgrFreeCountOff       = 0x1C // uint32
	MgrAllocCountOff      = 0x20 // uint32
	// 0x24..0x27 padding
	MgrFirstBlockOff      = 0x28 // int64
	MgrFirstFreeOff       = 0x30 // int64
	MgrOwnsMemoryOff      = 0x38 // uint8
	// 0x39..0x3F padding
	MgrPrevGenerationOff  = 0x40 // uint64 (0 = no prior generation)
	MgrPrevTotalSizeOff   = 0x48 // uint64
	MgrPrevOwnsOff        = 0x50 // uint8
	// 0x51..headerSize padding

	// ManagerHeaderSize is the ManagerHeader's on-buffer footprint, rounded
	// up to DefaultAlignment so the first block header starts aligned.
	ManagerHeaderSize = 0x58
)

// Block header field offsets (little-endian, fixed layout at the start of
// every block, used or free).
const (
	BlkMagicOff          = 0x00 // uint64
	BlkPrevOff           = 0x08 // int64
	BlkNextOff           = 0x10 // int64
	BlkTotalSizeOff      = 0x18 // uint64
	BlkUserSizeOff       = 0x20 // uint64
	BlkAlignmentOff      = 0x28 // uint32
	BlkUsedOff           = 0x2C // uint8
	// 0x2D..0x2F padding
	BlkFreePrevOff       = 0x30 // int64
	BlkFreeNextOff       = 0x38 // int64

	// BlockHeaderSize is the BlockHeader's on-buffer footprint.
	BlockHeaderSize = 0x40

	// MinBlockSize is the smallest legal block: header plus one alignment
	// quantum of payload, so a split never carves a remainder too small to
	// itself carry a valid header.
	MinBlockSize = BlockHeaderSize + DefaultAlignment
)
