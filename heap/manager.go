package heap

import (
	"sync"

	"pheap/internal/format"
)

// Manager owns a managed buffer and every public allocator operation
// against it. The buffer carries its own bookkeeping (manager header,
// block list, free list) so the whole image can be saved, reloaded at an
// unrelated base, and resumed.
//
// A Manager is safe for concurrent use: mu gates every public operation
// (shared lock for reads, exclusive for writes and growth).
type Manager struct {
	mu sync.RWMutex

	buf        []byte
	ownsMemory bool

	// Exactly one generation of prior buffer is retained across a growth,
	// released on the next growth or on Destroy.
	prevBuf  []byte
	prevOwns bool
	prevGen  uint64
	curGen   uint64
}

var (
	slotMu  sync.RWMutex
	current *Manager
)

// Current returns the process-wide active manager, or nil if none is
// installed. Callers must not cache the result across a call that may
// grow or replace the manager; re-fetch Current() before every operation.
func Current() *Manager {
	slotMu.RLock()
	defer slotMu.RUnlock()
	return current
}

func installCurrent(m *Manager) {
	slotMu.Lock()
	current = m
	slotMu.Unlock()
}

func clearCurrent(m *Manager) {
	slotMu.Lock()
	if current == m {
		current = nil
	}
	slotMu.Unlock()
}

// MinMemorySize is the smallest buffer Create/Load will accept: a manager
// header, one block header, and one quantum of payload for the initial
// all-covering free block.
const MinMemorySize = format.ManagerHeaderSize + format.BlockHeaderSize + format.DefaultAlignment

// Create installs a new manager over buf, writing a fresh manager header
// and a single all-covering free block. buf must be at least
// MinMemorySize bytes. The returned Manager is also installed as the
// process-wide current manager.
func Create(buf []byte) (*Manager, error) {
	if len(buf) < MinMemorySize {
		return nil, ErrInvalidArgument
	}

	totalSize := format.AlignUp(len(buf), format.DefaultAlignment)
	if totalSize > len(buf) {
		totalSize = len(buf) - (len(buf) % format.DefaultAlignment)
	}
	buf = buf[:totalSize]

	m := &Manager{buf: buf}

	mh := newManagerHeader(buf)
	mh.setMagic(format.ManagerMagic)
	mh.setTotalSize(uint64(totalSize))
	mh.setUsedSize(uint64(format.ManagerHeaderSize))
	mh.setBlockCount(1)
	mh.setFreeCount(1)
	mh.setAllocCount(0)
	mh.setFirstBlockOffset(int64(format.ManagerHeaderSize))
	mh.setFirstFreeOffset(int64(format.ManagerHeaderSize))
	mh.setOwnsMemory(false)
	mh.setPrevGeneration(0)
	mh.setPrevTotalSize(0)
	mh.setPrevOwns(false)

	firstOff := int64(format.ManagerHeaderSize)
	bh := newBlockHeader(buf, firstOff)
	bh.setMagic(format.BlockMagic)
	bh.setPrevOffset(format.NoOffset)
	bh.setNextOffset(format.NoOffset)
	bh.setTotalSize(uint64(totalSize) - uint64(firstOff))
	bh.setUserSize(0)
	bh.setAlignment(format.DefaultAlignment)
	bh.setUsed(false)
	bh.setFreePrevOffset(format.NoOffset)
	bh.setFreeNextOffset(format.NoOffset)

	m.curGen = 1

	installCurrent(m)
	return m, nil
}

// Load reconstructs a manager from a previously saved image already copied
// into buf (buf may be larger than the image; only the header's recorded
// total_size bytes are used). The free list is rebuilt by walking the
// all-blocks list once — it is never trusted from the image.
func Load(buf []byte) (*Manager, error) {
	if len(buf) < MinMemorySize {
		return nil, ErrInvalidArgument
	}

	mh := newManagerHeader(buf)
	if mh.magic() != format.ManagerMagic {
		return nil, ErrCorrupt
	}
	totalSize := mh.totalSize()
	if totalSize < MinMemorySize || totalSize > uint64(len(buf)) {
		return nil, ErrCorrupt
	}

	buf = buf[:totalSize]
	m := &Manager{buf: buf, curGen: 1}

	if err := rebuildFreeList(m); err != nil {
		return nil, err
	}

	// A reloaded image starts with no growth history: the prior process's
	// pointers cannot be translated in this process regardless. It also
	// never owns the buffer it was grown into before being saved — buf
	// here is always freshly read from disk by the caller (or LoadFile),
	// never a buffer this process itself make()'d via grow — so the wire
	// bit is renormalized to match the Go-level struct field it mirrors.
	mh = newManagerHeader(m.buf)
	mh.setOwnsMemory(false)
	mh.setPrevGeneration(0)
	mh.setPrevTotalSize(0)
	mh.setPrevOwns(false)

	installCurrent(m)
	return m, nil
}

// Destroy zeroes the manager's magic and releases the current buffer and
// any retained prior generation, then clears the process-wide slot if m
// is still installed there.
//
// Destroy must not be called while other goroutines may be inside an
// Allocate/Deallocate/Reallocate/Validate call on m; the allocator exposes
// no primitive to quiesce them itself.
func (m *Manager) Destroy() {
	m.mu.Lock()
	if len(m.buf) >= format.MgrMagicOff+8 {
		format.PutU64(m.buf, format.MgrMagicOff, 0)
	}
	m.buf = nil
	m.prevBuf = nil
	m.mu.Unlock()

	clearCurrent(m)
}

// rebuildFreeList walks the all-blocks list once and threads every block
// with used == false onto the free list in all-blocks order, so the first
// free block becomes the head. Called only from Load, before the manager
// is visible to any other goroutine.
func rebuildFreeList(m *Manager) error {
	mh := newManagerHeader(m.buf)

	var (
		headOff  int64 = format.NoOffset
		count    uint32
		allocCnt uint32
	)

	off := mh.firstBlockOffset()
	prevFreeOff := format.NoOffset
	for off != format.NoOffset {
		if off < 0 || off+format.BlockHeaderSize > int64(len(m.buf)) {
			return ErrCorrupt
		}
		bh := newBlockHeader(m.buf, off)
		if bh.magic() != format.BlockMagic {
			return ErrCorrupt
		}
		if bh.used() {
			allocCnt++
			bh.setFreePrevOffset(format.NoOffset)
			bh.setFreeNextOffset(format.NoOffset)
		} else {
			count++
			bh.setFreePrevOffset(prevFreeOff)
			bh.setFreeNextOffset(format.NoOffset)
			if prevFreeOff == format.NoOffset {
				headOff = off
			} else {
				newBlockHeader(m.buf, prevFreeOff).setFreeNextOffset(off)
			}
			prevFreeOff = off
		}
		off = bh.nextOffset()
	}

	mh.setFirstFreeOffset(headOff)
	mh.setFreeCount(count)
	mh.setAllocCount(allocCnt)
	return nil
}
