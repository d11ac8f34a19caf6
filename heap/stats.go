package heap

import "pheap/internal/format"

// Statistics summarizes a manager's current bookkeeping counters and the
// shape of its free list, for monitoring and the stress harness.
type Statistics struct {
	TotalSize    uint64
	UsedSize     uint64
	BlockCount   uint32
	FreeCount    uint32
	AllocCount   uint32
	FreeBlockMin uint64
	FreeBlockMax uint64
}

// Info is a snapshot of every manager header field, useful for debugging
// and for tests that assert on a growth's recorded prior-generation size.
type Info struct {
	TotalSize      uint64
	UsedSize       uint64
	BlockCount     uint32
	FreeCount      uint32
	AllocCount     uint32
	OwnsMemory     bool
	PrevGeneration uint64
	PrevTotalSize  uint64
	PrevOwns       bool
}

// BlockView describes one block in the all-blocks list, as yielded by
// Iter.
type BlockView struct {
	Index      int
	Offset     int64
	HeaderSize int
	UserSize   uint64
	TotalSize  uint64
	Alignment  uint32
	Used       bool
}

// Stats reports aggregate counters plus the smallest and largest free
// block currently on the free list (zero if there are none). It takes
// the shared lock, alongside Validate/Diagnose/Iter/Save. A destroyed
// manager reports the zero Statistics rather than panicking.
func (m *Manager) Stats() Statistics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.buf == nil {
		return Statistics{}
	}

	mh := newManagerHeader(m.buf)
	s := Statistics{
		TotalSize: mh.totalSize(),
		UsedSize:  mh.usedSize(),
	}

	off := mh.firstFreeOffset()
	for off != format.NoOffset {
		bh := newBlockHeader(m.buf, off)
		sz := bh.totalSize()
		if s.FreeBlockMin == 0 || sz < s.FreeBlockMin {
			s.FreeBlockMin = sz
		}
		if sz > s.FreeBlockMax {
			s.FreeBlockMax = sz
		}
		off = bh.freeNextOffset()
	}

	s.BlockCount = mh.blockCount()
	s.FreeCount = mh.freeCount()
	s.AllocCount = mh.allocCount()
	return s
}

// Info returns a snapshot of the manager header's fields. A destroyed
// manager reports the zero Info rather than panicking.
func (m *Manager) Info() Info {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.buf == nil {
		return Info{}
	}

	mh := newManagerHeader(m.buf)
	return Info{
		TotalSize:      mh.totalSize(),
		UsedSize:       mh.usedSize(),
		BlockCount:     mh.blockCount(),
		FreeCount:      mh.freeCount(),
		AllocCount:     mh.allocCount(),
		OwnsMemory:     mh.ownsMemory(),
		PrevGeneration: mh.prevGeneration(),
		PrevTotalSize:  mh.prevTotalSize(),
		PrevOwns:       mh.prevOwns(),
	}
}

// Iter yields every block in the all-blocks list, in order, under the
// shared lock. The iterator must not be retained or ranged over past the
// enclosing call that produced it. A destroyed manager yields nothing
// rather than panicking.
func (m *Manager) Iter() func(func(BlockView) bool) {
	return func(yield func(BlockView) bool) {
		m.mu.RLock()
		defer m.mu.RUnlock()

		if m.buf == nil {
			return
		}

		mh := newManagerHeader(m.buf)
		off := mh.firstBlockOffset()
		idx := 0
		for off != format.NoOffset {
			bh := newBlockHeader(m.buf, off)
			v := BlockView{
				Index:      idx,
				Offset:     off,
				HeaderSize: format.BlockHeaderSize,
				UserSize:   bh.userSize(),
				TotalSize:  bh.totalSize(),
				Alignment:  bh.alignment(),
				Used:       bh.used(),
			}
			if !yield(v) {
				return
			}
			off = bh.nextOffset()
			idx++
		}
	}
}
