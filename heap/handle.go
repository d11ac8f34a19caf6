package heap

import "pheap/internal/format"

// Handle is a persistent, self-relative reference to an allocated block's
// payload. It holds a single byte offset from the start of the managing
// buffer — never a native pointer — so it survives being saved to disk and
// reloaded at a different base address. The offset is an int64 on every
// platform: the width of a machine pointer on 64-bit platforms, twice it
// on 32-bit ones.
//
// A growth never invalidates a Handle: growth always byte-copies the prior
// image into the low prefix of the new buffer, so offsets issued before a
// growth still name the same payload afterward. Two
// handles are equal exactly when their offsets are equal; the zero Handle
// is the null handle and never resolves to a block.
type Handle struct {
	offset int64
}

// IsNull reports whether h is the null handle.
func (h Handle) IsNull() bool {
	return h.offset == 0
}

// Offset returns the handle's underlying byte offset, for callers that
// need to store or transmit it independently of this package.
func (h Handle) Offset() int64 {
	return h.offset
}

// HandleFromOffset reconstructs a Handle from a raw offset, as recorded by
// Offset. It performs no validation; resolving a fabricated offset through
// Manager methods fails the same way an invalid Handle would.
func HandleFromOffset(offset int64) Handle {
	return Handle{offset: offset}
}

// Bytes returns the payload region named by h as a slice over the
// manager's live buffer. The slice is only valid until the next call that
// may grow or relocate the buffer (Allocate, Reallocate).
func (m *Manager) Bytes(h Handle) ([]byte, error) {
	if h.IsNull() {
		return nil, ErrInvalidArgument
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	off := recoverBlock(m.buf, h.offset)
	if off == format.NoOffset {
		return nil, ErrInvalidArgument
	}
	return payloadSlice(m.buf, off), nil
}

// payloadSlice returns the payload bytes of the block header at off. off
// must already be a known-valid block offset, as returned by recoverBlock.
func payloadSlice(buf []byte, off int64) []byte {
	bh := newBlockHeader(buf, off)
	start := userAddrOffset(off, bh.alignment())
	end := start + int64(bh.userSize())
	return buf[start:end]
}

// Size returns the payload size in bytes recorded for h's block: the size
// it was allocated with, or the size a growing Reallocate gave it. A
// Reallocate to a size no larger than the current one leaves it unchanged.
func (m *Manager) Size(h Handle) (int, error) {
	if h.IsNull() {
		return 0, ErrInvalidArgument
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	off := recoverBlock(m.buf, h.offset)
	if off == format.NoOffset {
		return 0, ErrInvalidArgument
	}
	return int(newBlockHeader(m.buf, off).userSize()), nil
}
