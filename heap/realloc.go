package heap

import "pheap/internal/format"

// Reallocate resizes the block named by h to newSize bytes:
//
//   - a null handle behaves like Allocate(newSize, DefaultAlignment)
//   - newSize == 0 behaves like Deallocate(h), returning the null handle
//   - if the existing payload already holds newSize bytes, h is returned
//     unchanged (no shrink in place is attempted)
//   - otherwise a fresh block is allocated at the same alignment the
//     original block was allocated with, the live payload is copied
//     over, and the old block is freed
//
// There is no in-place growth fast path: every size increase allocates,
// copies, and frees, but unlike calling the three independently, the whole
// sequence runs under a single write lock, so no concurrent Validate,
// Diagnose, Stats, or Iter call can observe the old and new blocks both
// marked used at once. A non-null h that cannot be recovered fails with
// ErrInvalidArgument; otherwise Reallocate can only fail when the fallback
// allocation fails, in which case the original block is left untouched.
func (m *Manager) Reallocate(h Handle, newSize int) (Handle, error) {
	if h.IsNull() {
		return m.Allocate(newSize, format.DefaultAlignment)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if newSize == 0 {
		if off := recoverBlock(m.buf, h.offset); off != format.NoOffset {
			m.releaseBlock(off)
		}
		return Handle{}, nil
	}

	off := recoverBlock(m.buf, h.offset)
	if off == format.NoOffset {
		return Handle{}, ErrInvalidArgument
	}
	bh := newBlockHeader(m.buf, off)
	oldUserSize := int(bh.userSize())
	alignment := int(bh.alignment())

	if newSize <= oldUserSize {
		return h, nil
	}

	newHandle, err := m.allocateLocked(newSize, alignment)
	if err != nil {
		return Handle{}, err
	}

	// allocateLocked may have grown the buffer and replaced m.buf, so the
	// old block is recovered again against whatever m.buf is now rather
	// than reused from before the possible growth.
	srcOff := recoverBlock(m.buf, h.offset)
	dstOff := recoverBlock(m.buf, newHandle.offset)
	copy(payloadSlice(m.buf, dstOff), payloadSlice(m.buf, srcOff))

	m.releaseBlock(srcOff)
	return newHandle, nil
}
