package heap

import (
	"errors"
	"strconv"
)

var (
	// ErrInvalidArgument indicates a zero size, non-power-of-two or
	// out-of-range alignment, or an undersized buffer on Create/Load.
	ErrInvalidArgument = errors.New("heap: invalid argument")

	// ErrOutOfMemory indicates the buffer could not be grown to satisfy a
	// request: the grown size would overflow int, or the grown buffer still
	// held no block large enough.
	ErrOutOfMemory = errors.New("heap: out of memory")

	// ErrCorrupt indicates a manager or block header failed its magic,
	// size, or linkage checks.
	ErrCorrupt = errors.New("heap: corrupt heap image")

	// ErrIO indicates a file read or write failed during Save or a
	// file-backed Load.
	ErrIO = errors.New("heap: i/o failure")

	// ErrNoManager indicates a public operation was attempted with no
	// manager installed in the process-wide slot.
	ErrNoManager = errors.New("heap: no manager installed")
)

// ValidationError carries the first invariant violation Diagnose found.
// Validate collapses this into a plain bool per the allocator's external
// contract; ValidationError exists for tooling and tests that want to know
// *why*.
type ValidationError struct {
	Kind    string
	Message string
	Offset  int64
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return "heap: " + e.Kind + " at offset " + strconv.FormatInt(e.Offset, 10) + ": " + e.Message
	}
	return "heap: " + e.Kind + ": " + e.Message
}
