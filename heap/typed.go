package heap

import "unsafe"

// TypedRef[T] pins the Go type a caller intends to store at a payload, so a
// handle allocated for one type cannot be passed to an accessor expecting
// another without an explicit conversion. It carries no state beyond the
// offset: the zero TypedRef[T] is the null handle, same as Handle, and it
// converts to and from the untyped Handle freely.
//
// Grounded on two precedents in the wider allocator corpus: a raw-offset
// handle resolved against its owning buffer on demand (the untyped Handle
// above), and a generic, typed wrapper around such an offset with a safe
// accessor (the arena-style typed-reference pattern) — TypedRef[T] combines
// the two, dropping any extra staleness tag since equality here is
// offset-only by design.
type TypedRef[T any] struct {
	Offset int64
}

// TypedHandle pins h to the payload type T.
func TypedHandle[T any](h Handle) TypedRef[T] {
	return TypedRef[T]{Offset: h.Offset()}
}

// Untyped discards h's type parameter, recovering the plain Handle that
// every Manager method operates on.
func (h TypedRef[T]) Untyped() Handle {
	return HandleFromOffset(h.Offset)
}

// IsNull reports whether h is the null handle.
func (h TypedRef[T]) IsNull() bool {
	return h.Offset == 0
}

// Alloc reserves space for one T in the process-wide current manager and
// returns a typed handle to it. It fails with ErrNoManager if no manager
// is currently installed.
func Alloc[T any](alignment int) (TypedRef[T], error) {
	m := Current()
	if m == nil {
		return TypedRef[T]{}, ErrNoManager
	}
	var zero T
	h, err := m.Allocate(int(unsafe.Sizeof(zero)), alignment)
	if err != nil {
		return TypedRef[T]{}, err
	}
	return TypedHandle[T](h), nil
}

// Free releases h against the process-wide current manager, the typed
// convenience form of Manager.Deallocate.
func Free[T any](h TypedRef[T]) error {
	m := Current()
	if m == nil {
		return ErrNoManager
	}
	return m.Deallocate(h.Untyped())
}

// Bytes resolves h's payload against the process-wide current manager.
// Manager.Bytes is the explicit-receiver form; this is the dereference
// convenience the current-manager slot exists to support.
func (h TypedRef[T]) Bytes() ([]byte, error) {
	m := Current()
	if m == nil {
		return nil, ErrNoManager
	}
	return m.Bytes(h.Untyped())
}

// Value reinterprets h's live payload as *T. The returned pointer aliases
// the current manager's buffer directly, so it is only valid until the
// next call that may grow or relocate the buffer (Allocate, Reallocate) —
// callers that need to keep a T past such a call must copy it out first.
func (h TypedRef[T]) Value() (*T, error) {
	b, err := h.Bytes()
	if err != nil {
		return nil, err
	}
	var zero T
	if len(b) < int(unsafe.Sizeof(zero)) {
		return nil, ErrInvalidArgument
	}
	return (*T)(unsafe.Pointer(&b[0])), nil
}
