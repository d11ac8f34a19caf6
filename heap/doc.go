// Package heap implements a persistent, self-describing heap allocator.
//
// # Overview
//
// A Manager lays out all of its own bookkeeping inside the buffer it
// manages: a fixed manager header at offset 0, followed by a chain of
// block headers, each immediately preceding its payload. Every
// cross-block reference is a signed byte offset from the start of the
// buffer, never a raw address, which is what lets an entire heap image be
// written to a file, reloaded into a fresh buffer at an unrelated base
// address, and have every previously issued Handle keep resolving.
//
// # Allocation
//
// Allocate walks a single free list, first-fit, splitting the chosen
// block when the remainder is large enough to stand on its own. Free
// re-inserts at the head of the free list (a LIFO bias that favors
// reusing recently freed, cache-hot blocks) and coalesces with both
// spatial neighbors before returning.
//
// # Growth
//
// When no free block satisfies a request, the Manager grows: it
// allocates a new, larger buffer, copies the old image into its prefix,
// extends the tail free block, and replaces the live buffer. Because the
// old image lands at the same offsets in the new buffer, a Handle issued
// before the growth keeps resolving against the new buffer with no
// translation step. Exactly one generation of prior buffer is still
// retained (released on the next growth or on Destroy) for header-field
// fidelity and diagnostics, not because any lookup reads from it.
//
// # Concurrency
//
// A Manager gates its operations behind a sync.RWMutex: Allocate,
// Deallocate, Reallocate, and Destroy take the exclusive lock; Validate,
// Diagnose, Stats, Iter, and Save take the shared lock. The package also
// keeps a single process-wide "current manager" slot, guarded by its own
// package-level lock, installed by Create/Load and cleared by Destroy.
//
// # Related packages
//
//   - pheap/internal/format: wire-level layout constants and encoding.
package heap
