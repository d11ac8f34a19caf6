package format

import "encoding/binary"

// Binary encoding utilities for little-endian integers.

// PutU8 writes a uint8 value to b at off.
func PutU8(b []byte, off int, v uint8) { b[off] = v }

// ReadU8 reads a uint8 value from b at off.
func ReadU8(b []byte, off int) uint8 { return b[off] }

// PutU32 writes a uint32 value to b at off in little-endian order.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// ReadU32 reads a uint32 value from b at off in little-endian order.
func ReadU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// PutU64 writes a uint64 value to b at off in little-endian order.
func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU64 reads a uint64 value from b at off in little-endian order.
func ReadU64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}

// PutI64 writes an int64 value to b at off in little-endian order.
func PutI64(b []byte, off int, v int64) {
	binary.LittleEndian.PutUint64(b[off:off+8], uint64(v))
}

// ReadI64 reads an int64 value from b at off in little-endian order.
func ReadI64(b []byte, off int) int64 {
	return int64(binary.LittleEndian.Uint64(b[off : off+8]))
}
