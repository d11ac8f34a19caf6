package heap

import "pheap/internal/format"

// maxScanSteps bounds pointer-to-header recovery to a constant number of
// candidate offsets: enough to reach back over a block header plus the
// largest alignment padding a MaxAlignment request can add.
const maxScanSteps = (format.MaxAlignment + format.BlockHeaderSize) / format.DefaultAlignment

// recoverBlock locates the block header owning the user address at
// userOff by scanning backward in DefaultAlignment steps, checking the
// candidate's magic, used bit, and recomputed user offset. Returns
// format.NoOffset if no candidate matches within the bounded window —
// this is not an error; the caller (Deallocate) treats an unrecoverable
// pointer as free-of-invalid, which is a no-op.
func recoverBlock(buf []byte, userOff int64) int64 {
	for step := int64(0); step < maxScanSteps; step++ {
		candidate := userOff - step*format.DefaultAlignment
		if candidate < int64(format.ManagerHeaderSize) {
			break
		}
		if candidate+format.BlockHeaderSize > int64(len(buf)) {
			continue
		}
		bh := newBlockHeader(buf, candidate)
		if bh.magic() != format.BlockMagic {
			continue
		}
		if !bh.used() {
			continue
		}
		if userAddrOffset(candidate, bh.alignment()) != userOff {
			continue
		}
		return candidate
	}
	return format.NoOffset
}
