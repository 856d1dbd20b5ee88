package stabledict

import (
	"math/bits"
	"unsafe"
)

// Returns the next power of 2 for the given value `v`.
func NextPowerOf2(v uint32) uint32 {
	return uint32(1) << min(bits.Len32(v-1), 31)
}

// Reports whether `v` is a power of 2. Zero is not.
func IsPowerOf2(v uint64) bool {
	return v != 0 && v&(v-1) == 0
}

// Estimates capacity (number of slots) from the given memory size in bytes.
// The result is rounded down to a power of 2, so it can be passed to New as is.
// Returns 0 if not even one slot fits.
func CapacityFromSize[V any](size uintptr) int {
	sizeOfSlot := unsafe.Sizeof(slot[V]{})
	numSlots := uint64(size / sizeOfSlot)
	if numSlots == 0 {
		return 0
	}

	return 1 << (bits.Len64(numSlots) - 1)
}
