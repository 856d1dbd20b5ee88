package stabledict

import "github.com/cespare/xxhash/v2"

const (
	fnvPrime     = 1099511628211
	fnvOffset    = 14695981039346656037
	fnvOddOffset = 3300246481284065416

	xxhashSecondarySeed = fnvOddOffset
)

// HashFunc hashes a key into 64 bits. A table uses two of them: the
// primary picks the first slot, the secondary picks the probe step.
type HashFunc func(key string) uint64

func fnvMix(hash uint64, key string) uint64 {
	for i := 0; i < len(key); i++ {
		hash *= fnvPrime
		hash ^= uint64(key[i])
	}

	return hash
}

// FNVPrimary is the 64-bit FNV-1 hash of the key.
func FNVPrimary(key string) uint64 {
	return fnvMix(fnvOffset, key)
}

// FNVSecondary is FNV-1 started from a different offset, so that it is
// independent of FNVPrimary for the same key.
func FNVSecondary(key string) uint64 {
	return fnvMix(fnvOddOffset, key)
}

// Returns the xxhash64 of the key.
func XXHashPrimary(key string) uint64 {
	return xxhash.Sum64String(key)
}

// Returns the xxhash64 of the key with a fixed non-zero seed.
func XXHashSecondary(key string) uint64 {
	d := xxhash.NewWithSeed(xxhashSecondarySeed)
	_, _ = d.WriteString(key)

	return d.Sum64()
}

// HashSplit reduces a hash pair to the start slot and probe step of a table
// with the given capacity. The step is always odd, which makes it coprime to
// any power of two.
func HashSplit(h1, h2 uint64, capacity uintptr) (uintptr, uintptr) {
	start := uintptr(h1 % uint64(capacity))
	step := uintptr(h2%uint64(capacity)) | 1

	return start, step
}
