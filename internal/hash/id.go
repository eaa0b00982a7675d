package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Slot maps data onto one of size cache slots. size must be a power of two.
//
// Distinct strings can share a slot, so callers must confirm the key itself
// before trusting anything stored there.
func Slot(data string, size int) int {
	return int(uint32(xxhash.Sum64String(data)) & uint32(size-1)) //nolint:gosec
}
