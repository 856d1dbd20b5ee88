package stabledict

type Stats struct {
	Capacity   int
	Size       int
	Tombstones int

	// Number of completed Insert calls, overwrites included. Never decreases
	// on Remove.
	Inserts uint64

	LoadFactor              float32
	TombstonesCapacityRatio float32
	TombstonesSizeRatio     float32
}
