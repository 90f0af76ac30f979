// Package launchopts resolves heapcap's own options from the environment and
// the leading part of the argument vector.
package launchopts

// Region names a runtime memory region whose size can be capped.
type Region string

const (
	// RegionOldSpace caps the V8 old generation.
	RegionOldSpace Region = "old-space"
	// RegionHeap caps the whole heap.
	RegionHeap Region = "heap"
)

// Known reports whether r is one of the recognized regions. Unknown regions
// are still passed through to the runtime verbatim.
func (r Region) Known() bool {
	switch r {
	case RegionOldSpace, RegionHeap:
		return true
	default:
		return false
	}
}

func (r Region) String() string {
	return string(r)
}

// DefaultMemoryFraction is the share of the cgroup limit given to the heap.
const DefaultMemoryFraction = 0.7

// Options are heapcap's own settings.
type Options struct {
	MemoryFraction float64
	MemoryRegion   Region
}

// Defaults returns the built-in options.
func Defaults() Options {
	return Options{
		MemoryFraction: DefaultMemoryFraction,
		MemoryRegion:   RegionOldSpace,
	}
}
