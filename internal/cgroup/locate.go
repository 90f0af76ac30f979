package cgroup

import "pkt.systems/heapcap/internal/procfs"

const (
	fsTypeV1         = "cgroup"
	fsTypeV2         = "cgroup2"
	memoryController = "memory"
)

// Mount is the selected cgroup mount and its layout.
type Mount struct {
	Record  procfs.MountRecord
	Version Version
}

// MountPoint returns where the hierarchy is mounted.
func (m Mount) MountPoint() string {
	return m.Record.MountPoint
}

// Locate picks the v1 memory controller mount, or failing that the v2 unified
// mount. It reports false when neither is present.
func Locate(records []procfs.MountRecord) (Mount, bool) {
	for _, rec := range records {
		if rec.FSType == fsTypeV1 && rec.SuperOptions.Has(memoryController) {
			return Mount{Record: rec, Version: V1}, true
		}
	}
	for _, rec := range records {
		if rec.FSType == fsTypeV2 {
			return Mount{Record: rec, Version: V2}, true
		}
	}
	return Mount{}, false
}
