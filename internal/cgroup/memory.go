package cgroup

import (
	"context"
	"math"
	"path"

	"github.com/spf13/afero"

	"pkt.systems/heapcap/internal/logx"
	"pkt.systems/heapcap/internal/procfs"
)

const (
	v1LimitFile   = "memory.limit_in_bytes"
	v2MemoryFile  = "memory.max"
	v2SwapMaxFile = "memory.swap.max"
)

// MemoryLimit returns the effective memory limit in bytes for mount, or
// Unknown.
//
// For v2 the limit is memory.max plus memory.swap.max. An unbounded or
// unreadable value on either side makes the total indeterminate, so no
// partial sum is ever returned.
func MemoryLimit(ctx context.Context, fsys afero.Fs, mount Mount) int64 {
	root := mount.MountPoint()
	switch mount.Version {
	case V1:
		return ReadLimit(ctx, fsys, path.Join(root, v1LimitFile), Unknown)
	case V2:
		swapMax := ReadLimit(ctx, fsys, path.Join(root, v2SwapMaxFile), Unknown)
		if swapMax == Unknown {
			return Unknown
		}
		memMax := ReadLimit(ctx, fsys, path.Join(root, v2MemoryFile), Unknown)
		if memMax == Unknown {
			return Unknown
		}
		if memMax < 0 || swapMax < 0 || memMax > math.MaxInt64-swapMax {
			return Unknown
		}
		return memMax + swapMax
	default:
		return Unknown
	}
}

// Calculator derives the memory limit of the calling process from the mount
// table and cgroup control files found on FS.
type Calculator struct {
	FS            afero.Fs
	MountInfoPath string
}

// NewCalculator returns a Calculator reading the host filesystem.
func NewCalculator(mountInfoPath string) *Calculator {
	if mountInfoPath == "" {
		mountInfoPath = procfs.DefaultMountInfoPath
	}
	return &Calculator{FS: afero.NewOsFs(), MountInfoPath: mountInfoPath}
}

// Detect reads the mount table and selects the cgroup mount.
func (c *Calculator) Detect(ctx context.Context) (Mount, bool) {
	records := procfs.ReadMountTable(ctx, c.FS, c.mountInfoPath())
	mount, ok := Locate(records)
	log := logx.Ctx(ctx)
	if !ok {
		log.Debug("cgroup memory controller not found", "mounts", len(records))
		return Mount{}, false
	}
	logx.WithCgroup(log, mount.Version.String(), mount.MountPoint()).Debug("cgroup detected")
	return mount, true
}

// Limit returns the effective memory limit in bytes, or Unknown.
func (c *Calculator) Limit(ctx context.Context) int64 {
	mount, ok := c.Detect(ctx)
	if !ok {
		return Unknown
	}
	return MemoryLimit(ctx, c.FS, mount)
}

func (c *Calculator) mountInfoPath() string {
	if c.MountInfoPath == "" {
		return procfs.DefaultMountInfoPath
	}
	return c.MountInfoPath
}
