//go:build linux

package cgroup

import "golang.org/x/sys/unix"

// DefaultRoot is where cgroup hierarchies are conventionally mounted.
const DefaultRoot = "/sys/fs/cgroup"

// FilesystemVersion inspects the filesystem magic of root. It is only used
// for diagnostics; Locate is authoritative.
func FilesystemVersion(root string) Version {
	var st unix.Statfs_t
	if err := unix.Statfs(root, &st); err != nil {
		return VersionUnknown
	}
	switch st.Type {
	case unix.CGROUP2_SUPER_MAGIC:
		return V2
	case unix.TMPFS_MAGIC, unix.CGROUP_SUPER_MAGIC:
		return V1
	default:
		return VersionUnknown
	}
}
