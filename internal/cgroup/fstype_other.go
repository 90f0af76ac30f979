//go:build !linux

package cgroup

// DefaultRoot is where cgroup hierarchies are conventionally mounted.
const DefaultRoot = "/sys/fs/cgroup"

// FilesystemVersion always reports VersionUnknown outside Linux.
func FilesystemVersion(string) Version {
	return VersionUnknown
}
