// Package cgroup locates the memory controller of the calling process and
// derives an effective memory limit from its control files.
//
// Both layouts are supported: a v1 hierarchy with a dedicated memory
// controller mount, and the v2 unified hierarchy. When both are mounted the v1
// memory controller wins. All reads go through an afero.Fs so callers can
// substitute fixture filesystems.
package cgroup
