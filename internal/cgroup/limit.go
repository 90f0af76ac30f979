package cgroup

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"pkt.systems/pslog"
)

// Unknown is returned when a limit cannot be determined.
const Unknown int64 = -1

// unboundedToken is written by the kernel when no limit is configured.
const unboundedToken = "max"

// ReadLimit reads a single numeric control file. The unbounded token maps to
// unbounded; a missing file, read failure or unparsable content yields
// Unknown.
func ReadLimit(ctx context.Context, fsys afero.Fs, path string, unbounded int64) int64 {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		pslog.Ctx(ctx).Debug("cgroup limit unreadable", "path", path, "err", err)
		return Unknown
	}
	value := strings.TrimSpace(string(data))
	if value == unboundedToken {
		return unbounded
	}
	limit, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		pslog.Ctx(ctx).Debug("cgroup limit unparsable", "path", path, "value", value, "err", err)
		return Unknown
	}
	return limit
}
