package logx

import (
	"context"

	"pkt.systems/pslog"
)

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithCgroup annotates the logger with the detected cgroup hierarchy.
func WithCgroup(log pslog.Logger, version, mountPoint string) pslog.Logger {
	if version != "" {
		log = log.With("cgroup", version)
	}
	if mountPoint != "" {
		log = log.With("cgroup_mount", mountPoint)
	}
	return log
}

// WithOptions annotates the logger with the resolved memory options.
func WithOptions(log pslog.Logger, fraction float64, region string) pslog.Logger {
	log = log.With("memory_fraction", fraction)
	if region != "" {
		log = log.With("memory_region", region)
	}
	return log
}

// WithRuntime annotates the logger with the runtime binary being launched.
func WithRuntime(log pslog.Logger, binary string) pslog.Logger {
	if binary != "" {
		log = log.With("runtime", binary)
	}
	return log
}
