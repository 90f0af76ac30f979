//go:build linux

package launch

import (
	"context"
	"fmt"

	"golang.org/x/sys/unix"

	"pkt.systems/heapcap/internal/logx"
)

// Exec replaces the current process with binary. It only returns on failure.
func Exec(ctx context.Context, binary string, spawn Spawn) error {
	path, err := lookPath(binary)
	if err != nil {
		return err
	}
	argv := make([]string, 0, len(spawn.Argv)+1)
	argv = append(argv, binary)
	argv = append(argv, spawn.Argv...)
	logx.WithRuntime(logx.Ctx(ctx), path).Debug("runtime exec", "args", len(spawn.Argv))
	if err := unix.Exec(path, argv, spawn.Env); err != nil {
		return fmt.Errorf("exec %s: %w", path, err)
	}
	return nil
}
