//go:build !linux

package launch

import (
	"context"
	"errors"
	"os"
	"os/exec"

	"pkt.systems/heapcap/internal/logx"
)

// Exec runs binary as a child with inherited stdio and waits for it. A
// non-zero exit status is returned as *ExitError.
func Exec(ctx context.Context, binary string, spawn Spawn) error {
	path, err := lookPath(binary)
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, path, spawn.Argv...)
	cmd.Env = spawn.Env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	logx.WithRuntime(logx.Ctx(ctx), path).Debug("runtime spawn", "args", len(spawn.Argv))
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode()}
		}
		return err
	}
	return nil
}
