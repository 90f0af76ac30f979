package main

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pkt.systems/heapcap/internal/launch"
	"pkt.systems/psi"
	"pkt.systems/pslog"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	args := applyArgv0Alias(os.Args)
	root := newRootCmd()
	root.SetArgs(args[1:])

	if err := root.ExecuteContext(ctx); err != nil {
		return exitCode(ctx, err)
	}
	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "heapcap",
		Short:         "Launch a managed runtime with a heap limit derived from cgroup memory",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(newExecCmd())
	root.AddCommand(newProbeCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// exitCode maps a command error to the process exit status. A runtime that
// ran as a child reports its own status without further logging.
func exitCode(ctx context.Context, err error) int {
	var exitErr *launch.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	pslog.Ctx(ctx).With("err", err).Error("heapcap command failed")
	if errors.Is(err, launch.ErrRuntimeNotFound) {
		return 127
	}
	return 1
}

func argv0Alias(base string) string {
	switch base {
	case "heapcap-node", "node-heapcap":
		return "exec"
	default:
		return ""
	}
}

func applyArgv0Alias(args []string) []string {
	if len(args) == 0 {
		return args
	}
	alias := argv0Alias(filepath.Base(args[0]))
	if alias == "" {
		return args
	}
	out := make([]string, 0, len(args)+1)
	out = append(out, args[0], alias)
	out = append(out, args[1:]...)
	return out
}
