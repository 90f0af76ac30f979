package main

import (
	"os"

	"github.com/spf13/cobra"

	"pkt.systems/heapcap/internal/appconfig"
	"pkt.systems/heapcap/internal/cgroup"
	"pkt.systems/heapcap/internal/launch"
	"pkt.systems/heapcap/internal/logx"
)

func newExecCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec [--cgroup-memory-fraction F] [--cgroup-memory-region R] [--] [runtime args...]",
		Short: "Run the runtime with a cgroup derived memory limit",
		Long: `Run the configured runtime (node by default) with --max-<region>-size
prepended to its arguments, unless a memory size flag is already present in
the arguments or in the runtime option variable (NODE_OPTIONS by default).

heapcap options must come first and, once used, be terminated by "--".`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := appconfig.Load("")
			if err != nil {
				return err
			}
			spawn, err := newMerger(cfg).Merge(ctx, os.Environ(), args)
			if err != nil {
				return err
			}
			logx.WithRuntime(logx.Ctx(ctx), cfg.Runtime.Binary).Debug("runtime launch", "flag", spawn.Flag)
			return launch.Exec(ctx, cfg.Runtime.Binary, spawn)
		},
	}
}

func newMerger(cfg appconfig.Config) *launch.Merger {
	calc := cgroup.NewCalculator(cfg.Procfs.MountInfo)
	return &launch.Merger{
		Parser:     cfg.Parser(),
		OptionsEnv: cfg.Runtime.OptionsEnv,
		Limit:      calc.Limit,
	}
}
