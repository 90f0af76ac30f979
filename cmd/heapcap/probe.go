package main

import (
	"context"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pkt.systems/heapcap/internal/appconfig"
	"pkt.systems/heapcap/internal/cgroup"
	"pkt.systems/heapcap/internal/launch"
	"pkt.systems/heapcap/internal/launchopts"
	"pkt.systems/heapcap/internal/nodeopts"
	"pkt.systems/heapcap/internal/procfs"
)

type probeReport struct {
	Runtime    string       `yaml:"runtime"`
	OptionsEnv string       `yaml:"options_env"`
	MountInfo  string       `yaml:"mountinfo"`
	Mounts     int          `yaml:"mounts"`
	Cgroup     *probeCgroup `yaml:"cgroup,omitempty"`
	Fraction   float64      `yaml:"memory_fraction"`
	Region     string       `yaml:"memory_region"`
	Explicit   bool         `yaml:"explicit_limit"`
	Flag       string       `yaml:"flag,omitempty"`
}

type probeCgroup struct {
	Version    string `yaml:"version"`
	MountPoint string `yaml:"mount_point"`
	Filesystem string `yaml:"filesystem"`
	LimitBytes int64  `yaml:"limit_bytes"`
}

func newProbeCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Report the detected cgroup limit and the flag exec would add",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			report, err := buildProbeReport(cmd.Context(), afero.NewOsFs(), cgroup.FilesystemVersion, cfg, os.Environ())
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(report); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	return cmd
}

func buildProbeReport(ctx context.Context, fsys afero.Fs, statfs func(string) cgroup.Version, cfg appconfig.Config, environ []string) (probeReport, error) {
	report := probeReport{
		Runtime:    cfg.Runtime.Binary,
		OptionsEnv: cfg.Runtime.OptionsEnv,
		MountInfo:  cfg.Procfs.MountInfo,
	}
	records := procfs.ReadMountTable(ctx, fsys, cfg.Procfs.MountInfo)
	report.Mounts = len(records)

	calc := &cgroup.Calculator{FS: fsys, MountInfoPath: cfg.Procfs.MountInfo}
	if mount, ok := cgroup.Locate(records); ok {
		report.Cgroup = &probeCgroup{
			Version:    mount.Version.String(),
			MountPoint: mount.MountPoint(),
			Filesystem: statfs(mount.MountPoint()).String(),
			LimitBytes: cgroup.MemoryLimit(ctx, fsys, mount),
		}
	}

	merger := &launch.Merger{
		Parser:     cfg.Parser(),
		OptionsEnv: cfg.Runtime.OptionsEnv,
		Limit:      calc.Limit,
	}
	spawn, err := merger.Merge(ctx, environ, nil)
	if err != nil {
		return probeReport{}, err
	}
	report.Fraction = spawn.Options.MemoryFraction
	report.Region = spawn.Options.MemoryRegion.String()
	report.Flag = spawn.Flag
	env := launchopts.EnvFromEnviron(environ)
	report.Explicit = nodeopts.HasExplicitMemorySize(nodeopts.Fields(env.Get(cfg.Runtime.OptionsEnv)))
	return report, nil
}
