package appconfig

import (
	"os"
	"path/filepath"

	"pkt.systems/heapcap/internal/launchopts"
	"pkt.systems/heapcap/internal/nodeopts"
	"pkt.systems/heapcap/internal/procfs"
)

// Config is the top-level application configuration.
type Config struct {
	ConfigVersion int           `mapstructure:"config_version" yaml:"config_version"`
	Runtime       RuntimeConfig `mapstructure:"runtime" yaml:"runtime"`
	Memory        MemoryConfig  `mapstructure:"memory" yaml:"memory"`
	Procfs        ProcfsConfig  `mapstructure:"procfs" yaml:"procfs"`
}

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// EnvConfigPath names the variable that points at a config file.
const EnvConfigPath = "HEAPCAP_CONFIG"

// RuntimeConfig selects the managed runtime that is launched.
type RuntimeConfig struct {
	Binary     string `mapstructure:"binary" yaml:"binary"`
	OptionsEnv string `mapstructure:"options_env" yaml:"options_env"`
}

// MemoryConfig holds the defaults for heapcap's own options and the names of
// the variables that override them.
type MemoryConfig struct {
	Fraction    float64 `mapstructure:"fraction" yaml:"fraction"`
	Region      string  `mapstructure:"region" yaml:"region"`
	FractionEnv string  `mapstructure:"fraction_env" yaml:"fraction_env"`
	RegionEnv   string  `mapstructure:"region_env" yaml:"region_env"`
}

// ProcfsConfig locates the kernel mount table.
type ProcfsConfig struct {
	MountInfo string `mapstructure:"mountinfo" yaml:"mountinfo"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	defaults := launchopts.Defaults()
	return Config{
		ConfigVersion: CurrentConfigVersion,
		Runtime: RuntimeConfig{
			Binary:     "node",
			OptionsEnv: nodeopts.DefaultOptionsEnv,
		},
		Memory: MemoryConfig{
			Fraction:    defaults.MemoryFraction,
			Region:      defaults.MemoryRegion.String(),
			FractionEnv: launchopts.DefaultFractionEnv,
			RegionEnv:   launchopts.DefaultRegionEnv,
		},
		Procfs: ProcfsConfig{
			MountInfo: procfs.DefaultMountInfoPath,
		},
	}
}

// Parser returns the own-options parser described by the config.
func (c Config) Parser() launchopts.Parser {
	return launchopts.Parser{
		Defaults: launchopts.Options{
			MemoryFraction: c.Memory.Fraction,
			MemoryRegion:   launchopts.Region(c.Memory.Region),
		},
		FractionEnv: c.Memory.FractionEnv,
		RegionEnv:   c.Memory.RegionEnv,
	}
}

// DefaultConfigPath returns the standard config path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".heapcap", "config.yaml"), nil
}
