package appconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load reads configuration from the provided path. If path is empty, the
// HEAPCAP_CONFIG variable is consulted and then DefaultConfigPath; a missing
// default file yields the built-in defaults. HEAPCAP_* variables override
// individual keys, e.g. HEAPCAP_RUNTIME_BINARY.
func Load(path string) (Config, error) {
	explicit := true
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfigPath))
	}
	if path == "" {
		explicit = false
		if defaultPath, err := DefaultConfigPath(); err == nil {
			path = defaultPath
		}
	}

	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("HEAPCAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("config_version", cfg.ConfigVersion)
	v.SetDefault("runtime.binary", cfg.Runtime.Binary)
	v.SetDefault("runtime.options_env", cfg.Runtime.OptionsEnv)
	v.SetDefault("memory.fraction", cfg.Memory.Fraction)
	v.SetDefault("memory.region", cfg.Memory.Region)
	v.SetDefault("memory.fraction_env", cfg.Memory.FractionEnv)
	v.SetDefault("memory.region_env", cfg.Memory.RegionEnv)
	v.SetDefault("procfs.mountinfo", cfg.Procfs.MountInfo)

	configLoaded := false
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return Config{}, err
			}
		} else {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, err
			}
			configLoaded = true
		}
	}

	if configLoaded {
		if !v.InConfig("config_version") {
			return Config{}, fmt.Errorf("config_version is required; expected %d", CurrentConfigVersion)
		}
		if v.GetInt("config_version") != CurrentConfigVersion {
			return Config{}, fmt.Errorf("unsupported config_version %d; expected %d", v.GetInt("config_version"), CurrentConfigVersion)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	expandConfigEnv(&cfg)
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if strings.TrimSpace(cfg.Runtime.Binary) == "" {
		return fmt.Errorf("runtime.binary is required")
	}
	if strings.TrimSpace(cfg.Runtime.OptionsEnv) == "" {
		return fmt.Errorf("runtime.options_env is required")
	}
	if math.IsNaN(cfg.Memory.Fraction) || math.IsInf(cfg.Memory.Fraction, 0) || cfg.Memory.Fraction <= 0 {
		return fmt.Errorf("memory.fraction must be a positive number, got %v", cfg.Memory.Fraction)
	}
	if strings.TrimSpace(cfg.Memory.Region) == "" {
		return fmt.Errorf("memory.region is required")
	}
	if strings.TrimSpace(cfg.Procfs.MountInfo) == "" {
		return fmt.Errorf("procfs.mountinfo is required")
	}
	return nil
}

func expandConfigEnv(cfg *Config) {
	if cfg == nil {
		return
	}
	cfg.Runtime.Binary = expandEnv(cfg.Runtime.Binary)
	cfg.Procfs.MountInfo = expandEnv(cfg.Procfs.MountInfo)
}

func expandEnv(value string) string {
	if value == "" {
		return value
	}
	return os.Expand(value, func(key string) string {
		if key == "" {
			return ""
		}
		if val, ok := lookupEnv(key); ok {
			return val
		}
		return "$" + key
	})
}

func lookupEnv(key string) (string, bool) {
	if val, ok := os.LookupEnv(key); ok {
		return val, true
	}
	switch key {
	case "UID":
		return fmt.Sprintf("%d", os.Getuid()), true
	case "GID":
		return fmt.Sprintf("%d", os.Getgid()), true
	}
	return "", false
}

// WriteDefault writes the default config to the target path.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	data, err := Marshal(DefaultConfig())
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
