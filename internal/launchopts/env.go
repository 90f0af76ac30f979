package launchopts

import "strings"

const (
	// DefaultFractionEnv overrides the memory fraction.
	DefaultFractionEnv = "CGROUP_MEMORY_FRACTION"
	// DefaultRegionEnv overrides the memory region.
	DefaultRegionEnv = "CGROUP_MEMORY_REGION"
)

// Env is a snapshot of environment variables.
type Env map[string]string

// EnvFromEnviron builds an Env from KEY=VALUE pairs as returned by
// os.Environ. Later duplicates win.
func EnvFromEnviron(environ []string) Env {
	env := make(Env, len(environ))
	for _, kv := range environ {
		key, val, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = val
	}
	return env
}

// Get returns the value of key, or "" when unset.
func (e Env) Get(key string) string {
	if e == nil || key == "" {
		return ""
	}
	return e[key]
}
