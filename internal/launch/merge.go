package launch

import (
	"context"

	"pkt.systems/heapcap/internal/launchopts"
	"pkt.systems/heapcap/internal/logx"
	"pkt.systems/heapcap/internal/nodeopts"
)

// LimitFunc returns the memory limit in bytes, or a non-positive value when
// none is known.
type LimitFunc func(ctx context.Context) int64

// Spawn is what the runtime is launched with.
type Spawn struct {
	Env     []string
	Argv    []string
	Flag    string
	Options launchopts.Options
}

// Merger combines heapcap's own options, any user supplied memory flags and
// the cgroup limit into the runtime's arguments.
type Merger struct {
	Parser     launchopts.Parser
	OptionsEnv string
	Limit      LimitFunc
}

// NewMerger returns a Merger with the default parser and option variable.
func NewMerger(limit LimitFunc) *Merger {
	return &Merger{
		Parser:     launchopts.NewParser(),
		OptionsEnv: nodeopts.DefaultOptionsEnv,
		Limit:      limit,
	}
}

// Merge strips heapcap's own flags from argv and, unless a memory-size flag
// is already present, prepends one derived from the memory limit. Runtime
// flags go first because trailing arguments belong to the launched program.
// The environment is returned unmodified.
func (m *Merger) Merge(ctx context.Context, environ, argv []string) (Spawn, error) {
	env := launchopts.EnvFromEnviron(environ)
	opts, rest, err := m.Parser.Parse(env, argv)
	if err != nil {
		return Spawn{}, err
	}
	spawn := Spawn{Env: environ, Argv: rest, Options: opts}
	log := logx.WithOptions(logx.Ctx(ctx), opts.MemoryFraction, opts.MemoryRegion.String())

	optionsEnv := m.OptionsEnv
	if optionsEnv == "" {
		optionsEnv = nodeopts.DefaultOptionsEnv
	}
	if nodeopts.HasExplicitMemorySize(nodeopts.Fields(env.Get(optionsEnv))) {
		log.Debug("explicit memory size in runtime options", "env", optionsEnv)
		return spawn, nil
	}
	if nodeopts.HasExplicitMemorySize(rest) {
		log.Debug("explicit memory size in arguments")
		return spawn, nil
	}
	if m.Limit == nil {
		return spawn, nil
	}

	limit := m.Limit(ctx)
	mib, ok := HeapMiB(limit, opts.MemoryFraction)
	if !ok {
		log.Debug("no usable memory limit", "limit_bytes", limit)
		return spawn, nil
	}
	if !opts.MemoryRegion.Known() {
		log.Debug("unrecognized memory region passed through", "region", opts.MemoryRegion.String())
	}
	spawn.Flag = nodeopts.MaxSizeFlag(opts.MemoryRegion.String(), mib)
	argvOut := make([]string, 0, len(rest)+1)
	argvOut = append(argvOut, spawn.Flag)
	spawn.Argv = append(argvOut, rest...)
	log.Info("applying cgroup memory limit", "limit_mib", mib, "flag", spawn.Flag)
	return spawn, nil
}
