package launchopts

import (
	"math"
	"strconv"
	"strings"
)

const (
	// Separator ends heapcap's own flags.
	Separator = "--"

	fractionFlag = "--cgroup-memory-fraction"
	regionFlag   = "--cgroup-memory-region"
)

// Parser resolves Options from an environment snapshot and argv.
type Parser struct {
	Defaults    Options
	FractionEnv string
	RegionEnv   string
}

// NewParser returns a Parser with built-in defaults and variable names.
func NewParser() Parser {
	return Parser{
		Defaults:    Defaults(),
		FractionEnv: DefaultFractionEnv,
		RegionEnv:   DefaultRegionEnv,
	}
}

// Parse applies environment overrides to the defaults, then consumes own
// flags from the front of argv and returns the remaining arguments.
//
// Once an own flag has been seen, the flags must be terminated by "--"; any
// other token before it is an error. Without own flags, argv is returned as
// is, apart from a leading "--" which is dropped.
func (p Parser) Parse(env Env, argv []string) (Options, []string, error) {
	opts := p.fromEnv(env)

	requireSeparator := false
	i := 0
	for ; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == fractionFlag:
			requireSeparator = true
			i++
			opts.MemoryFraction = parseFraction(valueAt(argv, i))
			continue
		case strings.HasPrefix(arg, fractionFlag+"="):
			requireSeparator = true
			opts.MemoryFraction = parseFraction(strings.TrimPrefix(arg, fractionFlag+"="))
			continue
		case arg == regionFlag:
			requireSeparator = true
			i++
			if i < len(argv) {
				opts.MemoryRegion = Region(argv[i])
			}
			continue
		case strings.HasPrefix(arg, regionFlag+"="):
			requireSeparator = true
			opts.MemoryRegion = Region(strings.TrimPrefix(arg, regionFlag+"="))
			continue
		}

		if arg == Separator {
			i++
			break
		}
		if requireSeparator {
			return Options{}, nil, &SeparatorError{Position: i, Token: arg}
		}
		break
	}

	if i == 0 {
		return opts, argv, nil
	}
	if i >= len(argv) {
		return opts, []string{}, nil
	}
	return opts, argv[i:], nil
}

func (p Parser) fromEnv(env Env) Options {
	opts := p.Defaults
	if raw := strings.TrimSpace(env.Get(p.FractionEnv)); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil && f != 0 && !math.IsNaN(f) {
			opts.MemoryFraction = f
		}
	}
	if raw := strings.TrimSpace(env.Get(p.RegionEnv)); raw != "" {
		opts.MemoryRegion = Region(raw)
	}
	return opts
}

func valueAt(argv []string, i int) string {
	if i < len(argv) {
		return argv[i]
	}
	return ""
}

// parseFraction returns NaN for text that is not a number, which later
// suppresses the computed flag.
func parseFraction(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
