// Package version reports how the heapcap binary was built.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

const defaultModule = "pkt.systems/heapcap"

// buildVersion is set via -ldflags "-X pkt.systems/heapcap/internal/version.buildVersion=...".
var buildVersion = ""

// Info describes the running binary.
type Info struct {
	Module    string `yaml:"module"`
	Version   string `yaml:"version"`
	Revision  string `yaml:"revision,omitempty"`
	Modified  bool   `yaml:"modified,omitempty"`
	GoVersion string `yaml:"go"`
}

// String formats the info as a single line.
func (i Info) String() string {
	s := fmt.Sprintf("%s %s", i.Module, i.Version)
	if i.GoVersion != "" {
		s += " (" + i.GoVersion + ")"
	}
	return s
}

// Current returns the build info of the running binary.
func Current() Info {
	info, _ := debug.ReadBuildInfo()
	return fromBuildInfo(info, buildVersion)
}

func fromBuildInfo(info *debug.BuildInfo, override string) Info {
	out := Info{
		Module:    defaultModule,
		Version:   "v0.0.0-unknown",
		GoVersion: runtime.Version(),
	}
	if info != nil {
		if path := strings.TrimSpace(info.Main.Path); path != "" {
			out.Module = path
		}
		var vcsTime string
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				out.Revision = setting.Value
			case "vcs.time":
				vcsTime = setting.Value
			case "vcs.modified":
				out.Modified = setting.Value == "true"
			}
		}
		if v := strings.TrimSpace(info.Main.Version); v != "" && v != "(devel)" {
			out.Version = strings.TrimSuffix(v, "+dirty")
		} else if v := pseudoVersion(out.Revision, vcsTime); v != "" {
			out.Version = v
		}
	}
	if v := strings.TrimSpace(override); v != "" {
		out.Version = strings.TrimSuffix(v, "+dirty")
	}
	return out
}

// pseudoVersion builds a Go module style pseudo version from VCS stamps.
func pseudoVersion(revision, vcsTime string) string {
	if revision == "" || vcsTime == "" {
		return ""
	}
	parsed, err := time.Parse(time.RFC3339, vcsTime)
	if err != nil {
		return ""
	}
	rev := revision
	if len(rev) > 12 {
		rev = rev[:12]
	}
	return "v0.0.0-" + parsed.UTC().Format("20060102150405") + "-" + rev
}
