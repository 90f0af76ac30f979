// Package nodeopts inspects and formats runtime memory-size flags.
package nodeopts

import (
	"strconv"
	"strings"

	"github.com/grafana/regexp"
)

// DefaultOptionsEnv holds extra runtime options supplied by the user.
const DefaultOptionsEnv = "NODE_OPTIONS"

var explicitMemorySize = regexp.MustCompile(`^--max-(old-space|semi-space|heap)-size(=\d+)?$`)

// IsExplicitMemorySize reports whether token sets a runtime memory region size.
func IsExplicitMemorySize(token string) bool {
	return explicitMemorySize.MatchString(token)
}

// HasExplicitMemorySize reports whether any token sets a memory region size.
func HasExplicitMemorySize(tokens []string) bool {
	for _, token := range tokens {
		if IsExplicitMemorySize(token) {
			return true
		}
	}
	return false
}

// Fields splits an option string on whitespace.
func Fields(options string) []string {
	return strings.Fields(options)
}

// MaxSizeFlag formats the size flag for region in mebibytes.
func MaxSizeFlag(region string, mib int64) string {
	return "--max-" + region + "-size=" + strconv.FormatInt(mib, 10)
}
