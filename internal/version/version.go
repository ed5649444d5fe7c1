// Package version holds build metadata for the splice CLI.
package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Version information for the splice CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.3.0"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Colored returns Version with each numeric component coloured. Anything
// that is not three dot-separated parts is returned as is.
func Colored(enabled bool) string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.Split(core, ".")
	if !enabled || len(parts) != 3 {
		return Version
	}
	out := versionMajorColor.Sprint(parts[0]) + "." +
		versionMinorColor.Sprint(parts[1]) + "." +
		versionPatchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// Banner is the full `splice version` text.
func Banner(enabled bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "splice %s\n", Colored(enabled))
	if GitCommit != "" {
		fmt.Fprintf(&b, "commit: %s\n", GitCommit)
	}
	if BuildDate != "" {
		fmt.Fprintf(&b, "built:  %s\n", BuildDate)
	}
	return b.String()
}
