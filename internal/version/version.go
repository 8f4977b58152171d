// Package version holds build metadata of the badnames binaries.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/fatih/color"
)

// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = []color.Attribute{color.FgYellow, color.Bold}
	versionMinorColor = []color.Attribute{color.FgGreen, color.Bold}
	versionPatchColor = []color.Attribute{color.FgBlue, color.Bold}
)

// Resolved returns Version, or the module version recorded by `go install`
// when Version was left at its development default.
func Resolved() string {
	if !strings.HasSuffix(Version, "-dev") {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return strings.TrimPrefix(v, "v")
		}
	}
	return Version
}

// Colored renders v as major.minor.patch with one colour per component.
// Suffixes after the patch number are kept plain.
func Colored(v string, enabled bool) string {
	parts := strings.SplitN(v, ".", 3)
	if !enabled || len(parts) != 3 {
		return v
	}
	patch, suffix := parts[2], ""
	if i := strings.IndexAny(patch, "-+"); i >= 0 {
		patch, suffix = patch[:i], patch[i:]
	}
	return sprint(versionMajorColor, parts[0]) + "." +
		sprint(versionMinorColor, parts[1]) + "." +
		sprint(versionPatchColor, patch) + suffix
}

func sprint(attrs []color.Attribute, s string) string {
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

// Info is the multi-line text of the version command.
func Info(colored bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "badnames %s\n", Colored(Resolved(), colored))
	if GitCommit != "" {
		fmt.Fprintf(&sb, "commit: %s\n", GitCommit)
	}
	if BuildDate != "" {
		fmt.Fprintf(&sb, "built:  %s\n", BuildDate)
	}
	return sb.String()
}
