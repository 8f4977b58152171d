package diagfmt

import (
	"fmt"
	"strings"
)

// Format selects a renderer.
type Format string

const (
	FormatPretty Format = "pretty"
	FormatShort  Format = "short"
	FormatJSON   Format = "json"
	FormatSarif  Format = "sarif"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPretty, FormatShort, FormatJSON, FormatSarif:
		return f, nil
	case "":
		return FormatPretty, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected: pretty|short|json|sarif)", s)
	}
}

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto keeps short or relative paths and shortens long absolute ones.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode converts a flag value.
func ParsePathMode(s string) (PathMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return PathModeAuto, nil
	case "absolute":
		return PathModeAbsolute, nil
	case "relative":
		return PathModeRelative, nil
	case "basename":
		return PathModeBasename, nil
	default:
		return PathModeAuto, fmt.Errorf("unknown path mode %q (expected: auto|absolute|relative|basename)", s)
	}
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color    bool
	Context  int8 // lines shown above the primary line
	PathMode PathMode
	Width    uint8 // максимальная ширина строки контекста, 0 - не ограничено
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InformationURI string
	InvocationArgs []string
}
