package driver

import (
	"fmt"
	"strings"
)

// MalformedPolicy decides what a pass does when a node cannot be evaluated.
type MalformedPolicy uint8

const (
	// MalformedContinue records the analysis error and keeps walking.
	MalformedContinue MalformedPolicy = iota
	// MalformedAbort stops the file pass at the first malformed node.
	MalformedAbort
)

func (p MalformedPolicy) String() string {
	if p == MalformedAbort {
		return "abort"
	}
	return "continue"
}

// ParseMalformedPolicy converts "continue" or "abort".
func ParseMalformedPolicy(s string) (MalformedPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "continue":
		return MalformedContinue, nil
	case "abort":
		return MalformedAbort, nil
	default:
		return MalformedContinue, fmt.Errorf("invalid on-malformed policy %q (expected: continue|abort)", s)
	}
}

// Options controls a check run.
type Options struct {
	MaxDiagnostics   int  // per file; <= 0 means unlimited
	IgnoreWarnings   bool // drop WARNING diagnostics
	WarningsAsErrors bool // re-label WARNING as ERROR
	Dedup            bool
	OnMalformed      MalformedPolicy

	// Jobs bounds parallelism: files in a directory run, top-level
	// subtrees in a single tree. <= 0 means GOMAXPROCS.
	Jobs int

	// Exclude holds glob patterns matched against directory and file
	// base names and against paths relative to the walked root.
	Exclude []string

	Cache         *DiskCache
	Progress      ProgressSink
	EnableTimings bool
}
