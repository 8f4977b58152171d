package rules

import (
	"badnames/internal/diag"
)

// Outcome is the result of evaluating one node: either no match, or a match
// carrying exactly one diagnostic.
type Outcome struct {
	matched bool
	diag    diag.Diagnostic
}

// NoMatch reports a clean node.
func NoMatch() Outcome {
	return Outcome{}
}

// Match reports a style violation.
func Match(d diag.Diagnostic) Outcome {
	return Outcome{matched: true, diag: d}
}

// Matched reports whether a rule fired.
func (o Outcome) Matched() bool {
	return o.matched
}

// Diagnostic returns the finding and true for a match.
func (o Outcome) Diagnostic() (diag.Diagnostic, bool) {
	return o.diag, o.matched
}
