package diag

import (
	"badnames/internal/source"
	"badnames/internal/syntax"
)

// Diagnostic is one style finding. It is a value: once built it is never
// mutated, only copied into a Bag.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Anchor   syntax.NodeID // node that triggered the finding, pre-order id
}

// New builds a diagnostic anchored at node n.
func New(sev Severity, code Code, n *syntax.Node, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  n.Span,
		Anchor:   n.ID,
	}
}

// NewWarning is a shortcut for SevWarning diagnostics.
func NewWarning(code Code, n *syntax.Node, msg string) Diagnostic {
	return New(SevWarning, code, n, msg)
}
