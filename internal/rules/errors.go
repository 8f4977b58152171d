package rules

import (
	"errors"
	"fmt"

	"badnames/internal/syntax"
)

// ErrMalformedInput marks nodes that break their kind's structural contract.
var ErrMalformedInput = errors.New("malformed input")

// MalformedInputError is returned instead of an Outcome when a node cannot be
// evaluated. It is an analysis error, not a diagnostic.
type MalformedInputError struct {
	Node   syntax.NodeID
	Kind   syntax.Kind
	Text   string // rendering of the offending node
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s node %d is malformed: %s", e.Kind, e.Node, e.Text)
	}
	return e.Reason
}

func (e *MalformedInputError) Unwrap() error {
	return ErrMalformedInput
}

func malformed(n *syntax.Node, reason string) *MalformedInputError {
	if n == nil {
		return &MalformedInputError{Reason: reason}
	}
	return &MalformedInputError{Node: n.ID, Kind: n.Kind, Text: n.Text, Reason: reason}
}
