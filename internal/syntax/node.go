package syntax

import (
	"badnames/internal/source"
)

// NodeID is the pre-order index of a node inside its Tree.
type NodeID uint32

// CalleeForm describes how a method invocation names its target.
type CalleeForm uint8

const (
	// CalleeUnknown is any target that is neither a member access nor a bare name,
	// e.g. a call of a call result or of a function literal.
	CalleeUnknown CalleeForm = iota
	// CalleeMember is a qualified member access: recv.name.
	CalleeMember
	// CalleeName is a bare name: name.
	CalleeName
)

func (f CalleeForm) String() string {
	switch f {
	case CalleeMember:
		return "member"
	case CalleeName:
		return "name"
	default:
		return "unknown"
	}
}

// Callee is the call target of a KindMethodInvocation node.
type Callee struct {
	Form      CalleeForm
	Qualifier string // receiver rendering for CalleeMember
	Name      string // member simple name or bare name
	Text      string // rendering of the whole target expression
}

// Node is one syntax tree node. Nodes are built by a front end and must not
// be modified once passed to NewTree.
type Node struct {
	ID   NodeID
	Kind Kind
	Span source.Span

	Name      string  // identifier / declaration simple name
	Text      string  // rendering of the construct
	CondText  string  // if / while condition rendering
	HasElse   bool    // if statement has an else branch
	CaseCount int     // number of case clauses in a switch
	Callee    *Callee // method invocation target

	Children []*Node
}
