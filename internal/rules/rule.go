package rules

import (
	"slices"

	"badnames/internal/diag"
	"badnames/internal/syntax"
)

// CheckFunc inspects one node. It never mutates the node.
type CheckFunc func(n *syntax.Node) (Outcome, error)

// Rule is one predicate together with its metadata.
type Rule struct {
	Code    diag.Code
	Name    string
	Summary string
	Check   CheckFunc
}

// Table maps each node kind to an ordered predicate chain.
// The first rule in a chain that matches wins.
type Table struct {
	chains [syntax.NumKinds][]Rule
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// Register appends rules to the chain of kind. Order of registration is
// evaluation order.
func (t *Table) Register(kind syntax.Kind, rules ...Rule) *Table {
	if !kind.Valid() {
		panic("rules: register for invalid kind " + kind.String())
	}
	for _, r := range rules {
		if r.Check == nil {
			panic("rules: rule " + r.Name + " has no Check func")
		}
	}
	t.chains[kind] = append(t.chains[kind], rules...)
	return t
}

// Chain returns the chain registered for kind. The slice must not be modified.
func (t *Table) Chain(kind syntax.Kind) []Rule {
	if !kind.Valid() {
		return nil
	}
	return t.chains[kind]
}

// Kinds returns the kinds that have at least one rule, in kind order.
func (t *Table) Kinds() []syntax.Kind {
	var out []syntax.Kind
	for _, k := range syntax.AllKinds() {
		if len(t.chains[k]) > 0 {
			out = append(out, k)
		}
	}
	return out
}

// Entry pairs a rule with the kind it is registered for.
type Entry struct {
	Kind syntax.Kind
	Rule Rule
}

// Entries lists every registration ordered by code, then kind.
func (t *Table) Entries() []Entry {
	var out []Entry
	for _, k := range syntax.AllKinds() {
		for _, r := range t.chains[k] {
			out = append(out, Entry{Kind: k, Rule: r})
		}
	}
	slices.SortStableFunc(out, func(a, b Entry) int {
		if a.Rule.Code != b.Rule.Code {
			return int(a.Rule.Code) - int(b.Rule.Code)
		}
		return int(a.Kind) - int(b.Kind)
	})
	return out
}
