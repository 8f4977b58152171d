// Package checker routes syntax nodes to the predicate chain registered for
// their kind.
package checker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"badnames/internal/rules"
	"badnames/internal/syntax"
)

const (
	// Name identifies the checker in reports and cache keys.
	Name = "BadNamesChecker"
	// Summary is the one-line description shown by tooling.
	Summary = "Poor-quality identifiers"
)

// Checker evaluates single nodes. It holds no per-pass state and is safe for
// concurrent use once constructed.
type Checker struct {
	table *rules.Table
	wants [syntax.NumKinds]bool
	fp    string
}

// New builds a checker over table. A nil table selects rules.Default().
// The table must not be modified after New returns.
func New(table *rules.Table) *Checker {
	if table == nil {
		table = rules.Default()
	}
	c := &Checker{table: table}
	for _, k := range table.Kinds() {
		c.wants[k] = true
	}
	c.fp = fingerprint(table)
	return c
}

// Evaluate runs the chain for n.Kind in registration order and returns the
// first match. A node of a kind with no chain is clean. A predicate error
// stops the chain: it is returned as is and the outcome is NoMatch.
func (c *Checker) Evaluate(n *syntax.Node) (rules.Outcome, error) {
	if n == nil {
		return rules.NoMatch(), &rules.MalformedInputError{Reason: "nil node"}
	}
	if !n.Kind.Valid() {
		return rules.NoMatch(), &rules.MalformedInputError{
			Node: n.ID, Kind: n.Kind, Text: n.Text,
			Reason: fmt.Sprintf("node %d has unknown kind %d", n.ID, uint8(n.Kind)),
		}
	}
	for _, r := range c.table.Chain(n.Kind) {
		out, err := r.Check(n)
		if err != nil {
			return rules.NoMatch(), err
		}
		if out.Matched() {
			return out, nil
		}
	}
	return rules.NoMatch(), nil
}

// Kinds lists the node kinds this checker wants to see.
func (c *Checker) Kinds() []syntax.Kind {
	return c.table.Kinds()
}

// Wants reports whether kind has a registered chain.
func (c *Checker) Wants(kind syntax.Kind) bool {
	return kind.Valid() && c.wants[kind]
}

// Rules lists registered rules with their kinds, ordered by code.
func (c *Checker) Rules() []rules.Entry {
	return c.table.Entries()
}

// Fingerprint identifies the rule set; cached results are only valid for
// the same fingerprint.
func (c *Checker) Fingerprint() string {
	return c.fp
}

func fingerprint(table *rules.Table) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\n", Name)
	for _, e := range table.Entries() {
		fmt.Fprintf(h, "%s %s %s\n", e.Kind, e.Rule.Code.ID(), e.Rule.Name)
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
