// Package testkit holds checks shared by front end tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"badnames/internal/source"
	"badnames/internal/syntax"
)

// CheckTreeInvariants runs a minimal set of invariants on a built tree:
// 1) node ids follow depth-first pre-order without gaps
// 2) every span points at sf and lies within its content
// 3) every child is indexed by the tree and its span is contained in its parent span
func CheckTreeInvariants(t *syntax.Tree, sf *source.File) error {
	if t == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	if t.File != sf.ID {
		return fmt.Errorf("tree points to different file id: got=%d want=%d", t.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	// 1) pre-order ids
	next := 0
	var orderErr error
	syntax.Walk(t.Root, func(n *syntax.Node) bool {
		if orderErr != nil {
			return false
		}
		if int(n.ID) != next {
			orderErr = fmt.Errorf("node %s has id %d, want %d", n.Kind, n.ID, next)
			return false
		}
		next++
		return true
	})
	if orderErr != nil {
		return orderErr
	}
	if next != t.Len() {
		return fmt.Errorf("walk visited %d nodes, tree has %d", next, t.Len())
	}

	// 2) spans in bounds; 3) children inside parents
	for _, n := range t.Nodes() {
		sp := n.Span
		if sp.File != sf.ID {
			return fmt.Errorf("node %d span file mismatch: got=%d want=%d", n.ID, sp.File, sf.ID)
		}
		if sp.End < sp.Start {
			return fmt.Errorf("node %d has inverted span %v", n.ID, sp)
		}
		if sp.End > lenContent {
			return fmt.Errorf("node %d span end beyond content: %d > %d", n.ID, sp.End, lenContent)
		}
		for _, c := range n.Children {
			if !t.Contains(c) {
				return fmt.Errorf("node %d has child %d not indexed by the tree", n.ID, c.ID)
			}
			if !sp.Contains(c.Span) {
				return fmt.Errorf("node %d span %v is outside parent %d span %v", c.ID, c.Span, n.ID, sp)
			}
		}
	}
	return nil
}
