package syntax

import (
	"fmt"

	"fortio.org/safecast"

	"badnames/internal/source"
)

// Tree is an immutable, pre-order numbered syntax tree for one source unit.
type Tree struct {
	File  source.FileID
	Path  string
	Root  *Node
	nodes []*Node
}

// NewTree numbers the nodes under root in depth-first pre-order and returns the tree.
// A nil root yields an empty tree.
func NewTree(file source.FileID, path string, root *Node) *Tree {
	t := &Tree{File: file, Path: path, Root: root}
	Walk(root, func(n *Node) bool {
		id, err := safecast.Conv[uint32](len(t.nodes))
		if err != nil {
			panic(fmt.Errorf("node count overflow: %w", err))
		}
		n.ID = NodeID(id)
		t.nodes = append(t.nodes, n)
		return true
	})
	return t
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// Node returns the node with the given id, or nil.
func (t *Tree) Node(id NodeID) *Node {
	if t == nil || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// Nodes returns every node in pre-order. The slice must not be modified.
func (t *Tree) Nodes() []*Node {
	if t == nil {
		return nil
	}
	return t.nodes
}

// Contains reports whether n belongs to this tree.
func (t *Tree) Contains(n *Node) bool {
	return n != nil && t.Node(n.ID) == n
}

// CountKinds returns how many nodes of each kind the tree holds.
func (t *Tree) CountKinds() map[Kind]int {
	out := make(map[Kind]int)
	for _, n := range t.Nodes() {
		out[n.Kind]++
	}
	return out
}

// Walk visits n and its descendants depth-first in pre-order.
// If fn returns false the children of that node are skipped.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}
