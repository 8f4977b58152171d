package syntax

import (
	"bytes"
	"strings"
	"testing"
)

func sampleTree() *Tree {
	root := &Node{Kind: KindOther, Children: []*Node{
		{Kind: KindClassDecl, Name: "Widget", Text: "class Widget {}", Children: []*Node{
			{Kind: KindMethodDecl, Name: "render"},
		}},
		{Kind: KindIfStmt, CondText: "false", Children: []*Node{
			{Kind: KindReturnStmt, Text: "null"},
		}},
	}}
	return NewTree(0, "Widget.java", root)
}

func TestNewTreeNumbersPreOrder(t *testing.T) {
	tree := sampleTree()
	wantKinds := []Kind{KindOther, KindClassDecl, KindMethodDecl, KindIfStmt, KindReturnStmt}
	if tree.Len() != len(wantKinds) {
		t.Fatalf("Len() = %d, want %d", tree.Len(), len(wantKinds))
	}
	for i, n := range tree.Nodes() {
		if int(n.ID) != i {
			t.Errorf("node %d has ID %d", i, n.ID)
		}
		if n.Kind != wantKinds[i] {
			t.Errorf("node %d kind = %s, want %s", i, n.Kind, wantKinds[i])
		}
		if !tree.Contains(n) {
			t.Errorf("tree does not contain its own node %d", i)
		}
	}
	if tree.Node(99) != nil {
		t.Fatalf("expected nil for out-of-range id")
	}
	if tree.Contains(&Node{ID: 1}) {
		t.Fatalf("foreign node reported as contained")
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	tree := sampleTree()
	var seen []Kind
	Walk(tree.Root, func(n *Node) bool {
		seen = append(seen, n.Kind)
		return n.Kind != KindClassDecl
	})
	for _, k := range seen {
		if k == KindMethodDecl {
			t.Fatalf("walk descended into a pruned subtree: %v", seen)
		}
	}
	if len(seen) != 4 {
		t.Fatalf("visited %d nodes, want 4", len(seen))
	}
}

func TestParseKindRoundTrip(t *testing.T) {
	for _, k := range AllKinds() {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v,%v", k.String(), got, ok)
		}
	}
	if _, ok := ParseKind("lambda"); ok {
		t.Fatalf("unexpected kind for lambda")
	}
	if Kind(200).Valid() {
		t.Fatalf("Kind(200) must be invalid")
	}
}

func TestFprintOutline(t *testing.T) {
	var buf bytes.Buffer
	if err := Fprint(&buf, sampleTree(), false); err != nil {
		t.Fatalf("Fprint: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`#1 class-decl [0,0) name="Widget"`,
		`#2 method-decl [0,0) name="render"`,
		`#3 if [0,0) cond="false" else=false`,
		`#4 return [0,0) text="null"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("outline missing %q:\n%s", want, out)
		}
	}
}
