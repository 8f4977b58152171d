package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented outline of t, one node per line.
// Other nodes without children are omitted unless all is set.
func Fprint(w io.Writer, t *Tree, all bool) error {
	var err error
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		if err != nil {
			return
		}
		if all || n.Kind != KindOther || len(n.Children) > 0 {
			_, err = fmt.Fprintf(w, "%s#%d %s [%d,%d)%s\n",
				strings.Repeat("  ", depth), n.ID, n.Kind, n.Span.Start, n.Span.End, describe(n))
		}
		for _, c := range n.Children {
			visit(c, depth+1)
		}
	}
	if t != nil && t.Root != nil {
		visit(t.Root, 0)
	}
	return err
}

func describe(n *Node) string {
	switch n.Kind {
	case KindIdentifier, KindMethodDecl, KindVariableDecl:
		return fmt.Sprintf(" name=%q", n.Name)
	case KindClassDecl:
		return fmt.Sprintf(" name=%q text_len=%d", n.Name, len(n.Text))
	case KindMethodInvocation:
		if n.Callee == nil {
			return " callee=<none>"
		}
		return fmt.Sprintf(" callee=%s:%q", n.Callee.Form, n.Callee.Name)
	case KindIfStmt:
		return fmt.Sprintf(" cond=%q else=%t", n.CondText, n.HasElse)
	case KindWhileLoop:
		return fmt.Sprintf(" cond=%q", n.CondText)
	case KindReturnStmt:
		return fmt.Sprintf(" text=%q", n.Text)
	case KindSwitchStmt:
		return fmt.Sprintf(" cases=%d", n.CaseCount)
	default:
		return ""
	}
}
