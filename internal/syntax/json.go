package syntax

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"badnames/internal/source"
)

// jsonNode is the interchange form of a Node. Foreign parsers emit it to feed
// the checker without linking against this module.
type jsonNode struct {
	Kind     string      `json:"kind"`
	Start    uint32      `json:"start,omitempty"`
	End      uint32      `json:"end,omitempty"`
	Name     string      `json:"name,omitempty"`
	Text     string      `json:"text,omitempty"`
	Cond     string      `json:"cond,omitempty"`
	HasElse  bool        `json:"has_else,omitempty"`
	Cases    int         `json:"cases,omitempty"`
	Callee   *jsonCallee `json:"callee,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonCallee struct {
	Form      string `json:"form"`
	Qualifier string `json:"qualifier,omitempty"`
	Name      string `json:"name,omitempty"`
	Text      string `json:"text,omitempty"`
}

type jsonTree struct {
	Path string    `json:"path,omitempty"`
	Root *jsonNode `json:"root"`
}

// ErrBadTreeDocument is returned for interchange documents that do not describe a tree.
var ErrBadTreeDocument = errors.New("malformed syntax tree document")

// DecodeJSON reads an interchange document and builds a Tree bound to file.
// Offsets in the document are byte offsets into that file.
func DecodeJSON(r io.Reader, file source.FileID, path string) (*Tree, error) {
	var doc jsonTree
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadTreeDocument, err)
	}
	if doc.Root == nil {
		return nil, fmt.Errorf("%w: missing root", ErrBadTreeDocument)
	}
	root, err := fromJSON(doc.Root, file, "root")
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = doc.Path
	}
	return NewTree(file, path, root), nil
}

func fromJSON(jn *jsonNode, file source.FileID, where string) (*Node, error) {
	if jn == nil {
		return nil, fmt.Errorf("%w: null node at %s", ErrBadTreeDocument, where)
	}
	kind, ok := ParseKind(jn.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: unknown kind %q at %s", ErrBadTreeDocument, jn.Kind, where)
	}
	if jn.End < jn.Start {
		return nil, fmt.Errorf("%w: span end %d before start %d at %s", ErrBadTreeDocument, jn.End, jn.Start, where)
	}
	n := &Node{
		Kind:      kind,
		Span:      source.Span{File: file, Start: jn.Start, End: jn.End},
		Name:      jn.Name,
		Text:      jn.Text,
		CondText:  jn.Cond,
		HasElse:   jn.HasElse,
		CaseCount: jn.Cases,
	}
	if jn.Callee != nil {
		n.Callee = &Callee{
			Form:      parseCalleeForm(jn.Callee.Form),
			Qualifier: jn.Callee.Qualifier,
			Name:      jn.Callee.Name,
			Text:      jn.Callee.Text,
		}
	}
	if len(jn.Children) > 0 {
		n.Children = make([]*Node, 0, len(jn.Children))
		for i, c := range jn.Children {
			child, err := fromJSON(c, file, fmt.Sprintf("%s.children[%d]", where, i))
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		}
	}
	return n, nil
}

func parseCalleeForm(s string) CalleeForm {
	switch s {
	case "member":
		return CalleeMember
	case "name":
		return CalleeName
	default:
		return CalleeUnknown
	}
}

// EncodeJSON writes t in the interchange format.
func EncodeJSON(w io.Writer, t *Tree) error {
	doc := jsonTree{Path: t.Path, Root: toJSON(t.Root)}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func toJSON(n *Node) *jsonNode {
	if n == nil {
		return nil
	}
	jn := &jsonNode{
		Kind:    n.Kind.String(),
		Start:   n.Span.Start,
		End:     n.Span.End,
		Name:    n.Name,
		Text:    n.Text,
		Cond:    n.CondText,
		HasElse: n.HasElse,
		Cases:   n.CaseCount,
	}
	if n.Callee != nil {
		jn.Callee = &jsonCallee{
			Form:      n.Callee.Form.String(),
			Qualifier: n.Callee.Qualifier,
			Name:      n.Callee.Name,
			Text:      n.Callee.Text,
		}
	}
	for _, c := range n.Children {
		jn.Children = append(jn.Children, toJSON(c))
	}
	return jn
}
