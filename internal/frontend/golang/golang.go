// Package golang maps Go source files onto the syntax node model.
//
// Every go/ast node becomes one syntax.Node, so the pre-order numbering of
// the resulting tree follows ast.Inspect order. Constructs map as follows:
//
//	func / interface method   -> method-decl
//	type spec                 -> class-decl
//	var, const, :=, params,
//	struct fields, range vars -> variable-decl
//	call with name/selector   -> method-invocation
//	if                        -> if
//	for with only a condition -> while
//	return                    -> return
//	switch, type switch       -> switch
//
// A call through an index expression names the indexed operand, since a
// generic instantiation and an element call look the same without types.
// Calls of function literals, conversions to composite types and other
// unnamed targets map to other, so valid source never yields an unknown
// callee.
package golang

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"slices"
	"strings"

	"fortio.org/safecast"

	"badnames/internal/source"
	"badnames/internal/syntax"
)

// ErrParse wraps go/parser failures.
var ErrParse = errors.New("go parse error")

// Ext is the file extension handled by this front end.
const Ext = ".go"

// Handles reports whether path looks like a Go source file.
func Handles(path string) bool {
	return strings.HasSuffix(path, Ext)
}

var printConfig = printer.Config{Mode: printer.UseSpaces | printer.TabIndent, Tabwidth: 8}

// Parse parses file id of fs and builds its syntax tree. Spans refer to the
// content stored in fs.
func Parse(fs *source.FileSet, id source.FileID) (*syntax.Tree, error) {
	f := fs.Get(id)
	if f == nil {
		return nil, fmt.Errorf("golang: unknown file id %d", id)
	}
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, f.Path, f.Content, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return Build(fset, file, id, f.Path)
}

// Build converts an already parsed file. Offsets are taken from the
// token.File that holds file, so spans line up with the bytes fset saw.
func Build(fset *token.FileSet, file *ast.File, id source.FileID, path string) (*syntax.Tree, error) {
	if file == nil {
		return nil, errors.New("golang: nil file")
	}
	tf := fset.File(file.Pos())
	if tf == nil {
		return nil, fmt.Errorf("golang: %s is not part of the file set", path)
	}
	b := &builder{fset: fset, tf: tf, file: id}
	ast.Inspect(file, b.visit)
	if b.err != nil {
		return nil, b.err
	}
	return syntax.NewTree(id, path, b.root), nil
}

type frame struct {
	ast  ast.Node
	node *syntax.Node
}

type builder struct {
	fset  *token.FileSet
	tf    *token.File
	file  source.FileID
	stack []frame
	root  *syntax.Node
	err   error
}

func (b *builder) visit(n ast.Node) bool {
	if n == nil {
		b.stack = b.stack[:len(b.stack)-1]
		return true
	}
	if b.err != nil {
		return false
	}
	switch n.(type) {
	case *ast.CommentGroup, *ast.Comment:
		return false
	}
	sn := b.convert(n)
	if len(b.stack) == 0 {
		b.root = sn
	} else {
		top := b.stack[len(b.stack)-1].node
		top.Children = append(top.Children, sn)
	}
	b.stack = append(b.stack, frame{ast: n, node: sn})
	return true
}

// ancestor returns the ast node depth levels above the node being converted;
// depth 1 is the direct parent.
func (b *builder) ancestor(depth int) ast.Node {
	i := len(b.stack) - depth
	if i < 0 {
		return nil
	}
	return b.stack[i].ast
}

func (b *builder) convert(n ast.Node) *syntax.Node {
	sn := &syntax.Node{Kind: syntax.KindOther, Span: b.span(n)}
	switch n := n.(type) {
	case *ast.File:
		sn.Name = n.Name.Name
	case *ast.Ident:
		sn.Kind = b.identKind(n)
		sn.Name = n.Name
		sn.Text = n.Name
	case *ast.CallExpr:
		b.call(sn, n)
	case *ast.FuncDecl:
		sn.Kind = syntax.KindMethodDecl
		sn.Name = n.Name.Name
		header := *n
		header.Body = nil
		header.Doc = nil
		sn.Text = b.render(&header)
	case *ast.TypeSpec:
		sn.Kind = syntax.KindClassDecl
		sn.Name = n.Name.Name
		sn.Text = b.render(n)
	case *ast.IfStmt:
		sn.Kind = syntax.KindIfStmt
		sn.CondText = b.render(n.Cond)
		sn.HasElse = n.Else != nil
		sn.Text = b.render(n)
	case *ast.ForStmt:
		if n.Init == nil && n.Post == nil && n.Cond != nil {
			sn.Kind = syntax.KindWhileLoop
			sn.CondText = b.render(n.Cond)
			sn.Text = b.render(n)
		}
	case *ast.ReturnStmt:
		sn.Kind = syntax.KindReturnStmt
		sn.Text = b.render(n)
	case *ast.SwitchStmt:
		sn.Kind = syntax.KindSwitchStmt
		sn.CaseCount = len(n.Body.List)
		sn.Text = b.render(n)
	case *ast.TypeSwitchStmt:
		sn.Kind = syntax.KindSwitchStmt
		sn.CaseCount = len(n.Body.List)
		sn.Text = b.render(n)
	}
	return sn
}

func (b *builder) identKind(id *ast.Ident) syntax.Kind {
	if id.Name == "_" {
		return syntax.KindOther
	}
	switch p := b.ancestor(1).(type) {
	case *ast.File, *ast.FuncDecl, *ast.ImportSpec, *ast.LabeledStmt, *ast.BranchStmt:
		// package clause, function name, import alias, labels
		return syntax.KindOther
	case *ast.TypeSpec:
		if p.Name == id {
			return syntax.KindOther
		}
	case *ast.SelectorExpr:
		if p.Sel == id {
			return syntax.KindOther
		}
	case *ast.ValueSpec:
		if slices.Contains(p.Names, id) {
			return syntax.KindVariableDecl
		}
	case *ast.AssignStmt:
		if p.Tok == token.DEFINE && slices.Contains(p.Lhs, ast.Expr(id)) {
			return syntax.KindVariableDecl
		}
	case *ast.RangeStmt:
		if p.Tok == token.DEFINE && (p.Key == ast.Expr(id) || p.Value == ast.Expr(id)) {
			return syntax.KindVariableDecl
		}
	case *ast.Field:
		if slices.Contains(p.Names, id) {
			return b.fieldNameKind()
		}
	}
	return syntax.KindIdentifier
}

// fieldNameKind classifies a name declared by the *ast.Field on top of the stack.
func (b *builder) fieldNameKind() syntax.Kind {
	list, _ := b.ancestor(2).(*ast.FieldList)
	switch owner := b.ancestor(3).(type) {
	case *ast.InterfaceType:
		return syntax.KindMethodDecl
	case *ast.FuncType:
		if list != nil && owner.TypeParams == list {
			return syntax.KindOther
		}
	case *ast.TypeSpec:
		if list != nil && owner.TypeParams == list {
			return syntax.KindOther
		}
	}
	return syntax.KindVariableDecl
}

func (b *builder) call(sn *syntax.Node, n *ast.CallExpr) {
	fun := ast.Unparen(n.Fun)
	// F[T]() and F[K, V]() name F; so does an element call fns[i]()
	switch inst := fun.(type) {
	case *ast.IndexExpr:
		fun = ast.Unparen(inst.X)
	case *ast.IndexListExpr:
		fun = ast.Unparen(inst.X)
	}
	switch fun.(type) {
	case *ast.Ident, *ast.SelectorExpr:
	default:
		// function literals, conversions and calls of call results
		return
	}
	sn.Kind = syntax.KindMethodInvocation
	sn.Text = b.render(n)
	callee := &syntax.Callee{Form: syntax.CalleeUnknown, Text: b.render(n.Fun)}
	switch f := fun.(type) {
	case *ast.SelectorExpr:
		callee.Form = syntax.CalleeMember
		callee.Qualifier = b.render(f.X)
		callee.Name = f.Sel.Name
	case *ast.Ident:
		callee.Form = syntax.CalleeName
		callee.Name = f.Name
	}
	sn.Callee = callee
}

func (b *builder) span(n ast.Node) source.Span {
	return source.Span{File: b.file, Start: b.offset(n.Pos()), End: b.offset(n.End())}
}

func (b *builder) offset(pos token.Pos) uint32 {
	if !pos.IsValid() {
		return 0
	}
	off, err := safecast.Conv[uint32](b.tf.Offset(pos))
	if err != nil {
		b.err = fmt.Errorf("golang: offset overflow in %s: %w", b.tf.Name(), err)
		return 0
	}
	return off
}

func (b *builder) render(n ast.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	if err := printConfig.Fprint(&sb, b.fset, n); err != nil {
		return ""
	}
	return sb.String()
}
