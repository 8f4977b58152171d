package driver

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"badnames/internal/checker"
	"badnames/internal/diag"
	"badnames/internal/rules"
	"badnames/internal/source"
	"badnames/internal/syntax"
	"badnames/internal/trace"
)

// record is the raw outcome of one node: a diagnostic or an analysis error.
// Options are applied later, so records can be cached as is.
type record struct {
	node syntax.NodeID
	span source.Span
	diag diag.Diagnostic
	err  error
}

func (r record) failed() bool { return r.err != nil }

// CheckTree runs ch over every node of tree in depth-first pre-order.
//
// The returned error is non-nil only when ctx is cancelled or when the
// policy is MalformedAbort and a node was malformed; in the latter case the
// result is still returned and holds the diagnostics found before that node.
func CheckTree(ctx context.Context, ch *checker.Checker, tree *syntax.Tree, opts Options) (*FileResult, error) {
	res := &FileResult{Path: tree.Path, FileID: tree.File, Tree: tree}
	recs, err := evaluateTree(ctx, ch, tree, opts)
	if err != nil {
		res.Bag = diag.NewBag(opts.MaxDiagnostics)
		return res, err
	}
	return res, assemble(ctx, res, recs, opts)
}

// evaluateTree returns records in pre-order. With several jobs the top-level
// subtrees are evaluated concurrently; each goroutine owns one slot of the
// results slice, and concatenating the slots restores pre-order.
func evaluateTree(ctx context.Context, ch *checker.Checker, tree *syntax.Tree, opts Options) ([]record, error) {
	root := tree.Root
	if root == nil {
		return nil, nil
	}
	stopEarly := opts.OnMalformed == MalformedAbort
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	var out []record
	if rec, ok := evaluateNode(ch, root); ok {
		out = append(out, rec)
		if rec.failed() && stopEarly {
			return out, nil
		}
	}
	if jobs == 1 || len(root.Children) < 2 {
		for _, child := range root.Children {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			recs, aborted := evaluateSubtree(ch, child, stopEarly)
			out = append(out, recs...)
			if aborted {
				break
			}
		}
		return out, nil
	}

	parts := make([][]record, len(root.Children))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(root.Children)))
	for i, child := range root.Children {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			parts[i], _ = evaluateSubtree(ch, child, stopEarly)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, part := range parts {
		out = append(out, part...)
	}
	return out, nil
}

// evaluateSubtree walks n in pre-order. With stopEarly it returns at the
// first failed node and reports aborted.
func evaluateSubtree(ch *checker.Checker, n *syntax.Node, stopEarly bool) (recs []record, aborted bool) {
	syntax.Walk(n, func(cur *syntax.Node) bool {
		if aborted {
			return false
		}
		rec, ok := evaluateNode(ch, cur)
		if !ok {
			return true
		}
		recs = append(recs, rec)
		if rec.failed() && stopEarly {
			aborted = true
			return false
		}
		return true
	})
	return recs, aborted
}

// evaluateNode reports ok=false for clean nodes.
func evaluateNode(ch *checker.Checker, n *syntax.Node) (record, bool) {
	if !ch.Wants(n.Kind) {
		return record{}, false
	}
	out, err := ch.Evaluate(n)
	if err != nil {
		return record{node: n.ID, span: n.Span, err: err}, true
	}
	d, ok := out.Diagnostic()
	if !ok {
		return record{}, false
	}
	return record{node: n.ID, span: n.Span, diag: d}, true
}

// assemble applies opts to recs and fills res.Bag and res.Errors.
func assemble(ctx context.Context, res *FileResult, recs []record, opts Options) error {
	tr := trace.FromContext(ctx)
	bag := diag.NewBag(opts.MaxDiagnostics)
	res.Bag = bag
	var abortErr error
	for _, rec := range recs {
		if rec.failed() {
			fe := &FileError{Path: res.Path, Span: rec.span, Phase: PhaseCheck, Err: rec.err}
			res.Errors = append(res.Errors, fe)
			trace.Error(tr, "analysis-error", fe.Error())
			if opts.OnMalformed == MalformedAbort {
				abortErr = fe
				break
			}
			continue
		}
		d := rec.diag
		if d.Severity == diag.SevWarning {
			if opts.IgnoreWarnings {
				continue
			}
			if opts.WarningsAsErrors {
				d.Severity = diag.SevError
			}
		}
		if !bag.Add(d) {
			// limit reached; analysis errors are still collected
			continue
		}
		if tr.Level().ShouldEmit(trace.ScopeRule) {
			trace.Point(tr, trace.ScopeRule, "rule:"+d.Code.ID(), d.Message)
		}
	}
	if opts.Dedup {
		bag.Dedup()
	}
	bag.Sort()
	return abortErr
}

// IsAbort reports whether err ended a pass under MalformedAbort.
func IsAbort(err error) bool {
	var fe *FileError
	return errors.As(err, &fe) && fe.Phase == PhaseCheck && errors.Is(err, rules.ErrMalformedInput)
}
