package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"badnames/internal/checker"
	"badnames/internal/diag"
	"badnames/internal/frontend/golang"
	"badnames/internal/observ"
	"badnames/internal/source"
	"badnames/internal/syntax"
	"badnames/internal/trace"
)

// TreeExt is the extension of JSON syntax tree documents.
const TreeExt = ".tree.json"

// ErrUnsupportedFile is returned for paths no front end handles.
var ErrUnsupportedFile = errors.New("no front end for file")

// Supported reports whether a front end handles path.
func Supported(path string) bool {
	return golang.Handles(path) || strings.HasSuffix(path, TreeExt)
}

// LoadTree builds the syntax tree of file id with the front end matching its path.
func LoadTree(fs *source.FileSet, id source.FileID) (*syntax.Tree, error) {
	f := fs.Get(id)
	if f == nil {
		return nil, fmt.Errorf("unknown file id %d", id)
	}
	switch {
	case strings.HasSuffix(f.Path, TreeExt):
		return syntax.DecodeJSON(bytes.NewReader(f.Content), id, f.Path)
	case golang.Handles(f.Path):
		return golang.Parse(fs, id)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, f.Path)
	}
}

// CheckFile parses and checks one file that is already in fs.
// Parse failures are recorded in the result, not returned; the error follows
// CheckTree.
func CheckFile(ctx context.Context, ch *checker.Checker, fs *source.FileSet, id source.FileID, opts Options) (*FileResult, error) {
	f := fs.Get(id)
	if f == nil {
		return nil, fmt.Errorf("unknown file id %d", id)
	}
	started := time.Now()
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeFile, "check:"+f.Path, trace.ParentSpan(ctx))
	defer span.End("")

	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}
	begin := func(name string) int {
		if timer == nil {
			return -1
		}
		return timer.Begin(name)
	}
	end := func(idx int, note string) {
		if timer == nil || idx < 0 {
			return
		}
		timer.End(idx, note)
	}
	finish := func(res *FileResult, err error) (*FileResult, error) {
		if timer != nil {
			report := timer.Report()
			res.Timing = &report
		}
		status := StatusDone
		if err != nil || res.HasErrors() {
			status = StatusError
		}
		span.WithExtra("diagnostics", fmt.Sprint(res.Bag.Len()))
		emit(opts.Progress, Event{
			File:        f.Path,
			Stage:       StageCheck,
			Status:      status,
			Err:         err,
			Diagnostics: res.Bag.Len(),
			Cached:      res.Cached,
			Elapsed:     time.Since(started),
		})
		return res, err
	}

	var key CacheKey
	if opts.Cache != nil {
		key = KeyFor(ch.Fingerprint(), f)
		var payload CachePayload
		hit, err := opts.Cache.Get(key, &payload)
		if err != nil {
			trace.Point(tr, trace.ScopeFile, "cache:read-failed", err.Error())
		}
		if hit && err == nil {
			res := &FileResult{Path: f.Path, FileID: id, Cached: true}
			return finish(res, assemble(ctx, res, fromPayload(&payload, id), opts))
		}
	}

	emit(opts.Progress, Event{File: f.Path, Stage: StageParse, Status: StatusWorking})
	parseIdx := begin("parse")
	tree, err := LoadTree(fs, id)
	end(parseIdx, "")
	if err != nil {
		res := &FileResult{Path: f.Path, FileID: id, Bag: diag.NewBag(opts.MaxDiagnostics)}
		res.Errors = append(res.Errors, &FileError{Path: f.Path, Phase: PhaseParse, Err: err})
		trace.Error(tr, "parse-error", res.Errors[0].Error())
		return finish(res, nil)
	}

	emit(opts.Progress, Event{File: f.Path, Stage: StageCheck, Status: StatusWorking})
	checkIdx := begin("check")
	recs, err := evaluateTree(ctx, ch, tree, opts)
	end(checkIdx, fmt.Sprintf("%d nodes", tree.Len()))
	res := &FileResult{Path: f.Path, FileID: id, Tree: tree}
	if err != nil {
		res.Bag = diag.NewBag(opts.MaxDiagnostics)
		return finish(res, err)
	}
	if opts.Cache != nil && opts.OnMalformed == MalformedContinue {
		if payload, ok := toPayload(f.Path, recs); ok {
			if err := opts.Cache.Put(key, payload); err != nil {
				trace.Point(tr, trace.ScopeFile, "cache:write-failed", err.Error())
			}
		}
	}
	return finish(res, assemble(ctx, res, recs, opts))
}
