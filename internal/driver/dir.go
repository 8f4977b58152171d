package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"badnames/internal/checker"
	"badnames/internal/diag"
	"badnames/internal/observ"
	"badnames/internal/source"
	"badnames/internal/trace"
)

// ListFiles expands roots into a sorted, duplicate-free list of files that a
// front end handles. Explicit file roots are kept even when unsupported so the
// caller gets a parse error for them.
func ListFiles(roots []string, exclude []string) ([]string, error) {
	var files []string
	for _, root := range roots {
		root = strings.TrimSuffix(root, "/...")
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, filepath.Clean(root))
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root && excluded(root, path, d.Name(), exclude) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.IsDir() && Supported(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	// Сортируем для детерминированного порядка
	slices.Sort(files)
	return slices.Compact(files), nil
}

func excluded(root, path, name string, patterns []string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
		if ok, _ := filepath.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// CheckPaths checks every file under roots in parallel.
//
// Results are indexed by sorted path, so output does not depend on
// scheduling. Under MalformedAbort the run is cut after the first file (in
// path order) whose pass aborted, and that error is returned.
func CheckPaths(ctx context.Context, ch *checker.Checker, roots []string, opts Options) (*Run, error) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeDriver, "check-paths", trace.ParentSpan(ctx))
	defer span.End("")
	ctx = trace.WithParent(ctx, span.ID())

	timer := observ.NewTimer()
	listIdx := timer.Begin("list")
	files, err := ListFiles(roots, opts.Exclude)
	if err != nil {
		return nil, err
	}
	timer.End(listIdx, fmt.Sprintf("%d files", len(files)))

	base := ""
	if len(roots) == 1 {
		if info, statErr := os.Stat(roots[0]); statErr == nil && info.IsDir() {
			base = roots[0]
		}
	}
	run := &Run{FileSet: source.NewFileSetWithBase(base)}
	if len(files) == 0 {
		return run, nil
	}

	// Создаём FileSet и предзагружаем все файлы
	loadIdx := timer.Begin("load")
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make(map[int]error)
	for i, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		id, loadErr := run.FileSet.Load(path)
		if loadErr != nil {
			loadErrors[i] = loadErr
			continue
		}
		fileIDs[i] = id
	}
	timer.End(loadIdx, "")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	// files already run in parallel; a single file is walked sequentially
	fileOpts := opts
	fileOpts.Jobs = 1

	results := make([]*FileResult, len(files))
	aborts := make([]error, len(files))

	checkIdx := timer.Begin("check")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErr, hadError := loadErrors[i]; hadError {
				results[i] = &FileResult{
					Path:   path,
					Bag:    diag.NewBag(opts.MaxDiagnostics),
					Errors: []*FileError{{Path: path, Phase: PhaseLoad, Err: loadErr}},
				}
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}
			res, err := CheckFile(gctx, ch, run.FileSet, fileIDs[i], fileOpts)
			if err != nil && !IsAbort(err) {
				return err
			}
			// индекс i уникален, мьютекс не нужен
			results[i] = res
			aborts[i] = err
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	timer.End(checkIdx, "")

	var abortErr error
	for i, res := range results {
		run.Files = append(run.Files, res)
		if aborts[i] != nil {
			abortErr = aborts[i]
			break
		}
	}
	report := timer.Report()
	run.Timing = &report
	emit(opts.Progress, Event{Stage: StageCheck, Status: StatusDone})
	return run, abortErr
}
