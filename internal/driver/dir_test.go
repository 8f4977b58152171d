package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"badnames/internal/checker"
	"badnames/internal/diag"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

const shortVarGo = "package a\n\nfunc run() {\n\tx := 1\n\t_ = x\n}\n"

const unknownCalleeTree = `{"root": {"kind": "other", "children": [{"kind": "method-invocation", "start": 0, "end": 8, "text": "fns[0]()", "callee": {"form": "index", "text": "fns[0]"}}]}}`

const returnNullTree = `{"root": {"kind": "other", "children": [{"kind": "return", "start": 0, "end": 4, "text": "null"}]}}`

func sampleDir(t *testing.T) string {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.go"), shortVarGo)
	writeFile(t, filepath.Join(dir, "b.tree.json"), returnNullTree)
	writeFile(t, filepath.Join(dir, "sub", "c.go"), "package sub\n\nfunc test() { test() }\n")
	writeFile(t, filepath.Join(dir, "vendor", "v.go"), shortVarGo)
	writeFile(t, filepath.Join(dir, ".hidden", "h.go"), shortVarGo)
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	return dir
}

func TestListFiles(t *testing.T) {
	dir := sampleDir(t)
	files, err := ListFiles([]string{dir, filepath.Join(dir, "a.go")}, []string{"vendor"})
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.go"),
		filepath.Join(dir, "b.tree.json"),
		filepath.Join(dir, "sub", "c.go"),
	}
	if !slices.Equal(files, want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
}

func TestCheckPaths(t *testing.T) {
	dir := sampleDir(t)
	var (
		mu     sync.Mutex
		events []Event
	)
	sink := SinkFunc(func(ev Event) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	})
	run, err := CheckPaths(context.Background(), checker.New(nil), []string{dir},
		Options{Exclude: []string{"vendor"}, Jobs: 4, Progress: sink})
	if err != nil {
		t.Fatalf("CheckPaths: %v", err)
	}
	got := diag.FormatShortDiagnostics(run.Diagnostics(), run.FileSet)
	want := "warning BN1004 a.go:4:2 Make your variable name more descriptive: x\n" +
		"warning BN1010 b.tree.json:1:1 Try not to return null: null\n" +
		"warning BN1001 sub/c.go:3:15 test is a bad identifier name\n" +
		"warning BN1001 sub/c.go:3:15 test is a bad identifier name"
	if got != want {
		t.Fatalf("diagnostics:\n%s\nwant:\n%s", got, want)
	}
	if len(run.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", run.Errors())
	}
	if errs, warns := run.Counts(); errs != 0 || warns != 4 {
		t.Fatalf("counts = %d errors, %d warnings", errs, warns)
	}
	if run.Timing == nil || len(run.Timing.Phases) != 3 {
		t.Fatalf("timing = %+v", run.Timing)
	}
	done := 0
	for _, ev := range events {
		if ev.Stage == StageCheck && ev.Status == StatusDone && ev.File != "" {
			done++
		}
	}
	if done != 3 {
		t.Fatalf("done events = %d", done)
	}
}

func TestCheckPathsRecordsParseErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.go"), "package p\nfunc {")
	writeFile(t, filepath.Join(dir, "ok.go"), shortVarGo)
	writeFile(t, filepath.Join(dir, "readme.md"), "# hi")

	run, err := CheckPaths(context.Background(), checker.New(nil),
		[]string{dir, filepath.Join(dir, "readme.md")}, Options{})
	if err != nil {
		t.Fatalf("CheckPaths: %v", err)
	}
	errs := run.Errors()
	if len(errs) != 2 {
		t.Fatalf("errors = %v", errs)
	}
	for _, fe := range errs {
		if fe.Phase != PhaseParse {
			t.Errorf("phase = %s for %s", fe.Phase, fe.Path)
		}
	}
	if !errors.Is(errs[1].Err, ErrUnsupportedFile) {
		t.Fatalf("readme error = %v", errs[1].Err)
	}
	if len(run.Diagnostics()) != 1 {
		t.Fatalf("diagnostics = %v", run.Diagnostics())
	}
}

func TestCheckPathsAbortCutsRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.go"), shortVarGo)
	writeFile(t, filepath.Join(dir, "b.tree.json"), unknownCalleeTree)
	writeFile(t, filepath.Join(dir, "c.go"), shortVarGo)

	run, err := CheckPaths(context.Background(), checker.New(nil), []string{dir}, Options{OnMalformed: MalformedAbort})
	if !IsAbort(err) {
		t.Fatalf("expected abort, got %v", err)
	}
	if len(run.Files) != 2 {
		t.Fatalf("files after abort = %d", len(run.Files))
	}
}

func TestCheckPathsGenericCallsAreWellFormed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "g.go"), "package g\n\nfunc Conv[T any](v int) T {\n\tvar zero T\n\treturn zero\n}\n\nfunc use(handlers []func()) {\n\tvalue := Conv[uint32](4)\n\t_ = value\n\thandlers[0]()\n}\n")

	run, err := CheckPaths(context.Background(), checker.New(nil), []string{dir}, Options{OnMalformed: MalformedAbort})
	if err != nil {
		t.Fatalf("CheckPaths: %v", err)
	}
	if errs := run.Errors(); len(errs) != 0 {
		t.Fatalf("analysis errors = %v", errs)
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	dir := sampleDir(t)
	cache, err := OpenDiskCache("badnames", t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	ch := checker.New(nil)
	opts := Options{Exclude: []string{"vendor"}, Cache: cache}

	first, err := CheckPaths(context.Background(), ch, []string{dir}, opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := CheckPaths(context.Background(), ch, []string{dir}, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	for _, f := range second.Files {
		if !f.Cached {
			t.Fatalf("%s was not served from cache", f.Path)
		}
	}
	a := diag.FormatShortDiagnostics(first.Diagnostics(), first.FileSet)
	b := diag.FormatShortDiagnostics(second.Diagnostics(), second.FileSet)
	if a != b {
		t.Fatalf("cached output differs:\n%s\n---\n%s", a, b)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	third, err := CheckPaths(context.Background(), ch, []string{dir}, opts)
	if err != nil {
		t.Fatalf("third run: %v", err)
	}
	if third.Files[0].Cached {
		t.Fatalf("entry survived DropAll")
	}
}
