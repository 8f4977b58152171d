package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("main.go", []byte("package main\n\nfunc foo() {}\n"))

	tests := []struct {
		name string
		off  uint32
		want LineCol
	}{
		{"start of file", 0, LineCol{Line: 1, Col: 1}},
		{"newline belongs to its line", 12, LineCol{Line: 1, Col: 13}},
		{"empty line", 13, LineCol{Line: 2, Col: 1}},
		{"third line", 19, LineCol{Line: 3, Col: 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
			if start != tt.want {
				t.Fatalf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
			}
		})
	}
}

func TestFileSetLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.go")
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a\r\nb\r\n")...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	f := fs.Get(id)
	if got := string(f.Content); got != "a\nb\n" {
		t.Fatalf("content = %q, want %q", got, "a\nb\n")
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("expected BOM and CRLF flags, got %b", f.Flags)
	}
	if got := f.GetLine(2); got != "b" {
		t.Fatalf("GetLine(2) = %q, want %q", got, "b")
	}
	if got := f.GetLine(5); got != "" {
		t.Fatalf("GetLine(5) = %q, want empty", got)
	}
	if rel := f.FormatPath("relative", dir); rel != "crlf.go" {
		t.Fatalf("relative path = %q", rel)
	}
}

func TestFileSetSliceAndLookup(t *testing.T) {
	fs := NewFileSet()
	first := fs.AddVirtual("a.go", []byte("x := 1"))
	second := fs.AddVirtual("a.go", []byte("foo()"))

	if got := fs.Slice(Span{File: second, Start: 0, End: 3}); got != "foo" {
		t.Fatalf("Slice = %q, want foo", got)
	}
	if got := fs.Slice(Span{File: first, Start: 2, End: 100}); got != ":= 1" {
		t.Fatalf("clamped Slice = %q", got)
	}
	latest, ok := fs.GetLatest("a.go")
	if !ok || latest != second {
		t.Fatalf("GetLatest = %d,%v want %d", latest, ok, second)
	}
	if fs.Get(FileID(42)) != nil {
		t.Fatalf("expected nil for unknown id")
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Fatalf("Cover = %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 1}); got != a {
		t.Fatalf("cross-file Cover changed span: %v", got)
	}
	if !a.Cover(b).Contains(a) {
		t.Fatalf("cover must contain original span")
	}
}
