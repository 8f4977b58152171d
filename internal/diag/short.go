package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"badnames/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShortDiagnostics renders diagnostics one per line:
//
//	warning BN1001 path/to/file.go:3:5 foo is a bad identifier name
//
// Entries are grouped by path; within a file the incoming order is kept,
// so a sorted Bag keeps its traversal order. Paths are relative to the
// FileSet base directory. An empty string is returned when nothing resolves.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]shortDiagnostic, 0, len(diags))
	for _, d := range diags {
		loc, ok := resolveSpan(fs, d.Primary)
		if !ok {
			continue
		}
		rendered = append(rendered, shortDiagnostic{
			Severity: strings.ToLower(d.Severity.String()),
			Code:     d.Code.ID(),
			Path:     loc.Path,
			Line:     loc.Line,
			Column:   loc.Column,
			Message:  SanitizeMessage(d.Message),
		})
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		return rendered[i].Path < rendered[j].Path
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

type resolvedSpan struct {
	Path   string
	Line   uint32
	Column uint32
}

func resolveSpan(fs *source.FileSet, span source.Span) (resolvedSpan, bool) {
	file := fs.Get(span.File)
	if file == nil {
		return resolvedSpan{}, false
	}
	start, _ := fs.Resolve(span)
	return resolvedSpan{
		Path:   normalizePath(file.FormatPath("relative", fs.BaseDir())),
		Line:   start.Line,
		Column: start.Col,
	}, true
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

// SanitizeMessage folds a possibly multi-line message onto a single line.
// Rules quote whole statements, which may span several lines.
func SanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	fields := strings.FieldsFunc(msg, func(r rune) bool { return r == '\n' })
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return strings.TrimSpace(strings.Join(fields, " "))
}
