package diagfmt

import (
	"encoding/json"
	"io"

	"badnames/internal/diag"
	"badnames/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Title    string       `json:"title"`
	Message  string       `json:"message"`
	Node     uint32       `json:"node"`
	Location LocationJSON `json:"location"`
}

// AnalysisErrorJSON is an analysis error in JSON output.
type AnalysisErrorJSON struct {
	Phase    string        `json:"phase"`
	Message  string        `json:"message"`
	File     string        `json:"file"`
	Location *LocationJSON `json:"location,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics    []DiagnosticJSON    `json:"diagnostics"`
	Count          int                 `json:"count"`
	AnalysisErrors []AnalysisErrorJSON `json:"analysis_errors,omitempty"`
}

func makeLocation(span source.Span, fs *source.FileSet, pathMode PathMode, includePositions bool) LocationJSON {
	loc := LocationJSON{StartByte: span.Start, EndByte: span.End}
	if f := fs.Get(span.File); f != nil {
		loc.File = formatPath(f, fs, pathMode)
	}
	if includePositions {
		startPos, endPos := fs.Resolve(span)
		loc.StartLine = startPos.Line
		loc.StartCol = startPos.Col
		loc.EndLine = endPos.Line
		loc.EndCol = endPos.Col
	}
	return loc
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(diags []diag.Diagnostic, errs []AnalysisError, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	n := len(diags)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, n)}
	for _, d := range diags[:n] {
		out.Diagnostics = append(out.Diagnostics, DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Node:     uint32(d.Anchor),
			Location: makeLocation(d.Primary, fs, opts.PathMode, opts.IncludePositions),
		})
	}
	out.Count = len(out.Diagnostics)
	for _, e := range errs {
		ej := AnalysisErrorJSON{Phase: e.Phase, Message: e.Message, File: pathOf(e, fs, opts.PathMode)}
		if e.HasSpan && fs != nil && fs.Get(e.Span.File) != nil {
			loc := makeLocation(e.Span, fs, opts.PathMode, opts.IncludePositions)
			ej.Location = &loc
		}
		out.AnalysisErrors = append(out.AnalysisErrors, ej)
	}
	return out
}

// JSON форматирует диагностики и ошибки анализа в JSON.
func JSON(w io.Writer, diags []diag.Diagnostic, errs []AnalysisError, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(diags, errs, fs, opts))
}
