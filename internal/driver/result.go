package driver

import (
	"errors"
	"fmt"

	"badnames/internal/diag"
	"badnames/internal/observ"
	"badnames/internal/rules"
	"badnames/internal/source"
	"badnames/internal/syntax"
)

// Phase names where a FileError happened.
type Phase string

const (
	PhaseLoad  Phase = "load"
	PhaseParse Phase = "parse"
	PhaseCheck Phase = "check"
)

// FileError is an analysis error: the file or one of its nodes could not be
// checked. It is never a style diagnostic.
type FileError struct {
	Path  string
	Span  source.Span // zero for load and parse errors
	Phase Phase
	Err   error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Phase, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Malformed returns the malformed-input error behind e, if any.
func (e *FileError) Malformed() (*rules.MalformedInputError, bool) {
	var me *rules.MalformedInputError
	if errors.As(e.Err, &me) {
		return me, true
	}
	return nil, false
}

// FileResult is the outcome of one file pass.
type FileResult struct {
	Path   string
	FileID source.FileID
	Tree   *syntax.Tree // nil when loading failed or the result came from cache
	Bag    *diag.Bag    // diagnostics in traversal order
	Errors []*FileError
	Cached bool
	Timing *observ.Report
}

// HasErrors reports whether the pass produced analysis errors.
func (r *FileResult) HasErrors() bool {
	return r != nil && len(r.Errors) > 0
}

// Run is the outcome of a multi-file check.
type Run struct {
	FileSet *source.FileSet
	Files   []*FileResult // in sorted path order
	Timing  *observ.Report
}

// Diagnostics returns all diagnostics of the run in file order.
func (r *Run) Diagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, f := range r.Files {
		if f.Bag != nil {
			out = append(out, f.Bag.Items()...)
		}
	}
	return out
}

// Errors returns all analysis errors of the run in file order.
func (r *Run) Errors() []*FileError {
	var out []*FileError
	for _, f := range r.Files {
		out = append(out, f.Errors...)
	}
	return out
}

// Counts returns the number of ERROR and WARNING diagnostics.
func (r *Run) Counts() (errs, warnings int) {
	for _, d := range r.Diagnostics() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warnings++
		}
	}
	return errs, warnings
}
