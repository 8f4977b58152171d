package diagfmt

import "badnames/internal/source"

// AnalysisError is a file or node that could not be checked. Renderers show
// these apart from style diagnostics.
type AnalysisError struct {
	Path    string
	Span    source.Span
	HasSpan bool
	Phase   string
	Message string
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

// pathOf formats an analysis error path. Files that never made it into fs
// are shown as given.
func pathOf(e AnalysisError, fs *source.FileSet, mode PathMode) string {
	if e.HasSpan && fs != nil {
		if f := fs.Get(e.Span.File); f != nil {
			return formatPath(f, fs, mode)
		}
	}
	return e.Path
}
