package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"badnames/internal/diag"
	"badnames/internal/source"
)

type palette struct {
	path, warning, errorSev, info, code, gutter, caret, analysis *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		path:     mk(color.Bold),
		warning:  mk(color.FgYellow, color.Bold),
		errorSev: mk(color.FgRed, color.Bold),
		info:     mk(color.FgCyan, color.Bold),
		code:     mk(color.Faint),
		gutter:   mk(color.FgBlue),
		caret:    mk(color.FgGreen, color.Bold),
		analysis: mk(color.FgMagenta, color.Bold),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.errorSev
	case diag.SevInfo:
		return p.info
	default:
		return p.warning
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		f := fs.Get(d.Primary.File)
		if f == nil {
			continue
		}
		start, end := fs.Resolve(d.Primary)
		header := fmt.Sprintf("%s: %s %s: %s\n",
			p.path.Sprintf("%s:%d:%d", formatPath(f, fs, opts.PathMode), start.Line, start.Col),
			p.severity(d.Severity).Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()),
			diag.SanitizeMessage(d.Message))
		if _, err := io.WriteString(w, header); err != nil {
			return err
		}
		if err := writeSnippet(w, p, f, start, end, opts); err != nil {
			return err
		}
	}
	return nil
}

// PrettyAnalysisErrors renders errors as distinct ANALYSIS ERROR entries.
func PrettyAnalysisErrors(w io.Writer, errs []AnalysisError, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for _, e := range errs {
		loc := pathOf(e, fs, opts.PathMode)
		var f *source.File
		var start, end source.LineCol
		if e.HasSpan && fs != nil {
			if f = fs.Get(e.Span.File); f != nil {
				start, end = fs.Resolve(e.Span)
				loc = fmt.Sprintf("%s:%d:%d", loc, start.Line, start.Col)
			}
		}
		line := fmt.Sprintf("%s: %s (%s): %s\n",
			p.path.Sprint(loc), p.analysis.Sprint("ANALYSIS ERROR"), e.Phase, diag.SanitizeMessage(e.Message))
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
		if f != nil {
			if err := writeSnippet(w, p, f, start, end, opts); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeSnippet(w io.Writer, p palette, f *source.File, start, end source.LineCol, opts PrettyOpts) error {
	first := start.Line
	if ctx := uint32(max(opts.Context, 0)); ctx < first {
		first -= ctx
	} else {
		first = 1
	}
	width := len(fmt.Sprint(start.Line))
	var sb strings.Builder
	for ln := first; ln <= start.Line; ln++ {
		text := clip(f.GetLine(ln), opts.Width)
		fmt.Fprintf(&sb, "%s %s\n", p.gutter.Sprintf("%*d |", width, ln), text)
	}
	line := f.GetLine(start.Line)
	col := int(start.Col) - 1
	col = min(max(col, 0), len(line))
	stop := len(line)
	if end.Line == start.Line {
		stop = min(max(int(end.Col)-1, col), len(line))
	}
	pad := indentLike(line[:col])
	underline := max(runewidth.StringWidth(line[col:stop]), 1)
	marks := "^" + strings.Repeat("~", underline-1)
	fmt.Fprintf(&sb, "%s %s%s\n", p.gutter.Sprintf("%*s |", width, ""), pad, p.caret.Sprint(marks))
	_, err := io.WriteString(w, sb.String())
	return err
}

// indentLike returns blanks that occupy the same columns as prefix; tabs are kept.
func indentLike(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}

func clip(s string, width uint8) string {
	if width == 0 || runewidth.StringWidth(s) <= int(width) {
		return s
	}
	return runewidth.Truncate(s, int(width), "…")
}
