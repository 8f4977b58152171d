// Package goanalysis exposes the badnames rules as a go/analysis pass, so
// they can run under go vet, singlechecker and multichecker drivers.
package goanalysis

import (
	"context"
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/analysis"

	"badnames/internal/checker"
	"badnames/internal/driver"
	"badnames/internal/frontend/golang"
	"badnames/internal/source"
)

// CategoryAnalysisError marks reports for nodes the rules could not evaluate.
const CategoryAnalysisError = "analysis-error"

// Analyzer reports poor-quality identifiers and suspicious control flow.
var Analyzer = &analysis.Analyzer{
	Name: "badnames",
	Doc:  checker.Summary + "\n\nbadnames flags identifiers that are too short or too long, dead and infinite\ncontrol flow and empty switches.",
	Run:  run,
}

var (
	skipGenerated bool
	noWarnings    bool
)

func init() {
	Analyzer.Flags.BoolVar(&skipGenerated, "skip-generated", true, "do not check files marked as generated")
	Analyzer.Flags.BoolVar(&noWarnings, "no-warnings", false, "suppress warning diagnostics")
}

func run(pass *analysis.Pass) (any, error) {
	ch := checker.New(nil)
	opts := driver.Options{IgnoreWarnings: noWarnings, Jobs: 1}

	for i, file := range pass.Files {
		if skipGenerated && ast.IsGenerated(file) {
			continue
		}
		tf := pass.Fset.File(file.Pos())
		if tf == nil {
			continue
		}
		tree, err := golang.Build(pass.Fset, file, source.FileID(i), tf.Name())
		if err != nil {
			return nil, err
		}
		res, err := driver.CheckTree(context.Background(), ch, tree, opts)
		if err != nil {
			return nil, err
		}
		for _, d := range res.Bag.Items() {
			pos, end := positions(tf, d.Primary)
			pass.Report(analysis.Diagnostic{
				Pos:      pos,
				End:      end,
				Category: d.Code.ID(),
				Message:  d.Message,
			})
		}
		for _, fe := range res.Errors {
			pos, end := positions(tf, fe.Span)
			pass.Report(analysis.Diagnostic{
				Pos:      pos,
				End:      end,
				Category: CategoryAnalysisError,
				Message:  fe.Err.Error(),
			})
		}
	}
	return nil, nil
}

// positions maps a byte span back into the token file it was built from.
func positions(tf *token.File, sp source.Span) (token.Pos, token.Pos) {
	size := tf.Size()
	start, end := int(sp.Start), int(sp.End)
	if start > size {
		start = size
	}
	if end > size || end < start {
		end = start
	}
	return tf.Pos(start), tf.Pos(end)
}
