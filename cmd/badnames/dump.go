package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"badnames/internal/checker"
	"badnames/internal/driver"
	"badnames/internal/source"
	"badnames/internal/syntax"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] <file>",
	Short: "Print the syntax tree a front end builds for a file",
	Long: `Dump loads one file with the front end matching its extension and prints the
resulting syntax tree. With --format json the output is a ` + driver.TreeExt + ` document that
check accepts as input.`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().String("format", "tree", "output format (tree|json)")
	dumpCmd.Flags().Bool("all", false, "include leaf nodes of kind Other")
	dumpCmd.Flags().Bool("eval", false, "print the rule outcome of every checked node")
	dumpCmd.Flags().Bool("stats", false, "print node counts per kind")
}

func runDump(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}
	eval, err := cmd.Flags().GetBool("eval")
	if err != nil {
		return fmt.Errorf("failed to get eval flag: %w", err)
	}
	stats, err := cmd.Flags().GetBool("stats")
	if err != nil {
		return fmt.Errorf("failed to get stats flag: %w", err)
	}

	path := args[0]
	if !driver.Supported(path) {
		return fmt.Errorf("%w: %s", driver.ErrUnsupportedFile, path)
	}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	tree, err := driver.LoadTree(fs, id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "tree":
		if err := syntax.Fprint(out, tree, all); err != nil {
			return err
		}
	case "json":
		if err := syntax.EncodeJSON(out, tree); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if stats {
		if err := printKindStats(cmd.ErrOrStderr(), tree); err != nil {
			return err
		}
	}
	if eval {
		return printOutcomes(cmd.ErrOrStderr(), checker.New(nil), tree)
	}
	return nil
}

// printKindStats writes one line per kind present in the tree, in kind order.
func printKindStats(w io.Writer, tree *syntax.Tree) error {
	if _, err := fmt.Fprintf(w, "== kinds (%d nodes) ==\n", tree.Len()); err != nil {
		return err
	}
	counts := tree.CountKinds()
	for _, k := range syntax.AllKinds() {
		if counts[k] == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%-18s %d\n", k, counts[k]); err != nil {
			return err
		}
	}
	return nil
}

// printOutcomes evaluates every node a rule chain exists for, without any
// driver options applied.
func printOutcomes(w io.Writer, ch *checker.Checker, tree *syntax.Tree) error {
	if _, err := fmt.Fprintln(w, "== outcomes =="); err != nil {
		return err
	}
	for _, n := range tree.Nodes() {
		if !ch.Wants(n.Kind) {
			continue
		}
		out, err := ch.Evaluate(n)
		var line string
		switch d, matched := out.Diagnostic(); {
		case err != nil:
			line = fmt.Sprintf("#%d %s: malformed: %v", n.ID, n.Kind, err)
		case matched:
			line = fmt.Sprintf("#%d %s: %s %s", n.ID, n.Kind, d.Code.ID(), d.Message)
		default:
			line = fmt.Sprintf("#%d %s: ok", n.ID, n.Kind)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
