package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"badnames/internal/checker"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the built-in rules",
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type ruleJSON struct {
	Code    string `json:"code"`
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Summary string `json:"summary"`
}

type rulesJSON struct {
	Checker     string     `json:"checker"`
	Summary     string     `json:"summary"`
	Fingerprint string     `json:"fingerprint"`
	Rules       []ruleJSON `json:"rules"`
}

func runRules(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	ch := checker.New(nil)
	switch strings.ToLower(format) {
	case "pretty":
		return printRules(cmd.OutOrStdout(), ch)
	case "json":
		out := rulesJSON{
			Checker:     checker.Name,
			Summary:     checker.Summary,
			Fingerprint: ch.Fingerprint(),
			Rules:       make([]ruleJSON, 0, len(ch.Rules())),
		}
		for _, e := range ch.Rules() {
			out.Rules = append(out.Rules, ruleJSON{
				Code:    e.Rule.Code.ID(),
				Kind:    e.Kind.String(),
				Name:    e.Rule.Name,
				Summary: e.Rule.Summary,
			})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func printRules(out io.Writer, ch *checker.Checker) error {
	fmt.Fprintf(out, "%s: %s\n\n", checker.Name, checker.Summary)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tKIND\tNAME\tSUMMARY")
	for _, e := range ch.Rules() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Rule.Code.ID(), e.Kind, e.Rule.Name, e.Rule.Summary)
	}
	return tw.Flush()
}
