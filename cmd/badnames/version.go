package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"badnames/internal/checker"
	"badnames/internal/version"
)

type versionPayload struct {
	Tool        string `json:"tool"`
	Version     string `json:"version"`
	Checker     string `json:"checker"`
	Fingerprint string `json:"rules_fingerprint"`
	GitCommit   string `json:"git_commit,omitempty"`
	BuildDate   string `json:"build_date,omitempty"`
}

var (
	versionFormat string
	versionFull   bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionFull, "full", false, "include commit, build date and rule fingerprint")
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show badnames build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch strings.ToLower(versionFormat) {
		case "json":
			return renderVersionJSON(cmd.OutOrStdout())
		case "pretty":
			colored, err := useColor(cmd, os.Stdout)
			if err != nil {
				return err
			}
			renderVersionPretty(cmd.OutOrStdout(), colored, versionFull)
			return nil
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}

func renderVersionPretty(out io.Writer, colored, full bool) {
	if !full {
		fmt.Fprintf(out, "badnames %s\n", version.Colored(version.Resolved(), colored))
		return
	}
	fmt.Fprint(out, version.Info(colored))
	fmt.Fprintf(out, "rules:  %s (%s)\n", checker.New(nil).Fingerprint(), checker.Name)
}

func renderVersionJSON(out io.Writer) error {
	payload := versionPayload{
		Tool:        "badnames",
		Version:     version.Resolved(),
		Checker:     checker.Name,
		Fingerprint: checker.New(nil).Fingerprint(),
		GitCommit:   strings.TrimSpace(version.GitCommit),
		BuildDate:   strings.TrimSpace(version.BuildDate),
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
