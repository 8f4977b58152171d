package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"badnames/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "badnames",
	Short: "Style checker for poor-quality identifiers",
	Long:  `badnames reports placeholder and badly sized names, dead or infinite control flow, empty switches and null returns`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		stopProfiling, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		cleanup, err := setupTracing(cmd)
		if err != nil {
			stopProfiling()
			return err
		}
		commandCleanup = func() {
			cleanup()
			stopProfiling()
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		runCommandCleanup()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitError carries a process exit code through cobra without a message.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// main registers subcommands and global flags, then executes the root command.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Resolved()

	// Добавляем команды
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per file (0 = unlimited)")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to file ('-' for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")

	err := rootCmd.Execute()
	runCommandCleanup()
	if err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against the stream it applies to.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
}
