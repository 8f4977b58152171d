package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"badnames/internal/checker"
	"badnames/internal/config"
	"badnames/internal/diag"
	"badnames/internal/diagfmt"
	"badnames/internal/driver"
	"badnames/internal/version"
)

// Exit codes of the check command.
const (
	exitErrors        = 1
	exitAnalysisError = 2
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file|directory>...",
	Short: "Check Go sources or syntax tree documents",
	Long: `Check runs every rule over the given files, or over all *.go and *` + driver.TreeExt + ` files
within the given directories. Settings from badnames.toml are used unless a flag overrides them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().String("on-malformed", "continue", "what to do with malformed nodes (continue|abort)")
	checkCmd.Flags().StringSlice("exclude", nil, "glob patterns of names or relative paths to skip")
	checkCmd.Flags().Bool("dedup", false, "drop repeated diagnostics with the same code, message and span")
	checkCmd.Flags().Bool("cache", false, "reuse results from the disk cache")
	checkCmd.Flags().String("cache-dir", "", "disk cache directory (default $XDG_CACHE_HOME/badnames)")
	checkCmd.Flags().String("path-mode", "auto", "how paths are shown (auto|absolute|relative|basename)")
	checkCmd.Flags().String("ui", "auto", "progress UI mode (auto|on|off)")
	checkCmd.Flags().String("config", "", "path to badnames.toml (default: searched upwards from the first path)")
}

// checkSettings is the merged view of badnames.toml and command flags.
type checkSettings struct {
	format   diagfmt.Format
	pathMode diagfmt.PathMode
	ui       uiMode
	quiet    bool
	timings  bool
	opts     driver.Options
}

// runCheck executes the "check" command. It returns an *exitError when
// the run finished but the outcome must be reported through the exit code.
func runCheck(cmd *cobra.Command, args []string) error {
	settings, err := resolveCheckSettings(cmd, args)
	if err != nil {
		return err
	}

	ch := checker.New(nil)
	ctx := cmd.Context()

	var run *driver.Run
	if shouldUseTUI(settings.ui) && !settings.quiet {
		run, err = runCheckWithUI(ctx, "badnames check", ch, args, settings.opts)
	} else {
		run, err = driver.CheckPaths(ctx, ch, args, settings.opts)
	}
	if err != nil && (run == nil || !driver.IsAbort(err)) {
		return fmt.Errorf("check failed: %w", err)
	}

	colored, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	analysisErrs := toAnalysisErrors(run.Errors())

	if err := renderRun(out, errOut, run, analysisErrs, settings, colored, args); err != nil {
		return fmt.Errorf("failed to format diagnostics: %w", err)
	}
	if settings.timings && run.Timing != nil {
		printTimings(errOut, run.Timing)
	}

	errCount, warnCount := run.Counts()
	if !settings.quiet && settings.format == diagfmt.FormatPretty {
		fmt.Fprintf(errOut, "%d file(s): %d error(s), %d warning(s), %d analysis error(s)\n",
			len(run.Files), errCount, warnCount, len(analysisErrs))
	}

	switch {
	case len(analysisErrs) > 0:
		return &exitError{code: exitAnalysisError}
	case errCount > 0:
		return &exitError{code: exitErrors}
	default:
		return nil
	}
}

func resolveCheckSettings(cmd *cobra.Command, args []string) (checkSettings, error) {
	var s checkSettings
	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	cfg := config.Default()
	cfgPath, err := flags.GetString("config")
	if err != nil {
		return s, fmt.Errorf("failed to get config flag: %w", err)
	}
	if cfgPath != "" {
		if cfg, err = config.Load(cfgPath); err != nil {
			return s, err
		}
	} else {
		manifest, discoverErr := config.Discover(args[0])
		if discoverErr != nil {
			return s, discoverErr
		}
		if manifest != nil {
			cfg = manifest.Config
		}
	}

	// флаги перекрывают значения из файла
	if flags.Changed("format") {
		cfg.Check.Format, _ = flags.GetString("format")
	}
	if flags.Changed("jobs") {
		cfg.Check.Jobs, _ = flags.GetInt("jobs")
	}
	if root.Changed("max-diagnostics") {
		cfg.Check.MaxDiagnostics, _ = root.GetInt("max-diagnostics")
	}
	if flags.Changed("no-warnings") {
		cfg.Check.NoWarnings, _ = flags.GetBool("no-warnings")
	}
	if flags.Changed("warnings-as-errors") {
		cfg.Check.WarningsAsErrors, _ = flags.GetBool("warnings-as-errors")
	}
	if flags.Changed("on-malformed") {
		cfg.Check.OnMalformed, _ = flags.GetString("on-malformed")
	}
	if flags.Changed("exclude") {
		cfg.Check.Exclude, _ = flags.GetStringSlice("exclude")
	}
	if flags.Changed("cache") {
		cfg.Cache.Enabled, _ = flags.GetBool("cache")
	}
	if flags.Changed("cache-dir") {
		cfg.Cache.Dir, _ = flags.GetString("cache-dir")
	}

	if cfg.Check.NoWarnings && cfg.Check.WarningsAsErrors {
		return s, fmt.Errorf("no-warnings and warnings-as-errors cannot be used together")
	}
	if cfg.Check.Jobs < 0 {
		return s, fmt.Errorf("--jobs must not be negative")
	}

	if s.format, err = diagfmt.ParseFormat(cfg.Check.Format); err != nil {
		return s, err
	}
	pathModeStr, _ := flags.GetString("path-mode")
	if s.pathMode, err = diagfmt.ParsePathMode(pathModeStr); err != nil {
		return s, err
	}
	uiStr, _ := flags.GetString("ui")
	if s.ui, err = readUIMode(uiStr); err != nil {
		return s, err
	}
	// машинные форматы не смешиваем с прогрессом
	if s.format != diagfmt.FormatPretty && s.ui == uiModeAuto {
		s.ui = uiModeOff
	}
	if s.quiet, err = root.GetBool("quiet"); err != nil {
		return s, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = root.GetBool("timings"); err != nil {
		return s, fmt.Errorf("failed to get timings flag: %w", err)
	}

	if s.opts, err = cfg.DriverOptions(); err != nil {
		return s, err
	}
	if s.opts.Dedup, err = flags.GetBool("dedup"); err != nil {
		return s, fmt.Errorf("failed to get dedup flag: %w", err)
	}
	s.opts.EnableTimings = s.timings
	if cfg.Cache.Enabled {
		cache, cacheErr := driver.OpenDiskCache("badnames", cfg.Cache.Dir)
		if cacheErr != nil {
			return s, fmt.Errorf("failed to open disk cache: %w", cacheErr)
		}
		s.opts.Cache = cache
	}
	return s, nil
}

func renderRun(out, errOut io.Writer, run *driver.Run, analysisErrs []diagfmt.AnalysisError, s checkSettings, colored bool, args []string) error {
	switch s.format {
	case diagfmt.FormatPretty:
		opts := diagfmt.PrettyOpts{Color: colored, Context: 2, PathMode: s.pathMode}
		for _, f := range run.Files {
			if f.Bag == nil {
				continue
			}
			if err := diagfmt.Pretty(out, f.Bag, run.FileSet, opts); err != nil {
				return err
			}
		}
		return diagfmt.PrettyAnalysisErrors(errOut, analysisErrs, run.FileSet, opts)
	case diagfmt.FormatShort:
		if output := diag.FormatShortDiagnostics(run.Diagnostics(), run.FileSet); output != "" {
			if _, err := fmt.Fprintln(out, output); err != nil {
				return err
			}
		}
		return diagfmt.PrettyAnalysisErrors(errOut, analysisErrs, run.FileSet, diagfmt.PrettyOpts{PathMode: s.pathMode})
	case diagfmt.FormatJSON:
		jsonOpts := diagfmt.JSONOpts{IncludePositions: true, PathMode: s.pathMode}
		return diagfmt.JSON(out, run.Diagnostics(), analysisErrs, run.FileSet, jsonOpts)
	case diagfmt.FormatSarif:
		meta := diagfmt.SarifRunMeta{
			ToolName:       "badnames",
			ToolVersion:    version.Resolved(),
			InvocationArgs: append([]string{"check"}, args...),
		}
		return diagfmt.Sarif(out, run.Diagnostics(), analysisErrs, run.FileSet, meta)
	default:
		return fmt.Errorf("unknown format: %s", s.format)
	}
}

// toAnalysisErrors converts driver errors for the renderers.
func toAnalysisErrors(errs []*driver.FileError) []diagfmt.AnalysisError {
	out := make([]diagfmt.AnalysisError, 0, len(errs))
	for _, fe := range errs {
		out = append(out, diagfmt.AnalysisError{
			Path:    fe.Path,
			Span:    fe.Span,
			HasSpan: fe.Phase == driver.PhaseCheck,
			Phase:   string(fe.Phase),
			Message: strings.TrimSpace(fe.Err.Error()),
		})
	}
	return out
}
