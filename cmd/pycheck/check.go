package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pycheck/internal/diag"
	"pycheck/internal/diagfmt"
	"pycheck/internal/driver"
	"pycheck/internal/observ"
	"pycheck/internal/project"
	"pycheck/internal/source"
	"pycheck/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path...]",
	Short: "Analyze Python files for global state leaks",
	Long: `Analyze Python source files or directories and report writes to and
escapes of global state. With no arguments, checks the project rooted at the
nearest pycheck.toml, or the current directory.`,
	Args: cobra.ArbitraryArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif|short)")
	checkCmd.Flags().String("mode", "", "suppression mode (default|strict|unsafe); overrides the manifest")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=config or one per CPU)")
	checkCmd.Flags().UintSlice("ignore", nil, "diagnostic codes to suppress everywhere")
	checkCmd.Flags().Bool("no-cache", false, "disable the on-disk result cache")
	checkCmd.Flags().String("cache-dir", "", "result cache location (default <project root>/.pycheck/cache)")
	checkCmd.Flags().String("ui", "auto", "interactive progress display (auto|on|off)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("verbose", false, "long-form diagnostic descriptions")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "sarif", "short":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	startDir := "."
	if len(args) > 0 {
		if st, statErr := os.Stat(args[0]); statErr == nil && st.IsDir() {
			startDir = args[0]
		} else {
			startDir = filepath.Dir(args[0])
		}
	}
	manifest, haveManifest, err := project.LoadManifest(startDir)
	if err != nil {
		return err
	}

	opts, cfgRoot, err := buildDriverOptions(cmd, manifest, haveManifest)
	if err != nil {
		return err
	}

	roots := args
	if len(roots) == 0 {
		roots = []string{cfgRoot}
	}
	var excludes []string
	if haveManifest {
		excludes = manifest.Config.Check.Exclude
	}
	paths, err := collectPaths(roots, excludes)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no Python files found under %v", roots)
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
		opts.Timer = timer
	}

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	progressMode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	fs := source.NewFileSet()
	if haveManifest {
		fs.SetBaseDir(manifest.Root)
	}

	var bag *diag.Bag
	if shouldUseTUI(progressMode) && format == "pretty" {
		bag, err = runCheckWithUI(cmd, fs, opts, paths)
	} else {
		d := driver.New(fs, opts)
		bag, err = d.Check(cmd.Context(), paths)
	}
	if err != nil {
		return err
	}

	if err := renderDiagnostics(cmd, bag, fs, format); err != nil {
		return err
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if timer != nil && !quiet {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	if !quiet {
		fmt.Fprintf(os.Stderr, "checked %d files, %d findings\n", len(paths), bag.Len())
	}

	if bag.HasErrors() {
		cleanup()
		os.Exit(1)
	}
	return nil
}

// buildDriverOptions merges manifest settings with flag overrides. Flags win.
func buildDriverOptions(cmd *cobra.Command, manifest *project.Manifest, haveManifest bool) (driver.Options, string, error) {
	var opts driver.Options
	cfgRoot := "."
	cacheDir := ""
	if haveManifest {
		opts.Mode = manifest.Mode()
		opts.IgnoreCodes = manifest.IgnoredCodes()
		opts.Jobs = manifest.Config.Check.Jobs
		opts.MaxDiagnostics = manifest.Config.Check.MaxDiagnostics
		cfgRoot = manifest.SourceRoot()
		cacheDir = filepath.Join(manifest.Root, ".pycheck", "cache")
	}

	if modeFlag, err := cmd.Flags().GetString("mode"); err != nil {
		return opts, "", fmt.Errorf("failed to get mode flag: %w", err)
	} else if modeFlag != "" {
		mode, err := project.ParseMode(modeFlag)
		if err != nil {
			return opts, "", err
		}
		opts.Mode = mode
	}

	if jobs, err := cmd.Flags().GetInt("jobs"); err != nil {
		return opts, "", fmt.Errorf("failed to get jobs flag: %w", err)
	} else if jobs > 0 {
		opts.Jobs = jobs
	}

	if maxDiag, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return opts, "", fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	} else if maxDiag > 0 {
		opts.MaxDiagnostics = maxDiag
	}

	if ignore, err := cmd.Flags().GetUintSlice("ignore"); err != nil {
		return opts, "", fmt.Errorf("failed to get ignore flag: %w", err)
	} else {
		for _, c := range ignore {
			opts.IgnoreCodes = append(opts.IgnoreCodes, diag.Code(c))
		}
	}

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return opts, "", fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if flagDir, err := cmd.Flags().GetString("cache-dir"); err != nil {
		return opts, "", fmt.Errorf("failed to get cache-dir flag: %w", err)
	} else if flagDir != "" {
		cacheDir = flagDir
	}
	if !noCache {
		opts.CacheDir = cacheDir
	}
	return opts, cfgRoot, nil
}

// collectPaths expands directories into discovered Python files and keeps
// explicit file arguments as-is.
func collectPaths(roots, excludes []string) ([]string, error) {
	var out []string
	for _, root := range roots {
		st, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat path: %w", err)
		}
		if !st.IsDir() {
			out = append(out, root)
			continue
		}
		files, err := project.DiscoverFiles(root, excludes)
		if err != nil {
			return nil, fmt.Errorf("failed to discover files under %s: %w", root, err)
		}
		out = append(out, files...)
	}
	return out, nil
}

func renderDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, format string) error {
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, bag, fs, diagfmt.PrettyOpts{
			Color:     useColor(colorFlag),
			PathMode:  pathMode,
			ShowNotes: withNotes,
			Verbose:   verbose,
		})
	case "short":
		diagfmt.Short(os.Stdout, bag, fs, withNotes)
		if bag.Len() > 0 {
			fmt.Fprintln(os.Stdout)
		}
	case "json":
		if err := diagfmt.JSON(os.Stdout, bag, fs, diagfmt.JSONOpts{PathMode: pathMode}); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	case "sarif":
		meta := diagfmt.SarifRunMeta{
			ToolName:       "pycheck",
			ToolVersion:    version.Plain(),
			InvocationArgs: os.Args,
		}
		if err := diagfmt.Sarif(os.Stdout, bag, fs, meta); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}
	return nil
}
