package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"theorycheck/internal/diag"
	"theorycheck/internal/diagfmt"
	"theorycheck/internal/driver"
	"theorycheck/internal/project"
	"theorycheck/internal/source"
	"theorycheck/internal/version"
)

const cacheApp = "theorycheck"

type outputFormat string

const (
	formatPretty outputFormat = "pretty"
	formatJSON   outputFormat = "json"
	formatSarif  outputFormat = "sarif"
	formatShort  outputFormat = "short"
)

func readFormat(value string) (outputFormat, error) {
	switch f := outputFormat(value); f {
	case formatPretty, formatJSON, formatSarif, formatShort:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (expected pretty|json|sarif|short)", value)
}

// checkSettings is the merged view of manifest values and command flags.
type checkSettings struct {
	format           outputFormat
	jobs             int
	maxDiagnostics   int
	noWarnings       bool
	warningsAsErrors bool
	strictTail       bool
	withNotes        bool
	fullPath         bool
	diskCache        bool
	ui               uiMode
	quiet            bool
	timings          bool
	color            bool
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <file.cs|directory>",
		Short: "Check InlineData rows against their Theory methods",
		Long: `Check every [Theory] method in a C# file or in all *.cs files under a
directory. Settings from the nearest theorycheck.toml apply; flags given on
the command line override them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCheck,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|sarif|short)")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	cmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	cmd.Flags().Bool("strict-tail", false, "report missing values for params parameters")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	cmd.Flags().Bool("disk-cache", false, "reuse per-file results from the disk cache")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	return cmd
}

// readCheckSettings applies manifest values first and then every flag
// that was set explicitly.
func readCheckSettings(cmd *cobra.Command, m *project.Manifest) (checkSettings, error) {
	var s checkSettings
	if m != nil {
		s.strictTail = m.Config.Check.StrictTail
		s.warningsAsErrors = m.Config.Check.WarningsAsErrors
		s.maxDiagnostics = m.Config.Check.MaxDiagnostics
	}

	flags := cmd.Flags()
	formatStr, err := flags.GetString("format")
	if err != nil {
		return s, fmt.Errorf("failed to get format flag: %w", err)
	}
	if s.format, err = readFormat(formatStr); err != nil {
		return s, err
	}
	uiStr, err := flags.GetString("ui")
	if err != nil {
		return s, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if s.ui, err = readUIMode(uiStr); err != nil {
		return s, err
	}
	if s.jobs, err = flags.GetInt("jobs"); err != nil {
		return s, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if s.jobs < 0 {
		return s, fmt.Errorf("--jobs must not be negative")
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"no-warnings", &s.noWarnings},
		{"warnings-as-errors", &s.warningsAsErrors},
		{"strict-tail", &s.strictTail},
		{"with-notes", &s.withNotes},
		{"fullpath", &s.fullPath},
		{"disk-cache", &s.diskCache},
	}
	for _, b := range bools {
		if !flags.Changed(b.name) && *b.dst {
			continue
		}
		v, err := flags.GetBool(b.name)
		if err != nil {
			return s, fmt.Errorf("failed to get %s flag: %w", b.name, err)
		}
		*b.dst = v
	}
	if s.noWarnings && s.warningsAsErrors {
		return s, fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}

	persistent := cmd.Root().PersistentFlags()
	if persistent.Changed("max-diagnostics") || s.maxDiagnostics == 0 {
		if s.maxDiagnostics, err = persistent.GetInt("max-diagnostics"); err != nil {
			return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if s.quiet, err = persistent.GetBool("quiet"); err != nil {
		return s, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = persistent.GetBool("timings"); err != nil {
		return s, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return s, nil
}

func buildRequest(s checkSettings, m *project.Manifest, fs *source.FileSet) driver.Request {
	req := driver.Request{
		Jobs:             s.jobs,
		MaxDiagnostics:   s.maxDiagnostics,
		StrictTail:       s.strictTail,
		IgnoreWarnings:   s.noWarnings,
		WarningsAsErrors: s.warningsAsErrors,
		Manifest:         m,
		FileSet:          fs,
	}
	if m != nil {
		req.TheoryAttrs = m.Config.Attributes.Theory
		req.DataAttrs = m.Config.Attributes.InlineData
		req.Decls = m.Decls()
	}
	return req
}

// runCheck exits with status 1 when an error diagnostic remains and 2 on
// operational failures.
func runCheck(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}
	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	tracer, cleanupTrace, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanupTrace()
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	color, err := useColor(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	fs := source.NewFileSetWithBase(wd)
	manifestBag := diag.NewBag(0)
	manifest, _, err := project.Load(fs, target, diag.BagReporter{Bag: manifestBag})
	if err != nil {
		if errors.Is(err, project.ErrInvalidManifest) {
			manifestBag.Sort()
			diagfmt.Pretty(cmd.ErrOrStderr(), manifestBag, fs, diagfmt.PrettyOpts{Color: color, Context: 1, ShowNotes: true})
		}
		return err
	}

	settings, err := readCheckSettings(cmd, manifest)
	if err != nil {
		return err
	}
	settings.color = color
	req := buildRequest(settings, manifest, fs)
	if settings.diskCache {
		cache, err := driver.OpenDiskCache(cacheApp)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: disk cache disabled: %v\n", err)
		} else {
			req.Cache = cache
		}
	}

	started := time.Now()
	var res *driver.Result
	if shouldUseTUI(settings.ui, settings.format) {
		res, err = runCheckWithUI(cmd.Context(), cmd.ErrOrStderr(), "Checking "+filepath.Base(absOrSelf(target)), target, req)
	} else {
		res, err = driver.CheckPath(cmd.Context(), target, req)
	}
	if err != nil {
		dumpTraceRing(cmd, tracer)
		if errors.Is(err, driver.ErrNoSources) {
			return fmt.Errorf("%s: %w", diag.IONoSources.ID(), err)
		}
		return fmt.Errorf("check failed: %w", err)
	}

	bag := collectDiagnostics(manifestBag, res, settings)
	if err := render(out, bag, res.FileSet, settings, cmd.Root().Name(), os.Args[1:]); err != nil {
		return fmt.Errorf("failed to format diagnostics: %w", err)
	}
	if settings.format == formatPretty && !settings.quiet {
		printSummary(cmd.ErrOrStderr(), res, bag, settings.timings, time.Since(started))
	}

	if bag.HasErrors() {
		return exitCodeError{code: 1}
	}
	return nil
}

// collectDiagnostics merges manifest warnings and every file bag into one
// bag, in file order.
func collectDiagnostics(manifestBag *diag.Bag, res *driver.Result, s checkSettings) *diag.Bag {
	out := diag.NewBag(0)
	if manifestBag != nil {
		mb := diag.NewBag(0)
		mb.Merge(manifestBag)
		if s.noWarnings {
			mb.Filter(func(d diag.Diagnostic) bool { return d.Severity >= diag.SevError })
		}
		if s.warningsAsErrors {
			mb.PromoteWarnings()
		}
		mb.Sort()
		out.Merge(mb)
	}
	for i := range res.Files {
		out.Merge(res.Files[i].Bag)
	}
	return out
}

func render(w io.Writer, bag *diag.Bag, fs *source.FileSet, s checkSettings, tool string, args []string) error {
	pathMode := diagfmt.PathModeAuto
	if s.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	switch s.format {
	case formatPretty:
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     s.color,
			Context:   1,
			PathMode:  pathMode,
			ShowNotes: s.withNotes,
		})
		return nil
	case formatJSON:
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     s.withNotes,
		})
	case formatSarif:
		return diagfmt.Sarif(w, bag, fs, diagfmt.SarifRunMeta{
			ToolName:       tool,
			ToolVersion:    version.Version,
			InvocationArgs: args,
		})
	case formatShort:
		return diagfmt.Short(w, bag, fs, s.withNotes)
	}
	return fmt.Errorf("unknown format: %s", s.format)
}

func printSummary(w io.Writer, res *driver.Result, bag *diag.Bag, timings bool, elapsed time.Duration) {
	errs, warns := 0, 0
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	if bag.Len() > 0 {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "checked %d files, %d InlineData rows: %d errors, %d warnings", len(res.Files), res.Sites(), errs, warns)
	if res.CacheHits > 0 {
		fmt.Fprintf(w, " (%d cached)", res.CacheHits)
	}
	if timings {
		fmt.Fprintf(w, " in %.1f ms", toMillis(elapsed))
	}
	fmt.Fprintln(w)
	if timings {
		fmt.Fprint(w, res.Timings.Summary())
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func absOrSelf(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
