package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"hirexpand/internal/diag"
	"hirexpand/internal/diagfmt"
	"hirexpand/internal/driver"
)

const cacheAppName = "hirexpand"

var errExpansionFailed = errors.New("expansion finished with errors")

var expandCmd = &cobra.Command{
	Use:   "expand [flags] <file.rs|dir>",
	Short: "Expand builtin macro calls",
	Long: `Expand finds macro calls in a Rust source file, or in every .rs file under a
directory, and expands file!, line! and stringify!`,
	Args: cobra.ExactArgs(1),
	RunE: runExpand,
}

func init() {
	expandCmd.Flags().String("format", "pretty", "output format (pretty|short|json|yaml)")
	expandCmd.Flags().String("min-severity", "info", "hide diagnostics below this severity (info|warning|error)")
	expandCmd.Flags().Bool("watch", false, "expand again whenever a source file changes")
	expandCmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
	expandCmd.Flags().Int("jobs", 0, "parallel workers (0 = GOMAXPROCS)")
	expandCmd.Flags().Bool("cache", false, "reuse results cached on disk")
	expandCmd.Flags().String("path-mode", "auto", "how to print paths (auto|absolute|relative|basename)")
	expandCmd.Flags().Bool("notes", true, "show diagnostic notes")
}

func runExpand(cmd *cobra.Command, args []string) (err error) {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	switch format {
	case "pretty", "short", "json", "yaml":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	minSeverityValue, err := cmd.Flags().GetString("min-severity")
	if err != nil {
		return fmt.Errorf("failed to get min-severity flag: %w", err)
	}
	minSeverity, err := diag.ParseSeverity(minSeverityValue)
	if err != nil {
		return fmt.Errorf("invalid --min-severity: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	// прогресс рисуется в auto-режиме только когда оба потока в терминале
	useTUI, err := resolveSwitch("ui", uiValue, func() bool {
		return isTerminal(os.Stdout) && isTerminal(os.Stderr)
	})
	if err != nil {
		return err
	}
	pathModeValue, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, ok := diagfmt.ParsePathMode(pathModeValue)
	if !ok {
		return fmt.Errorf("invalid --path-mode value %q", pathModeValue)
	}
	showNotes, err := cmd.Flags().GetBool("notes")
	if err != nil {
		return fmt.Errorf("failed to get notes flag: %w", err)
	}
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("failed to get watch flag: %w", err)
	}

	st, err := loadSettings(cmd, target)
	if err != nil {
		return err
	}
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()
	cleanup, err := setupTracing(cmd, st)
	if err != nil {
		return err
	}
	defer func() { cleanup(err != nil && !errors.Is(err, errExpansionFailed)) }()

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("expand: %w", err)
	}

	opts := driver.Options{
		MaxDiagnostics: st.maxDiagnostics,
		Jobs:           st.jobs,
		EnableTimings:  st.timings,
	}
	if st.cache {
		if opts.Cache, err = openCache(st); err != nil {
			return err
		}
	}

	r := renderer{
		format:    format,
		pathMode:  pathMode,
		showNotes: showNotes,
		minSev:    minSeverity,
		st:        st,
	}
	ctx := cmd.Context()
	if watch {
		return runWatch(ctx, cmd, target, opts, r)
	}

	var res *driver.Result
	switch {
	case !info.IsDir():
		res, err = driver.ExpandFile(ctx, target, opts)
	case format == "pretty" && !st.quiet && useTUI:
		files, listErr := driver.ListFiles(target)
		if listErr != nil {
			return fmt.Errorf("expand: %w", listErr)
		}
		res, err = runExpandWithUI(ctx, "expanding "+target, target, files, opts)
	default:
		res, err = driver.ExpandDir(ctx, target, opts)
	}
	if err != nil {
		return fmt.Errorf("expand: %w", err)
	}
	if err := r.render(cmd, res); err != nil {
		return err
	}
	if res.HasErrors() {
		return errExpansionFailed
	}
	return nil
}

// renderer prints a Result in the format chosen on the command line.
type renderer struct {
	format    string
	pathMode  diagfmt.PathMode
	showNotes bool
	minSev    diag.Severity
	st        *settings
}

func (r renderer) render(cmd *cobra.Command, res *driver.Result) error {
	out := cmd.OutOrStdout()
	switch r.format {
	case "json", "yaml":
		opts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         r.pathMode,
			IncludeNotes:     r.showNotes,
			IncludeTimings:   r.st.timings,
		}
		if r.format == "yaml" {
			return diagfmt.ExpansionsYAML(out, res, opts)
		}
		return diagfmt.ExpansionsJSON(out, res, opts)
	default:
		prettyOpts := diagfmt.PrettyOpts{
			Color:       useColor(cmd, os.Stdout),
			Context:     1,
			PathMode:    r.pathMode,
			ShowNotes:   r.showNotes,
			MinSeverity: r.minSev,
		}
		if r.st.quiet {
			prettyOpts.MinSeverity = max(prettyOpts.MinSeverity, diag.SevWarning)
		}
		if r.format == "short" {
			prettyOpts.Color = false
			if err := diagfmt.ExpansionsShort(out, res, prettyOpts); err != nil {
				return err
			}
		} else {
			diagfmt.ExpansionsPretty(out, res, prettyOpts)
		}
		if r.st.timings {
			printTimings(cmd.ErrOrStderr(), res)
		}
		return nil
	}
}

func openCache(st *settings) (*driver.DiskCache, error) {
	var (
		cache *driver.DiskCache
		err   error
	)
	if st.cacheDir != "" {
		cache, err = driver.OpenDiskCacheAt(st.cacheDir)
	} else {
		cache, err = driver.OpenDiskCache(cacheAppName)
	}
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return cache, nil
}
