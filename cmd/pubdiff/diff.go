package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pubdiff/internal/diff"
	"pubdiff/internal/difffmt"
	"pubdiff/internal/observ"
	"pubdiff/internal/snapshot"
	"pubdiff/internal/ui"
)

var diffCmd = &cobra.Command{
	Use:   "diff [flags] old.json new.json",
	Short: "Diff two public API snapshots",
	Long:  `Diff classifies every public API item as removed, changed, or added between two snapshots`,
	Args:  cobra.ExactArgs(2),
	RunE:  runDiff,
}

func init() {
	diffCmd.Flags().String("format", "", "output format (pretty|json|markdown)")
	diffCmd.Flags().Bool("ui", false, "browse the diff interactively")
	diffCmd.Flags().StringArray("deny", nil, "fail when a category is non-empty (removed|changed|added|all)")
	diffCmd.Flags().Bool("no-cache", false, "bypass the snapshot disk cache")
}

func runDiff(cmd *cobra.Command, args []string) error {
	oldPath, newPath := args[0], args[1]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	interactive, err := cmd.Flags().GetBool("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	deny, err := cmd.Flags().GetStringArray("deny")
	if err != nil {
		return fmt.Errorf("failed to get deny flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	timings, _ := cmd.Root().PersistentFlags().GetBool("timings")

	// Manifest values fill in whatever the flags left unset.
	manifest, found, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	if found {
		if format == "" {
			format = manifest.Config.Diff.Format
		}
		if len(deny) == 0 {
			deny = manifest.Config.Diff.Deny
		}
	}
	if format == "" {
		format = "pretty"
	}
	if err := validateFormat(format); err != nil {
		return err
	}
	for _, category := range deny {
		if err := validateDenyCategory(category); err != nil {
			return err
		}
	}

	var cache *snapshot.DiskCache
	if !noCache {
		cache, err = snapshot.OpenDiskCache("pubdiff")
		if err != nil {
			// A broken cache directory degrades to uncached loads.
			fmt.Fprintf(os.Stderr, "warning: disk cache unavailable: %v\n", err)
		}
	}
	loader := snapshot.NewLoader(cache)

	timer := observ.NewTimer()
	loadPhase := timer.Begin("load")
	oldItems, newItems, err := loader.LoadPair(cmd.Context(), oldPath, newPath)
	if err != nil {
		return err
	}
	timer.End(loadPhase, fmt.Sprintf("%d + %d items", len(oldItems), len(newItems)))

	diffPhase := timer.Begin("diff")
	result := diff.Between(oldItems, newItems)
	timer.End(diffPhase, fmt.Sprintf("%d entries", result.Count()))

	renderPhase := timer.Begin("render")
	err = renderDiff(cmd, result, format, interactive, quiet)
	timer.End(renderPhase, "")
	if err != nil {
		return err
	}

	if timings {
		if err := printTimings(os.Stderr, timer, format); err != nil {
			return err
		}
	}

	return checkDenied(result, deny)
}

func renderDiff(cmd *cobra.Command, result diff.Result, format string, interactive, quiet bool) error {
	if interactive && isTerminal(os.Stdout) {
		return ui.Run("pubdiff", result)
	}
	// quiet drops the human-facing report; json and markdown are for
	// machines and pipelines and keep printing.
	if quiet && format == "pretty" {
		return nil
	}
	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		opts := difffmt.PrettyOpts{Color: useColor(cmd, os.Stdout)}
		return difffmt.Pretty(out, result, opts)
	case "json":
		return difffmt.JSON(out, result, difffmt.JSONOpts{Pretty: true})
	case "markdown":
		return difffmt.Markdown(out, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// printTimings reports the timer on w, matching the diff output format:
// the machine format gets the serialized report, everything else the
// human-readable summary.
func printTimings(w io.Writer, timer *observ.Timer, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(timer.Report())
	}
	_, err := fmt.Fprint(w, timer.Summary())
	return err
}

func checkDenied(result diff.Result, deny []string) error {
	var violations []string
	for _, category := range deny {
		switch category {
		case "removed":
			if len(result.Removed) > 0 {
				violations = append(violations, fmt.Sprintf("%d removed", len(result.Removed)))
			}
		case "changed":
			if len(result.Changed) > 0 {
				violations = append(violations, fmt.Sprintf("%d changed", len(result.Changed)))
			}
		case "added":
			if len(result.Added) > 0 {
				violations = append(violations, fmt.Sprintf("%d added", len(result.Added)))
			}
		case "all":
			if !result.IsEmpty() {
				violations = append(violations, fmt.Sprintf("%d total", result.Count()))
			}
		}
	}
	if len(violations) > 0 {
		return fmt.Errorf("denied API changes present: %s", strings.Join(violations, ", "))
	}
	return nil
}
