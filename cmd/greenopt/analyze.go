package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/greenweb/optimizer/internal/refscan"
	"github.com/greenweb/optimizer/pkg/api/optimizerun"
)

var (
	analyzeBranch string
	analyzeJSON   bool
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeBranch, "branch", "main", "branch to analyze (GitHub URLs only)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the full result as JSON")
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <path-or-url>",
	Short: "Find unused assets without modifying anything",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		provider, err := buildProvider(cfg, args[0], analyzeBranch)
		if err != nil {
			return err
		}

		result, err := refscan.AnalyzeFull(cmd.Context(), provider)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}

		if analyzeJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		renderAnalysis(cmd, result)
		return nil
	},
}

func renderAnalysis(cmd *cobra.Command, result optimizerun.AnalysisResult) {
	out := cmd.OutOrStdout()
	heading := color.New(color.FgCyan, color.Bold)
	warn := color.New(color.FgYellow)

	heading.Fprintf(out, "Project: %d files analyzed (%d references found, confidence %s)\n",
		result.Unused.TotalFilesAnalyzed, result.Unused.ReferencesFound, result.Unused.Confidence)
	fmt.Fprintf(out, "  markup %d, styles %d, scripts %d, images %d\n",
		result.Unused.MarkupFiles, result.Unused.StyleFiles,
		result.Unused.ScriptFiles, result.Unused.ImageFiles)

	groups := []struct {
		name  string
		group optimizerun.UnusedAssetGroup
	}{
		{"CSS", result.Unused.UnusedCSS},
		{"JS", result.Unused.UnusedJS},
		{"images", result.Unused.UnusedImages},
	}
	for _, g := range groups {
		if g.group.Count == 0 {
			continue
		}
		warn.Fprintf(out, "Unused %s: %d files, %s\n", g.name, g.group.Count, formatBytes(g.group.TotalSize))
		for _, f := range g.group.Files {
			fmt.Fprintf(out, "  %s (%s)\n", f.Path, formatBytes(f.Size))
		}
	}

	heading.Fprintln(out, "Code metrics")
	fmt.Fprintf(out, "  %d files sampled, %d/%d comment lines (%.1f%%), ~%s of whitespace savings\n",
		result.Code.FilesSampled, result.Code.CommentLines, result.Code.TotalLines,
		result.Code.CommentPercent, formatBytes(uint64(result.Code.WhitespaceSavingsEst)))
	if result.Images.Count > 0 {
		fmt.Fprintf(out, "  %d images (%s), %d optimizable\n",
			result.Images.Count, formatBytes(result.Images.TotalSize), result.Images.Optimizable)
	}
}

func formatBytes(n uint64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
