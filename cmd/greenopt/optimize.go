package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/greenweb/optimizer/internal/optimize"
	"github.com/greenweb/optimizer/internal/refscan"
	"github.com/greenweb/optimizer/pkg/api/optimizerun"
)

var (
	optimizeBranch  string
	optimizeFormat  string
	optimizeOutput  string
	optimizeWorkers int

	keepComments   bool
	keepWhitespace bool
	keepUnused     bool
	noImages       bool
	noMinify       bool
)

func init() {
	optimizeCmd.Flags().StringVar(&optimizeBranch, "branch", "main", "branch to optimize (GitHub URLs only)")
	optimizeCmd.Flags().StringVar(&optimizeFormat, "format", "", "archive format: zip or tar.gz (default from config)")
	optimizeCmd.Flags().StringVarP(&optimizeOutput, "output", "o", "", "write the archive to this path")
	optimizeCmd.Flags().IntVar(&optimizeWorkers, "workers", 0, "transform worker count (default from config)")
	optimizeCmd.Flags().BoolVar(&keepComments, "keep-comments", false, "do not strip comments")
	optimizeCmd.Flags().BoolVar(&keepWhitespace, "keep-whitespace", false, "do not normalize whitespace")
	optimizeCmd.Flags().BoolVar(&keepUnused, "keep-unused", false, "do not delete unused assets")
	optimizeCmd.Flags().BoolVar(&noImages, "no-images", false, "do not re-encode images")
	optimizeCmd.Flags().BoolVar(&noMinify, "no-minify", false, "do not minify CSS/JS/HTML")
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize <path-or-url>",
	Short: "Produce a cleaned, size-reduced archive of the project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		provider, err := buildProvider(cfg, args[0], optimizeBranch)
		if err != nil {
			return err
		}

		cleanup := cfg.Cleanup
		if keepComments {
			cleanup.RemoveComments = false
		}
		if keepWhitespace {
			cleanup.RemoveWhitespace = false
		}
		if keepUnused {
			cleanup.RemoveUnusedFiles = false
		}
		if noImages {
			cleanup.OptimizeImages = false
		}
		if noMinify {
			cleanup.MinifyCode = false
		}

		format := cfg.ArchiveFormat()
		if optimizeFormat != "" {
			format = optimizerun.ArchiveFormat(optimizeFormat)
			if format != optimizerun.ArchiveZip && format != optimizerun.ArchiveTarGz {
				return fmt.Errorf("unsupported format %q (must be zip or tar.gz)", optimizeFormat)
			}
		}
		workers := cfg.Optimize.Workers
		if optimizeWorkers > 0 {
			workers = optimizeWorkers
		}

		out := cmd.OutOrStdout()
		report, err := refscan.Analyze(cmd.Context(), provider)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}

		green := color.New(color.FgGreen)
		progress := func(percent int) {
			fmt.Fprintf(out, "\r%3d%%", percent)
		}
		archivePath, stats, err := optimize.Run(cmd.Context(), provider, report,
			optimize.Options{Cleanup: cleanup, Format: format, Workers: workers}, progress)
		fmt.Fprintln(out)
		if err != nil {
			return err
		}

		if optimizeOutput != "" {
			if err := os.Rename(archivePath, optimizeOutput); err != nil {
				return fmt.Errorf("moving archive to %s: %w", optimizeOutput, err)
			}
			archivePath = optimizeOutput
		}

		green.Fprintf(out, "wrote %s\n", archivePath)
		fmt.Fprintf(out, "  processed %d files, deleted %d unused, saved %s\n",
			stats.FilesProcessed, stats.FilesDeleted, formatBytes(uint64(stats.BytesSaved)))
		fmt.Fprintf(out, "  comments stripped in %d files, whitespace cleaned in %d, images re-encoded in %d\n",
			stats.CommentsRemoved, stats.WhitespaceCleaned, stats.ImagesOptimized)
		return nil
	},
}
