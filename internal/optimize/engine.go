// Package optimize drives the transform-and-package pipeline over a
// project's working copy: delete unused assets, apply per-file content
// transforms, accumulate statistics and produce a single output archive.
//
// The central resilience property: a failure transforming any single file
// is caught, logged and skipped. Only acquiring the working copy and
// creating the archive can fail a run.
package optimize

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/greenweb/optimizer/internal/source"
	"github.com/greenweb/optimizer/internal/transform"
	"github.com/greenweb/optimizer/internal/utils"
	"github.com/greenweb/optimizer/pkg/api/optimizerun"
)

// Progress checkpoints. The transforming phase interpolates linearly
// between the scanned and packaging checkpoints; values are always
// monotonic because a single aggregator emits them.
const (
	progressScanned   = 30
	progressPackaging = 90
	progressDone      = 100

	// progressEvery is the file-count cadence for progress callbacks
	// during the transforming phase.
	progressEvery = 10
)

// ProgressFunc receives best-effort progress notifications in the range
// 0..100. Callers must tolerate skipped values; they will never observe a
// decrease.
type ProgressFunc func(percent int)

// Options configures a single optimization run.
type Options struct {
	Cleanup optimizerun.CleanupOptions
	Format  optimizerun.ArchiveFormat

	// Workers bounds the transform worker pool; <= 0 means GOMAXPROCS.
	Workers int
}

// fileOutcome is the per-file record emitted by transform workers and
// consumed by the stats aggregator.
type fileOutcome struct {
	deleted    bool
	failed     bool
	bytesSaved int64
	result     transform.Result
}

// Run executes the full pipeline: materialize a working copy, delete the
// unused set, transform every remaining file, and package the tree into an
// archive next to the working copy. It returns the archive path and the
// finalized stats.
//
// Failures materializing the working copy wrap ErrProvider; archive
// creation failures wrap ErrPackaging. Both discard all partial output.
// Context cancellation is checked at phase boundaries and per file, and
// surfaces as ctx.Err().
func Run(ctx context.Context, provider source.Provider, report optimizerun.UnusedReport, opts Options, progress ProgressFunc) (string, optimizerun.Stats, error) {
	if progress == nil {
		progress = func(int) {}
	}
	stats := optimizerun.Stats{}

	workDir, err := provider.MaterializeWorkingCopy(ctx)
	if err != nil {
		return "", stats, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer os.RemoveAll(workDir)

	deletions := map[string]bool{}
	if opts.Cleanup.RemoveUnusedFiles {
		for _, path := range report.AllUnused {
			deletions[path] = true
		}
	}
	slog.InfoContext(ctx, "starting optimization",
		"dir", workDir, "deletions", len(deletions))
	progress(progressScanned)

	files, err := enumerateFiles(workDir)
	if err != nil {
		return "", stats, fmt.Errorf("%w: enumerating working copy: %v", ErrProvider, err)
	}

	if err := transformAll(ctx, workDir, files, deletions, opts, &stats, progress); err != nil {
		return "", stats, err
	}

	// Version-control metadata never belongs in the optimized artifact.
	os.RemoveAll(filepath.Join(workDir, ".git"))

	progress(progressPackaging)
	archivePath := archiveFileName(workDir, opts.Format)
	if err := archiveTree(ctx, workDir, archivePath, opts.Format); err != nil {
		return "", stats, err
	}

	progress(progressDone)
	slog.InfoContext(ctx, "optimization complete",
		"archive", archivePath,
		"files_processed", stats.FilesProcessed,
		"files_deleted", stats.FilesDeleted,
		"bytes_saved", stats.BytesSaved)
	return archivePath, stats, nil
}

// transformAll fans transform work out to a bounded pool. Workers emit one
// outcome record per file; a single aggregator goroutine owns the stats
// and the progress reporting.
func transformAll(ctx context.Context, workDir string, files []string, deletions map[string]bool, opts Options, stats *optimizerun.Stats, progress ProgressFunc) error {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	outcomes := make(chan fileOutcome)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	// The aggregator must be receiving before any worker launches: g.Go
	// blocks at the pool limit, and a blocked send would deadlock it.
	aggregated := make(chan struct{})
	go func() {
		defer close(aggregated)
		seen := 0
		total := len(files)
		for outcome := range outcomes {
			seen++
			switch {
			case outcome.failed:
				// Already logged by the worker; reflected only as a
				// smaller processed count.
			case outcome.deleted:
				stats.FilesDeleted++
			default:
				stats.FilesProcessed++
				stats.BytesSaved += outcome.bytesSaved
				if outcome.result.CommentsRemoved {
					stats.CommentsRemoved++
				}
				if outcome.result.WhitespaceCleaned {
					stats.WhitespaceCleaned++
				}
				if outcome.result.ImageOptimized {
					stats.ImagesOptimized++
				}
			}
			if seen%progressEvery == 0 && total > 0 {
				span := progressPackaging - progressScanned
				progress(progressScanned + span*seen/total)
			}
		}
	}()

	for _, relPath := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			outcome := processFile(gctx, workDir, relPath, deletions, opts.Cleanup)
			select {
			case outcomes <- outcome:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}

	err := g.Wait()
	close(outcomes)
	<-aggregated
	return err
}

// processFile handles a single file of the working copy: delete it if it is
// in the deletion set, otherwise transform it and write back only on
// change. All errors are contained here.
func processFile(ctx context.Context, workDir, relPath string, deletions map[string]bool, cleanup optimizerun.CleanupOptions) fileOutcome {
	absPath := filepath.Join(workDir, filepath.FromSlash(relPath))

	if deletions[relPath] {
		if err := os.Remove(absPath); err != nil {
			slog.WarnContext(ctx, "failed to delete unused file", "path", relPath, "error", err)
			return fileOutcome{failed: true}
		}
		slog.DebugContext(ctx, "deleted unused file", "path", relPath)
		return fileOutcome{deleted: true}
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		slog.WarnContext(ctx, "failed to read file, skipping", "path", relPath, "error", err)
		return fileOutcome{failed: true}
	}

	result := transform.File(relPath, content, cleanup)
	saved := int64(len(content)) - int64(len(result.Content))
	if saved > 0 {
		if err := utils.WriteFile(absPath, result.Content); err != nil {
			slog.WarnContext(ctx, "failed to write transformed file, keeping original", "path", relPath, "error", err)
			return fileOutcome{failed: true}
		}
	}
	return fileOutcome{bytesSaved: max(saved, 0), result: result}
}

// enumerateFiles returns forward-slash relative paths of all regular files
// under root.
func enumerateFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			paths = append(paths, filepath.ToSlash(rel))
		}
		return nil
	})
	return paths, err
}
