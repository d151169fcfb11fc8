package refscan

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/greenweb/optimizer/internal/source"
	"github.com/greenweb/optimizer/pkg/api/optimizerun"
)

const (
	// scanFileLimit caps the number of source files scanned per kind. This
	// bounds fetch cost on very large repositories; a deliberate
	// completeness/performance trade-off, not a bug.
	scanFileLimit = 20

	// scanConcurrency bounds parallel content fetches during scanning.
	scanConcurrency = 8
)

type scanTarget struct {
	path string
	kind SourceKind
}

// Scan fetches and extracts references from the project's markup, style and
// script files. Files are fetched and scanned concurrently; partial
// reference sets are merged by a single aggregating goroutine. A file whose
// content cannot be fetched contributes an empty set. The only error
// returned is context cancellation.
func Scan(ctx context.Context, provider source.Provider, entries []source.FileEntry) ([]FileReferences, error) {
	var targets []scanTarget
	counts := map[SourceKind]int{}
	for _, e := range entries {
		if !e.IsFile() {
			continue
		}
		kind := KindOf(e.Path)
		if kind == "" || counts[kind] >= scanFileLimit {
			continue
		}
		counts[kind]++
		targets = append(targets, scanTarget{path: e.Path, kind: kind})
	}

	results := make(chan FileReferences)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(scanConcurrency, len(targets)+1))

	for _, target := range targets {
		g.Go(func() error {
			content, err := provider.ReadFile(gctx, target.path)
			if err != nil {
				return err
			}
			refs := Extract(string(content), target.kind)
			select {
			case results <- FileReferences{Path: target.path, Kind: target.kind, Refs: refs}:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}

	// Single aggregator owns the merged result; workers never share it.
	var scanned []FileReferences
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for fr := range results {
			scanned = append(scanned, fr)
		}
	}()

	err := g.Wait()
	close(results)
	<-collected
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "reference scan complete",
		"files_scanned", len(scanned),
		"markup", counts[Markup], "style", counts[Style], "script", counts[Script])
	return scanned, nil
}

// Analyze lists the project, scans it for references and classifies its
// assets in one call.
func Analyze(ctx context.Context, provider source.Provider) (optimizerun.UnusedReport, error) {
	entries, err := provider.ListFiles(ctx)
	if err != nil {
		return optimizerun.UnusedReport{}, err
	}
	scanned, err := Scan(ctx, provider, entries)
	if err != nil {
		return optimizerun.UnusedReport{}, err
	}
	return ResolveUnused(entries, scanned), nil
}

// AnalyzeFull runs the unused-asset classification plus the code and image
// summary metrics over a single listing of the project.
func AnalyzeFull(ctx context.Context, provider source.Provider) (optimizerun.AnalysisResult, error) {
	entries, err := provider.ListFiles(ctx)
	if err != nil {
		return optimizerun.AnalysisResult{}, err
	}
	scanned, err := Scan(ctx, provider, entries)
	if err != nil {
		return optimizerun.AnalysisResult{}, err
	}
	return optimizerun.AnalysisResult{
		Unused: ResolveUnused(entries, scanned),
		Code:   SummarizeCode(ctx, provider, entries),
		Images: SummarizeImages(entries),
	}, nil
}
