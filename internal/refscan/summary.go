package refscan

import (
	"context"
	"math"
	"path"
	"strings"

	"github.com/greenweb/optimizer/internal/source"
	"github.com/greenweb/optimizer/internal/transform"
	"github.com/greenweb/optimizer/pkg/api/optimizerun"
)

// summaryFileLimit caps the number of files sampled for code metrics, the
// same bound the reference scan uses per kind.
const summaryFileLimit = 20

// commentPrefixes lists line prefixes counted as comment lines, per source
// kind. Block comment bodies are approximated by their conventional
// leading "*".
var commentPrefixes = map[SourceKind][]string{
	Markup: {"<!--"},
	Style:  {"/*", "*", "//"},
	Script: {"//", "/*", "*"},
}

// SummarizeCode samples up to summaryFileLimit code files and measures
// their comment density and the whitespace cleanup would reclaim. Files
// that cannot be fetched contribute nothing.
func SummarizeCode(ctx context.Context, provider source.Provider, entries []source.FileEntry) optimizerun.CodeMetrics {
	metrics := optimizerun.CodeMetrics{}
	for _, e := range entries {
		if !e.IsFile() {
			continue
		}
		kind := KindOf(e.Path)
		if kind == "" || metrics.FilesSampled >= summaryFileLimit {
			continue
		}
		content, err := provider.ReadFile(ctx, e.Path)
		if err != nil || len(content) == 0 {
			continue
		}
		metrics.FilesSampled++

		text := string(content)
		for _, line := range strings.Split(text, "\n") {
			trimmed := strings.TrimSpace(line)
			metrics.TotalLines++
			if trimmed == "" {
				metrics.BlankLines++
				continue
			}
			for _, prefix := range commentPrefixes[kind] {
				if strings.HasPrefix(trimmed, prefix) {
					metrics.CommentLines++
					break
				}
			}
		}
		cleaned := transform.CleanWhitespace(text, false)
		if saved := len(text) - len(cleaned); saved > 0 {
			metrics.WhitespaceSavingsEst += int64(saved)
		}
	}
	if metrics.TotalLines > 0 {
		percent := float64(metrics.CommentLines) / float64(metrics.TotalLines) * 100
		metrics.CommentPercent = math.Round(percent*10) / 10
	}
	return metrics
}

// reencodableFormats are the image formats the transformer re-encodes to
// JPEG. Vector, animated and already-modern formats are inventoried but
// never counted optimizable.
var reencodableFormats = map[string]bool{
	"jpg": true, "jpeg": true, "png": true,
}

// SummarizeImages inventories the project's image assets by extension.
func SummarizeImages(entries []source.FileEntry) optimizerun.ImageInventory {
	inventory := optimizerun.ImageInventory{ByFormat: map[string]int{}}
	for _, e := range entries {
		if !e.IsFile() || CategoryOf(e.Path) != AssetImage {
			continue
		}
		format := strings.TrimPrefix(strings.ToLower(path.Ext(e.Path)), ".")
		inventory.Count++
		inventory.TotalSize += e.Size
		inventory.ByFormat[format]++
		if reencodableFormats[format] {
			inventory.Optimizable++
		}
	}
	return inventory
}
