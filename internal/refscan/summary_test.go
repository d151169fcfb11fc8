package refscan

import (
	"context"
	"testing"

	"github.com/greenweb/optimizer/internal/source"
)

func TestSummarizeCode(t *testing.T) {
	provider := &fakeProvider{files: map[string]string{
		"app.js":    "// header\nvar a = 1;\n\nvar b = 2;   \n",
		"style.css": "/* base */\n.a { color: red; }\n",
		"logo.png":  "\x89PNG",
	}}
	entries, err := provider.ListFiles(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	metrics := SummarizeCode(context.Background(), provider, entries)
	if metrics.FilesSampled != 2 {
		t.Errorf("FilesSampled = %d, want 2", metrics.FilesSampled)
	}
	if metrics.CommentLines != 2 {
		t.Errorf("CommentLines = %d, want 2", metrics.CommentLines)
	}
	if metrics.BlankLines < 1 {
		t.Errorf("BlankLines = %d, want >= 1", metrics.BlankLines)
	}
	if metrics.CommentPercent <= 0 || metrics.CommentPercent > 100 {
		t.Errorf("CommentPercent = %v, want within (0, 100]", metrics.CommentPercent)
	}
	// app.js carries trailing spaces the cleanup would strip.
	if metrics.WhitespaceSavingsEst <= 0 {
		t.Errorf("WhitespaceSavingsEst = %d, want > 0", metrics.WhitespaceSavingsEst)
	}
}

func TestSummarizeCodeEmptyProject(t *testing.T) {
	metrics := SummarizeCode(context.Background(), &fakeProvider{}, nil)
	if metrics.FilesSampled != 0 || metrics.CommentPercent != 0 {
		t.Errorf("metrics = %+v, want zero value", metrics)
	}
}

func TestSummarizeImages(t *testing.T) {
	entries := []source.FileEntry{
		{Path: "img/a.png", Kind: source.KindFile, Size: 100},
		{Path: "img/b.PNG", Kind: source.KindFile, Size: 50},
		{Path: "img/c.svg", Kind: source.KindFile, Size: 10},
		{Path: "img/d.webp", Kind: source.KindFile, Size: 20},
		{Path: "app.js", Kind: source.KindFile, Size: 5},
		{Path: "img", Kind: source.KindDirectory},
	}

	inventory := SummarizeImages(entries)
	if inventory.Count != 4 {
		t.Errorf("Count = %d, want 4", inventory.Count)
	}
	if inventory.TotalSize != 180 {
		t.Errorf("TotalSize = %d, want 180", inventory.TotalSize)
	}
	if inventory.ByFormat["png"] != 2 {
		t.Errorf("ByFormat[png] = %d, want 2", inventory.ByFormat["png"])
	}
	if inventory.Optimizable != 2 {
		t.Errorf("Optimizable = %d, want 2", inventory.Optimizable)
	}
}

func TestAnalyzeFull(t *testing.T) {
	provider := &fakeProvider{files: map[string]string{
		"index.html":   `<link href="style.css"><img src="img/logo.png">`,
		"style.css":    "/* base */\n.a{}",
		"img/logo.png": "\x89PNG",
		"img/old.png":  "\x89PNG",
	}}

	result, err := AnalyzeFull(context.Background(), provider)
	if err != nil {
		t.Fatalf("AnalyzeFull() error = %v", err)
	}
	if result.Unused.UnusedImages.Count != 1 {
		t.Errorf("UnusedImages.Count = %d, want 1", result.Unused.UnusedImages.Count)
	}
	if result.Code.FilesSampled != 2 {
		t.Errorf("Code.FilesSampled = %d, want 2", result.Code.FilesSampled)
	}
	if result.Images.Count != 2 {
		t.Errorf("Images.Count = %d, want 2", result.Images.Count)
	}
}
