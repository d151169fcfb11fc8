package refscan

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/greenweb/optimizer/internal/source"
	"github.com/greenweb/optimizer/pkg/api/optimizerun"
)

func file(path string, size uint64) source.FileEntry {
	return source.FileEntry{Path: path, Kind: source.KindFile, Size: size}
}

func refSet(refs ...string) ReferenceSet {
	s := make(ReferenceSet)
	for _, r := range refs {
		s.Add(r)
	}
	return s
}

func TestResolveUnusedOrphanDetection(t *testing.T) {
	files := []source.FileEntry{
		file("index.html", 300),
		file("style.css", 100),
		file("app.js", 200),
		file("old.css", 400),
		file("bootstrap.min.css", 150000),
		{Path: "img", Kind: source.KindDirectory},
	}
	scanned := []FileReferences{
		{Path: "index.html", Kind: Markup, Refs: refSet("style.css", "app.js")},
	}

	report := ResolveUnused(files, scanned)

	if got := report.Confidence; got != optimizerun.ConfidenceHigh {
		t.Errorf("Confidence = %q, want %q", got, optimizerun.ConfidenceHigh)
	}

	// old.css is orphaned; bootstrap.min.css is also unreferenced but is
	// exempted by the library allow-list.
	wantCSS := []optimizerun.UnusedAsset{{Path: "old.css", Size: 400}}
	if diff := cmp.Diff(wantCSS, report.UnusedCSS.Files); diff != "" {
		t.Errorf("UnusedCSS mismatch (-want +got):\n%s", diff)
	}
	if report.UnusedJS.Count != 0 {
		t.Errorf("UnusedJS.Count = %d, want 0", report.UnusedJS.Count)
	}
	if diff := cmp.Diff([]string{"old.css"}, report.AllUnused); diff != "" {
		t.Errorf("AllUnused mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveUnusedSuffixAndSubstringMatching(t *testing.T) {
	files := []source.FileEntry{
		file("pages/about.html", 100),
		file("assets/css/theme.css", 100),
		file("assets/img/photo.jpg", 5000),
		file("assets/img/orphan.gif", 700),
	}
	scanned := []FileReferences{
		// Relative references from a nested page; candidate resolution
		// must still hit the real asset paths.
		{Path: "pages/about.html", Kind: Markup, Refs: refSet("../assets/css/theme.css", "/assets/img/photo.jpg")},
	}

	report := ResolveUnused(files, scanned)

	var unused []string
	for _, g := range []optimizerun.UnusedAssetGroup{report.UnusedCSS, report.UnusedJS, report.UnusedImages} {
		for _, f := range g.Files {
			unused = append(unused, f.Path)
		}
	}
	sort.Strings(unused)
	if diff := cmp.Diff([]string{"assets/img/orphan.gif"}, unused); diff != "" {
		t.Errorf("unused mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveUnusedConfidenceWithoutMarkup(t *testing.T) {
	files := []source.FileEntry{
		file("style.css", 100),
		file("img/bg.png", 100),
	}
	scanned := []FileReferences{
		{Path: "style.css", Kind: Style, Refs: refSet("img/bg.png")},
	}

	report := ResolveUnused(files, scanned)
	if got := report.Confidence; got != optimizerun.ConfidenceMedium {
		t.Errorf("Confidence = %q, want %q", got, optimizerun.ConfidenceMedium)
	}
	if report.UnusedImages.Count != 0 {
		t.Errorf("UnusedImages.Count = %d, want 0", report.UnusedImages.Count)
	}
}

func TestResolveUnusedGroupOrderingAndTotals(t *testing.T) {
	files := []source.FileEntry{
		file("a.js", 10),
		file("b.js", 300),
		file("c.js", 50),
	}
	report := ResolveUnused(files, nil)

	wantOrder := []optimizerun.UnusedAsset{
		{Path: "b.js", Size: 300},
		{Path: "c.js", Size: 50},
		{Path: "a.js", Size: 10},
	}
	if diff := cmp.Diff(wantOrder, report.UnusedJS.Files); diff != "" {
		t.Errorf("UnusedJS order mismatch (-want +got):\n%s", diff)
	}
	if got, want := report.UnusedJS.TotalSize, uint64(360); got != want {
		t.Errorf("TotalSize = %d, want %d", got, want)
	}
}
