package refscan

import (
	"sort"
	"strings"

	"github.com/greenweb/optimizer/internal/source"
	"github.com/greenweb/optimizer/internal/utils"
	"github.com/greenweb/optimizer/pkg/api/optimizerun"
)

// reportedFileLimit caps the per-category file lists in the report. The
// full unused set is still returned uncapped; only presentation is
// truncated.
const reportedFileLimit = 20

// allowedLibraries lists filename fragments exempt from unused-deletion.
// Common third-party bundles are frequently referenced dynamically (injected
// via build tooling) and must never be silently deleted.
var allowedLibraries = map[AssetCategory][]string{
	AssetCSS: {"bootstrap", "normalize", "reset"},
	AssetJS:  {"jquery", "bootstrap", "react", "vue", "angular", "lodash"},
}

// FileReferences pairs the references extracted from one source file with
// the file they came from.
type FileReferences struct {
	Path string
	Kind SourceKind
	Refs ReferenceSet
}

// ResolveUnused combines extracted references across all scanned source
// files into a global referenced set, then classifies every CSS/JS/image
// file as used or unused.
func ResolveUnused(allFiles []source.FileEntry, scanned []FileReferences) optimizerun.UnusedReport {
	// The resolved candidate set only grows as source files are added;
	// nothing ever removes a candidate.
	candidates := make(map[string]struct{})
	rawRefs := make(map[string]struct{})
	markupScanned := 0
	for _, fr := range scanned {
		if fr.Kind == Markup {
			markupScanned++
		}
		for ref := range fr.Refs {
			rawRefs[ref] = struct{}{}
			for _, c := range ResolveCandidates(ref, fr.Path) {
				candidates[c] = struct{}{}
			}
		}
	}

	report := optimizerun.UnusedReport{
		TotalFilesAnalyzed: len(allFiles),
		MarkupFiles:        markupScanned,
		ReferencesFound:    len(rawRefs),
		Confidence:         optimizerun.ConfidenceMedium,
	}
	if markupScanned > 0 {
		report.Confidence = optimizerun.ConfidenceHigh
	}

	groups := map[AssetCategory][]optimizerun.UnusedAsset{}
	for _, f := range allFiles {
		if !f.IsFile() {
			continue
		}
		switch KindOf(f.Path) {
		case Style:
			report.StyleFiles++
		case Script:
			report.ScriptFiles++
		}
		category := CategoryOf(f.Path)
		if category == "" {
			continue
		}
		if category == AssetImage {
			report.ImageFiles++
		}
		if isAllowedLibrary(f.Path, category) || isReferenced(f.Path, candidates) {
			continue
		}
		groups[category] = append(groups[category], optimizerun.UnusedAsset{Path: f.Path, Size: f.Size})
	}

	report.UnusedCSS = makeGroup(groups[AssetCSS])
	report.UnusedJS = makeGroup(groups[AssetJS])
	report.UnusedImages = makeGroup(groups[AssetImage])
	for _, category := range []AssetCategory{AssetCSS, AssetJS, AssetImage} {
		report.AllUnused = append(report.AllUnused,
			utils.Transform(groups[category], func(a optimizerun.UnusedAsset) string { return a.Path })...)
	}
	return report
}

// isReferenced reports whether any candidate form matches the file path by
// suffix or substring. Substring matching can produce false "used"
// classifications for unrelated files sharing a filename suffix; that is
// the intended conservative bias.
func isReferenced(filePath string, candidates map[string]struct{}) bool {
	for c := range candidates {
		if strings.HasSuffix(filePath, c) || strings.Contains(filePath, c) {
			return true
		}
	}
	return false
}

func isAllowedLibrary(filePath string, category AssetCategory) bool {
	lower := strings.ToLower(filePath)
	for _, lib := range allowedLibraries[category] {
		if strings.Contains(lower, lib) {
			return true
		}
	}
	return false
}

// makeGroup sorts a category's unused assets by descending size (largest
// savings first) and truncates the reported list.
func makeGroup(assets []optimizerun.UnusedAsset) optimizerun.UnusedAssetGroup {
	sort.Slice(assets, func(i, j int) bool { return assets[i].Size > assets[j].Size })

	group := optimizerun.UnusedAssetGroup{Count: len(assets)}
	for _, a := range assets {
		group.TotalSize += a.Size
	}
	if len(assets) > reportedFileLimit {
		assets = assets[:reportedFileLimit]
	}
	group.Files = assets
	return group
}
