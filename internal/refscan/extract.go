package refscan

import (
	"regexp"

	"github.com/greenweb/optimizer/internal/utils"
)

// ReferenceSet holds the raw reference strings extracted from one source
// file's content.
type ReferenceSet map[string]struct{}

// Add inserts a raw reference, ignoring empty strings.
func (s ReferenceSet) Add(ref string) {
	if ref != "" {
		s[ref] = struct{}{}
	}
}

var (
	// Markup attribute references. Combined into a single pass; each
	// sub-pattern keeps its own capture group.
	markupStylesheetPattern = regexp.MustCompile(`(?i)href=["']([^"']+\.css)["']`)
	markupScriptPattern     = regexp.MustCompile(`(?i)src=["']([^"']+\.js)["']`)
	markupImagePattern      = regexp.MustCompile(`(?i)(?:src|href)=["']([^"']+\.(?:jpg|jpeg|png|gif|svg|webp))["']`)
	markupAttrPattern       = utils.CombineRegexp(markupStylesheetPattern, markupScriptPattern, markupImagePattern)

	// url(...) occurrences cover inline style attributes, embedded
	// background-image declarations and stylesheet bodies alike.
	urlPattern = regexp.MustCompile(`(?i)url\(["']?([^"'()]+)["']?\)`)

	styleImportPattern = regexp.MustCompile(`(?i)@import\s+["']([^"']+)["']`)

	scriptImportPattern  = regexp.MustCompile(`(?i)import\s+.*?from\s+["']([^"']+)["']`)
	scriptRequirePattern = regexp.MustCompile(`(?i)require\(["']([^"']+)["']\)`)

	// Scripts sometimes build asset paths as bare string literals; any
	// literal ending in a known image extension counts as a reference.
	scriptImageLiteralPattern = regexp.MustCompile(`(?i)["']([^"']+\.(?:jpg|jpeg|png|gif|svg|webp))["']`)
)

// Extract pulls candidate asset references out of source content. Malformed
// input never causes an error; the absence of matches yields an empty set.
func Extract(content string, kind SourceKind) ReferenceSet {
	refs := make(ReferenceSet)
	switch kind {
	case Markup:
		for _, m := range markupAttrPattern.FindAllStringSubmatch(content, -1) {
			refs.Add(firstGroup(m))
		}
		addMatches(refs, urlPattern, content)
	case Style:
		addMatches(refs, urlPattern, content)
		addMatches(refs, styleImportPattern, content)
	case Script:
		addMatches(refs, scriptImportPattern, content)
		addMatches(refs, scriptRequirePattern, content)
		addMatches(refs, scriptImageLiteralPattern, content)
	}
	return refs
}

func addMatches(refs ReferenceSet, pattern *regexp.Regexp, content string) {
	for _, m := range pattern.FindAllStringSubmatch(content, -1) {
		refs.Add(m[1])
	}
}

// firstGroup returns the first non-empty capture group of a combined-regexp
// match. Only one sub-pattern's group is populated per match.
func firstGroup(match []string) string {
	for _, g := range match[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}
