package transform

import (
	"regexp"
	"strings"
)

var (
	whitespaceRunPattern = regexp.MustCompile(`\s+`)
	cssPunctPattern      = regexp.MustCompile(`\s*([{}:;,])\s*`)
	jsPunctPattern       = regexp.MustCompile(`\s*([{}();,])\s*`)
	interTagPattern      = regexp.MustCompile(`>\s+<`)
)

// MinifyCSS strips insignificant whitespace from a stylesheet. The content
// is validated first; anything that does not look like parseable CSS is
// returned unchanged.
func MinifyCSS(content string) string {
	if !balanced(content, '{', '}') {
		return content
	}
	minified := whitespaceRunPattern.ReplaceAllString(content, " ")
	minified = cssPunctPattern.ReplaceAllString(minified, "$1")
	return strings.TrimSpace(minified)
}

// MinifyJS collapses whitespace in a script. Comments are stripped again
// defensively in case the comment pass was disabled. Content with
// unbalanced braces or parens is returned unchanged.
func MinifyJS(content string) string {
	if !balanced(content, '{', '}') || !balanced(content, '(', ')') {
		return content
	}
	minified := blockCommentPattern.ReplaceAllString(content, "")
	minified = lineCommentPattern.ReplaceAllString(minified, "")
	minified = whitespaceRunPattern.ReplaceAllString(minified, " ")
	minified = jsPunctPattern.ReplaceAllString(minified, "$1")
	return strings.TrimSpace(minified)
}

// MinifyHTML strips comments (preserving conditional comments), collapses
// whitespace runs and removes whitespace between adjacent tags.
func MinifyHTML(content string) string {
	minified := stripHTMLComments(content)
	minified = whitespaceRunPattern.ReplaceAllString(minified, " ")
	minified = interTagPattern.ReplaceAllString(minified, "><")
	return strings.TrimSpace(minified)
}

// balanced reports whether opening and closing occur equally often and no
// closing ever precedes its opening. A cheap stand-in for parse validation.
func balanced(content string, opening, closing byte) bool {
	depth := 0
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case opening:
			depth++
		case closing:
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}
