package transform

import (
	"regexp"
	"strings"
)

var (
	blockCommentPattern = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentPattern  = regexp.MustCompile(`//[^\n]*`)
	htmlCommentPattern  = regexp.MustCompile(`(?s)<!--.*?-->`)
)

// conditionalCommentPrefix marks Internet Explorer conditional comments,
// which carry semantic meaning for legacy rendering engines and must
// survive comment stripping.
const conditionalCommentPrefix = "<!--[if"

// StripComments removes comments from content according to the syntax
// family of the given file extension (without the leading dot). Unknown
// extensions are returned unchanged.
func StripComments(content, ext string) string {
	switch ext {
	case "js", "jsx", "ts", "tsx", "mjs":
		content = blockCommentPattern.ReplaceAllString(content, "")
		content = lineCommentPattern.ReplaceAllString(content, "")
	case "css":
		content = blockCommentPattern.ReplaceAllString(content, "")
	case "html", "htm":
		content = stripHTMLComments(content)
	case "py":
		content = stripPythonComments(content)
	}
	return content
}

func stripHTMLComments(content string) string {
	return htmlCommentPattern.ReplaceAllStringFunc(content, func(comment string) string {
		if strings.HasPrefix(comment, conditionalCommentPrefix) {
			return comment
		}
		return ""
	})
}

// stripPythonComments drops # comments and docstring blocks. Docstring
// tracking is line-based: a line containing a quote-triple toggles the
// inside-docstring state, and every line of the block (delimiters included)
// is dropped.
func stripPythonComments(content string) string {
	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	inDocstring := false

	for _, line := range lines {
		if strings.Contains(line, `"""`) || strings.Contains(line, "'''") {
			inDocstring = !inDocstring
			continue
		}
		if inDocstring {
			continue
		}
		if i := strings.Index(line, "#"); i >= 0 {
			code := strings.TrimRight(line[:i], " \t")
			if strings.TrimSpace(code) != "" {
				cleaned = append(cleaned, code)
			}
			continue
		}
		cleaned = append(cleaned, line)
	}
	return strings.Join(cleaned, "\n")
}
