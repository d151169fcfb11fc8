package transform

import (
	"regexp"
	"strings"
)

var (
	trailingSpacePattern     = regexp.MustCompile(`[ \t]+\n`)
	innerSpaceRunPattern     = regexp.MustCompile(`  +`)
	aggressiveBlankPattern   = regexp.MustCompile(`\n{3,}`)
	conservativeBlankPattern = regexp.MustCompile(`\n{4,}`)
)

// CleanWhitespace normalizes whitespace without altering code structure:
// tabs become a fixed two-space indent, runs of two or more spaces outside
// leading indentation collapse to one, trailing spaces are removed, runs of
// blank lines collapse (to one blank line when aggressive, up to two
// otherwise) and the result ends with exactly one trailing newline.
//
// Leading indentation is preserved exactly, and the logical line count only
// changes through blank-line collapsing. The function is a fixed point:
// applying it to its own output changes nothing.
func CleanWhitespace(content string, aggressive bool) string {
	content = strings.ReplaceAll(content, "\t", "  ")
	content = trailingSpacePattern.ReplaceAllString(content, "\n")

	if aggressive {
		content = aggressiveBlankPattern.ReplaceAllString(content, "\n\n")
	} else {
		content = conservativeBlankPattern.ReplaceAllString(content, "\n\n\n")
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		indent := len(line) - len(strings.TrimLeft(line, " "))
		lines[i] = line[:indent] + innerSpaceRunPattern.ReplaceAllString(line[indent:], " ")
	}
	content = strings.Join(lines, "\n")

	return strings.TrimRight(content, " \n") + "\n"
}
