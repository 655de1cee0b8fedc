package wikitext

import (
	"regexp"
	"strings"
)

var (
	templatePattern  = regexp.MustCompile(`\{\{[^{}]*\}\}`)
	cleanLinkPattern = regexp.MustCompile(`\[\[(?:[^\[\]|]*\|)*([^\[\]|]*)\]\]`)
	pixelPattern     = regexp.MustCompile(`\d+px`)
	tagPattern       = regexp.MustCompile(`<[^<>]*>`)
)

// Clean reduces a table cell to plain display text: templates are removed,
// links become their display text, then pixel sizes, bold markers, and HTML
// tags are removed and whitespace is collapsed. Clean(Clean(s)) == Clean(s).
func Clean(cell string) string {
	for {
		next := cleanPass(cell)
		if next == cell {
			return next
		}
		cell = next
	}
}

func cleanPass(s string) string {
	s = replaceUntilStable(templatePattern, s, "")
	s = replaceUntilStable(cleanLinkPattern, s, "$1")
	s = pixelPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "'''", "")
	s = tagPattern.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// replaceUntilStable handles nesting by rewriting innermost matches first.
func replaceUntilStable(re *regexp.Regexp, s, repl string) string {
	for {
		next := re.ReplaceAllString(s, repl)
		if next == s {
			return s
		}
		s = next
	}
}
