package wikitext

import (
	"regexp"
	"strings"
)

var (
	sectionHeadingPattern = regexp.MustCompile(`(?m)^===[ \t]*([^=\n][^\n]*?)[ \t]*===`)
	tablePattern          = regexp.MustCompile(`(?s)\{\|.*?\|\}`)
)

const rowSeparator = "\n|-"

// Section is a level-3 heading and the text up to the next one.
type Section struct {
	Title string
	Body  string
}

// SplitSections cuts a document at "=== title ===" lines. Anything after the
// closing "===" (comments, anchors) is left to the section body. Text before
// the first heading is discarded.
func SplitSections(document string) []Section {
	matches := sectionHeadingPattern.FindAllStringSubmatchIndex(document, -1)
	sections := make([]Section, 0, len(matches))
	for i, m := range matches {
		end := len(document)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		sections = append(sections, Section{
			Title: strings.TrimSpace(document[m[2]:m[3]]),
			Body:  document[m[1]:end],
		})
	}
	return sections
}

// SplitTables returns every {| ... |} block in text, shortest match first.
func SplitTables(text string) []string {
	return tablePattern.FindAllString(text, -1)
}

// SplitRows returns the raw rows of a table, without the table-open line,
// the closing token, the remainder of each |- line, header rows, and blank
// rows.
func SplitRows(table string) []string {
	open := strings.Index(table, "\n")
	if open < 0 {
		return nil
	}
	body := strings.TrimRightFunc(table[open:], isSpace)
	body = strings.TrimSuffix(body, "|}")

	fragments := strings.Split(body, rowSeparator)
	rows := make([]string, 0, len(fragments))
	for i, fragment := range fragments {
		if i > 0 {
			// The rest of the |- line holds row attributes.
			nl := strings.Index(fragment, "\n")
			if nl < 0 {
				continue
			}
			fragment = fragment[nl+1:]
		}
		row := strings.TrimSpace(fragment)
		if row == "" || isHeaderRow(row) || isTableClose(row) {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// SplitCells splits a row on "||" and on a "|" at the start of a line. Lines
// that start with neither continue the previous cell. Cells are trimmed and
// empty ones dropped.
func SplitCells(row string) []string {
	var raw []string
	for _, line := range strings.Split(row, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "|") && !isTableClose(trimmed) {
			raw = append(raw, strings.Split(trimmed[1:], "||")...)
			continue
		}
		if len(raw) == 0 {
			raw = append(raw, line)
			continue
		}
		raw[len(raw)-1] += "\n" + line
	}

	cells := make([]string, 0, len(raw))
	for _, cell := range raw {
		cell = strings.TrimSpace(stripCellAttributes(cell))
		if cell != "" {
			cells = append(cells, cell)
		}
	}
	return cells
}

func isHeaderRow(row string) bool {
	return strings.HasPrefix(row, "!")
}

func isTableClose(row string) bool {
	return strings.HasPrefix(row, "|}")
}

// stripCellAttributes drops a leading `style="..." |` attribute block. The
// split point is the first "|" outside links and templates, and only when the
// text before it looks like attributes.
func stripCellAttributes(cell string) string {
	depth := 0
	for i := 0; i < len(cell); i++ {
		switch {
		case strings.HasPrefix(cell[i:], "[[") || strings.HasPrefix(cell[i:], "{{"):
			depth++
			i++
		case strings.HasPrefix(cell[i:], "]]") || strings.HasPrefix(cell[i:], "}}"):
			if depth > 0 {
				depth--
			}
			i++
		case cell[i] == '|' && depth == 0:
			if looksLikeAttributes(cell[:i]) {
				return cell[i+1:]
			}
			return cell
		}
	}
	return cell
}

func looksLikeAttributes(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" || !strings.Contains(text, "=") {
		return false
	}
	return !strings.ContainsAny(text, "[{'<")
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
