package wikitext

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	boldIndexPattern    = regexp.MustCompile(`'''([^']+)'''`)
	numericIndexPattern = regexp.MustCompile(`\d+(?:\s*\(\d+\))?`)
	flagPattern         = regexp.MustCompile(`\{\{\s*(?:[Фф]лаг|[Ff]lag)\s*\|\s*([^}|]+)`)
	linkPattern         = regexp.MustCompile(`\[\[([^|\]]+)(?:\|([^\]]*))?\]\]`)
	sizeTokenPattern    = regexp.MustCompile(`(?i)^\d+(?:x\d+)?px$`)
	trailingParenthesis = regexp.MustCompile(`\s*\([^()]*\)\s*$`)
)

var fileLinkPrefixes = []string{"файл:", "file:", "image:", "изображение:", "категория:", "category:"}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".svg", ".webp", ".tif", ".tiff"}

// BoldIndex returns the first '''bold''' span in text, trimmed.
func BoldIndex(text string) (string, bool) {
	m := boldIndexPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	idx := strings.TrimSpace(m[1])
	return idx, idx != ""
}

// NumericIndex returns the first "N" or "N (M)" run in text.
func NumericIndex(text string) (string, bool) {
	m := numericIndexPattern.FindString(text)
	return m, m != ""
}

// ExtractIndex finds the episode index of a row: a bold span anywhere in the
// row, else numbering in the first cell.
func ExtractIndex(cells []string) (string, bool) {
	if len(cells) == 0 {
		return "", false
	}
	if idx, ok := BoldIndex(strings.Join(cells, " ")); ok {
		return idx, true
	}
	return NumericIndex(cells[0])
}

// FlagTokens returns the country argument of every {{Флаг|X}} template.
func FlagTokens(cell string) []string {
	matches := flagPattern.FindAllStringSubmatch(cell, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if token := strings.TrimSpace(m[1]); token != "" {
			out = append(out, token)
		}
	}
	return out
}

// LinkNames returns the display name of every wiki link in cell, skipping
// file and category links, image size tokens, image file names, and names
// shorter than two characters.
func LinkNames(cell string) []string {
	matches := linkPattern.FindAllStringSubmatch(cell, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		target := strings.TrimSpace(m[1])
		if IsFileReference(target) {
			continue
		}
		name := linkDisplayName(target, m[2])
		if name == "" || utf8.RuneCountInString(name) < 2 {
			continue
		}
		if IsSizeToken(name) || HasImageExtension(name) {
			continue
		}
		out = append(out, name)
	}
	return out
}

func linkDisplayName(target, display string) string {
	if display != "" {
		parts := strings.Split(display, "|")
		return strings.TrimSpace(parts[len(parts)-1])
	}
	if hash := strings.Index(target, "#"); hash >= 0 {
		target = target[:hash]
	}
	return strings.TrimSpace(target)
}

// IsFileReference reports whether a link target points at a file, image, or
// category page.
func IsFileReference(target string) bool {
	lower := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(target), ":"))
	for _, prefix := range fileLinkPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// IsSizeToken reports whether name is an image size annotation like "20px".
func IsSizeToken(name string) bool {
	return sizeTokenPattern.MatchString(strings.TrimSpace(name))
}

// HasImageExtension reports whether name ends in a common image extension.
func HasImageExtension(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// StripParenthetical removes a trailing "(...)" disambiguator.
func StripParenthetical(name string) string {
	stripped := strings.TrimSpace(trailingParenthesis.ReplaceAllString(name, ""))
	if stripped == "" {
		return strings.TrimSpace(name)
	}
	return stripped
}

// CellLocation builds the location label of one cell. The last link name is
// the place; the first flag, or the first link name when there are several,
// qualifies it as "Qualifier: Place".
func CellLocation(cell string) (string, bool) {
	names := LinkNames(cell)
	if len(names) == 0 {
		return "", false
	}
	city := StripParenthetical(names[len(names)-1])

	var qualifier string
	if flags := FlagTokens(cell); len(flags) > 0 {
		qualifier = flags[0]
	} else if len(names) > 1 {
		qualifier = names[0]
	}

	if qualifier != "" && !strings.EqualFold(qualifier, city) {
		return qualifier + ": " + city, true
	}
	return city, true
}

// ExtractLocations returns the distinct location labels of the cells after
// the index cell, in first-seen order.
func ExtractLocations(cells []string) []string {
	if len(cells) < 2 {
		return nil
	}
	var out []string
	seen := make(map[string]struct{})
	for _, cell := range cells[1:] {
		label, ok := CellLocation(cell)
		if !ok {
			continue
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return out
}
