package wikitext

import "strings"

// Parse extracts episode records from every table of every level-3 section
// of document, in document order.
func Parse(document string) []Episode {
	document = strings.ReplaceAll(document, "\r\n", "\n")

	var episodes []Episode
	for _, section := range SplitSections(document) {
		if strings.TrimSpace(section.Body) == "" {
			continue
		}
		for _, table := range SplitTables(section.Body) {
			for _, row := range SplitRows(table) {
				if ep, ok := ParseRow(section.Title, row); ok {
					episodes = append(episodes, ep)
				}
			}
		}
	}
	return episodes
}

// ParseRow interprets one table row. It reports false for rows with fewer
// than two cells, no index, or no location.
func ParseRow(season, row string) (Episode, bool) {
	cells := SplitCells(row)
	if len(cells) < 2 {
		return Episode{}, false
	}
	index, ok := ExtractIndex(cells)
	if !ok {
		return Episode{}, false
	}
	locations := ExtractLocations(cells)
	if len(locations) == 0 {
		return Episode{}, false
	}
	return Episode{
		Season:    season,
		Index:     index,
		Location:  strings.Join(locations, "; "),
		Locations: locations,
		Currency:  auxField(cells, 2),
		GoldCard:  auxField(cells, 3),
		Premiere:  auxField(cells, 4),
	}, true
}

func auxField(cells []string, pos int) string {
	if pos >= len(cells) {
		return Placeholder
	}
	if value := Clean(cells[pos]); value != "" {
		return value
	}
	return Placeholder
}
