package wikitext

import "strings"

// Placeholder is stored in auxiliary fields whose source cell is missing.
const Placeholder = "—"

// Episode is one parsed table row.
type Episode struct {
	Season    string   `json:"season"`
	Index     string   `json:"index"`
	Location  string   `json:"location"`
	Locations []string `json:"locations"`
	Currency  string   `json:"currency"`
	GoldCard  string   `json:"gold_card"`
	Premiere  string   `json:"premiere"`
}

// Filter returns the episodes whose season, index, or location contains
// query, ignoring case. An empty query returns the input unchanged.
func Filter(episodes []Episode, query string) []Episode {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return episodes
	}
	out := make([]Episode, 0, len(episodes))
	for _, ep := range episodes {
		if strings.Contains(strings.ToLower(ep.Season), query) ||
			strings.Contains(strings.ToLower(ep.Index), query) ||
			strings.Contains(strings.ToLower(ep.Location), query) {
			out = append(out, ep)
		}
	}
	return out
}
