// Package wikitext turns the episode list of a wiki page into Episode records.
//
// Parsing is a chain of pure stages: SplitSections cuts the document at
// level-3 headings, SplitTables lifts every {| ... |} block out of a section,
// SplitRows and SplitCells break a table down to trimmed cell text. Row
// interpretation (episode index, location labels, auxiliary columns) is done
// by small extractors that can be tested on their own. Rows that do not yield
// both an index and a location are dropped silently; irregular markup is the
// normal case for these pages, not an error.
//
// Clean reduces a cell to display text and is idempotent.
package wikitext
