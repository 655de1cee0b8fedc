package main

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// tableColumn names a column and how its cells line up. Headers always
// align left.
type tableColumn struct {
	title string
	align text.Align
}

func leftColumn(title string) tableColumn { return tableColumn{title: title, align: text.AlignLeft} }

func rightColumn(title string) tableColumn { return tableColumn{title: title, align: text.AlignRight} }

// emptyCell fills blank table cells.
const emptyCell = "-"

func renderTable(columns []tableColumn, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, 0, len(columns))
	configs := make([]table.ColumnConfig, 0, len(columns))
	for i, column := range columns {
		header = append(header, column.title)
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: column.align, AlignHeader: text.AlignLeft})
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, cells := range rows {
		row := make(table.Row, len(columns))
		for i := range row {
			var cell string
			if i < len(cells) {
				cell = strings.TrimSpace(cells[i])
			}
			if cell == "" {
				cell = emptyCell
			}
			row[i] = cell
		}
		tw.AppendRow(row)
	}
	return tw.Render()
}
