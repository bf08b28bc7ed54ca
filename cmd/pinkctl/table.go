package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderKeyValue renders two-column rows under a key/value header. Values
// are right aligned when alignValues is set.
func renderKeyValue(key, value string, rows [][2]string, alignValues bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{key, value})
	for _, row := range rows {
		tw.AppendRow(table.Row{row[0], row[1]})
	}
	if alignValues {
		tw.SetColumnConfigs([]table.ColumnConfig{
			{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		})
	}
	return tw.Render()
}
