package main

import (
	"LatticeDb/internal/interpreter/eval"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	oddRowStyle = cellStyle.Foreground(lipgloss.Color("252"))
)

// renderResult draws query results as a table and everything else as the
// server's message.
func renderResult(result *eval.Result) string {
	if !result.IsQuery() {
		return result.Message
	}
	if len(result.Rows) == 0 {
		return subtle.Render("Empty set")
	}

	rows := result.Rows
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(result.Columns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 1:
				return oddRowStyle
			default:
				return cellStyle
			}
		})

	return t.String() + "\n" + fmt.Sprintf("%d row(s) in set", len(rows))
}
