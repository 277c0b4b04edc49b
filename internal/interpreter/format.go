package interpreter

import (
	"LatticeDb/internal/interpreter/eval"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// FormatResult renders a query result as an ASCII table followed by the row
// count. Other results render as their message.
func FormatResult(result *eval.Result) string {
	if result == nil {
		return ""
	}
	if !result.IsQuery() {
		return result.Message + "\n"
	}
	if len(result.Rows) == 0 {
		return "Empty set\n"
	}

	colWidths := calculateColumnWidths(result.Columns, result.Rows)

	var sb strings.Builder
	writeBorder(&sb, colWidths)
	writeRow(&sb, result.Columns, colWidths)
	writeBorder(&sb, colWidths)
	for _, row := range result.Rows {
		writeRow(&sb, row, colWidths)
	}
	writeBorder(&sb, colWidths)

	fmt.Fprintf(&sb, "%d row(s) in set\n", len(result.Rows))
	return sb.String()
}

func calculateColumnWidths(columns []string, rows [][]string) []int {
	colWidths := make([]int, len(columns))
	for i, col := range columns {
		colWidths[i] = runewidth.StringWidth(col)
		for _, row := range rows {
			if i < len(row) {
				if w := runewidth.StringWidth(row[i]); w > colWidths[i] {
					colWidths[i] = w
				}
			}
		}
	}
	return colWidths
}

func writeBorder(sb *strings.Builder, colWidths []int) {
	sb.WriteString("+")
	for _, width := range colWidths {
		sb.WriteString(strings.Repeat("-", width+2))
		sb.WriteString("+")
	}
	sb.WriteString("\n")
}

func writeRow(sb *strings.Builder, values []string, colWidths []int) {
	sb.WriteString("|")
	for i, width := range colWidths {
		val := ""
		if i < len(values) {
			val = values[i]
		}
		sb.WriteString(" ")
		sb.WriteString(runewidth.FillRight(val, width))
		sb.WriteString(" |")
	}
	sb.WriteString("\n")
}
