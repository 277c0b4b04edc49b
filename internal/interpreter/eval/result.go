package eval

import (
	"LatticeDb/internal/database"
	"fmt"
)

// Result is what every statement returns. Queries fill Columns and Rows, with
// each row in header order; everything else reports through Message.
type Result struct {
	Columns      []string   `json:"columns,omitempty"`
	Rows         [][]string `json:"rows,omitempty"`
	Message      string     `json:"message,omitempty"`
	RowsAffected int        `json:"rows_affected"`
}

func (r *Result) IsQuery() bool {
	return r.Columns != nil
}

func queryResult(header []string, rows []database.Row) *Result {
	result := &Result{Columns: header, Rows: make([][]string, len(rows))}
	for i, row := range rows {
		values := make([]string, len(header))
		for j, name := range header {
			values[j] = row[name]
		}
		result.Rows[i] = values
	}
	return result
}

func affectedResult(n int, verb string) *Result {
	return &Result{Message: fmt.Sprintf("%d row(s) %s", n, verb), RowsAffected: n}
}
