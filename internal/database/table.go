package database

import (
	"fmt"
	"strconv"
	"strings"
)

type Table struct {
	Name        string
	Columns     []ColumnAttr
	ForeignKeys []ForeignKeyAttr
	Data        map[string]*ColumnData

	// qualified maps "table.column" onto a schema column name. Only tables
	// produced by Join carry it.
	qualified map[string]string
}

// NewTable validates the schema and allocates one empty column store per
// column.
func NewTable(name string, columns []ColumnAttr, foreignKeys []ForeignKeyAttr) (*Table, error) {
	if err := validateSchema(name, columns); err != nil {
		return nil, err
	}

	t := &Table{
		Name:        name,
		Columns:     make([]ColumnAttr, len(columns)),
		ForeignKeys: append([]ForeignKeyAttr{}, foreignKeys...),
		Data:        make(map[string]*ColumnData, len(columns)),
	}
	copy(t.Columns, columns)
	for _, col := range columns {
		t.Data[col.Name] = NewColumnData(col.DataType, col.IsNullable)
	}
	return t, nil
}

func validateSchema(name string, columns []ColumnAttr) error {
	if name == "" {
		return newError(ErrInvalidSchema, "table name cannot be empty")
	}
	if len(columns) == 0 {
		return newError(ErrInvalidSchema, "table %s must have at least one column", name)
	}

	seen := make(map[string]bool, len(columns))
	for _, col := range columns {
		if col.Name == "" {
			return newError(ErrInvalidSchema, "column name cannot be empty")
		}
		if seen[col.Name] {
			return newError(ErrInvalidSchema, "duplicate column name %s", col.Name)
		}
		seen[col.Name] = true

		if col.DataType == TypeInvalid {
			return newError(ErrUnsupportedDataType, "column %s has no usable type", col.Name)
		}
		if col.Default != nil {
			probe := NewColumnData(col.DataType, col.IsNullable)
			if err := probe.Validate(*col.Default); err != nil {
				return newError(ErrInvalidSchema, "default for column %s: %v", col.Name, err)
			}
		}
	}
	return nil
}

// Column resolves name, or a table-qualified name on joined tables, to its
// schema entry.
func (t *Table) Column(name string) (ColumnAttr, error) {
	if real, ok := t.qualified[name]; ok {
		name = real
	}
	for _, col := range t.Columns {
		if col.Name == name {
			return col, nil
		}
	}
	return ColumnAttr{}, newError(ErrColumnNotFound, "column %s not found in table %s", name, t.Name)
}

func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

func (t *Table) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Data[t.Columns[0].Name].Count()
}

// CheckAlignment verifies that the store map matches the schema and that every
// column holds the same number of rows.
func (t *Table) CheckAlignment() error {
	if len(t.Data) != len(t.Columns) {
		return newError(ErrInvalidSchema, "table %s has %d stores for %d columns", t.Name, len(t.Data), len(t.Columns))
	}
	rows := t.RowCount()
	for _, col := range t.Columns {
		data, ok := t.Data[col.Name]
		if !ok {
			return newError(ErrInvalidSchema, "table %s has no store for column %s", t.Name, col.Name)
		}
		if data.Type != col.DataType {
			return newError(ErrInvalidSchema, "column %s stores %s, schema says %s", col.Name, data.Type, col.DataType)
		}
		if data.Count() != rows {
			return newError(ErrInvalidSchema, "column %s has %d rows, expected %d", col.Name, data.Count(), rows)
		}
	}
	return nil
}

// InsertRows appends rows whose values are listed in the order of columns. An
// empty columns list means every schema column in declaration order. Columns
// left out take their default. The whole batch is checked before anything is
// appended.
func (t *Table) InsertRows(columns []string, rows [][]string) (int, error) {
	if len(columns) == 0 {
		columns = t.ColumnNames()
	}

	position := make(map[string]int, len(columns))
	for i, name := range columns {
		if _, err := t.Column(name); err != nil {
			return 0, err
		}
		position[name] = i
	}

	prepared := make([][]string, len(rows))
	for r, row := range rows {
		if len(row) != len(columns) {
			return 0, newError(ErrMissingColumnValue, "row %d has %d values for %d columns", r+1, len(row), len(columns))
		}

		values := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			if p, ok := position[col.Name]; ok {
				values[i] = row[p]
			} else if col.Default != nil {
				values[i] = *col.Default
			} else {
				return 0, newError(ErrMissingColumnValue, "no value or default for column %s in row %d", col.Name, r+1)
			}

			if err := t.Data[col.Name].Validate(values[i]); err != nil {
				return 0, fmt.Errorf("column %s in row %d: %w", col.Name, r+1, err)
			}
		}
		prepared[r] = values
	}

	for _, values := range prepared {
		for i, col := range t.Columns {
			if err := t.Data[col.Name].Append(values[i]); err != nil {
				return 0, err
			}
		}
	}
	return len(prepared), nil
}

func (t *Table) Scan() ([]Row, error) {
	columns := make([][]string, len(t.Columns))
	for i, col := range t.Columns {
		values, err := t.Data[col.Name].GetAll()
		if err != nil {
			return nil, err
		}
		columns[i] = values
	}

	rows := make([]Row, t.RowCount())
	for r := range rows {
		row := make(Row, len(t.Columns))
		for i, col := range t.Columns {
			row[col.Name] = columns[i][r]
		}
		rows[r] = row
	}
	return rows, nil
}

// Filter keeps the rows matching cond, in order. A nil condition keeps them
// all.
func (t *Table) Filter(rows []Row, cond Condition) ([]Row, error) {
	if cond == nil {
		return rows, nil
	}

	evaluator := NewConditionEvaluator(t)
	kept := make([]Row, 0, len(rows))
	for _, row := range rows {
		ok, err := evaluator.Evaluate(row, cond)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, row)
		}
	}
	return kept, nil
}

// Project narrows rows to the named columns and returns the header to print
// them under. "*" expands to the schema in declaration order. Names keep
// their first-occurrence order and repeats are dropped.
func (t *Table) Project(rows []Row, projection []string) ([]string, []Row, error) {
	if len(projection) == 0 {
		projection = []string{"*"}
	}

	var header, sources []string
	seen := map[string]bool{}

	for _, name := range projection {
		if name == "*" {
			for _, col := range t.Columns {
				if !seen[col.Name] {
					seen[col.Name] = true
					header = append(header, col.Name)
					sources = append(sources, col.Name)
				}
			}
			continue
		}

		col, err := t.Column(name)
		if err != nil {
			return nil, nil, err
		}
		if seen[col.Name] {
			continue
		}
		seen[col.Name] = true
		header = append(header, name)
		sources = append(sources, col.Name)
	}

	projected := make([]Row, len(rows))
	for i, row := range rows {
		out := make(Row, len(header))
		for j, name := range header {
			out[name] = row[sources[j]]
		}
		projected[i] = out
	}
	return header, projected, nil
}

// PrimaryKey returns the single primary key column.
func (t *Table) PrimaryKey() (ColumnAttr, error) {
	var keys []ColumnAttr
	for _, col := range t.Columns {
		if col.IsPK {
			keys = append(keys, col)
		}
	}

	switch len(keys) {
	case 0:
		return ColumnAttr{}, newError(ErrNoPrimaryKey, "table %s has no primary key", t.Name)
	case 1:
		return keys[0], nil
	default:
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.Name
		}
		return ColumnAttr{}, newError(ErrAmbiguousPrimaryKey, "table %s has primary keys %s", t.Name, strings.Join(names, ", "))
	}
}

// ResolveIndices maps rows materialized from t back to storage positions.
// With a primary key the rows are matched on it; without one every column
// must match.
func (t *Table) ResolveIndices(rows []Row) ([]int, error) {
	all, err := t.Scan()
	if err != nil {
		return nil, err
	}

	pk, err := t.PrimaryKey()
	switch {
	case err == nil:
		wanted := make(map[string]bool, len(rows))
		for _, row := range rows {
			wanted[row[pk.Name]] = true
		}
		var idxs []int
		for i, row := range all {
			if wanted[row[pk.Name]] {
				idxs = append(idxs, i)
			}
		}
		return idxs, nil
	case IsCode(err, ErrNoPrimaryKey):
		wanted := make(map[string]bool, len(rows))
		for _, row := range rows {
			wanted[t.rowKey(row)] = true
		}
		var idxs []int
		for i, row := range all {
			if wanted[t.rowKey(row)] {
				idxs = append(idxs, i)
			}
		}
		return idxs, nil
	default:
		return nil, err
	}
}

// rowKey concatenates the row's values in schema order, each prefixed with
// its length, so two different rows never share a key.
func (t *Table) rowKey(row Row) string {
	var sb strings.Builder
	for _, col := range t.Columns {
		v := row[col.Name]
		sb.WriteString(strconv.Itoa(len(v)))
		sb.WriteByte(':')
		sb.WriteString(v)
	}
	return sb.String()
}

func (t *Table) UpdateAt(indices []int, column, value string) error {
	col, err := t.Column(column)
	if err != nil {
		return err
	}

	data := t.Data[col.Name]
	if err := data.Validate(value); err != nil {
		return err
	}
	for _, idx := range indices {
		if idx < 0 || idx >= data.Count() {
			return newError(ErrRowOutOfRange, "row index %d not in table %s", idx, t.Name)
		}
	}

	for _, idx := range indices {
		if err := data.Update(idx, value); err != nil {
			return err
		}
	}
	return nil
}

// DeleteAt removes the same positions from every column.
func (t *Table) DeleteAt(indices []int) error {
	rows := t.RowCount()
	for _, idx := range indices {
		if idx < 0 || idx >= rows {
			return newError(ErrRowOutOfRange, "row index %d not in table %s", idx, t.Name)
		}
	}

	for _, col := range t.Columns {
		if err := t.Data[col.Name].Remove(indices); err != nil {
			return err
		}
	}
	return nil
}
