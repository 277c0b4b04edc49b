package database

import (
	"cmp"
	"strconv"
	"strings"
)

// Join builds the inner join of t and other on t.leftCol = other.rightCol
// with a nested loop. The result schema is t's columns followed by other's;
// right-hand names already used on the left are prefixed with other's name.
// The joined table answers to "left.col" and "right.col" for every column.
func (t *Table) Join(other *Table, leftCol, rightCol string) (*Table, error) {
	left, err := t.Column(strings.TrimPrefix(leftCol, t.Name+"."))
	if err != nil {
		return nil, err
	}
	right, err := other.Column(strings.TrimPrefix(rightCol, other.Name+"."))
	if err != nil {
		return nil, err
	}
	if err := joinable(left, right); err != nil {
		return nil, err
	}

	joined := &Table{
		Name:      t.Name + "_" + other.Name,
		Data:      map[string]*ColumnData{},
		qualified: map[string]string{},
	}
	rightNames := make(map[string]string, len(other.Columns))

	for _, col := range t.Columns {
		joined.addColumn(col, col.Name)
		joined.qualified[t.Name+"."+col.Name] = col.Name
	}
	for _, col := range other.Columns {
		name := col.Name
		if _, taken := joined.Data[name]; taken {
			name = other.Name + "." + col.Name
		}
		col.IsPK = false
		joined.addColumn(col, name)
		joined.qualified[other.Name+"."+col.Name] = name
		rightNames[col.Name] = name
	}

	leftRows, err := t.Scan()
	if err != nil {
		return nil, err
	}
	rightRows, err := other.Scan()
	if err != nil {
		return nil, err
	}

	for _, l := range leftRows {
		for _, r := range rightRows {
			match, err := joinEqual(left.DataType, l[left.Name], right.DataType, r[right.Name])
			if err != nil {
				return nil, err
			}
			if !match {
				continue
			}

			for _, col := range t.Columns {
				if err := joined.Data[col.Name].Append(l[col.Name]); err != nil {
					return nil, err
				}
			}
			for _, col := range other.Columns {
				if err := joined.Data[rightNames[col.Name]].Append(r[col.Name]); err != nil {
					return nil, err
				}
			}
		}
	}
	return joined, nil
}

func (t *Table) addColumn(col ColumnAttr, name string) {
	col.Name = name
	t.Columns = append(t.Columns, col)
	// joined rows copy their sources verbatim, nulls included
	t.Data[name] = NewColumnData(col.DataType, true)
}

func joinable(left, right ColumnAttr) error {
	if left.DataType == right.DataType || (isNumeric(left.DataType) && isNumeric(right.DataType)) {
		return nil
	}
	return newError(ErrTypeMismatch, "cannot join %s column %s with %s column %s",
		left.DataType, left.Name, right.DataType, right.Name)
}

func isNumeric(d DataType) bool {
	return d == TypeInt || d == TypeFloat
}

func joinEqual(leftType DataType, l string, rightType DataType, r string) (bool, error) {
	if l == NullValue || r == NullValue {
		return false, nil
	}
	if leftType == rightType {
		order, err := compareValues(leftType, l, r)
		return order == 0, err
	}

	lf, err := strconv.ParseFloat(l, 64)
	if err != nil {
		return false, newError(ErrTypeMismatch, "cannot compare %q numerically", l)
	}
	rf, err := strconv.ParseFloat(r, 64)
	if err != nil {
		return false, newError(ErrTypeMismatch, "cannot compare %q numerically", r)
	}
	return cmp.Compare(lf, rf) == 0, nil
}
