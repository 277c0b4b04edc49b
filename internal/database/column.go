package database

import (
	"cmp"
	"slices"
	"strconv"
)

// ColumnData is the storage of one column. Exactly one of the typed slices is
// used, selected by Type, and Nulls runs parallel to it.
type ColumnData struct {
	Type     DataType
	Nullable bool
	Ints     []int64
	Floats   []float64
	Bools    []bool
	Strings  []string
	Nulls    []bool
}

type cell struct {
	i    int64
	f    float64
	b    bool
	s    string
	null bool
}

func NewColumnData(dataType DataType, nullable bool) *ColumnData {
	c := &ColumnData{Type: dataType, Nullable: nullable, Nulls: []bool{}}
	switch dataType {
	case TypeInt:
		c.Ints = []int64{}
	case TypeFloat:
		c.Floats = []float64{}
	case TypeBool:
		c.Bools = []bool{}
	case TypeString:
		c.Strings = []string{}
	}
	return c
}

func (c *ColumnData) parse(value string) (cell, error) {
	if c.Type == TypeInvalid {
		return cell{}, newError(ErrUnsupportedDataType, "column has no usable type")
	}

	if value == NullValue {
		if !c.Nullable {
			return cell{}, newError(ErrTypeMismatch, "null value in non-nullable %s column", c.Type)
		}
		return cell{null: true}, nil
	}

	v, err := parseCell(c.Type, value)
	if err != nil {
		return cell{}, err
	}
	return v, nil
}

func parseCell(dataType DataType, value string) (cell, error) {
	var v cell
	var err error
	switch dataType {
	case TypeInt:
		v.i, err = strconv.ParseInt(value, 10, 64)
	case TypeFloat:
		v.f, err = strconv.ParseFloat(value, 64)
	case TypeBool:
		v.b, err = strconv.ParseBool(value)
	case TypeString:
		v.s = value
	default:
		return v, newError(ErrUnsupportedDataType, "cannot parse %q as %s", value, dataType)
	}
	if err != nil {
		return v, newError(ErrTypeMismatch, "cannot parse %q as %s", value, dataType)
	}
	return v, nil
}

// Validate parse-checks value without touching the column.
func (c *ColumnData) Validate(value string) error {
	_, err := c.parse(value)
	return err
}

func (c *ColumnData) Append(value string) error {
	v, err := c.parse(value)
	if err != nil {
		return err
	}

	c.Nulls = append(c.Nulls, v.null)
	switch c.Type {
	case TypeInt:
		c.Ints = append(c.Ints, v.i)
	case TypeFloat:
		c.Floats = append(c.Floats, v.f)
	case TypeBool:
		c.Bools = append(c.Bools, v.b)
	case TypeString:
		c.Strings = append(c.Strings, v.s)
	}
	return nil
}

func (c *ColumnData) Update(idx int, value string) error {
	if err := c.checkIndex(idx); err != nil {
		return err
	}
	v, err := c.parse(value)
	if err != nil {
		return err
	}

	c.Nulls[idx] = v.null
	switch c.Type {
	case TypeInt:
		c.Ints[idx] = v.i
	case TypeFloat:
		c.Floats[idx] = v.f
	case TypeBool:
		c.Bools[idx] = v.b
	case TypeString:
		c.Strings[idx] = v.s
	}
	return nil
}

func (c *ColumnData) Get(idx int) (string, error) {
	if err := c.checkIndex(idx); err != nil {
		return "", err
	}
	if c.Nulls[idx] {
		return NullValue, nil
	}

	switch c.Type {
	case TypeInt:
		return strconv.FormatInt(c.Ints[idx], 10), nil
	case TypeFloat:
		return strconv.FormatFloat(c.Floats[idx], 'f', -1, 64), nil
	case TypeBool:
		return strconv.FormatBool(c.Bools[idx]), nil
	default:
		return c.Strings[idx], nil
	}
}

func (c *ColumnData) GetAll() ([]string, error) {
	if c.Type == TypeInvalid {
		return nil, newError(ErrUnsupportedDataType, "column has no usable type")
	}
	values := make([]string, c.Count())
	for i := range values {
		v, err := c.Get(i)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func (c *ColumnData) GetByIndices(idxs []int) ([]string, error) {
	values := make([]string, 0, len(idxs))
	for _, idx := range idxs {
		v, err := c.Get(idx)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// Remove deletes the given positions. Indices are taken in descending order so
// each removal leaves the positions still to be removed untouched.
func (c *ColumnData) Remove(idxs []int) error {
	for _, idx := range idxs {
		if err := c.checkIndex(idx); err != nil {
			return err
		}
	}

	sorted := slices.Clone(idxs)
	slices.SortFunc(sorted, func(a, b int) int { return cmp.Compare(b, a) })
	sorted = slices.Compact(sorted)

	for _, idx := range sorted {
		c.Nulls = slices.Delete(c.Nulls, idx, idx+1)
		switch c.Type {
		case TypeInt:
			c.Ints = slices.Delete(c.Ints, idx, idx+1)
		case TypeFloat:
			c.Floats = slices.Delete(c.Floats, idx, idx+1)
		case TypeBool:
			c.Bools = slices.Delete(c.Bools, idx, idx+1)
		case TypeString:
			c.Strings = slices.Delete(c.Strings, idx, idx+1)
		}
	}
	return nil
}

func (c *ColumnData) Count() int {
	return len(c.Nulls)
}

func (c *ColumnData) checkIndex(idx int) error {
	if c.Type == TypeInvalid {
		return newError(ErrUnsupportedDataType, "column has no usable type")
	}
	if idx < 0 || idx >= c.Count() {
		return newError(ErrRowOutOfRange, "row index %d not in [0, %d)", idx, c.Count())
	}
	return nil
}

// compareValues orders two rendered values under the native ordering of
// dataType. Both sides must be non-null.
func compareValues(dataType DataType, left, right string) (int, error) {
	l, err := parseCell(dataType, left)
	if err != nil {
		return 0, err
	}
	r, err := parseCell(dataType, right)
	if err != nil {
		return 0, err
	}

	switch dataType {
	case TypeInt:
		return cmp.Compare(l.i, r.i), nil
	case TypeFloat:
		return cmp.Compare(l.f, r.f), nil
	case TypeBool:
		return compareBool(l.b, r.b), nil
	default:
		return cmp.Compare(l.s, r.s), nil
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
