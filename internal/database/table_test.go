package database

import (
	"reflect"
	"testing"
)

func usersTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable("users", []ColumnAttr{
		{Name: "id", DataType: TypeInt, IsPK: true},
		{Name: "name", DataType: TypeString},
		{Name: "age", DataType: TypeInt, IsNullable: true, Default: StringPtr(NullValue)},
	}, nil)
	if err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}
	return table
}

func TestNewTableRejectsBadSchemas(t *testing.T) {
	cases := []struct {
		name    string
		table   string
		columns []ColumnAttr
		code    ErrorCode
	}{
		{"no columns", "t", nil, ErrInvalidSchema},
		{"empty name", "", []ColumnAttr{{Name: "a", DataType: TypeInt}}, ErrInvalidSchema},
		{"duplicate column", "t", []ColumnAttr{{Name: "a", DataType: TypeInt}, {Name: "a", DataType: TypeString}}, ErrInvalidSchema},
		{"invalid type", "t", []ColumnAttr{{Name: "a", DataType: TypeInvalid}}, ErrUnsupportedDataType},
		{"bad default", "t", []ColumnAttr{{Name: "a", DataType: TypeInt, Default: StringPtr("x")}}, ErrInvalidSchema},
		{"null default on not null", "t", []ColumnAttr{{Name: "a", DataType: TypeInt, Default: StringPtr(NullValue)}}, ErrInvalidSchema},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewTable(tc.table, tc.columns, nil); !IsCode(err, tc.code) {
				t.Errorf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestInsertAndScan(t *testing.T) {
	table := usersTable(t)

	n, err := table.InsertRows(nil, [][]string{{"1", "Alice", "30"}, {"2", "Bob", NullValue}})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if n != 2 {
		t.Errorf("inserted %d rows, want 2", n)
	}

	n, err = table.InsertRows([]string{"name", "id"}, [][]string{{"Carol", "3"}})
	if err != nil {
		t.Fatalf("insert with column list failed: %v", err)
	}
	if n != 1 {
		t.Errorf("inserted %d rows, want 1", n)
	}

	rows, err := table.Scan()
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	want := []Row{
		{"id": "1", "name": "Alice", "age": "30"},
		{"id": "2", "name": "Bob", "age": NullValue},
		{"id": "3", "name": "Carol", "age": NullValue},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("got %v, want %v", rows, want)
	}
	if err := table.CheckAlignment(); err != nil {
		t.Errorf("table misaligned after insert: %v", err)
	}
}

func TestInsertIsAllOrNothing(t *testing.T) {
	table := usersTable(t)

	_, err := table.InsertRows(nil, [][]string{{"1", "Alice", "30"}, {"two", "Bob", "40"}})
	if !IsCode(err, ErrTypeMismatch) {
		t.Fatalf("expected type mismatch, got %v", err)
	}
	if table.RowCount() != 0 {
		t.Errorf("failed insert left %d rows behind", table.RowCount())
	}

	if _, err := table.InsertRows([]string{"age"}, [][]string{{"3"}}); !IsCode(err, ErrMissingColumnValue) {
		t.Errorf("expected missing column value, got %v", err)
	}
	if _, err := table.InsertRows(nil, [][]string{{"1", "Alice"}}); !IsCode(err, ErrMissingColumnValue) {
		t.Errorf("expected missing column value for short row, got %v", err)
	}
	if _, err := table.InsertRows([]string{"email"}, [][]string{{"x"}}); !IsCode(err, ErrColumnNotFound) {
		t.Errorf("expected column not found, got %v", err)
	}
	if table.RowCount() != 0 {
		t.Errorf("table changed by rejected inserts: %d rows", table.RowCount())
	}
}

func TestFilterAges(t *testing.T) {
	table, err := NewTable("t", []ColumnAttr{{Name: "age", DataType: TypeInt}}, nil)
	if err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}
	if _, err := table.InsertRows(nil, [][]string{{"5"}, {"15"}, {"50"}, {"70"}}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	rows, _ := table.Scan()
	cond := &Logical{
		Left:  cmpCond("age", OpGt, "10"),
		Op:    OpAnd,
		Right: cmpCond("age", OpLt, "60"),
	}
	kept, err := table.Filter(rows, cond)
	if err != nil {
		t.Fatalf("filter failed: %v", err)
	}

	want := []Row{{"age": "15"}, {"age": "50"}}
	if !reflect.DeepEqual(kept, want) {
		t.Errorf("got %v, want %v", kept, want)
	}

	all, _ := table.Filter(rows, nil)
	if len(all) != 4 {
		t.Errorf("nil condition kept %d rows, want 4", len(all))
	}
}

func TestProject(t *testing.T) {
	table := usersTable(t)
	_, _ = table.InsertRows(nil, [][]string{{"1", "Alice", "30"}})
	rows, _ := table.Scan()

	header, projected, err := table.Project(rows, []string{"*"})
	if err != nil {
		t.Fatalf("project failed: %v", err)
	}
	if !reflect.DeepEqual(header, []string{"id", "name", "age"}) {
		t.Errorf("star expanded to %v", header)
	}
	if !reflect.DeepEqual(projected[0], rows[0]) {
		t.Errorf("star projection changed the row: %v", projected[0])
	}

	header, projected, err = table.Project(rows, []string{"name", "id", "name"})
	if err != nil {
		t.Fatalf("project failed: %v", err)
	}
	if !reflect.DeepEqual(header, []string{"name", "id"}) {
		t.Errorf("got header %v", header)
	}
	if !reflect.DeepEqual(projected[0], Row{"name": "Alice", "id": "1"}) {
		t.Errorf("got row %v", projected[0])
	}

	if _, _, err := table.Project(rows, []string{"email"}); !IsCode(err, ErrColumnNotFound) {
		t.Errorf("expected column not found, got %v", err)
	}
}

func TestPrimaryKey(t *testing.T) {
	pk, err := usersTable(t).PrimaryKey()
	if err != nil || pk.Name != "id" {
		t.Fatalf("got %v, %v", pk, err)
	}

	noPK, _ := NewTable("t", []ColumnAttr{{Name: "a", DataType: TypeInt}}, nil)
	if _, err := noPK.PrimaryKey(); !IsCode(err, ErrNoPrimaryKey) {
		t.Errorf("expected no primary key, got %v", err)
	}

	twoPK, _ := NewTable("t", []ColumnAttr{
		{Name: "a", DataType: TypeInt, IsPK: true},
		{Name: "b", DataType: TypeInt, IsPK: true},
	}, nil)
	if _, err := twoPK.PrimaryKey(); !IsCode(err, ErrAmbiguousPrimaryKey) {
		t.Errorf("expected ambiguous primary key, got %v", err)
	}
}

func TestUpdateThenSelect(t *testing.T) {
	table := usersTable(t)
	_, _ = table.InsertRows(nil, [][]string{{"1", "Alice", "30"}, {"2", "Bob", "40"}})

	rows, _ := table.Scan()
	matched, _ := table.Filter(rows, cmpCond("id", OpEq, "2"))
	idxs, err := table.ResolveIndices(matched)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !reflect.DeepEqual(idxs, []int{1}) {
		t.Fatalf("resolved %v, want [1]", idxs)
	}

	if err := table.UpdateAt(idxs, "name", "Robert"); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	rows, _ = table.Scan()
	matched, _ = table.Filter(rows, cmpCond("id", OpEq, "2"))
	_, projected, _ := table.Project(matched, []string{"name"})
	if len(projected) != 1 || projected[0]["name"] != "Robert" {
		t.Errorf("got %v after update", projected)
	}

	if err := table.UpdateAt(idxs, "age", "old"); !IsCode(err, ErrTypeMismatch) {
		t.Errorf("expected type mismatch, got %v", err)
	}
	if err := table.UpdateAt([]int{5}, "name", "x"); !IsCode(err, ErrRowOutOfRange) {
		t.Errorf("expected out of range, got %v", err)
	}
}

func TestResolveIndicesWithoutPrimaryKey(t *testing.T) {
	table, _ := NewTable("log", []ColumnAttr{
		{Name: "a", DataType: TypeString},
		{Name: "b", DataType: TypeString},
	}, nil)
	_, _ = table.InsertRows(nil, [][]string{{"x", "y"}, {"xy", ""}, {"x", "y"}, {"z", "y"}})

	idxs, err := table.ResolveIndices([]Row{{"a": "x", "b": "y"}})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !reflect.DeepEqual(idxs, []int{0, 2}) {
		t.Errorf("got %v, want [0 2]", idxs)
	}
}

func TestDeleteAt(t *testing.T) {
	table := usersTable(t)
	_, _ = table.InsertRows(nil, [][]string{{"1", "a", "1"}, {"2", "b", "2"}, {"3", "c", "3"}, {"4", "d", "4"}})

	if err := table.DeleteAt([]int{0, 2}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	rows, _ := table.Scan()
	want := []Row{
		{"id": "2", "name": "b", "age": "2"},
		{"id": "4", "name": "d", "age": "4"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("got %v, want %v", rows, want)
	}

	if err := table.DeleteAt([]int{2}); !IsCode(err, ErrRowOutOfRange) {
		t.Errorf("expected out of range, got %v", err)
	}
	if table.RowCount() != 2 {
		t.Errorf("rejected delete changed the table")
	}
}
