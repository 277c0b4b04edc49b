package database

import (
	"reflect"
	"testing"
)

func TestColumnAppendAndGetAll(t *testing.T) {
	cases := []struct {
		dataType DataType
		in       []string
		want     []string
	}{
		{TypeInt, []string{"1", "-42", "7"}, []string{"1", "-42", "7"}},
		{TypeFloat, []string{"1.5", "2", "0.25"}, []string{"1.5", "2", "0.25"}},
		{TypeBool, []string{"true", "FALSE", "1"}, []string{"true", "false", "true"}},
		{TypeString, []string{"a", "", "hello world"}, []string{"a", "", "hello world"}},
	}

	for _, tc := range cases {
		col := NewColumnData(tc.dataType, false)
		for _, v := range tc.in {
			if err := col.Append(v); err != nil {
				t.Fatalf("%s: failed to append %q: %v", tc.dataType, v, err)
			}
		}

		got, err := col.GetAll()
		if err != nil {
			t.Fatalf("%s: GetAll failed: %v", tc.dataType, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.dataType, got, tc.want)
		}
		if col.Count() != len(tc.in) {
			t.Errorf("%s: count %d, want %d", tc.dataType, col.Count(), len(tc.in))
		}
	}
}

func TestColumnAppendTypeMismatch(t *testing.T) {
	col := NewColumnData(TypeInt, false)
	if err := col.Append("abc"); !IsCode(err, ErrTypeMismatch) {
		t.Fatalf("expected type mismatch, got %v", err)
	}
	if col.Count() != 0 {
		t.Errorf("failed append changed the column: count %d", col.Count())
	}

	if err := col.Append(NullValue); !IsCode(err, ErrTypeMismatch) {
		t.Errorf("expected null rejected on non-nullable column, got %v", err)
	}
}

func TestColumnNulls(t *testing.T) {
	col := NewColumnData(TypeFloat, true)
	for _, v := range []string{"1.5", NullValue, "3"} {
		if err := col.Append(v); err != nil {
			t.Fatalf("append %q: %v", v, err)
		}
	}

	got, err := col.GetAll()
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	want := []string{"1.5", NullValue, "3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestColumnUpdate(t *testing.T) {
	col := NewColumnData(TypeString, false)
	for _, v := range []string{"a", "b", "c"} {
		_ = col.Append(v)
	}

	if err := col.Update(1, "z"); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got, _ := col.GetAll()
	if !reflect.DeepEqual(got, []string{"a", "z", "c"}) {
		t.Errorf("unexpected values after update: %v", got)
	}

	if err := col.Update(3, "x"); !IsCode(err, ErrRowOutOfRange) {
		t.Errorf("expected out of range error, got %v", err)
	}

	ints := NewColumnData(TypeInt, false)
	_ = ints.Append("1")
	if err := ints.Update(0, "one"); !IsCode(err, ErrTypeMismatch) {
		t.Errorf("expected type mismatch, got %v", err)
	}
	if v, _ := ints.Get(0); v != "1" {
		t.Errorf("failed update changed value to %s", v)
	}
}

func TestColumnRemoveDescending(t *testing.T) {
	col := NewColumnData(TypeInt, false)
	for _, v := range []string{"10", "11", "12", "13", "14"} {
		_ = col.Append(v)
	}

	if err := col.Remove([]int{0, 3, 3, 1}); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	got, _ := col.GetAll()
	if !reflect.DeepEqual(got, []string{"12", "14"}) {
		t.Errorf("got %v, want [12 14]", got)
	}
	if len(col.Nulls) != 2 {
		t.Errorf("null mask out of step: %d", len(col.Nulls))
	}

	if err := col.Remove([]int{5}); !IsCode(err, ErrRowOutOfRange) {
		t.Errorf("expected out of range error, got %v", err)
	}
}

func TestColumnGetByIndices(t *testing.T) {
	col := NewColumnData(TypeBool, false)
	for _, v := range []string{"true", "false", "true"} {
		_ = col.Append(v)
	}

	got, err := col.GetByIndices([]int{2, 1})
	if err != nil {
		t.Fatalf("GetByIndices failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"true", "false"}) {
		t.Errorf("got %v", got)
	}
}

func TestInvalidColumnIsAnError(t *testing.T) {
	col := NewColumnData(TypeInvalid, true)

	if err := col.Append("1"); !IsCode(err, ErrUnsupportedDataType) {
		t.Errorf("Append: expected unsupported data type, got %v", err)
	}
	if _, err := col.GetAll(); !IsCode(err, ErrUnsupportedDataType) {
		t.Errorf("GetAll: expected unsupported data type, got %v", err)
	}
	if err := col.Update(0, "1"); !IsCode(err, ErrUnsupportedDataType) {
		t.Errorf("Update: expected unsupported data type, got %v", err)
	}
	if err := col.Remove([]int{0}); !IsCode(err, ErrUnsupportedDataType) {
		t.Errorf("Remove: expected unsupported data type, got %v", err)
	}
}
