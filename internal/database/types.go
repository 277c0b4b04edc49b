package database

import "strings"

type DataType int8

const (
	TypeFloat DataType = iota
	TypeInt
	TypeBool
	TypeString
	TypeInvalid
)

const MagicNumber uint32 = 0x4C544442
const CurrentVersion uint16 = 1

const (
	DatabaseDir   = "data"
	FileExtension = ".bin"
)

// NullValue is how a null cell is written on the way in and rendered on the
// way out.
const NullValue = "NULL"

// Row is a materialized view of one table row keyed by column name.
type Row map[string]string

type ColumnAttr struct {
	Name       string
	DataType   DataType
	IsPK       bool
	IsNullable bool
	Default    *string
}

// ForeignKeyAttr is kept with the schema and persisted, never enforced.
type ForeignKeyAttr struct {
	Table     string
	Column    string
	RefColumn string
}

// ParseDataType maps a SQL type name onto the column types the engine
// stores. Anything unrecognised is TypeInvalid.
func ParseDataType(name string) DataType {
	switch strings.ToLower(name) {
	case "float", "double", "real":
		return TypeFloat
	case "int", "integer", "bigint":
		return TypeInt
	case "bool", "boolean":
		return TypeBool
	case "string", "text", "varchar", "char":
		return TypeString
	default:
		return TypeInvalid
	}
}

func (d DataType) String() string {
	switch d {
	case TypeFloat:
		return "float"
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	default:
		return "null"
	}
}

// StringPtr is a helper for literal defaults and comparison values.
func StringPtr(s string) *string {
	return &s
}
