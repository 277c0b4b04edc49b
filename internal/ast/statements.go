package ast

import (
	"LatticeDb/internal/database"
)

type Statement any

// FromItem is the source of a SELECT: a single table or a join of two.
type FromItem interface {
	fromItem()
}

type TableRef struct {
	Name string
}

// JoinSpec is an inner equi-join Left.LeftColumn = Right.RightColumn.
type JoinSpec struct {
	Left        string
	Right       string
	LeftColumn  string
	RightColumn string
}

func (TableRef) fromItem() {}
func (JoinSpec) fromItem() {}

type SelectStatement struct {
	From       FromItem
	Projection []string
	Where      database.Condition
}

type InsertStatement struct {
	TableName  string
	Columns    []string
	ValueLists [][]string
}

type Assignment struct {
	Column string
	Value  string
}

type UpdateStatement struct {
	TableName   string
	Assignments []Assignment
	Where       database.Condition
}

type CreateTableStatement struct {
	TableName   string
	Columns     []database.ColumnAttr
	ForeignKeys []database.ForeignKeyAttr
}

type DeleteStatement struct {
	TableName string
	Where     database.Condition
}

type DropTableStatement struct {
	Tables []string
}

type DescribeTableStatement struct {
	TableName string
}

type ShowTablesStatement struct{}

type CreateDatabaseStatement struct {
	Name string
}

type UseDatabaseStatement struct {
	Name string
}

type DropDatabaseStatement struct {
	Name string
}

type ShowDatabasesStatement struct{}
