package sqlparser

import (
	"LatticeDb/internal/ast"
	"LatticeDb/internal/database"
	"reflect"
	"strings"
	"testing"
)

func cmp(column string, op database.Operator, value string) *database.Comparison {
	return &database.Comparison{Column: column, Op: op, Value: database.StringPtr(value)}
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		sql  string
		want ast.Statement
	}{
		{
			"CREATE TABLE users (id int PRIMARY KEY, name string(100) NOT NULL, age int DEFAULT 18, score float NULL)",
			&ast.CreateTableStatement{
				TableName: "users",
				Columns: []database.ColumnAttr{
					{Name: "id", DataType: database.TypeInt, IsPK: true},
					{Name: "name", DataType: database.TypeString},
					{Name: "age", DataType: database.TypeInt, IsNullable: true, Default: database.StringPtr("18")},
					{Name: "score", DataType: database.TypeFloat, IsNullable: true},
				},
			},
		},
		{
			"create table orders (oid integer primary key, user_id int, FOREIGN KEY (user_id) REFERENCES users(id));",
			&ast.CreateTableStatement{
				TableName: "orders",
				Columns: []database.ColumnAttr{
					{Name: "oid", DataType: database.TypeInt, IsPK: true},
					{Name: "user_id", DataType: database.TypeInt, IsNullable: true},
				},
				ForeignKeys: []database.ForeignKeyAttr{{Table: "users", Column: "user_id", RefColumn: "id"}},
			},
		},
		{
			"INSERT INTO users VALUES (1, 'Alice', 30, 1.5), (2, 'Bob', NULL, -2)",
			&ast.InsertStatement{
				TableName:  "users",
				ValueLists: [][]string{{"1", "Alice", "30", "1.5"}, {"2", "Bob", database.NullValue, "-2"}},
			},
		},
		{
			"INSERT INTO flags (id, on) VALUES (1, TRUE)",
			nil,
		},
		{
			"INSERT INTO flags (id, active) VALUES (1, TRUE)",
			&ast.InsertStatement{
				TableName:  "flags",
				Columns:    []string{"id", "active"},
				ValueLists: [][]string{{"1", "true"}},
			},
		},
		{
			"SELECT * FROM users",
			&ast.SelectStatement{From: ast.TableRef{Name: "users"}, Projection: []string{"*"}},
		},
		{
			"SELECT name, id FROM users WHERE age > 10 AND age < 60",
			&ast.SelectStatement{
				From:       ast.TableRef{Name: "users"},
				Projection: []string{"name", "id"},
				Where: &database.Logical{
					Left:  cmp("age", database.OpGt, "10"),
					Op:    database.OpAnd,
					Right: cmp("age", database.OpLt, "60"),
				},
			},
		},
		{
			"SELECT A.id, y FROM A INNER JOIN B ON A.id = B.id",
			&ast.SelectStatement{
				From:       ast.JoinSpec{Left: "A", Right: "B", LeftColumn: "A.id", RightColumn: "B.id"},
				Projection: []string{"A.id", "y"},
			},
		},
		{
			"SELECT * FROM A JOIN B ON B.aid = A.id WHERE B.y LIKE 'p%'",
			&ast.SelectStatement{
				From:       ast.JoinSpec{Left: "A", Right: "B", LeftColumn: "A.id", RightColumn: "B.aid"},
				Projection: []string{"*"},
				Where:      &database.Comparison{Column: "B.y", Op: database.OpLike, Value: database.StringPtr("p%")},
			},
		},
		{
			"UPDATE users SET name = 'Robert', age = 41 WHERE id = 2",
			&ast.UpdateStatement{
				TableName: "users",
				Assignments: []ast.Assignment{
					{Column: "name", Value: "Robert"},
					{Column: "age", Value: "41"},
				},
				Where: cmp("id", database.OpEq, "2"),
			},
		},
		{
			"UPDATE users SET active = false",
			&ast.UpdateStatement{
				TableName:   "users",
				Assignments: []ast.Assignment{{Column: "active", Value: "false"}},
			},
		},
		{
			"DELETE FROM users WHERE name IS NULL",
			&ast.DeleteStatement{
				TableName: "users",
				Where:     &database.Comparison{Column: "name", Op: database.OpIsNull},
			},
		},
		{"DELETE FROM users", &ast.DeleteStatement{TableName: "users"}},
		{"DROP TABLE a, b, c", &ast.DropTableStatement{Tables: []string{"a", "b", "c"}}},
		{"DESCRIBE users", &ast.DescribeTableStatement{TableName: "users"}},
		{"desc users;", &ast.DescribeTableStatement{TableName: "users"}},
		{"SHOW TABLES", &ast.ShowTablesStatement{}},
		{"SHOW DATABASES;", &ast.ShowDatabasesStatement{}},
		{"CREATE DATABASE shop", &ast.CreateDatabaseStatement{Name: "shop"}},
		{"USE shop", &ast.UseDatabaseStatement{Name: "shop"}},
		{"DROP DATABASE shop", &ast.DropDatabaseStatement{Name: "shop"}},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			got, err := Parse(tt.sql)
			if tt.want == nil {
				if err == nil {
					t.Fatalf("expected error, got %#v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got  %#v\nwant %#v", got, tt.want)
			}
		})
	}
}

func TestConditionPrecedence(t *testing.T) {
	stmt, err := Parse("SELECT * FROM t WHERE a = 1 OR b = 2 AND c = 3")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := &database.Logical{
		Left: cmp("a", database.OpEq, "1"),
		Op:   database.OpOr,
		Right: &database.Logical{
			Left:  cmp("b", database.OpEq, "2"),
			Op:    database.OpAnd,
			Right: cmp("c", database.OpEq, "3"),
		},
	}
	if got := stmt.(*ast.SelectStatement).Where; !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v", got)
	}

	stmt, err = Parse("SELECT * FROM t WHERE (a = 1 OR b = 2) AND c = 3")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want = &database.Logical{
		Left: &database.Logical{
			Left:  cmp("a", database.OpEq, "1"),
			Op:    database.OpOr,
			Right: cmp("b", database.OpEq, "2"),
		},
		Op:    database.OpAnd,
		Right: cmp("c", database.OpEq, "3"),
	}
	if got := stmt.(*ast.SelectStatement).Where; !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		sql     string
		message string
	}{
		{"", "empty statement"},
		{"SELEC * FROM t", "expected statement"},
		{"SELECT FROM t", "expected column list or *"},
		{"SELECT * users", "expected from"},
		{"SELECT * FROM t WHERE", "expected column name"},
		{"SELECT * FROM t WHERE a", "expected comparison operator"},
		{"SELECT * FROM t WHERE a = b", "expected literal value"},
		{"SELECT * FROM t WHERE (a = 1", "expected )"},
		{"SELECT * FROM t extra", "after end of statement"},
		{"SELECT * FROM a INNER b", "expected join"},
		{"INSERT INTO t VALUES (1, 'x'", "expected )"},
		{"CREATE TABLE t ()", "expected column definition"},
		{"CREATE TABLE t (a)", "expected data type"},
		{"CREATE INDEX i", "expected table or database"},
		{"UPDATE t SET", "expected column name"},
		{"DROP TABLE", "expected table name"},
		{"SHOW USERS", "expected tables or databases"},
		{"SELECT * FROM t WHERE a = 'open", "illegal input"},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			_, err := Parse(tt.sql)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.message)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.message)
			}
		})
	}
}
