package eval

import (
	"LatticeDb/internal/ast"
	"LatticeDb/internal/database"
	"errors"
	"fmt"
	"strings"
)

func (e *Evaluator) executeSelect(sess *Session, stmt *ast.SelectStatement) (*Result, error) {
	db, err := requireDatabase(sess)
	if err != nil {
		return nil, err
	}

	source, err := e.resolveFrom(db, stmt.From)
	if err != nil {
		logger.Error("Failed to execute SELECT statement: %v", err)
		return nil, err
	}
	logger.Debug("Executing SELECT statement on table: %s", source.Name)

	rows, err := source.Scan()
	if err != nil {
		return nil, err
	}
	rows, err = source.Filter(rows, stmt.Where)
	if err != nil {
		logger.Error("Failed to execute SELECT statement: %v", err)
		return nil, err
	}
	header, rows, err := source.Project(rows, stmt.Projection)
	if err != nil {
		logger.Error("Failed to execute SELECT statement: %v", err)
		return nil, err
	}

	logger.Debug("SELECT statement executed successfully")
	return queryResult(header, rows), nil
}

// resolveFrom returns the table a SELECT reads from. Joins are materialized
// in full before filtering.
func (e *Evaluator) resolveFrom(db *database.Database, from ast.FromItem) (*database.Table, error) {
	switch from := from.(type) {
	case ast.TableRef:
		return db.GetTable(from.Name)
	case ast.JoinSpec:
		left, err := db.GetTable(from.Left)
		if err != nil {
			return nil, err
		}
		right, err := db.GetTable(from.Right)
		if err != nil {
			return nil, err
		}
		return left.Join(right, from.LeftColumn, from.RightColumn)
	default:
		return nil, database.NewError(database.ErrParseDelegation, "unsupported FROM clause %T", from)
	}
}

func (e *Evaluator) executeInsert(sess *Session, stmt *ast.InsertStatement) (*Result, error) {
	logger.Debug("Executing INSERT statement on table: %s", stmt.TableName)

	db, err := requireDatabase(sess)
	if err != nil {
		return nil, err
	}
	table, err := db.GetTable(stmt.TableName)
	if err != nil {
		return nil, err
	}

	n, err := table.InsertRows(stmt.Columns, stmt.ValueLists)
	if err != nil {
		logger.Error("Failed to execute INSERT statement: %v", err)
		return nil, err
	}
	if err := e.persist(sess); err != nil {
		return nil, err
	}

	logger.Debug("INSERT statement executed successfully")
	return affectedResult(n, "inserted"), nil
}

func (e *Evaluator) executeCreateTable(sess *Session, stmt *ast.CreateTableStatement) (*Result, error) {
	logger.Debug("Executing CREATE TABLE statement for table: %s", stmt.TableName)

	db, err := requireDatabase(sess)
	if err != nil {
		return nil, err
	}
	if db.HasTable(stmt.TableName) {
		return nil, database.NewError(database.ErrTableAlreadyExists, "table %s already exists", stmt.TableName)
	}

	table, err := database.NewTable(stmt.TableName, stmt.Columns, stmt.ForeignKeys)
	if err != nil {
		logger.Error("Failed to execute CREATE TABLE statement: %v", err)
		return nil, err
	}
	if err := db.CreateTable(table); err != nil {
		return nil, err
	}
	if err := e.persist(sess); err != nil {
		return nil, err
	}

	logger.Debug("CREATE TABLE statement executed successfully")
	return &Result{Message: fmt.Sprintf("Table %s created", table.Name)}, nil
}

// executeUpdate needs exactly one primary key: matching rows are mapped back
// to storage positions through their key values. Every assignment is checked
// before the first write.
func (e *Evaluator) executeUpdate(sess *Session, stmt *ast.UpdateStatement) (*Result, error) {
	logger.Debug("Executing UPDATE statement on table: %s", stmt.TableName)

	db, err := requireDatabase(sess)
	if err != nil {
		return nil, err
	}
	table, err := db.GetTable(stmt.TableName)
	if err != nil {
		return nil, err
	}
	if _, err := table.PrimaryKey(); err != nil {
		return nil, err
	}

	for _, a := range stmt.Assignments {
		col, err := table.Column(a.Column)
		if err != nil {
			return nil, err
		}
		if err := table.Data[col.Name].Validate(a.Value); err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name, err)
		}
	}

	rows, err := table.Scan()
	if err != nil {
		return nil, err
	}
	matched, err := table.Filter(rows, stmt.Where)
	if err != nil {
		logger.Error("Failed to execute UPDATE statement: %v", err)
		return nil, err
	}
	indices, err := table.ResolveIndices(matched)
	if err != nil {
		return nil, err
	}
	if len(indices) == 0 {
		return affectedResult(0, "updated"), nil
	}

	for _, a := range stmt.Assignments {
		if err := table.UpdateAt(indices, a.Column, a.Value); err != nil {
			logger.Error("Failed to execute UPDATE statement: %v", err)
			return nil, err
		}
	}
	if err := e.persist(sess); err != nil {
		return nil, err
	}

	logger.Debug("UPDATE statement executed successfully")
	return affectedResult(len(indices), "updated"), nil
}

func (e *Evaluator) executeDelete(sess *Session, stmt *ast.DeleteStatement) (*Result, error) {
	logger.Debug("Executing DELETE statement on table: %s", stmt.TableName)

	db, err := requireDatabase(sess)
	if err != nil {
		return nil, err
	}
	table, err := db.GetTable(stmt.TableName)
	if err != nil {
		return nil, err
	}

	rows, err := table.Scan()
	if err != nil {
		return nil, err
	}
	matched, err := table.Filter(rows, stmt.Where)
	if err != nil {
		logger.Error("Failed to execute DELETE statement: %v", err)
		return nil, err
	}
	indices, err := table.ResolveIndices(matched)
	if err != nil {
		return nil, err
	}
	if len(indices) == 0 {
		return affectedResult(0, "deleted"), nil
	}

	if err := table.DeleteAt(indices); err != nil {
		logger.Error("Failed to execute DELETE statement: %v", err)
		return nil, err
	}
	if err := e.persist(sess); err != nil {
		return nil, err
	}

	logger.Debug("DELETE statement executed successfully")
	return affectedResult(len(indices), "deleted"), nil
}

// executeDropTable drops what it can. When some names are missing the rest
// are still dropped and saved, and the missing ones are reported.
func (e *Evaluator) executeDropTable(sess *Session, stmt *ast.DropTableStatement) (*Result, error) {
	logger.Debug("Executing DROP TABLE statement for tables: %s", strings.Join(stmt.Tables, ", "))

	db, err := requireDatabase(sess)
	if err != nil {
		return nil, err
	}

	dropped, dropErr := db.DropTables(stmt.Tables)
	if dropped > 0 {
		if err := e.persist(sess); err != nil {
			return nil, errors.Join(dropErr, err)
		}
	}
	if dropErr != nil {
		logger.Error("Failed to execute DROP TABLE statement: %v", dropErr)
		return nil, fmt.Errorf("dropped %d of %d tables: %w", dropped, len(stmt.Tables), dropErr)
	}

	logger.Debug("DROP TABLE statement executed successfully")
	return &Result{Message: fmt.Sprintf("%d table(s) dropped", dropped), RowsAffected: dropped}, nil
}

func (e *Evaluator) executeDescribeTable(sess *Session, stmt *ast.DescribeTableStatement) (*Result, error) {
	logger.Debug("Executing DESCRIBE TABLE statement for table: %s", stmt.TableName)

	db, err := requireDatabase(sess)
	if err != nil {
		return nil, err
	}
	table, err := db.GetTable(stmt.TableName)
	if err != nil {
		return nil, err
	}

	result := &Result{Columns: []string{"Field", "Type", "Null", "Primary Key", "Default"}}
	for _, col := range table.Columns {
		def := ""
		if col.Default != nil {
			def = *col.Default
		}
		result.Rows = append(result.Rows, []string{
			col.Name,
			col.DataType.String(),
			yesNo(col.IsNullable),
			yesNo(col.IsPK),
			def,
		})
	}
	return result, nil
}

func (e *Evaluator) executeShowTables(sess *Session) (*Result, error) {
	db, err := requireDatabase(sess)
	if err != nil {
		return nil, err
	}

	result := &Result{Columns: []string{"Tables_in_" + db.Name}, Rows: [][]string{}}
	for _, name := range db.TableNames() {
		result.Rows = append(result.Rows, []string{name})
	}
	return result, nil
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
