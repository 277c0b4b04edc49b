package eval

import (
	"LatticeDb/internal/ast"
	"LatticeDb/internal/database"
	"LatticeDb/internal/database/serializer"
	log "LatticeDb/internal/logger"
	"LatticeDb/internal/sqlparser"
	"fmt"
)

var logger *log.Logger

type Evaluator struct {
	codec   database.SnapshotCodec
	dataDir string
}

// Session is the state one client carries between statements: the database
// in use and the snapshot file it is flushed to. A session with an empty Path
// never writes a snapshot.
type Session struct {
	DB   *database.Database
	Path string
}

func NewEvaluator(dataDir string) *Evaluator {
	return NewEvaluatorWithCodec(dataDir, serializer.NewBinarySerializer())
}

func NewEvaluatorWithCodec(dataDir string, codec database.SnapshotCodec) *Evaluator {
	logger = log.Get("interpreter")

	return &Evaluator{
		codec:   codec,
		dataDir: dataDir,
	}
}

// ExecuteSQL parses query and executes it against the session.
func (e *Evaluator) ExecuteSQL(sess *Session, query string) (*Result, error) {
	logger.Debug("Executing query: %s", query)

	stmt, err := sqlparser.Parse(query)
	if err != nil {
		logger.Error("Failed to parse query: %s with error: %s", query, err)
		return nil, &database.DBError{Code: database.ErrParseDelegation, Message: "failed to parse query", Err: err}
	}

	result, err := e.Execute(sess, stmt)
	if err != nil {
		logger.Error("Failed to execute statement: %v", err)
		return nil, err
	}

	logger.Debug("Query executed successfully")
	return result, nil
}

func (e *Evaluator) Execute(sess *Session, stmt ast.Statement) (*Result, error) {
	logger.Debug("Executing statement of type: %T", stmt)
	if sess == nil {
		sess = &Session{}
	}

	switch stmt := stmt.(type) {
	case *ast.SelectStatement:
		return e.executeSelect(sess, stmt)
	case *ast.InsertStatement:
		return e.executeInsert(sess, stmt)
	case *ast.CreateTableStatement:
		return e.executeCreateTable(sess, stmt)
	case *ast.UpdateStatement:
		return e.executeUpdate(sess, stmt)
	case *ast.DeleteStatement:
		return e.executeDelete(sess, stmt)
	case *ast.DropTableStatement:
		return e.executeDropTable(sess, stmt)
	case *ast.DescribeTableStatement:
		return e.executeDescribeTable(sess, stmt)
	case *ast.ShowTablesStatement:
		return e.executeShowTables(sess)
	case *ast.CreateDatabaseStatement:
		return e.executeCreateDatabase(stmt)
	case *ast.UseDatabaseStatement:
		return e.executeUseDatabase(sess, stmt)
	case *ast.DropDatabaseStatement:
		return e.executeDropDatabase(sess, stmt)
	case *ast.ShowDatabasesStatement:
		return e.executeShowDatabases()
	default:
		logger.Error("Unsupported statement type: %T", stmt)
		return nil, database.NewError(database.ErrParseDelegation, "unsupported statement type %T", stmt)
	}
}

func requireDatabase(sess *Session) (*database.Database, error) {
	if sess == nil || sess.DB == nil {
		return nil, database.NewError(database.ErrNoDatabaseSelected, "no database selected, run USE <name> first")
	}
	return sess.DB, nil
}

// persist flushes the whole session database after a successful mutation.
func (e *Evaluator) persist(sess *Session) error {
	if sess.Path == "" {
		return nil
	}
	if err := sess.DB.SaveSnapshot(e.codec, sess.Path); err != nil {
		logger.Error("Failed to save snapshot %s: %v", sess.Path, err)
		return fmt.Errorf("statement applied but not saved: %w", err)
	}
	logger.Debug("Saved snapshot %s", sess.Path)
	return nil
}
