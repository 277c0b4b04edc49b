package eval

import (
	"LatticeDb/internal/ast"
	"LatticeDb/internal/database"
	"LatticeDb/internal/database/common"
	"fmt"
)

// Open loads the named database from the data directory into sess.
func (e *Evaluator) Open(sess *Session, name string) error {
	if err := common.ValidateDatabaseName(name); err != nil {
		return err
	}
	if !common.DatabaseExists(e.dataDir, name) {
		return database.NewError(database.ErrDatabaseNotFound, "database %s does not exist", name)
	}

	path := common.DatabaseFilePath(e.dataDir, name)
	db := database.NewDatabase(name)
	if err := db.LoadSnapshot(e.codec, path); err != nil {
		logger.Error("Failed to load database %s: %v", name, err)
		return err
	}

	sess.DB = db
	sess.Path = path
	logger.Info("Using database %s", name)
	return nil
}

func (e *Evaluator) executeCreateDatabase(stmt *ast.CreateDatabaseStatement) (*Result, error) {
	logger.Debug("Executing CREATE DATABASE statement for database: %s", stmt.Name)

	if err := common.ValidateDatabaseName(stmt.Name); err != nil {
		return nil, err
	}
	if common.DatabaseExists(e.dataDir, stmt.Name) {
		return nil, database.NewError(database.ErrDatabaseAlreadyExists, "database %s already exists", stmt.Name)
	}
	if err := common.EnsureDataDir(e.dataDir); err != nil {
		return nil, err
	}

	db := database.NewDatabase(stmt.Name)
	if err := db.SaveSnapshot(e.codec, common.DatabaseFilePath(e.dataDir, stmt.Name)); err != nil {
		logger.Error("Failed to execute CREATE DATABASE statement: %v", err)
		return nil, err
	}

	logger.Info("Created database %s", stmt.Name)
	return &Result{Message: fmt.Sprintf("Database %s created", stmt.Name)}, nil
}

func (e *Evaluator) executeUseDatabase(sess *Session, stmt *ast.UseDatabaseStatement) (*Result, error) {
	if err := e.Open(sess, stmt.Name); err != nil {
		return nil, err
	}
	return &Result{Message: "Database changed"}, nil
}

func (e *Evaluator) executeDropDatabase(sess *Session, stmt *ast.DropDatabaseStatement) (*Result, error) {
	logger.Debug("Executing DROP DATABASE statement for database: %s", stmt.Name)

	if err := common.ValidateDatabaseName(stmt.Name); err != nil {
		return nil, err
	}
	if err := common.DeleteDatabaseFile(e.dataDir, stmt.Name); err != nil {
		logger.Error("Failed to execute DROP DATABASE statement: %v", err)
		return nil, err
	}

	if sess.Path == common.DatabaseFilePath(e.dataDir, stmt.Name) {
		sess.DB = nil
		sess.Path = ""
	}

	logger.Info("Dropped database %s", stmt.Name)
	return &Result{Message: fmt.Sprintf("Database %s dropped", stmt.Name)}, nil
}

func (e *Evaluator) executeShowDatabases() (*Result, error) {
	names, err := common.ListDatabases(e.dataDir)
	if err != nil {
		return nil, err
	}

	result := &Result{Columns: []string{"Databases"}, Rows: [][]string{}}
	for _, name := range names {
		result.Rows = append(result.Rows, []string{name})
	}
	return result, nil
}
