package common

import (
	"LatticeDb/internal/database"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
)

// ValidateDatabaseName accepts identifiers only, so a name can never escape
// the data directory.
func ValidateDatabaseName(name string) error {
	if name == "" {
		return database.NewError(database.ErrInvalidSchema, "database name cannot be empty")
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return database.NewError(database.ErrInvalidSchema, "invalid database name %q", name)
	}
	return nil
}

// DatabaseFilePath returns the snapshot path of a database.
// The returned path follows the pattern: dataDir/name.bin
func DatabaseFilePath(dataDir, name string) string {
	return filepath.Join(dataDir, name+database.FileExtension)
}

func DatabaseExists(dataDir, name string) bool {
	info, err := os.Stat(DatabaseFilePath(dataDir, name))
	return err == nil && !info.IsDir()
}

// ListDatabases returns the sorted names of every snapshot in dataDir. A
// missing directory holds no databases.
func ListDatabases(dataDir string) ([]string, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, database.PersistenceError(database.OpRead, dataDir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		name, ok := strings.CutSuffix(entry.Name(), database.FileExtension)
		if !ok || ValidateDatabaseName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// DeleteDatabaseFile removes a database snapshot.
// This operation is irreversible.
func DeleteDatabaseFile(dataDir, name string) error {
	path := DatabaseFilePath(dataDir, name)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return database.NewError(database.ErrDatabaseNotFound, "database %s does not exist", name)
		}
		return database.PersistenceError(database.OpWrite, path, err)
	}
	return nil
}

// EnsureDataDir creates the data directory and any parents if needed.
func EnsureDataDir(dataDir string) error {
	if dataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}
	if err := ensureDirectoryExists(dataDir); err != nil {
		return database.PersistenceError(database.OpWrite, dataDir, err)
	}
	return nil
}

// ensureDirectoryExists creates a directory and any necessary parent directories.
// If the directory already exists, it returns nil.
func ensureDirectoryExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0700); err != nil {
			return err
		}
	}
	return nil
}
