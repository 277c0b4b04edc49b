package database

import (
	"errors"
)

// Database is a named, ordered registry of tables.
type Database struct {
	Name   string
	Tables []*Table
}

// SnapshotCodec reads and writes a whole database image.
type SnapshotCodec interface {
	WriteSnapshot(db *Database, path string) error
	ReadSnapshot(path string) (*Database, error)
}

func NewDatabase(name string) *Database {
	return &Database{Name: name, Tables: []*Table{}}
}

func (d *Database) CreateTable(table *Table) error {
	if d.HasTable(table.Name) {
		return newError(ErrTableAlreadyExists, "table %s already exists", table.Name)
	}
	d.Tables = append(d.Tables, table)
	return nil
}

func (d *Database) HasTable(name string) bool {
	_, err := d.GetTable(name)
	return err == nil
}

func (d *Database) GetTable(name string) (*Table, error) {
	for _, t := range d.Tables {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, newError(ErrTableNotFound, "table %s does not exist", name)
}

func (d *Database) TableNames() []string {
	names := make([]string, len(d.Tables))
	for i, t := range d.Tables {
		names[i] = t.Name
	}
	return names
}

// DropTables removes every named table it finds. Missing names do not stop
// the others from being dropped; they come back together in the error.
func (d *Database) DropTables(names []string) (int, error) {
	var errs []error
	dropped := 0

	for _, name := range names {
		idx := -1
		for i, t := range d.Tables {
			if t.Name == name {
				idx = i
				break
			}
		}
		if idx < 0 {
			errs = append(errs, newError(ErrTableNotFound, "table %s does not exist", name))
			continue
		}
		d.Tables = append(d.Tables[:idx], d.Tables[idx+1:]...)
		dropped++
	}

	return dropped, errors.Join(errs...)
}

func (d *Database) SaveSnapshot(codec SnapshotCodec, path string) error {
	return codec.WriteSnapshot(d, path)
}

// LoadSnapshot replaces the whole registry with the image at path.
func (d *Database) LoadSnapshot(codec SnapshotCodec, path string) error {
	loaded, err := codec.ReadSnapshot(path)
	if err != nil {
		return err
	}
	d.Name = loaded.Name
	d.Tables = loaded.Tables
	return nil
}
