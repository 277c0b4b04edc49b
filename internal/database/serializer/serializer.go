package serializer

import (
	db "LatticeDb/internal/database"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// snapshot file structure:
// Header:
// 1. Magic Number
// 2. Version
// Database:
// 1. name
// 2. table count
// 3. tables
// Table:
// 1. name
// 2. column count, columns
// 3. foreign key count, foreign keys
// 4. row count
// 5. per column: null mask, then values

type BinarySerializer struct{}

func NewBinarySerializer() *BinarySerializer {
	return &BinarySerializer{}
}

var errTruncated = errors.New("unexpected end of snapshot")

func (b BinarySerializer) writeData(buf *bytes.Buffer, data any) error {
	return binary.Write(buf, binary.LittleEndian, data)
}

func (b BinarySerializer) readData(buf *bytes.Reader, data any) error {
	if err := binary.Read(buf, binary.LittleEndian, data); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return errTruncated
		}
		return err
	}
	return nil
}

func (b BinarySerializer) writeString(buf *bytes.Buffer, s string) error {
	strBytes := []byte(s)
	if len(strBytes) > 0xFFFF {
		return fmt.Errorf("name %.16q... is longer than %d bytes", s, 0xFFFF)
	}
	if err := b.writeData(buf, uint16(len(strBytes))); err != nil {
		return err
	}
	_, err := buf.Write(strBytes)
	return err
}

func (b BinarySerializer) readString(buf *bytes.Reader) (string, error) {
	var length uint16
	if err := b.readData(buf, &length); err != nil {
		return "", err
	}
	return b.readBytes(buf, int64(length))
}

func (b BinarySerializer) readBytes(buf *bytes.Reader, length int64) (string, error) {
	if length > int64(buf.Len()) {
		return "", errTruncated
	}
	strBytes := make([]byte, length)
	if _, err := io.ReadFull(buf, strBytes); err != nil {
		return "", errTruncated
	}
	return string(strBytes), nil
}

// readCount reads an int64 count and rejects values that cannot possibly fit
// in what is left of the snapshot.
func (b BinarySerializer) readCount(buf *bytes.Reader, what string) (int, error) {
	var count int64
	if err := b.readData(buf, &count); err != nil {
		return 0, err
	}
	if count < 0 || count > int64(buf.Len()) {
		return 0, fmt.Errorf("%s count %d out of range", what, count)
	}
	return int(count), nil
}

func (b BinarySerializer) SerializeDatabase(database *db.Database) ([]byte, error) {
	buf := new(bytes.Buffer)

	if err := b.serializeHeader(buf); err != nil {
		return nil, err
	}
	if err := b.writeString(buf, database.Name); err != nil {
		return nil, err
	}
	if err := b.writeData(buf, int64(len(database.Tables))); err != nil {
		return nil, err
	}
	for _, table := range database.Tables {
		if err := b.serializeTable(buf, table); err != nil {
			return nil, fmt.Errorf("table %s: %w", table.Name, err)
		}
	}

	return buf.Bytes(), nil
}

func (b BinarySerializer) DeserializeDatabase(data []byte) (*db.Database, error) {
	buf := bytes.NewReader(data)

	if err := b.deserializeHeader(buf); err != nil {
		return nil, err
	}

	name, err := b.readString(buf)
	if err != nil {
		return nil, err
	}
	tableCount, err := b.readCount(buf, "table")
	if err != nil {
		return nil, err
	}

	database := db.NewDatabase(name)
	for i := 0; i < tableCount; i++ {
		table, err := b.deserializeTable(buf)
		if err != nil {
			return nil, fmt.Errorf("table %d: %w", i+1, err)
		}
		if err := database.CreateTable(table); err != nil {
			return nil, err
		}
	}

	if buf.Len() != 0 {
		return nil, fmt.Errorf("%d trailing bytes after last table", buf.Len())
	}
	return database, nil
}

// WriteSnapshot encodes database and replaces path with it. The image goes to
// a temporary file next to path first, so a failed write never leaves a
// half-written snapshot behind.
func (b BinarySerializer) WriteSnapshot(database *db.Database, path string) error {
	data, err := b.SerializeDatabase(database)
	if err != nil {
		return db.PersistenceError(db.OpWrite, path, err)
	}

	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")

	if err := os.WriteFile(tmp, data, 0666); err != nil {
		return db.PersistenceError(db.OpWrite, path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return db.PersistenceError(db.OpWrite, path, err)
	}
	return nil
}

func (b BinarySerializer) ReadSnapshot(path string) (*db.Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, db.PersistenceError(db.OpRead, path, err)
	}

	database, err := b.DeserializeDatabase(data)
	if err != nil {
		return nil, db.PersistenceError(db.OpDecode, path, err)
	}
	return database, nil
}
