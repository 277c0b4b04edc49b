package serializer

import (
	db "LatticeDb/internal/database"
	"bytes"
	"fmt"
)

func (b BinarySerializer) serializeTable(buf *bytes.Buffer, table *db.Table) error {
	if err := table.CheckAlignment(); err != nil {
		return err
	}

	if err := b.writeString(buf, table.Name); err != nil {
		return err
	}

	if err := b.writeData(buf, int64(len(table.Columns))); err != nil {
		return err
	}
	for _, col := range table.Columns {
		if err := b.serializeColumnAttr(buf, col); err != nil {
			return err
		}
	}

	if err := b.writeData(buf, int64(len(table.ForeignKeys))); err != nil {
		return err
	}
	for _, fk := range table.ForeignKeys {
		for _, s := range []string{fk.Table, fk.Column, fk.RefColumn} {
			if err := b.writeString(buf, s); err != nil {
				return err
			}
		}
	}

	if err := b.writeData(buf, int64(table.RowCount())); err != nil {
		return err
	}
	for _, col := range table.Columns {
		if err := b.serializeColumnData(buf, table.Data[col.Name]); err != nil {
			return fmt.Errorf("column %s: %w", col.Name, err)
		}
	}
	return nil
}

func (b BinarySerializer) serializeColumnAttr(buf *bytes.Buffer, col db.ColumnAttr) error {
	if err := b.writeString(buf, col.Name); err != nil {
		return err
	}
	if err := b.writeData(buf, int8(col.DataType)); err != nil {
		return err
	}
	if err := b.writeData(buf, col.IsPK); err != nil {
		return err
	}
	if err := b.writeData(buf, col.IsNullable); err != nil {
		return err
	}

	if err := b.writeData(buf, col.Default != nil); err != nil {
		return err
	}
	def := ""
	if col.Default != nil {
		def = *col.Default
	}
	return b.writeString(buf, def)
}

func (b BinarySerializer) deserializeTable(buf *bytes.Reader) (*db.Table, error) {
	name, err := b.readString(buf)
	if err != nil {
		return nil, err
	}

	columnCount, err := b.readCount(buf, "column")
	if err != nil {
		return nil, err
	}
	columns := make([]db.ColumnAttr, columnCount)
	for i := range columns {
		if columns[i], err = b.deserializeColumnAttr(buf); err != nil {
			return nil, err
		}
	}

	fkCount, err := b.readCount(buf, "foreign key")
	if err != nil {
		return nil, err
	}
	fks := make([]db.ForeignKeyAttr, fkCount)
	for i := range fks {
		var parts [3]string
		for j := range parts {
			if parts[j], err = b.readString(buf); err != nil {
				return nil, err
			}
		}
		fks[i] = db.ForeignKeyAttr{Table: parts[0], Column: parts[1], RefColumn: parts[2]}
	}

	table, err := db.NewTable(name, columns, fks)
	if err != nil {
		return nil, err
	}

	rowCount, err := b.readCount(buf, "row")
	if err != nil {
		return nil, err
	}
	for _, col := range table.Columns {
		if err := b.deserializeColumnData(buf, table.Data[col.Name], rowCount); err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name, err)
		}
	}

	if err := table.CheckAlignment(); err != nil {
		return nil, err
	}
	return table, nil
}

func (b BinarySerializer) deserializeColumnAttr(buf *bytes.Reader) (db.ColumnAttr, error) {
	var col db.ColumnAttr
	var err error

	if col.Name, err = b.readString(buf); err != nil {
		return col, err
	}

	var dataType int8
	if err := b.readData(buf, &dataType); err != nil {
		return col, err
	}
	col.DataType = db.DataType(dataType)
	if col.DataType < db.TypeFloat || col.DataType >= db.TypeInvalid {
		return col, fmt.Errorf("column %s has unknown data type %d", col.Name, dataType)
	}

	if err := b.readData(buf, &col.IsPK); err != nil {
		return col, err
	}
	if err := b.readData(buf, &col.IsNullable); err != nil {
		return col, err
	}

	var hasDefault bool
	if err := b.readData(buf, &hasDefault); err != nil {
		return col, err
	}
	def, err := b.readString(buf)
	if err != nil {
		return col, err
	}
	if hasDefault {
		col.Default = db.StringPtr(def)
	}
	return col, nil
}
