package serializer

import (
	db "LatticeDb/internal/database"
	"bytes"
	"errors"
	"fmt"
	"math"
)

// serializeColumnData writes the null mask followed by one value per row.
// Null cells still take their slot, holding the zero value.
func (b BinarySerializer) serializeColumnData(buf *bytes.Buffer, data *db.ColumnData) error {
	for _, null := range data.Nulls {
		if err := b.writeData(buf, null); err != nil {
			return err
		}
	}

	switch data.Type {
	case db.TypeInt:
		return b.writeData(buf, data.Ints)
	case db.TypeFloat:
		return b.writeData(buf, data.Floats)
	case db.TypeBool:
		return b.writeData(buf, data.Bools)
	case db.TypeString:
		for _, s := range data.Strings {
			if uint64(len(s)) > math.MaxUint32 {
				return errors.New("string value too long")
			}
			if err := b.writeData(buf, uint32(len(s))); err != nil {
				return err
			}
			if _, err := buf.WriteString(s); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported data type %s", data.Type)
	}
}

func (b BinarySerializer) deserializeColumnData(buf *bytes.Reader, data *db.ColumnData, rows int) error {
	nulls := make([]bool, rows)
	if err := b.readData(buf, nulls); err != nil {
		return err
	}
	for _, null := range nulls {
		if null && !data.Nullable {
			return errors.New("null value in non-nullable column")
		}
	}
	data.Nulls = nulls

	switch data.Type {
	case db.TypeInt:
		data.Ints = make([]int64, rows)
		return b.readData(buf, data.Ints)
	case db.TypeFloat:
		data.Floats = make([]float64, rows)
		return b.readData(buf, data.Floats)
	case db.TypeBool:
		data.Bools = make([]bool, rows)
		return b.readData(buf, data.Bools)
	case db.TypeString:
		data.Strings = make([]string, rows)
		for i := range data.Strings {
			var length uint32
			if err := b.readData(buf, &length); err != nil {
				return err
			}
			s, err := b.readBytes(buf, int64(length))
			if err != nil {
				return err
			}
			data.Strings[i] = s
		}
		return nil
	default:
		return fmt.Errorf("unsupported data type %s", data.Type)
	}
}
