package serializer

import (
	db "LatticeDb/internal/database"
	"bytes"
	"errors"
	"fmt"
)

func (b BinarySerializer) serializeHeader(buf *bytes.Buffer) error {
	if err := b.writeData(buf, db.MagicNumber); err != nil {
		return err
	}
	return b.writeData(buf, db.CurrentVersion)
}

func (b BinarySerializer) deserializeHeader(buf *bytes.Reader) error {
	var magic uint32
	if err := b.readData(buf, &magic); err != nil {
		return err
	}
	if magic != db.MagicNumber {
		return errors.New("invalid magic number")
	}

	var version uint16
	if err := b.readData(buf, &version); err != nil {
		return err
	}
	if version != db.CurrentVersion {
		return fmt.Errorf("unsupported snapshot version %d", version)
	}
	return nil
}
