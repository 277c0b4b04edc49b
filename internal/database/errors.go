package database

import (
	"errors"
	"fmt"
)

type ErrorCode int

const (
	ErrParseDelegation ErrorCode = iota
	ErrTableNotFound
	ErrTableAlreadyExists
	ErrColumnNotFound
	ErrTypeMismatch
	ErrMissingColumnValue
	ErrNoPrimaryKey
	ErrAmbiguousPrimaryKey
	ErrUnsupportedOperator
	ErrUnsupportedDataType
	ErrInvalidSchema
	ErrPersistence
	ErrNoDatabaseSelected
	ErrDatabaseNotFound
	ErrDatabaseAlreadyExists
	ErrRowOutOfRange
)

// Persistence operations carried in DBError.Op.
const (
	OpRead   = "read"
	OpWrite  = "write"
	OpDecode = "decode"
)

type DBError struct {
	Code    ErrorCode
	Op      string
	Message string
	Err     error
}

func (e *DBError) Error() string {
	msg := e.Code.String()
	if e.Op != "" {
		msg += " (" + e.Op + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DBError) Unwrap() error {
	return e.Err
}

// Is matches any *DBError with the same code, so callers can write
// errors.Is(err, &DBError{Code: ErrTableNotFound}).
func (e *DBError) Is(target error) bool {
	t, ok := target.(*DBError)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Op == "" || t.Op == e.Op)
}

func newError(code ErrorCode, format string, args ...any) *DBError {
	return &DBError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewError builds a DBError for packages outside the engine.
func NewError(code ErrorCode, format string, args ...any) *DBError {
	return newError(code, format, args...)
}

// PersistenceError wraps an I/O or decoding failure of a snapshot file.
func PersistenceError(op, path string, err error) *DBError {
	return &DBError{Code: ErrPersistence, Op: op, Message: path, Err: err}
}

// IsCode reports whether any error in err's chain is a DBError with code.
func IsCode(err error, code ErrorCode) bool {
	return errors.Is(err, &DBError{Code: code})
}

func (c ErrorCode) String() string {
	switch c {
	case ErrParseDelegation:
		return "parse error"
	case ErrTableNotFound:
		return "table not found"
	case ErrTableAlreadyExists:
		return "table already exists"
	case ErrColumnNotFound:
		return "column not found"
	case ErrTypeMismatch:
		return "type mismatch"
	case ErrMissingColumnValue:
		return "missing column value"
	case ErrNoPrimaryKey:
		return "no primary key"
	case ErrAmbiguousPrimaryKey:
		return "ambiguous primary key"
	case ErrUnsupportedOperator:
		return "unsupported operator"
	case ErrUnsupportedDataType:
		return "unsupported data type"
	case ErrInvalidSchema:
		return "invalid schema"
	case ErrPersistence:
		return "persistence error"
	case ErrNoDatabaseSelected:
		return "no database selected"
	case ErrDatabaseNotFound:
		return "database not found"
	case ErrDatabaseAlreadyExists:
		return "database already exists"
	case ErrRowOutOfRange:
		return "row index out of range"
	default:
		return "unknown error"
	}
}
