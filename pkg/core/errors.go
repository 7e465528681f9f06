package core

import (
	"errors"
	"fmt"
)

var (
	ErrTableRequired      = errors.New("table name is required")
	ErrColumnsRequired    = errors.New("at least one column is required")
	ErrColumnNameRequired = errors.New("column name is required")

	// ErrLargeObjectInline is returned when a large object reaches literal
	// rendering. Planners route large objects to prepared statements, so this
	// indicates a caller bug.
	ErrLargeObjectInline = errors.New("large object values cannot be inlined")
	ErrLargeObjectTooBig = errors.New("large object exceeds size limit")
	ErrNoColumns         = errors.New("statement has no columns")
	ErrUnknownStatement  = errors.New("unsupported statement type")
	ErrInvalidNumber     = errors.New("invalid numeric literal")
)

// ExecError wraps a driver error raised while executing a rendered statement.
// Code is a dialect-neutral classification such as "unique_violation".
type ExecError struct {
	Code string
	SQL  string
	Err  error
}

func (e *ExecError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("execute %q: %v", e.SQL, e.Err)
	}
	return fmt.Sprintf("execute %q: %s: %v", e.SQL, e.Code, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

const (
	CodeUniqueViolation     = "unique_violation"
	CodeForeignKeyViolation = "foreign_key_violation"
	CodeNotNullViolation    = "not_null_violation"
	CodeAccessDenied        = "access_denied"
)
