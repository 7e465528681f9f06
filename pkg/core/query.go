package core

import "time"

// Dialect describes how a database product spells identifiers, placeholders
// and literals.
type Dialect interface {
	Capabilities
	Name() string
	QuoteIdentifier(name string) string
	// Placeholder returns the parameter marker for the n-th argument, from 1.
	Placeholder(n int) string
	FormatBool(b bool) string
	FormatTime(t time.Time) string
}

// EmptyInsertDialect is implemented by dialects that do not accept
// INSERT ... DEFAULT VALUES.
type EmptyInsertDialect interface {
	EmptyInsert(qualifiedTable string) string
}

// StatementGenerator renders a planned statement into SQL text and the
// arguments to bind to it.
type StatementGenerator interface {
	Generate(stmt Statement) (string, []any, error)
}
