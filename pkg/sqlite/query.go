package sqlite

import (
	"time"

	"github.com/asaidimu/rowdsl/pkg/core"
)

// SqliteDialect renders statements for SQLite.
type SqliteDialect struct{}

var _ core.Dialect = SqliteDialect{}

// NewSqliteQuery returns a generator for SQLite statements.
func NewSqliteQuery() *core.Generator {
	return core.NewGenerator(SqliteDialect{})
}

func quoteIdentifier(s string) string {
	return core.QuoteIdent(s, `"`)
}

func (SqliteDialect) Name() string { return "sqlite" }

// SupportsAutoIncrement is true: INTEGER PRIMARY KEY columns are assigned by
// SQLite when omitted.
func (SqliteDialect) SupportsAutoIncrement() bool { return true }

func (SqliteDialect) QuoteIdentifier(name string) string { return quoteIdentifier(name) }

func (SqliteDialect) Placeholder(int) string { return "?" }

// FormatBool writes 1/0, which every SQLite version accepts.
func (SqliteDialect) FormatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// FormatTime writes the text form SQLite's date functions understand.
func (SqliteDialect) FormatTime(t time.Time) string {
	return core.QuoteString(t.Format("2006-01-02 15:04:05.999999999-07:00"))
}
