package mysql

import (
	"time"

	"github.com/asaidimu/rowdsl/pkg/core"
)

// Dialect renders statements for MySQL and MariaDB.
type Dialect struct{}

var (
	_ core.Dialect            = Dialect{}
	_ core.EmptyInsertDialect = Dialect{}
)

func (Dialect) Name() string { return "mysql" }

// SupportsAutoIncrement is true: AUTO_INCREMENT columns are assigned when
// omitted.
func (Dialect) SupportsAutoIncrement() bool { return true }

func (Dialect) QuoteIdentifier(name string) string { return core.QuoteIdent(name, "`") }

func (Dialect) Placeholder(int) string { return "?" }

func (Dialect) FormatBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

// FormatTime writes a DATETIME literal in UTC; MySQL has no zone in its
// literal syntax.
func (Dialect) FormatTime(t time.Time) string {
	return core.QuoteString(t.UTC().Format("2006-01-02 15:04:05.999999"))
}

// EmptyInsert is used instead of DEFAULT VALUES, which MySQL rejects.
func (Dialect) EmptyInsert(table string) string {
	return "INSERT INTO " + table + " () VALUES ()"
}
