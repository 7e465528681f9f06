package postgres

import (
	"strconv"
	"time"

	"github.com/asaidimu/rowdsl/pkg/core"
)

// Dialect renders statements for PostgreSQL.
type Dialect struct{}

var _ core.Dialect = Dialect{}

func (Dialect) Name() string { return "postgres" }

// SupportsAutoIncrement is true: serial and identity columns are filled by
// the database when omitted.
func (Dialect) SupportsAutoIncrement() bool { return true }

func (Dialect) QuoteIdentifier(name string) string { return core.QuoteIdent(name, `"`) }

func (Dialect) Placeholder(n int) string { return "$" + strconv.Itoa(n) }

func (Dialect) FormatBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func (Dialect) FormatTime(t time.Time) string {
	return core.QuoteString(t.Format("2006-01-02 15:04:05.999999-07:00"))
}
