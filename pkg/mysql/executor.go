// Package mysql applies planned changes to MySQL through database/sql and
// go-sql-driver/mysql.
package mysql

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/asaidimu/rowdsl/pkg/core"
	"github.com/asaidimu/rowdsl/pkg/sqlexec"
)

// MySQL server error numbers.
const (
	errDBAccessDenied     = 1044
	errAccessDenied       = 1045
	errBadNull            = 1048
	errDupEntry           = 1062
	errTableAccessDenied  = 1142
	errColumnAccessDenied = 1143
	errRowIsReferenced    = 1451
	errNoReferencedRow    = 1452
)

// NewExecutor creates an executor that applies changes to db.
func NewExecutor(db *sql.DB) *sqlexec.Executor {
	return sqlexec.New(db, Dialect{}, classifyError)
}

// ConnConfig holds the parts of a MySQL connection.
type ConnConfig struct {
	User     string
	Password string
	Addr     string
	DBName   string
}

// BuildDSN returns a driver DSN for c. Times are parsed into time.Time and
// interpreted as UTC.
func BuildDSN(c ConnConfig) string {
	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = c.Addr
	cfg.DBName = c.DBName
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// Open opens and pings a MySQL database.
func Open(dsn string) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connector: %w", err)
	}
	db := sql.OpenDB(connector)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func classifyError(err error) string {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return ""
	}
	switch mysqlErr.Number {
	case errDupEntry:
		return core.CodeUniqueViolation
	case errRowIsReferenced, errNoReferencedRow:
		return core.CodeForeignKeyViolation
	case errBadNull:
		return core.CodeNotNullViolation
	case errDBAccessDenied, errAccessDenied, errTableAccessDenied, errColumnAccessDenied:
		return core.CodeAccessDenied
	}
	return ""
}
