package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/asaidimu/rowdsl/pkg/core"
	"github.com/asaidimu/rowdsl/pkg/sqlexec"
)

// NewSqliteExecutor creates an executor that applies changes to db.
func NewSqliteExecutor(db *sql.DB) *sqlexec.Executor {
	return sqlexec.New(db, SqliteDialect{}, classifyError)
}

// Open opens and pings a SQLite database. Driver options such as
// _foreign_keys=on go in the DSN query string.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func classifyError(err error) string {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return ""
	}
	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return core.CodeUniqueViolation
	case sqlite3.ErrConstraintForeignKey:
		return core.CodeForeignKeyViolation
	case sqlite3.ErrConstraintNotNull:
		return core.CodeNotNullViolation
	}
	if sqliteErr.Code == sqlite3.ErrAuth || sqliteErr.Code == sqlite3.ErrPerm {
		return core.CodeAccessDenied
	}
	return ""
}
