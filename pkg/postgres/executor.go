// Package postgres applies planned changes to PostgreSQL through pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/asaidimu/rowdsl/internal/logging"
	"github.com/asaidimu/rowdsl/pkg/core"
)

// Beginner starts transactions. *pgxpool.Pool and *pgx.Conn satisfy it.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Executor implements core.MutationExecutor for PostgreSQL.
type Executor struct {
	db        Beginner
	generator core.StatementGenerator

	// MaxLargeObjectBytes caps the size of each large object read at bind
	// time. Zero means no limit.
	MaxLargeObjectBytes int64
}

var _ core.MutationExecutor = (*Executor)(nil)

func NewExecutor(db Beginner) *Executor {
	return &Executor{
		db:        db,
		generator: core.NewGenerator(Dialect{}),
	}
}

// Connect opens a pool for url and verifies it with a ping.
func Connect(ctx context.Context, url string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

func (e *Executor) Plan(ctx context.Context, changes ...core.Change) ([]core.RenderedStatement, error) {
	return core.Render(ctx, e.generator, Dialect{}, changes...)
}

// Apply runs every statement in a single transaction.
func (e *Executor) Apply(ctx context.Context, changes ...core.Change) (*core.ApplyResult, error) {
	runID := logging.RunID(ctx)
	if runID == "" {
		runID = uuid.NewString()
		ctx = logging.WithRunID(ctx, runID)
	}
	logger := logging.WithFields(ctx, "driver", "postgres")

	rendered, err := e.Plan(ctx, changes...)
	if err != nil {
		return nil, err
	}

	tx, err := e.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result := &core.ApplyResult{RunID: runID}
	for _, stmt := range rendered {
		args, err := core.ResolveArgs(stmt.Args, e.MaxLargeObjectBytes)
		if err != nil {
			return nil, fmt.Errorf("failed to bind %q: %w", stmt.SQL, err)
		}

		logger.Debug("executing statement", "sql", stmt.SQL, "params", len(args))

		tag, err := tx.Exec(ctx, stmt.SQL, args...)
		if err != nil {
			return nil, &core.ExecError{Code: classifyError(err), SQL: stmt.SQL, Err: err}
		}
		result.RowsAffected += tag.RowsAffected()
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	result.Confirmations = core.Confirmations(changes)
	for _, msg := range result.Confirmations {
		logger.Info(msg)
	}
	logger.Info("changeset applied", "statements", len(rendered), "rows", result.RowsAffected)
	return result, nil
}

// SQLSTATE codes, see the PostgreSQL errcodes appendix.
const (
	sqlstateNotNull      = "23502"
	sqlstateForeignKey   = "23503"
	sqlstateUnique       = "23505"
	sqlstateInsufficient = "42501"
)

func classifyError(err error) string {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return ""
	}
	switch pgErr.Code {
	case sqlstateUnique:
		return core.CodeUniqueViolation
	case sqlstateForeignKey:
		return core.CodeForeignKeyViolation
	case sqlstateNotNull:
		return core.CodeNotNullViolation
	case sqlstateInsufficient:
		return core.CodeAccessDenied
	}
	return ""
}
