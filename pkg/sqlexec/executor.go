// Package sqlexec applies planned changes through database/sql. Dialect
// packages configure an Executor with their generator, capabilities and
// driver error classification.
package sqlexec

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/asaidimu/rowdsl/internal/logging"
	"github.com/asaidimu/rowdsl/pkg/core"
)

// ErrorClassifier maps a driver error to a core.Code* value, or "".
type ErrorClassifier func(err error) string

// Executor implements core.MutationExecutor for database/sql drivers.
type Executor struct {
	db        *sql.DB
	generator core.StatementGenerator
	caps      core.Capabilities
	classify  ErrorClassifier
	driver    string

	// MaxLargeObjectBytes caps the size of each large object read at bind
	// time. Zero means no limit.
	MaxLargeObjectBytes int64
}

var _ core.MutationExecutor = (*Executor)(nil)

// New creates an Executor. classify may be nil.
func New(db *sql.DB, dialect core.Dialect, classify ErrorClassifier) *Executor {
	return &Executor{
		db:        db,
		generator: core.NewGenerator(dialect),
		caps:      dialect,
		classify:  classify,
		driver:    dialect.Name(),
	}
}

// Plan renders the changes without touching the database.
func (e *Executor) Plan(ctx context.Context, changes ...core.Change) ([]core.RenderedStatement, error) {
	return core.Render(ctx, e.generator, e.caps, changes...)
}

// Apply runs every statement in a single transaction. Nothing is committed if
// any statement fails.
func (e *Executor) Apply(ctx context.Context, changes ...core.Change) (*core.ApplyResult, error) {
	runID := logging.RunID(ctx)
	if runID == "" {
		runID = uuid.NewString()
		ctx = logging.WithRunID(ctx, runID)
	}
	logger := logging.WithFields(ctx, "driver", e.driver)

	rendered, err := e.Plan(ctx, changes...)
	if err != nil {
		return nil, err
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result := &core.ApplyResult{RunID: runID}
	for _, stmt := range rendered {
		args, err := core.ResolveArgs(stmt.Args, e.MaxLargeObjectBytes)
		if err != nil {
			return nil, fmt.Errorf("failed to bind %q: %w", stmt.SQL, err)
		}

		logger.Debug("executing statement", "sql", stmt.SQL, "params", len(args))

		res, err := tx.ExecContext(ctx, stmt.SQL, args...)
		if err != nil {
			return nil, e.execError(stmt.SQL, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			result.RowsAffected += n
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	result.Confirmations = core.Confirmations(changes)
	for _, msg := range result.Confirmations {
		logger.Info(msg)
	}
	logger.Info("changeset applied", "statements", len(rendered), "rows", result.RowsAffected)
	return result, nil
}

func (e *Executor) execError(query string, err error) error {
	code := ""
	if e.classify != nil {
		code = e.classify(err)
	}
	return &core.ExecError{Code: code, SQL: query, Err: err}
}
