package core

import (
	"context"
)

// RenderedStatement is a statement rendered for one dialect.
type RenderedStatement struct {
	SQL  string
	Args []any
	// Confirmation is the message of the change the statement belongs to.
	Confirmation string
}

// ApplyResult reports what an Apply call did.
type ApplyResult struct {
	RunID         string
	RowsAffected  int64
	Confirmations []string
}

// MutationExecutor validates, plans, renders and executes changes against a
// database.
type MutationExecutor interface {
	// Plan renders the changes without executing them.
	Plan(ctx context.Context, changes ...Change) ([]RenderedStatement, error)

	// Apply executes every statement of every change in one transaction and
	// returns the total rows affected and the confirmation message of each
	// change.
	Apply(ctx context.Context, changes ...Change) (*ApplyResult, error)
}
