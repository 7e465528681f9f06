package core

import (
	"context"
	"fmt"
)

// Render plans changes concurrently and renders every statement with gen.
func Render(ctx context.Context, gen StatementGenerator, caps Capabilities, changes ...Change) ([]RenderedStatement, error) {
	planned, err := PlanAll(ctx, changes, caps)
	if err != nil {
		return nil, fmt.Errorf("failed to plan changes: %w", err)
	}

	var out []RenderedStatement
	for i, stmts := range planned {
		msg := changes[i].ConfirmationMessage()
		for _, stmt := range stmts {
			query, args, err := gen.Generate(stmt)
			if err != nil {
				return nil, fmt.Errorf("failed to generate SQL for change %d: %w", i, err)
			}
			out = append(out, RenderedStatement{SQL: query, Args: args, Confirmation: msg})
		}
	}
	return out, nil
}

// ResolveArgs replaces large objects in args with their content, reading at
// most maxBytes from each. Other arguments are returned unchanged.
func ResolveArgs(args []any, maxBytes int64) ([]any, error) {
	out := make([]any, len(args))
	for i, a := range args {
		lob, ok := a.(*LargeObject)
		if !ok {
			out[i] = a
			continue
		}
		v, err := lob.Resolve(maxBytes)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

// Confirmations returns the confirmation message of each change in order.
func Confirmations(changes []Change) []string {
	msgs := make([]string, len(changes))
	for i, ch := range changes {
		msgs[i] = ch.ConfirmationMessage()
	}
	return msgs
}
