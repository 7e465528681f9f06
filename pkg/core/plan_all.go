package core

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// PlanAll validates and plans changes concurrently. The result holds one
// statement list per change, in input order.
func PlanAll(ctx context.Context, changes []Change, caps Capabilities) ([][]Statement, error) {
	out := make([][]Statement, len(changes))
	g, ctx := errgroup.WithContext(ctx)
	for i, ch := range changes {
		i, ch := i, ch
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := ch.Validate(); err != nil {
				return fmt.Errorf("change %d: %w", i, err)
			}
			out[i] = ch.Statements(caps)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
