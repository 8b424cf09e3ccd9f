package recipe

import (
	"context"
	"fmt"

	"github.com/adityakarchi/recipe-management/internal/domain"
)

// GetRecipe returns the full aggregate: header, lines with dictionary names
// and steps ordered by position. All three reads share one snapshot, so a
// concurrent update is seen either entirely or not at all.
func (s *Service) GetRecipe(ctx context.Context, id int64) (*domain.Recipe, error) {
	var rec *domain.Recipe

	err := s.tx.RunInReadTx(ctx, func(txCtx context.Context) error {
		header, err := s.recipes.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		lines, err := s.lines.GetByRecipeID(txCtx, id)
		if err != nil {
			return fmt.Errorf("get recipe %d lines: %w", id, err)
		}

		steps, err := s.steps.GetByRecipeID(txCtx, id)
		if err != nil {
			return fmt.Errorf("get recipe %d steps: %w", id, err)
		}

		header.Ingredients = lines
		header.Steps = steps
		rec = header
		return nil
	})
	observe("get", err)
	if err != nil {
		return nil, err
	}

	return rec, nil
}
