package recipe

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/adityakarchi/recipe-management/internal/domain"
)

// UpdateRecipe replaces recipe id with input. In one transaction the header
// is overwritten and updated_at bumped, then every line and step is deleted
// and re-inserted exactly as CreateRecipe would. Returns domain.ErrNotFound
// when the recipe does not exist; nothing is written in that case.
func (s *Service) UpdateRecipe(ctx context.Context, id int64, input RecipeInput) (*domain.Recipe, error) {
	rec, err := s.updateRecipe(ctx, id, input)
	observe("update", err)
	return rec, err
}

func (s *Service) updateRecipe(ctx context.Context, id int64, input RecipeInput) (*domain.Recipe, error) {
	if err := input.Validate(s.cfg.MaxIngredients, s.cfg.MaxSteps); err != nil {
		return nil, err
	}

	rec := input.toRecipe()
	rec.ID = id

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.recipes.Update(txCtx, rec); err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}

		// Phase 1: clear the old children.
		if _, err := s.lines.DeleteByRecipe(txCtx, id); err != nil {
			return fmt.Errorf("clear recipe %d lines: %w", id, err)
		}
		if _, err := s.steps.DeleteByRecipe(txCtx, id); err != nil {
			return fmt.Errorf("clear recipe %d steps: %w", id, err)
		}

		// Phase 2: insert the new ones.
		if err := s.writeChildren(txCtx, rec); err != nil {
			return fmt.Errorf("update recipe %d children: %w", id, err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "recipe updated", slog.Int64("recipe_id", id))

	return rec, nil
}
