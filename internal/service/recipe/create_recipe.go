package recipe

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/adityakarchi/recipe-management/internal/domain"
)

// CreateRecipe validates input and persists the header, ingredient lines and
// steps in one transaction. Any failure rolls back all of them.
func (s *Service) CreateRecipe(ctx context.Context, input RecipeInput) (*domain.Recipe, error) {
	rec, err := s.createRecipe(ctx, input)
	observe("create", err)
	return rec, err
}

func (s *Service) createRecipe(ctx context.Context, input RecipeInput) (*domain.Recipe, error) {
	if err := input.Validate(s.cfg.MaxIngredients, s.cfg.MaxSteps); err != nil {
		return nil, err
	}

	rec := input.toRecipe()

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.recipes.Create(txCtx, rec); err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}
		if err := s.writeChildren(txCtx, rec); err != nil {
			return fmt.Errorf("create recipe %d children: %w", rec.ID, err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "recipe created",
		slog.Int64("recipe_id", rec.ID),
		slog.Int("ingredients", len(rec.Ingredients)),
		slog.Int("steps", len(rec.Steps)),
	)

	return rec, nil
}
