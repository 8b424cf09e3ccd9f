package recipe

import (
	"context"
	"fmt"

	"github.com/adityakarchi/recipe-management/internal/domain"
)

// ListRecipes returns header summaries, most recently updated first.
func (s *Service) ListRecipes(ctx context.Context) ([]domain.RecipeSummary, error) {
	list, err := s.recipes.List(ctx)
	observe("list", err)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return list, nil
}

// ListIngredients returns the whole ingredient dictionary ordered by name.
func (s *Service) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	list, err := s.ingredients.List(ctx)
	observe("list_ingredients", err)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return list, nil
}
