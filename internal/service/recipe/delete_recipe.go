package recipe

import (
	"context"
	"log/slog"
)

// DeleteRecipe removes a recipe; its lines and steps are removed with it.
// Dictionary entries stay. Returns domain.ErrNotFound when nothing matched.
func (s *Service) DeleteRecipe(ctx context.Context, id int64) error {
	err := s.recipes.Delete(ctx, id)
	observe("delete", err)
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "recipe deleted", slog.Int64("recipe_id", id))
	return nil
}
