// Package step implements ordered recipe steps using PostgreSQL.
// Positions are 1-based and unique per recipe.
package step

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/adityakarchi/recipe-management/internal/adapter/postgres"
	"github.com/adityakarchi/recipe-management/internal/domain"
)

// Repo provides step persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new step repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type stepRow struct {
	RecipeID    int64  `db:"recipe_id"`
	Position    int    `db:"position"`
	Instruction string `db:"instruction"`
}

// GetByRecipeID returns the steps of a recipe ordered by position ascending.
// Returns an empty slice (not nil) when the recipe has no steps.
func (r *Repo) GetByRecipeID(ctx context.Context, recipeID int64) ([]domain.Step, error) {
	query, args, err := postgres.Psql.
		Select("recipe_id", "position", "instruction").
		From("steps").
		Where(squirrel.Eq{"recipe_id": recipeID}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get steps: %w", err)
	}

	var rows []stepRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "recipe steps", recipeID)
	}

	out := make([]domain.Step, len(rows))
	for i, row := range rows {
		out[i] = domain.Step{RecipeID: row.RecipeID, Position: row.Position, Instruction: row.Instruction}
	}
	return out, nil
}

// InsertMany inserts all steps in one multi-row statement. An empty slice is
// a no-op. A duplicate position maps to domain.ErrAlreadyExists.
func (r *Repo) InsertMany(ctx context.Context, steps []domain.Step) error {
	if len(steps) == 0 {
		return nil
	}

	b := postgres.Psql.
		Insert("steps").
		Columns("recipe_id", "position", "instruction")
	for _, s := range steps {
		b = b.Values(s.RecipeID, s.Position, s.Instruction)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build insert steps: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "recipe steps", steps[0].RecipeID)
	}
	return nil
}

// DeleteByRecipe removes every step of a recipe and reports how many rows
// were deleted. Zero is not an error.
func (r *Repo) DeleteByRecipe(ctx context.Context, recipeID int64) (int64, error) {
	query, args, err := postgres.Psql.
		Delete("steps").
		Where(squirrel.Eq{"recipe_id": recipeID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete steps: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "recipe steps", recipeID)
	}
	return tag.RowsAffected(), nil
}
