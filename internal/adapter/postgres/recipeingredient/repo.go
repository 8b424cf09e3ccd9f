// Package recipeingredient implements the recipe to ingredient link rows,
// which carry the recipe-specific quantity and unit.
package recipeingredient

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/adityakarchi/recipe-management/internal/adapter/postgres"
	"github.com/adityakarchi/recipe-management/internal/domain"
)

// Repo provides ingredient line persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new recipe ingredient line repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type lineRow struct {
	RecipeID     int64   `db:"recipe_id"`
	IngredientID int64   `db:"ingredient_id"`
	Name         string  `db:"name"`
	Quantity     string  `db:"quantity"`
	Unit         *string `db:"unit"`
	Position     int     `db:"position"`
}

// GetByRecipeID returns the lines of a recipe joined with dictionary names,
// in the order they were saved. Returns an empty slice (not nil) when the
// recipe has no lines.
func (r *Repo) GetByRecipeID(ctx context.Context, recipeID int64) ([]domain.IngredientLine, error) {
	query, args, err := postgres.Psql.
		Select("ri.recipe_id", "ri.ingredient_id", "i.name", "ri.quantity", "ri.unit", "ri.position").
		From("recipe_ingredients ri").
		Join("ingredients i ON i.id = ri.ingredient_id").
		Where(squirrel.Eq{"ri.recipe_id": recipeID}).
		OrderBy("ri.position", "ri.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get lines: %w", err)
	}

	var rows []lineRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "recipe lines", recipeID)
	}

	out := make([]domain.IngredientLine, len(rows))
	for i, row := range rows {
		out[i] = domain.IngredientLine{
			RecipeID:     row.RecipeID,
			IngredientID: row.IngredientID,
			Name:         row.Name,
			Quantity:     row.Quantity,
			Unit:         row.Unit,
			Position:     row.Position,
		}
	}
	return out, nil
}

// InsertMany inserts all lines in one multi-row statement. Every line must
// already carry a resolved IngredientID. An empty slice is a no-op.
func (r *Repo) InsertMany(ctx context.Context, lines []domain.IngredientLine) error {
	if len(lines) == 0 {
		return nil
	}

	b := postgres.Psql.
		Insert("recipe_ingredients").
		Columns("recipe_id", "ingredient_id", "quantity", "unit", "position")
	for _, l := range lines {
		b = b.Values(l.RecipeID, l.IngredientID, l.Quantity, l.Unit, l.Position)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "recipe lines", lines[0].RecipeID)
	}
	return nil
}

// DeleteByRecipe removes every line of a recipe and reports how many rows
// were deleted. Zero is not an error.
func (r *Repo) DeleteByRecipe(ctx context.Context, recipeID int64) (int64, error) {
	query, args, err := postgres.Psql.
		Delete("recipe_ingredients").
		Where(squirrel.Eq{"recipe_id": recipeID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete lines: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "recipe lines", recipeID)
	}
	return tag.RowsAffected(), nil
}
