// Package recipe implements persistence of recipe header rows using
// PostgreSQL. Ingredient lines and steps live in their own repositories and
// are removed together with the header by ON DELETE CASCADE.
package recipe

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/adityakarchi/recipe-management/internal/adapter/postgres"
	"github.com/adityakarchi/recipe-management/internal/domain"
)

// Repo provides recipe header persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new recipe repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var headerColumns = []string{
	"id", "name", "description", "prep_time_minutes", "cook_time_minutes",
	"servings", "image_url", "created_at", "updated_at",
}

type recipeRow struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	PrepTime    *int      `db:"prep_time_minutes"`
	CookTime    *int      `db:"cook_time_minutes"`
	Servings    *int      `db:"servings"`
	ImageURL    *string   `db:"image_url"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (row recipeRow) toDomain() *domain.Recipe {
	return &domain.Recipe{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		PrepTime:    row.PrepTime,
		CookTime:    row.CookTime,
		Servings:    row.Servings,
		ImageURL:    row.ImageURL,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns the header of a recipe without lines or steps.
// Returns domain.ErrNotFound if the recipe does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Recipe, error) {
	query, args, err := postgres.Psql.
		Select(headerColumns...).
		From("recipes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get recipe: %w", err)
	}

	var rows []recipeRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "recipe", id)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("recipe %d: %w", id, domain.ErrNotFound)
	}

	return rows[0].toDomain(), nil
}

// List returns header summaries of all recipes, most recently updated first.
// Returns an empty slice (not nil) when there are no recipes.
func (r *Repo) List(ctx context.Context) ([]domain.RecipeSummary, error) {
	query, args, err := postgres.Psql.
		Select(headerColumns...).
		From("recipes").
		OrderBy("updated_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list recipes: %w", err)
	}

	var rows []recipeRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	out := make([]domain.RecipeSummary, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain().Summary()
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts the header of rec and fills in its ID, CreatedAt and
// UpdatedAt from the database.
func (r *Repo) Create(ctx context.Context, rec *domain.Recipe) error {
	query, args, err := postgres.Psql.
		Insert("recipes").
		Columns("name", "description", "prep_time_minutes", "cook_time_minutes", "servings", "image_url").
		Values(rec.Name, rec.Description, rec.PrepTime, rec.CookTime, rec.Servings, rec.ImageURL).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert recipe: %w", err)
	}

	err = postgres.QuerierFromCtx(ctx, r.db).
		QueryRow(ctx, query, args...).
		Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "recipe", 0)
	}
	return nil
}

// Update overwrites every header field of rec.ID and bumps updated_at.
// CreatedAt and UpdatedAt of rec are refreshed from the database.
// Returns domain.ErrNotFound if the recipe does not exist.
func (r *Repo) Update(ctx context.Context, rec *domain.Recipe) error {
	query, args, err := postgres.Psql.
		Update("recipes").
		Set("name", rec.Name).
		Set("description", rec.Description).
		Set("prep_time_minutes", rec.PrepTime).
		Set("cook_time_minutes", rec.CookTime).
		Set("servings", rec.Servings).
		Set("image_url", rec.ImageURL).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": rec.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update recipe: %w", err)
	}

	err = postgres.QuerierFromCtx(ctx, r.db).
		QueryRow(ctx, query, args...).
		Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "recipe", rec.ID)
	}
	return nil
}

// Delete removes a recipe header; its lines and steps cascade.
// Returns domain.ErrNotFound if the recipe does not exist.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	query, args, err := postgres.Psql.
		Delete("recipes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete recipe: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "recipe", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("recipe %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
