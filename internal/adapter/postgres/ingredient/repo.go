// Package ingredient implements the shared ingredient dictionary using
// PostgreSQL. Entries are matched by exact name and are never deleted.
package ingredient

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/adityakarchi/recipe-management/internal/adapter/postgres"
	"github.com/adityakarchi/recipe-management/internal/domain"
)

// Repo provides ingredient dictionary persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new ingredient repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type ingredientRow struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// Resolve returns the id of the dictionary entry named name, inserting it
// first when absent. The insert tolerates a concurrent writer: ON CONFLICT
// leaves the existing row in place and the follow-up SELECT returns it.
// Safe to call repeatedly with the same name inside one transaction.
func (r *Repo) Resolve(ctx context.Context, name string) (int64, error) {
	name = domain.CleanText(name)
	if name == "" {
		return 0, domain.NewValidationError("ingredients.name", "required")
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	insertSQL, args, err := postgres.Psql.
		Insert("ingredients").
		Columns("name").
		Values(name).
		Suffix("ON CONFLICT (name) DO NOTHING").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert ingredient: %w", err)
	}
	if _, err := q.Exec(ctx, insertSQL, args...); err != nil {
		return 0, fmt.Errorf("insert ingredient %q: %w", name, err)
	}

	selectSQL, args, err := postgres.Psql.
		Select("id").
		From("ingredients").
		Where(squirrel.Eq{"name": name}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build select ingredient: %w", err)
	}

	var id int64
	if err := q.QueryRow(ctx, selectSQL, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("select ingredient %q: %w", name, err)
	}
	return id, nil
}

// List returns every dictionary entry ordered by name.
// Returns an empty slice (not nil) when the dictionary is empty.
func (r *Repo) List(ctx context.Context) ([]domain.Ingredient, error) {
	query, args, err := postgres.Psql.
		Select("id", "name").
		From("ingredients").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list ingredients: %w", err)
	}

	var rows []ingredientRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}

	out := make([]domain.Ingredient, len(rows))
	for i, row := range rows {
		out[i] = domain.Ingredient{ID: row.ID, Name: row.Name}
	}
	return out, nil
}
