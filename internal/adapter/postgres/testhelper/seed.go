package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adityakarchi/recipe-management/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// UniqueName returns prefix with a random suffix. Tests share one database,
// so ingredient and recipe names must not collide across tests.
func UniqueName(prefix string) string {
	return prefix + "-" + uniqueSuffix()
}

// SeedIngredient inserts a dictionary entry and returns it.
func SeedIngredient(t *testing.T, pool *pgxpool.Pool, name string) domain.Ingredient {
	t.Helper()

	ing := domain.Ingredient{Name: name}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO ingredients (name) VALUES ($1) RETURNING id`, name,
	).Scan(&ing.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedIngredient: %v", err)
	}
	return ing
}

// SeedRecipe inserts a recipe with one ingredient line and two steps directly
// through SQL, bypassing the repositories under test.
func SeedRecipe(t *testing.T, pool *pgxpool.Pool) domain.Recipe {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	unit := "g"
	r := domain.Recipe{Name: "Seeded Recipe " + suffix}

	err := pool.QueryRow(ctx,
		`INSERT INTO recipes (name) VALUES ($1) RETURNING id, created_at, updated_at`, r.Name,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedRecipe insert recipe: %v", err)
	}

	ing := SeedIngredient(t, pool, "seeded-ingredient-"+suffix)
	line := domain.IngredientLine{
		RecipeID:     r.ID,
		IngredientID: ing.ID,
		Name:         ing.Name,
		Quantity:     "100",
		Unit:         &unit,
		Position:     1,
	}
	_, err = pool.Exec(ctx,
		`INSERT INTO recipe_ingredients (recipe_id, ingredient_id, quantity, unit, position)
		 VALUES ($1, $2, $3, $4, $5)`,
		line.RecipeID, line.IngredientID, line.Quantity, line.Unit, line.Position,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedRecipe insert line: %v", err)
	}
	r.Ingredients = []domain.IngredientLine{line}

	r.Steps = domain.NumberSteps(r.ID, []string{"Prepare", "Serve"})
	for _, s := range r.Steps {
		_, err = pool.Exec(ctx,
			`INSERT INTO steps (recipe_id, position, instruction) VALUES ($1, $2, $3)`,
			s.RecipeID, s.Position, s.Instruction,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedRecipe insert step: %v", err)
		}
	}

	return r
}
