package domain

import "time"

// Recipe is the aggregate root: a header row plus the ingredient lines and
// steps it owns exclusively.
type Recipe struct {
	ID          int64
	Name        string
	Description *string
	PrepTime    *int
	CookTime    *int
	Servings    *int
	ImageURL    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Ingredients []IngredientLine
	Steps       []Step
}

// Summary returns the header-only projection of the recipe.
func (r *Recipe) Summary() RecipeSummary {
	return RecipeSummary{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		PrepTime:    r.PrepTime,
		CookTime:    r.CookTime,
		Servings:    r.Servings,
		ImageURL:    r.ImageURL,
		UpdatedAt:   r.UpdatedAt,
	}
}

// Instructions returns step instructions in position order.
func (r *Recipe) Instructions() []string {
	out := make([]string, len(r.Steps))
	for i, s := range r.Steps {
		out[i] = s.Instruction
	}
	return out
}

// RecipeSummary is the list-view projection of a recipe (no lines or steps).
type RecipeSummary struct {
	ID          int64
	Name        string
	Description *string
	PrepTime    *int
	CookTime    *int
	Servings    *int
	ImageURL    *string
	UpdatedAt   time.Time
}

// Ingredient is a dictionary entry shared by all recipes. Entries are never
// deleted, even when no recipe references them any more.
type Ingredient struct {
	ID   int64
	Name string
}

// IngredientLine links a recipe to a dictionary ingredient with a
// recipe-specific quantity and unit.
type IngredientLine struct {
	RecipeID     int64
	IngredientID int64
	Name         string
	Quantity     string
	Unit         *string
	Position     int
}

// Step is a single instruction. Position is 1-based and contiguous within a
// recipe; it is an ordering key only.
type Step struct {
	RecipeID    int64
	Position    int
	Instruction string
}

// NumberSteps assigns contiguous 1-based positions to instructions in order.
func NumberSteps(recipeID int64, instructions []string) []Step {
	steps := make([]Step, len(instructions))
	for i, text := range instructions {
		steps[i] = Step{RecipeID: recipeID, Position: i + 1, Instruction: text}
	}
	return steps
}
