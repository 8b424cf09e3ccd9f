package recipe

import (
	"context"
	"errors"
	"log/slog"

	"github.com/adityakarchi/recipe-management/internal/config"
	"github.com/adityakarchi/recipe-management/internal/domain"
	"github.com/adityakarchi/recipe-management/internal/metrics"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type recipeRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Recipe, error)
	List(ctx context.Context) ([]domain.RecipeSummary, error)
	Create(ctx context.Context, rec *domain.Recipe) error
	Update(ctx context.Context, rec *domain.Recipe) error
	Delete(ctx context.Context, id int64) error
}

type ingredientRepo interface {
	Resolve(ctx context.Context, name string) (int64, error)
	List(ctx context.Context) ([]domain.Ingredient, error)
}

type lineRepo interface {
	GetByRecipeID(ctx context.Context, recipeID int64) ([]domain.IngredientLine, error)
	InsertMany(ctx context.Context, lines []domain.IngredientLine) error
	DeleteByRecipe(ctx context.Context, recipeID int64) (int64, error)
}

type stepRepo interface {
	GetByRecipeID(ctx context.Context, recipeID int64) ([]domain.Step, error)
	InsertMany(ctx context.Context, steps []domain.Step) error
	DeleteByRecipe(ctx context.Context, recipeID int64) (int64, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	RunInReadTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service maps recipe aggregates onto the normalized store: header rows,
// the shared ingredient dictionary, ingredient lines and ordered steps.
type Service struct {
	log         *slog.Logger
	recipes     recipeRepo
	ingredients ingredientRepo
	lines       lineRepo
	steps       stepRepo
	tx          txManager
	cfg         config.RecipeConfig
}

// NewService creates a new recipe service.
func NewService(
	logger *slog.Logger,
	recipes recipeRepo,
	ingredients ingredientRepo,
	lines lineRepo,
	steps stepRepo,
	tx txManager,
	cfg config.RecipeConfig,
) *Service {
	return &Service{
		log:         logger.With("service", "recipe"),
		recipes:     recipes,
		ingredients: ingredients,
		lines:       lines,
		steps:       steps,
		tx:          tx,
		cfg:         cfg,
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// observe records the outcome of an operation in the operations counter.
func observe(op string, err error) {
	result := metrics.ResultOK
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrValidation):
		result = metrics.ResultInvalid
	case errors.Is(err, domain.ErrNotFound):
		result = metrics.ResultNotFound
	default:
		result = metrics.ResultError
	}
	metrics.RecipeOperations.WithLabelValues(op, result).Inc()
}

// writeChildren resolves dictionary ids for every line of rec and inserts the
// lines and steps. It must run inside a transaction together with the header
// write. Names repeated within one recipe are resolved once.
func (s *Service) writeChildren(ctx context.Context, rec *domain.Recipe) error {
	resolved := make(map[string]int64, len(rec.Ingredients))
	for i := range rec.Ingredients {
		line := &rec.Ingredients[i]
		id, ok := resolved[line.Name]
		if !ok {
			var err error
			id, err = s.ingredients.Resolve(ctx, line.Name)
			if err != nil {
				return err
			}
			resolved[line.Name] = id
		}
		line.RecipeID = rec.ID
		line.IngredientID = id
		line.Position = i + 1
	}
	if err := s.lines.InsertMany(ctx, rec.Ingredients); err != nil {
		return err
	}

	for i := range rec.Steps {
		rec.Steps[i].RecipeID = rec.ID
	}
	return s.steps.InsertMany(ctx, rec.Steps)
}
