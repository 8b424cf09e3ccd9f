package rest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/adityakarchi/recipe-management/internal/domain"
	"github.com/adityakarchi/recipe-management/internal/service/recipe"
)

// recipeService defines the minimal interface needed by RecipeHandler.
type recipeService interface {
	ListRecipes(ctx context.Context) ([]domain.RecipeSummary, error)
	GetRecipe(ctx context.Context, id int64) (*domain.Recipe, error)
	CreateRecipe(ctx context.Context, input recipe.RecipeInput) (*domain.Recipe, error)
	UpdateRecipe(ctx context.Context, id int64, input recipe.RecipeInput) (*domain.Recipe, error)
	DeleteRecipe(ctx context.Context, id int64) error
	ListIngredients(ctx context.Context) ([]domain.Ingredient, error)
}

// RecipeHandler serves the /api/recipes and /api/ingredients endpoints.
type RecipeHandler struct {
	svc     recipeService
	log     *slog.Logger
	maxBody int64
}

// NewRecipeHandler creates a RecipeHandler. Request bodies larger than
// maxBody bytes are rejected.
func NewRecipeHandler(svc recipeService, logger *slog.Logger, maxBody int64) *RecipeHandler {
	return &RecipeHandler{svc: svc, log: logger.With("handler", "recipe"), maxBody: maxBody}
}

type recipeSummaryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	PrepTime    *int      `json:"prepTime"`
	CookTime    *int      `json:"cookTime"`
	Servings    *int      `json:"servings"`
	ImageURL    *string   `json:"imageUrl"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type recipeDetailResponse struct {
	ID          int64                    `json:"id"`
	Name        string                   `json:"name"`
	Description *string                  `json:"description"`
	PrepTime    *int                     `json:"prepTime"`
	CookTime    *int                     `json:"cookTime"`
	Servings    *int                     `json:"servings"`
	ImageURL    *string                  `json:"imageUrl"`
	Ingredients []ingredientLineResponse `json:"ingredients"`
	Steps       []string                 `json:"steps"`
	CreatedAt   time.Time                `json:"createdAt"`
	UpdatedAt   time.Time                `json:"updatedAt"`
}

type ingredientLineResponse struct {
	Quantity string  `json:"quantity"`
	Unit     *string `json:"unit"`
	Name     string  `json:"name"`
}

type mutationResponse struct {
	ID      int64                 `json:"id"`
	Message string                `json:"message"`
	Recipe  recipeSummaryResponse `json:"recipe"`
}

// List handles GET /api/recipes.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListRecipes(r.Context())
	if err != nil {
		h.handleError(w, r, err, msgRecipeNotFound, msgListFailed)
		return
	}

	out := make([]recipeSummaryResponse, len(list))
	for i, s := range list {
		out[i] = toSummaryResponse(s)
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/recipes/{id}.
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	rec, err := h.svc.GetRecipe(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err, msgRecipeNotFound, msgGetFailed)
		return
	}

	writeJSON(w, http.StatusOK, toDetailResponse(rec))
}

// Create handles POST /api/recipes.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decode(w, r)
	if !ok {
		return
	}

	rec, err := h.svc.CreateRecipe(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err, msgRecipeNotFound, msgCreateFailed)
		return
	}

	writeJSON(w, http.StatusCreated, mutationResponse{
		ID:      rec.ID,
		Message: msgCreated,
		Recipe:  toSummaryResponse(rec.Summary()),
	})
}

// Update handles PUT /api/recipes/{id}.
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	input, ok := h.decode(w, r)
	if !ok {
		return
	}

	rec, err := h.svc.UpdateRecipe(r.Context(), id, input)
	if err != nil {
		h.handleError(w, r, err, msgUpdateNotFound, msgUpdateFailed)
		return
	}

	writeJSON(w, http.StatusOK, mutationResponse{
		ID:      id,
		Message: msgUpdated,
		Recipe:  toSummaryResponse(rec.Summary()),
	})
}

// Delete handles DELETE /api/recipes/{id}.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteRecipe(r.Context(), id); err != nil {
		h.handleError(w, r, err, msgDeleteNotFound, msgDeleteFailed)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: msgDeleted})
}

func (h *RecipeHandler) decode(w http.ResponseWriter, r *http.Request) (recipe.RecipeInput, bool) {
	body := r.Body
	if h.maxBody > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return recipe.RecipeInput{}, false
		}
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return recipe.RecipeInput{}, false
	}
	input, ve := DecodeRecipe(bytes.NewReader(raw))
	if ve != nil {
		writeValidation(w, ve)
		return recipe.RecipeInput{}, false
	}
	return input, true
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return 0, false
	}
	return id, true
}

func toSummaryResponse(s domain.RecipeSummary) recipeSummaryResponse {
	return recipeSummaryResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		PrepTime:    s.PrepTime,
		CookTime:    s.CookTime,
		Servings:    s.Servings,
		ImageURL:    s.ImageURL,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toDetailResponse(rec *domain.Recipe) recipeDetailResponse {
	lines := make([]ingredientLineResponse, len(rec.Ingredients))
	for i, l := range rec.Ingredients {
		lines[i] = ingredientLineResponse{Quantity: l.Quantity, Unit: l.Unit, Name: l.Name}
	}
	return recipeDetailResponse{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		PrepTime:    rec.PrepTime,
		CookTime:    rec.CookTime,
		Servings:    rec.Servings,
		ImageURL:    rec.ImageURL,
		Ingredients: lines,
		Steps:       rec.Instructions(),
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}
