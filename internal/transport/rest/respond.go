package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/adityakarchi/recipe-management/internal/domain"
)

// Client-facing messages.
const (
	msgInvalidID        = "Invalid recipe ID"
	msgMissingFields    = "Missing required fields (name, ingredients, steps)"
	msgNotArrays        = "Ingredients and steps must be arrays"
	msgInvalidBody      = "Invalid request body"
	msgBodyTooLarge     = "Request body too large"
	msgInvalidRecipe    = "Invalid recipe data"
	msgNotFound         = "Not found"
	msgRecipeNotFound   = "Recipe not found"
	msgUpdateNotFound   = "Recipe not found for update"
	msgDeleteNotFound   = "Recipe not found for deletion"
	msgCreated          = "Recipe created successfully"
	msgUpdated          = "Recipe updated successfully"
	msgDeleted          = "Recipe deleted successfully"
	msgListFailed       = "Failed to fetch recipes"
	msgGetFailed        = "Failed to fetch recipe details"
	msgCreateFailed     = "Failed to create recipe"
	msgUpdateFailed     = "Failed to update recipe"
	msgDeleteFailed     = "Failed to delete recipe"
	msgIngredientFailed = "Failed to fetch ingredients"
	msgServerError      = "Something went wrong on the server!"
)

// messageResponse is the body of every non-2xx API response.
type messageResponse struct {
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

func writeValidation(w http.ResponseWriter, ve *domain.ValidationError) {
	writeJSON(w, http.StatusBadRequest, messageResponse{
		Message: validationMessage(ve),
		Errors:  ve.Errors,
	})
}

// validationMessage picks the headline for a 400. Missing required lists win
// over shape errors.
func validationMessage(ve *domain.ValidationError) string {
	for _, f := range []string{"name", "ingredients", "steps"} {
		if ve.Has(f, "required") {
			return msgMissingFields
		}
	}
	if ve.Has("ingredients", mustBeArray) || ve.Has("steps", mustBeArray) {
		return msgNotArrays
	}
	if ve.Has("body", invalidJSON) {
		return msgInvalidBody
	}
	return msgInvalidRecipe
}

// handleError maps service errors onto HTTP statuses. Anything that is not a
// validation or not-found error is logged and reported as failMsg.
func (h *RecipeHandler) handleError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg, failMsg string) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeValidation(w, ve)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, msgInvalidRecipe)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMsg)
	default:
		h.log.ErrorContext(r.Context(), failMsg, slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, failMsg)
	}
}
