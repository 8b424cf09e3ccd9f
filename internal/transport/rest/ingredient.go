package rest

import (
	"net/http"
)

type ingredientResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ListIngredients handles GET /api/ingredients.
func (h *RecipeHandler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListIngredients(r.Context())
	if err != nil {
		h.handleError(w, r, err, msgNotFound, msgIngredientFailed)
		return
	}

	out := make([]ingredientResponse, len(list))
	for i, ing := range list {
		out[i] = ingredientResponse{ID: ing.ID, Name: ing.Name}
	}
	writeJSON(w, http.StatusOK, out)
}
