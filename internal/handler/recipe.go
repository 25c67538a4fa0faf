package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/pantrychef/pantrychef/internal/handler/dto"
	"github.com/pantrychef/pantrychef/internal/service"
)

// RecipeHandler handles HTTP requests proxied to the recipe service.
type RecipeHandler struct {
	svc    *service.PantryService
	logger *slog.Logger
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(svc *service.PantryService, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{
		svc:    svc,
		logger: logger,
	}
}

// Search handles POST /api/v1/recipes/search.
func (h *RecipeHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req dto.RecipeSearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if len(req.Ingredients) == 0 {
		writeError(w, http.StatusBadRequest, CodeValidationError, "No ingredients provided")
		return
	}

	summaries, err := h.svc.FindRecipes(r.Context(), req.Ingredients)
	if err != nil {
		handleServiceError(w, h.logger, err, "Failed to fetch recipes")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToRecipeListResponse(summaries))
}

// Steps handles GET /api/v1/recipes/steps?recipe_id=.
// recipeId is accepted as an alias of recipe_id.
func (h *RecipeHandler) Steps(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	recipeID := strings.TrimSpace(query.Get("recipe_id"))
	if recipeID == "" {
		recipeID = strings.TrimSpace(query.Get("recipeId"))
	}
	if recipeID == "" {
		writeError(w, http.StatusBadRequest, CodeValidationError, "No recipe ID provided")
		return
	}

	steps, err := h.svc.GetRecipeSteps(r.Context(), recipeID)
	if err != nil {
		handleServiceError(w, h.logger, err, "Failed to fetch recipe steps")
		return
	}

	writeJSON(w, http.StatusOK, dto.RecipeStepsResponse{
		RecipeID: recipeID,
		Steps:    steps,
	})
}
