package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/pantrychef/pantrychef/internal/handler/dto"
	"github.com/pantrychef/pantrychef/internal/service"
)

// PantryHandler handles HTTP requests for expiring items and favorites.
type PantryHandler struct {
	svc    *service.PantryService
	logger *slog.Logger
}

// NewPantryHandler creates a new PantryHandler.
func NewPantryHandler(svc *service.PantryService, logger *slog.Logger) *PantryHandler {
	return &PantryHandler{
		svc:    svc,
		logger: logger,
	}
}

// AddExpiringItems handles POST /api/v1/expiring-items.
func (h *PantryHandler) AddExpiringItems(w http.ResponseWriter, r *http.Request) {
	var req dto.AddExpiringItemsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.UserID) == "" || len(req.Ingredients) == 0 {
		writeError(w, http.StatusBadRequest, CodeValidationError, "User ID and ingredients are required")
		return
	}

	records, err := h.svc.AddExpiringItems(r.Context(), req.UserID, req.ToExpiryItems())
	if err != nil {
		handleServiceError(w, h.logger, err, "")
		return
	}

	h.logger.Info("expiring_items_added",
		"user_id", req.UserID,
		"count", len(records),
	)

	writeJSON(w, http.StatusCreated, dto.MessageResponse{
		Message: "Expiring items added successfully",
		Count:   len(records),
	})
}

// ListExpiringItems handles GET /api/v1/expiring-items?user_id=.
func (h *PantryHandler) ListExpiringItems(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if strings.TrimSpace(userID) == "" {
		writeError(w, http.StatusBadRequest, CodeValidationError, "User ID is required")
		return
	}

	items, err := h.svc.ListExpiringItems(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.logger, err, "")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToExpiringItemListResponse(items))
}

// SaveFavorite handles POST /api/v1/favorites.
func (h *PantryHandler) SaveFavorite(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveFavoriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	required := []string{req.UserID, string(req.RecipeID), req.Title, req.Image}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			writeError(w, http.StatusBadRequest, CodeValidationError, "Missing required fields")
			return
		}
	}

	fav, err := h.svc.SaveFavorite(r.Context(), req.UserID, string(req.RecipeID), req.Title, req.Image)
	if err != nil {
		handleServiceError(w, h.logger, err, "")
		return
	}

	h.logger.Info("favorite_saved",
		"favorite_id", fav.ID,
		"user_id", fav.UserID,
		"recipe_id", fav.RecipeID,
	)

	writeJSON(w, http.StatusCreated, dto.MessageResponse{
		Message: "Recipe saved successfully",
		ID:      fav.ID,
	})
}

// ListFavorites handles GET /api/v1/favorites?user_id=.
func (h *PantryHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if strings.TrimSpace(userID) == "" {
		writeError(w, http.StatusBadRequest, CodeValidationError, "User ID is required")
		return
	}

	favorites, err := h.svc.ListFavorites(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.logger, err, "")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToFavoriteListResponse(favorites))
}
