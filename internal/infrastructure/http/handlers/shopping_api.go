package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/inbound"
	apperrors "github.com/chamchi6619/pantry-app-v1-sub004/pkg/errors"
)

// ShoppingHandlers handles shopping list build requests
type ShoppingHandlers struct {
	shoppingService inbound.ShoppingService
	logger          *zap.Logger
}

// NewShoppingHandlers creates a new shopping handlers instance
func NewShoppingHandlers(shoppingService inbound.ShoppingService, logger *zap.Logger) *ShoppingHandlers {
	return &ShoppingHandlers{
		shoppingService: shoppingService,
		logger:          logger,
	}
}

type buildListRequest struct {
	RecipeIDs []uuid.UUID                 `json:"recipe_ids"`
	Existing  []inbound.ShoppingListEntry `json:"existing"`
}

// BuildList handles POST /api/v1/households/{householdID}/shopping-list
func (h *ShoppingHandlers) BuildList(w http.ResponseWriter, r *http.Request) {
	householdID, err := uuid.Parse(chi.URLParam(r, "householdID"))
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid household ID"))
		return
	}

	var req buildListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid request body"))
		return
	}

	entries, err := h.shoppingService.BuildList(r.Context(), householdID, req.RecipeIDs, req.Existing)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    entries,
	})
}
