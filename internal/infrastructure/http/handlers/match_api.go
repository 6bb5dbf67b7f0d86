package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/inbound"
	apperrors "github.com/chamchi6619/pantry-app-v1-sub004/pkg/errors"
)

// MatchHandlers handles match computation requests
type MatchHandlers struct {
	matchService inbound.MatchService
	logger       *zap.Logger
}

// NewMatchHandlers creates a new match handlers instance
func NewMatchHandlers(matchService inbound.MatchService, logger *zap.Logger) *MatchHandlers {
	return &MatchHandlers{
		matchService: matchService,
		logger:       logger,
	}
}

type computeMatchesRequest struct {
	HouseholdID uuid.UUID   `json:"household_id"`
	RecipeIDs   []uuid.UUID `json:"recipe_ids"`
}

// ComputeMatches handles POST /api/v1/match
func (h *MatchHandlers) ComputeMatches(w http.ResponseWriter, r *http.Request) {
	var req computeMatchesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid request body"))
		return
	}
	if req.HouseholdID == uuid.Nil {
		writeError(w, r, h.logger, apperrors.NewValidationError("household_id is required"))
		return
	}

	results, err := h.matchService.ComputeMatches(r.Context(), req.HouseholdID, req.RecipeIDs)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    results,
	})
}
