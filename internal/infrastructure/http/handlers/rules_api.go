package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/matching"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/outbound"
	apperrors "github.com/chamchi6619/pantry-app-v1-sub004/pkg/errors"
)

// RuleHandlers handles substitution rule curation requests
type RuleHandlers struct {
	ruleRepo outbound.SubstitutionRepository
	logger   *zap.Logger
}

// NewRuleHandlers creates a new substitution rule handlers instance
func NewRuleHandlers(ruleRepo outbound.SubstitutionRepository, logger *zap.Logger) *RuleHandlers {
	return &RuleHandlers{
		ruleRepo: ruleRepo,
		logger:   logger,
	}
}

type createRuleRequest struct {
	ItemA         uuid.UUID `json:"item_a"`
	ItemB         uuid.UUID `json:"item_b"`
	Rationale     string    `json:"rationale"`
	Ratio         float64   `json:"ratio"`
	Category      string    `json:"category"`
	Bidirectional bool      `json:"bidirectional"`
}

// CreateRule handles POST /api/v1/substitutions
func (h *RuleHandlers) CreateRule(w http.ResponseWriter, r *http.Request) {
	var req createRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid request body"))
		return
	}

	rule, err := matching.NewSubstitutionRule(req.ItemA, req.ItemB, req.Rationale, req.Ratio, req.Category, req.Bidirectional)
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewValidationError(err.Error()))
		return
	}

	if err := h.ruleRepo.Create(r.Context(), rule); err != nil {
		if errors.Is(err, matching.ErrDuplicateRule) {
			writeError(w, r, h.logger, apperrors.NewDuplicateSubstitutionRuleError(rule.ItemA.String(), rule.ItemB.String()))
			return
		}
		writeError(w, r, h.logger, apperrors.NewDatabaseError("create substitution rule", err))
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, APIResponse{
		Success: true,
		Data:    rule,
	})
}

// DeleteRule handles DELETE /api/v1/substitutions/{ruleID}
func (h *RuleHandlers) DeleteRule(w http.ResponseWriter, r *http.Request) {
	ruleID, err := uuid.Parse(chi.URLParam(r, "ruleID"))
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid rule ID"))
		return
	}

	if err := h.ruleRepo.Delete(r.Context(), ruleID); err != nil {
		writeError(w, r, h.logger, apperrors.NewDatabaseError("delete substitution rule", err))
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Message: "Rule deleted",
	})
}
