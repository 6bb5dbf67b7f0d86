package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/inbound"
	apperrors "github.com/chamchi6619/pantry-app-v1-sub004/pkg/errors"
)

// OOVHandlers handles the out-of-vocabulary review workflow
type OOVHandlers struct {
	oovService inbound.OOVService
	logger     *zap.Logger
}

// NewOOVHandlers creates a new OOV handlers instance
func NewOOVHandlers(oovService inbound.OOVService, logger *zap.Logger) *OOVHandlers {
	return &OOVHandlers{
		oovService: oovService,
		logger:     logger,
	}
}

// ReviewList handles GET /api/v1/oov/review?window_hours=168&limit=50
func (h *OOVHandlers) ReviewList(w http.ResponseWriter, r *http.Request) {
	windowHours := 168
	if raw := r.URL.Query().Get("window_hours"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, h.logger, apperrors.NewBadRequestError("window_hours must be an integer"))
			return
		}
		windowHours = parsed
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, h.logger, apperrors.NewBadRequestError("limit must be an integer"))
			return
		}
		limit = parsed
	}

	rows, err := h.oovService.ReviewList(r.Context(), time.Duration(windowHours)*time.Hour, limit)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    rows,
	})
}

// Promote handles POST /api/v1/vocabulary/promote
func (h *OOVHandlers) Promote(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.PromoteCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid request body"))
		return
	}

	item, err := h.oovService.Promote(r.Context(), cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, APIResponse{
		Success: true,
		Data:    item,
	})
}
