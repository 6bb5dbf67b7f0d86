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

// PantryHandlers handles pantry entry requests
type PantryHandlers struct {
	pantryService inbound.PantryService
	logger        *zap.Logger
}

// NewPantryHandlers creates a new pantry handlers instance
func NewPantryHandlers(pantryService inbound.PantryService, logger *zap.Logger) *PantryHandlers {
	return &PantryHandlers{
		pantryService: pantryService,
		logger:        logger,
	}
}

type addPantryEntryRequest struct {
	RawName  string  `json:"raw_name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Location string  `json:"location"`
}

// AddEntry handles POST /api/v1/households/{householdID}/pantry
func (h *PantryHandlers) AddEntry(w http.ResponseWriter, r *http.Request) {
	householdID, err := uuid.Parse(chi.URLParam(r, "householdID"))
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid household ID"))
		return
	}

	var req addPantryEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid request body"))
		return
	}

	entry, err := h.pantryService.AddEntry(r.Context(), inbound.AddPantryEntryCommand{
		HouseholdID: householdID,
		RawName:     req.RawName,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		Location:    req.Location,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, APIResponse{
		Success: true,
		Data:    entry,
	})
}

// ListEntries handles GET /api/v1/households/{householdID}/pantry
func (h *PantryHandlers) ListEntries(w http.ResponseWriter, r *http.Request) {
	householdID, err := uuid.Parse(chi.URLParam(r, "householdID"))
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid household ID"))
		return
	}

	entries, err := h.pantryService.ListEntries(r.Context(), householdID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    entries,
	})
}

type setQuantityRequest struct {
	Quantity float64 `json:"quantity"`
}

// SetQuantity handles PATCH /api/v1/pantry/{entryID}/quantity
func (h *PantryHandlers) SetQuantity(w http.ResponseWriter, r *http.Request) {
	entryID, err := uuid.Parse(chi.URLParam(r, "entryID"))
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid entry ID"))
		return
	}

	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid request body"))
		return
	}

	if err := h.pantryService.SetQuantity(r.Context(), entryID, req.Quantity); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Message: "Quantity updated",
	})
}

// ArchiveEntry handles DELETE /api/v1/pantry/{entryID}
func (h *PantryHandlers) ArchiveEntry(w http.ResponseWriter, r *http.Request) {
	entryID, err := uuid.Parse(chi.URLParam(r, "entryID"))
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid entry ID"))
		return
	}

	if err := h.pantryService.ArchiveEntry(r.Context(), entryID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Message: "Entry archived",
	})
}
