package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/catalog"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/inbound"
	apperrors "github.com/chamchi6619/pantry-app-v1-sub004/pkg/errors"
)

// CatalogHandlers handles recipe ingestion and catalog copy requests
type CatalogHandlers struct {
	catalogService inbound.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandlers creates a new catalog handlers instance
func NewCatalogHandlers(catalogService inbound.CatalogService, logger *zap.Logger) *CatalogHandlers {
	return &CatalogHandlers{
		catalogService: catalogService,
		logger:         logger,
	}
}

type ingestIngredientRequest struct {
	RawName string  `json:"raw_name"`
	Amount  float64 `json:"amount"`
	Unit    string  `json:"unit"`
}

type ingestRecipeRequest struct {
	Title       string                    `json:"title"`
	ImageURL    string                    `json:"image_url"`
	Ingredients []ingestIngredientRequest `json:"ingredients"`
}

// IngestRecipe handles POST /api/v1/households/{householdID}/recipes
func (h *CatalogHandlers) IngestRecipe(w http.ResponseWriter, r *http.Request) {
	householdID, err := uuid.Parse(chi.URLParam(r, "householdID"))
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid household ID"))
		return
	}

	var req ingestRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid request body"))
		return
	}

	ingredients := make([]catalog.ExtractedIngredient, len(req.Ingredients))
	for i, ing := range req.Ingredients {
		ingredients[i] = catalog.ExtractedIngredient{
			RawName: ing.RawName,
			Amount:  ing.Amount,
			Unit:    ing.Unit,
		}
	}

	recipe, err := h.catalogService.IngestRecipe(r.Context(), householdID, catalog.IngestItem{
		Kind: catalog.IngestKindQueueExtraction,
		Queue: &catalog.QueueExtraction{
			Title:       req.Title,
			ImageURL:    req.ImageURL,
			Ingredients: ingredients,
		},
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, APIResponse{
		Success: true,
		Data:    recipe,
	})
}

type saveFromTemplateRequest struct {
	HouseholdID uuid.UUID `json:"household_id"`
}

// SaveFromTemplate handles POST /api/v1/templates/{templateID}/save
func (h *CatalogHandlers) SaveFromTemplate(w http.ResponseWriter, r *http.Request) {
	templateID, err := uuid.Parse(chi.URLParam(r, "templateID"))
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid template ID"))
		return
	}

	var req saveFromTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid request body"))
		return
	}
	if req.HouseholdID == uuid.Nil {
		writeError(w, r, h.logger, apperrors.NewValidationError("household_id is required"))
		return
	}

	recipe, err := h.catalogService.SaveFromTemplate(r.Context(), templateID, req.HouseholdID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, APIResponse{
		Success: true,
		Data:    recipe,
	})
}

type overrideCriticalRequest struct {
	Critical bool `json:"critical"`
}

// OverrideCritical handles PATCH /api/v1/recipes/{recipeID}/ingredients/{ingredientID}/critical
func (h *CatalogHandlers) OverrideCritical(w http.ResponseWriter, r *http.Request) {
	recipeID, err := uuid.Parse(chi.URLParam(r, "recipeID"))
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid recipe ID"))
		return
	}
	ingredientID, err := uuid.Parse(chi.URLParam(r, "ingredientID"))
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid ingredient ID"))
		return
	}

	var req overrideCriticalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid request body"))
		return
	}

	if err := h.catalogService.OverrideCritical(r.Context(), recipeID, ingredientID, req.Critical); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Message: "Critical flag updated",
	})
}

type overrideStapleRequest struct {
	Staple bool `json:"staple"`
}

// OverrideStaple handles PATCH /api/v1/recipes/{recipeID}/ingredients/{ingredientID}/staple
func (h *CatalogHandlers) OverrideStaple(w http.ResponseWriter, r *http.Request) {
	recipeID, err := uuid.Parse(chi.URLParam(r, "recipeID"))
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid recipe ID"))
		return
	}
	ingredientID, err := uuid.Parse(chi.URLParam(r, "ingredientID"))
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid ingredient ID"))
		return
	}

	var req overrideStapleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid request body"))
		return
	}

	if err := h.catalogService.OverrideStaple(r.Context(), recipeID, ingredientID, req.Staple); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Message: "Staple flag updated",
	})
}
