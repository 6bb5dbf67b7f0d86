// Package catalog implements recipe ingestion and the household
// recipe collection. Canonicalization and classification happen here,
// at write time, so reads and match scoring never re-derive them.
package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/application/classifier"
	applicationmatching "github.com/chamchi6619/pantry-app-v1-sub004/internal/application/matching"
	domaincatalog "github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/catalog"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/inbound"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/outbound"
	apperrors "github.com/chamchi6619/pantry-app-v1-sub004/pkg/errors"
)

// Service implements inbound.CatalogService. Every successful write
// invalidates the household's cached match results, since new or
// reclassified ingredients can flip a cached verdict.
type Service struct {
	savedRepo    outbound.SavedRecipeRepository
	templateRepo outbound.TemplateRecipeRepository
	normalizer   inbound.Normalizer
	classifier   *classifier.Service
	cache        outbound.CacheRepository
	logger       *zap.Logger
}

// NewService creates the catalog service.
func NewService(
	savedRepo outbound.SavedRecipeRepository,
	templateRepo outbound.TemplateRecipeRepository,
	normalizer inbound.Normalizer,
	classifier *classifier.Service,
	cache outbound.CacheRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		savedRepo:    savedRepo,
		templateRepo: templateRepo,
		normalizer:   normalizer,
		classifier:   classifier,
		cache:        cache,
		logger:       logger.Named("catalog"),
	}
}

// IngestRecipe saves a recipe for a household from either ingestion
// shape. Raw ingredient text is stored verbatim; the canonical link
// and classification flags are written alongside it.
func (s *Service) IngestRecipe(ctx context.Context, householdID uuid.UUID, item domaincatalog.IngestItem) (*inbound.RecipeDTO, error) {
	projection, err := item.Projection()
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	lines := make([]domaincatalog.RecipeIngredient, len(projection.Ingredients))
	for i, extracted := range projection.Ingredients {
		normalized := s.normalizer.Normalize(ctx, extracted.RawName)
		lines[i] = domaincatalog.RecipeIngredient{
			ID:              uuid.New(),
			RawName:         extracted.RawName,
			NormalizedName:  normalized.NormalizedName,
			CanonicalItemID: normalized.CanonicalItemID,
			Amount:          extracted.Amount,
			Unit:            extracted.Unit,
			SortOrder:       i,
		}
	}
	lines = s.classifier.ClassifyIngredients(projection.Title, lines)

	recipe, err := domaincatalog.NewSavedRecipe(householdID, projection.Title, "", projection.ImageURL, lines)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := s.savedRepo.Create(ctx, recipe); err != nil {
		return nil, apperrors.NewDatabaseError("create saved recipe", err)
	}
	s.invalidateMatches(ctx, householdID)

	s.logger.Info("recipe ingested",
		zap.String("household_id", householdID.String()),
		zap.String("kind", string(item.Kind)),
		zap.Int("ingredients", len(lines)))
	return toDTO(recipe), nil
}

// SaveFromTemplate copies a shared template into the household's
// collection. The copy is re-normalized and re-classified so stale
// template links never leak in; the template itself is untouched.
func (s *Service) SaveFromTemplate(ctx context.Context, templateID, householdID uuid.UUID) (*inbound.RecipeDTO, error) {
	template, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		if err == domaincatalog.ErrRecipeNotFound {
			return nil, apperrors.NewRecipeNotFoundError(templateID.String())
		}
		return nil, apperrors.NewDatabaseError("load template recipe", err)
	}

	recipe, err := domaincatalog.SaveFromTemplate(template, householdID)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	for _, ing := range recipe.Ingredients() {
		normalized := s.normalizer.Normalize(ctx, ing.RawName)
		if err := recipe.SetIngredientLinks(ing.ID, normalized.NormalizedName, normalized.CanonicalItemID); err != nil {
			return nil, apperrors.NewInternalError(err.Error())
		}
	}
	if err := s.classifier.ClassifyRecipe(recipe); err != nil {
		return nil, apperrors.NewInternalError(err.Error())
	}

	if err := s.savedRepo.Create(ctx, recipe); err != nil {
		return nil, apperrors.NewDatabaseError("save recipe copy", err)
	}
	s.invalidateMatches(ctx, householdID)

	s.logger.Info("template saved to household",
		zap.String("template_id", templateID.String()),
		zap.String("household_id", householdID.String()))
	return toDTO(recipe), nil
}

// OverrideCritical records a manual critical decision on one
// ingredient. Classifier re-runs read the heuristic fields only, so
// the override holds until a human changes it.
func (s *Service) OverrideCritical(ctx context.Context, recipeID, ingredientID uuid.UUID, critical bool) error {
	return s.override(ctx, recipeID, func(recipe *domaincatalog.SavedRecipe) error {
		return recipe.OverrideCritical(ingredientID, critical)
	})
}

// OverrideStaple records a manual staple decision on one ingredient,
// with the same persistence rules as OverrideCritical.
func (s *Service) OverrideStaple(ctx context.Context, recipeID, ingredientID uuid.UUID, staple bool) error {
	return s.override(ctx, recipeID, func(recipe *domaincatalog.SavedRecipe) error {
		return recipe.OverrideStaple(ingredientID, staple)
	})
}

func (s *Service) override(ctx context.Context, recipeID uuid.UUID, apply func(*domaincatalog.SavedRecipe) error) error {
	recipe, err := s.savedRepo.FindByID(ctx, recipeID)
	if err != nil {
		if err == domaincatalog.ErrRecipeNotFound {
			return apperrors.NewRecipeNotFoundError(recipeID.String())
		}
		return apperrors.NewDatabaseError("load saved recipe", err)
	}
	if err := apply(recipe); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	if err := s.savedRepo.Update(ctx, recipe); err != nil {
		return apperrors.NewDatabaseError("update saved recipe", err)
	}
	s.invalidateMatches(ctx, recipe.HouseholdID())
	return nil
}

func (s *Service) invalidateMatches(ctx context.Context, householdID uuid.UUID) {
	prefix := applicationmatching.CacheKeyPrefix(householdID)
	if err := s.cache.DeletePrefix(ctx, prefix); err != nil {
		s.logger.Warn("failed to invalidate cached match results",
			zap.String("household_id", householdID.String()),
			zap.Error(err))
	}
}

func toDTO(recipe *domaincatalog.SavedRecipe) *inbound.RecipeDTO {
	ingredients := recipe.Ingredients()
	dtos := make([]inbound.IngredientDTO, len(ingredients))
	for i, ing := range ingredients {
		dtos[i] = inbound.IngredientDTO{
			ID:              ing.ID,
			RawName:         ing.RawName,
			NormalizedName:  ing.NormalizedName,
			CanonicalItemID: ing.CanonicalItemID,
			Amount:          ing.Amount,
			Unit:            ing.Unit,
			Critical:        ing.Critical(),
			Staple:          ing.Staple(),
			Optional:        ing.IsOptional,
		}
	}
	return &inbound.RecipeDTO{
		ID:          recipe.ID(),
		HouseholdID: recipe.HouseholdID(),
		TemplateID:  recipe.TemplateID(),
		Title:       recipe.Title(),
		ImageURL:    recipe.ImageURL(),
		Ingredients: dtos,
	}
}

var _ inbound.CatalogService = (*Service)(nil)
