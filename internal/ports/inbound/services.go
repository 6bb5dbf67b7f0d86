// Package inbound defines the interfaces for inbound ports (primary/driving adapters):
// the use cases the engine exposes to its consumers.
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/catalog"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/matching"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/outbound"
)

// NormalizationConfidence tiers how a raw string resolved against the
// canonical vocabulary.
type NormalizationConfidence string

const (
	ConfidenceExact NormalizationConfidence = "exact"
	ConfidenceAlias NormalizationConfidence = "alias"
	ConfidenceFuzzy NormalizationConfidence = "fuzzy"
	ConfidenceNone  NormalizationConfidence = "none"
)

// Normalization is the outcome of normalizing one raw ingredient
// string. The caller's raw text is never part of this result because
// it is never changed.
type Normalization struct {
	NormalizedName  string                  `json:"normalized_name"`
	CanonicalItemID *uuid.UUID              `json:"canonical_item_id,omitempty"`
	Confidence      NormalizationConfidence `json:"confidence"`
}

// Normalizer maps raw ingredient strings to canonical identities.
// Normalize never fails for valid string input: vocabulary outages
// degrade the result to ConfidenceNone instead of returning an error.
type Normalizer interface {
	Normalize(ctx context.Context, raw string) Normalization
}

// MatchService scores recipes against a household's pantry
type MatchService interface {
	// ComputeMatches scores the given recipes with a constant number of
	// storage round trips regardless of len(recipeIDs).
	ComputeMatches(ctx context.Context, householdID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]matching.MatchResult, error)
}

// CatalogService manages recipe ingestion and household copies
type CatalogService interface {
	// IngestRecipe saves a recipe for a household from any ingestion
	// shape, canonicalizing and classifying its ingredients at write time.
	IngestRecipe(ctx context.Context, householdID uuid.UUID, item catalog.IngestItem) (*RecipeDTO, error)

	// SaveFromTemplate copies a shared catalog template into a
	// household's collection. The template itself is never mutated.
	SaveFromTemplate(ctx context.Context, templateID, householdID uuid.UUID) (*RecipeDTO, error)

	// OverrideCritical sets the manual critical flag on one ingredient;
	// classifier re-runs never clear it.
	OverrideCritical(ctx context.Context, recipeID, ingredientID uuid.UUID, critical bool) error

	// OverrideStaple sets the manual staple flag on one ingredient;
	// classifier re-runs never clear it.
	OverrideStaple(ctx context.Context, recipeID, ingredientID uuid.UUID, staple bool) error
}

// PantryService manages household pantry entries
type PantryService interface {
	AddEntry(ctx context.Context, cmd AddPantryEntryCommand) (*PantryEntryDTO, error)
	SetQuantity(ctx context.Context, entryID uuid.UUID, quantity float64) error
	ArchiveEntry(ctx context.Context, entryID uuid.UUID) error
	ListEntries(ctx context.Context, householdID uuid.UUID) ([]PantryEntryDTO, error)
}

// OOVService exposes the out-of-vocabulary review workflow
type OOVService interface {
	// ReviewList returns the ranked misses recorded inside the window.
	ReviewList(ctx context.Context, window time.Duration, limit int) ([]outbound.OOVAggregate, error)

	// Promote is the human-gated curation action turning a reviewed raw
	// string into a canonical item. There is no automatic promotion.
	Promote(ctx context.Context, cmd PromoteCommand) (*CanonicalItemDTO, error)
}

// ShoppingService builds shopping list entries from match results
type ShoppingService interface {
	// BuildList merges the missing ingredients of the given recipes
	// into the existing list, deduplicating by canonical identity and
	// falling back to raw-text comparison.
	BuildList(ctx context.Context, householdID uuid.UUID, recipeIDs []uuid.UUID, existing []ShoppingListEntry) ([]ShoppingListEntry, error)
}

// AddPantryEntryCommand carries a pantry write from manual entry,
// receipt confirmation, or shopping-list check-off.
type AddPantryEntryCommand struct {
	HouseholdID uuid.UUID `json:"household_id"`
	RawName     string    `json:"raw_name"`
	Quantity    float64   `json:"quantity"`
	Unit        string    `json:"unit"`
	Location    string    `json:"location"`
}

// PromoteCommand creates a canonical item from a reviewed OOV string
type PromoteCommand struct {
	RawText  string   `json:"raw_text"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Aliases  []string `json:"aliases"`
}

// ShoppingListEntry is one line of a household's shopping list
type ShoppingListEntry struct {
	RawName         string     `json:"raw_name"`
	CanonicalItemID *uuid.UUID `json:"canonical_item_id,omitempty"`
	Critical        bool       `json:"critical"`
	RecipeIDs       []uuid.UUID `json:"recipe_ids,omitempty"`
}

// PantryEntryDTO is the outward representation of a pantry entry
type PantryEntryDTO struct {
	ID              uuid.UUID  `json:"id"`
	HouseholdID     uuid.UUID  `json:"household_id"`
	RawName         string     `json:"raw_name"`
	NormalizedName  string     `json:"normalized_name"`
	CanonicalItemID *uuid.UUID `json:"canonical_item_id,omitempty"`
	Quantity        float64    `json:"quantity"`
	Unit            string     `json:"unit"`
	Status          string     `json:"status"`
	Location        string     `json:"location,omitempty"`
}

// IngredientDTO is the outward representation of a recipe ingredient
type IngredientDTO struct {
	ID              uuid.UUID  `json:"id"`
	RawName         string     `json:"raw_name"`
	NormalizedName  string     `json:"normalized_name"`
	CanonicalItemID *uuid.UUID `json:"canonical_item_id,omitempty"`
	Amount          float64    `json:"amount,omitempty"`
	Unit            string     `json:"unit,omitempty"`
	Critical        bool       `json:"critical"`
	Staple          bool       `json:"staple"`
	Optional        bool       `json:"optional"`
}

// RecipeDTO is the outward representation of a saved recipe
type RecipeDTO struct {
	ID          uuid.UUID       `json:"id"`
	HouseholdID uuid.UUID       `json:"household_id"`
	TemplateID  *uuid.UUID      `json:"template_id,omitempty"`
	Title       string          `json:"title"`
	ImageURL    string          `json:"image_url,omitempty"`
	Ingredients []IngredientDTO `json:"ingredients"`
}

// CanonicalItemDTO is the outward representation of a vocabulary item
type CanonicalItemDTO struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category,omitempty"`
	Aliases  []string  `json:"aliases"`
}
