// Package outbound defines the interfaces for outbound ports (secondary/driven adapters).
// These are the interfaces the application uses to interact with storage.
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/catalog"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/matching"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/pantry"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/vocabulary"
)

// VocabularyRepository persists the canonical ingredient vocabulary
type VocabularyRepository interface {
	Create(ctx context.Context, item *vocabulary.CanonicalItem) error
	Update(ctx context.Context, item *vocabulary.CanonicalItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*vocabulary.CanonicalItem, error)
	FindByName(ctx context.Context, name string) (*vocabulary.CanonicalItem, error)

	// FindAll loads the whole vocabulary in one call. It backs the
	// in-process snapshot cache; the vocabulary is small by design.
	FindAll(ctx context.Context) ([]*vocabulary.CanonicalItem, error)
}

// TemplateRecipeRepository persists the shared recipe catalog
type TemplateRecipeRepository interface {
	Create(ctx context.Context, template *catalog.TemplateRecipe) error
	FindByID(ctx context.Context, id uuid.UUID) (*catalog.TemplateRecipe, error)
	List(ctx context.Context, offset, limit int) ([]*catalog.TemplateRecipe, int, error)
}

// SavedRecipeRepository persists household-owned recipes
type SavedRecipeRepository interface {
	Create(ctx context.Context, recipe *catalog.SavedRecipe) error
	Update(ctx context.Context, recipe *catalog.SavedRecipe) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*catalog.SavedRecipe, error)
	FindByHousehold(ctx context.Context, householdID uuid.UUID, offset, limit int) ([]*catalog.SavedRecipe, int, error)

	// ListRequiredIngredients is bulk fetch #1 of the match engine: all
	// non-optional ingredient rows for the given recipes in one query,
	// with manual overrides already folded into the flags.
	ListRequiredIngredients(ctx context.Context, recipeIDs []uuid.UUID) ([]IngredientRow, error)
}

// IngredientRow is the flat projection of a recipe ingredient the
// match engine scores against.
type IngredientRow struct {
	RecipeID        uuid.UUID
	IngredientID    uuid.UUID
	RawName         string
	CanonicalItemID *uuid.UUID
	Critical        bool
	Staple          bool
}

// PantryRepository persists household pantries
type PantryRepository interface {
	Create(ctx context.Context, entry *pantry.Entry) error
	Update(ctx context.Context, entry *pantry.Entry) error
	FindByID(ctx context.Context, id uuid.UUID) (*pantry.Entry, error)
	FindByHousehold(ctx context.Context, householdID uuid.UUID, includeArchived bool) ([]*pantry.Entry, error)

	// ListAvailableCanonicalIDs is bulk fetch #2 of the match engine:
	// canonical item IDs of all active entries with quantity above the
	// epsilon threshold, in one query.
	ListAvailableCanonicalIDs(ctx context.Context, householdID uuid.UUID, epsilon float64) ([]uuid.UUID, error)
}

// SubstitutionRepository persists curated substitution rules
type SubstitutionRepository interface {
	// Create rejects duplicate unordered pairs with matching.ErrDuplicateRule.
	Create(ctx context.Context, rule *matching.SubstitutionRule) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByItemIDs is bulk fetch #3 of the match engine: all rules
	// touching any of the given canonical items, in one query.
	ListByItemIDs(ctx context.Context, itemIDs []uuid.UUID) ([]*matching.SubstitutionRule, error)
}

// OOVRepository is the append-only sink for normalization misses
type OOVRepository interface {
	Append(ctx context.Context, rawText string, at time.Time) error

	// Aggregate groups misses recorded since the given time by raw
	// text, counted and ordered by count descending then text.
	Aggregate(ctx context.Context, since time.Time, limit int) ([]OOVAggregate, error)
}

// OOVAggregate is one row of the ranked OOV review list
type OOVAggregate struct {
	RawText  string    `json:"raw_text"`
	Count    int       `json:"count"`
	LastSeen time.Time `json:"last_seen"`
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// DeletePrefix removes every key under a prefix; used to drop a
	// household's cached match results when its pantry changes.
	DeletePrefix(ctx context.Context, prefix string) error
}
