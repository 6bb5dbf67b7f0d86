package matching

import (
	"github.com/google/uuid"
)

// MissingIngredient describes an unmatched recipe ingredient in a
// MatchResult. RawName is always present; the canonical fields are set
// when the ingredient resolved to the vocabulary.
type MissingIngredient struct {
	IngredientID    uuid.UUID  `json:"ingredient_id"`
	RawName         string     `json:"raw_name"`
	CanonicalItemID *uuid.UUID `json:"canonical_item_id,omitempty"`
	CanonicalName   string     `json:"canonical_name,omitempty"`
	Critical        bool       `json:"critical"`
}

// SubstitutedIngredient describes an ingredient satisfied by a
// substitution rule rather than an exact pantry match.
type SubstitutedIngredient struct {
	IngredientID    uuid.UUID      `json:"ingredient_id"`
	RawName         string         `json:"raw_name"`
	CanonicalItemID uuid.UUID      `json:"canonical_item_id"`
	UsedItemID      uuid.UUID      `json:"used_item_id"`
	UsedItemName    string         `json:"used_item_name,omitempty"`
	Confidence      RuleConfidence `json:"confidence"`
	Weight          float64        `json:"weight"`
}

// MatchResult is the ephemeral outcome of scoring one recipe against
// one household's pantry. It is never persisted as a source of truth;
// it may be cached with explicit invalidation on pantry change.
type MatchResult struct {
	RecipeID uuid.UUID `json:"recipe_id"`

	// MatchPercent is the display percentage over all non-optional
	// ingredients, staples included. CorePercent excludes staples and
	// is the percentage the cookability verdict is taken from.
	MatchPercent int `json:"match_percent"`
	CorePercent  int `json:"core_percent"`

	MatchedCount float64 `json:"matched_count"`
	TotalCount   int     `json:"total_count"`

	MissingCritical []MissingIngredient     `json:"missing_critical"`
	MissingOther    []MissingIngredient     `json:"missing_other"`
	Substituted     []SubstitutedIngredient `json:"substituted"`

	Cookable bool `json:"cookable"`
}

// Missing returns all missing ingredients, critical first.
func (m MatchResult) Missing() []MissingIngredient {
	out := make([]MissingIngredient, 0, len(m.MissingCritical)+len(m.MissingOther))
	out = append(out, m.MissingCritical...)
	out = append(out, m.MissingOther...)
	return out
}

// EmptyResult is the defined zero outcome for a recipe with no
// matchable non-optional ingredients. It is a real result, not an
// error, and such recipes never land in a "ready now" bucket.
func EmptyResult(recipeID uuid.UUID) MatchResult {
	return MatchResult{
		RecipeID:        recipeID,
		MatchPercent:    0,
		CorePercent:     0,
		MissingCritical: []MissingIngredient{},
		MissingOther:    []MissingIngredient{},
		Substituted:     []SubstitutedIngredient{},
		Cookable:        false,
	}
}
