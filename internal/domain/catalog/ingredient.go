package catalog

import (
	"strings"

	"github.com/google/uuid"
)

// RecipeIngredient is one ingredient line of a recipe. RawName is the
// text exactly as authored and is never overwritten; NormalizedName and
// CanonicalItemID are derived links computed at write time.
type RecipeIngredient struct {
	ID             uuid.UUID
	RawName        string
	NormalizedName string
	CanonicalItemID *uuid.UUID
	Amount         float64
	Unit           string

	// Classifier output. The override fields are set only by a human
	// and win over the auto flags on every read.
	IsCritical       bool
	IsStaple         bool
	CriticalOverride *bool
	StapleOverride   *bool

	IsOptional bool
	GroupName  string
	SortOrder  int
}

// Validate validates the ingredient line
func (i RecipeIngredient) Validate() error {
	if strings.TrimSpace(i.RawName) == "" {
		return ErrEmptyIngredientName
	}
	if i.Amount < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// Critical resolves the effective critical flag, preferring a manual override.
func (i RecipeIngredient) Critical() bool {
	if i.CriticalOverride != nil {
		return *i.CriticalOverride
	}
	return i.IsCritical
}

// Staple resolves the effective staple flag, preferring a manual override.
func (i RecipeIngredient) Staple() bool {
	if i.StapleOverride != nil {
		return *i.StapleOverride
	}
	return i.IsStaple
}
