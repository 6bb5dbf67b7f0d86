// Package matching contains the pantry-compatibility scoring domain:
// curated substitution rules and the per-recipe match results computed
// against a household's pantry.
package matching

import (
	"time"

	"github.com/google/uuid"
)

// SubstitutionRule is a curated equivalence between two canonical
// items. ItemA and ItemB keep the curator's argument order because a
// one-directional rule only replaces ItemA with ItemB. Uniqueness is
// still over the unordered pair: PairKey is identical for both
// orderings and the persistence layer enforces it.
type SubstitutionRule struct {
	ID            uuid.UUID
	ItemA         uuid.UUID
	ItemB         uuid.UUID
	Rationale     string
	Ratio         float64
	Category      string
	Bidirectional bool
	CreatedAt     time.Time
}

// NewSubstitutionRule creates a substitution rule with validation.
// Argument order is preserved: itemB substitutes for itemA, and only
// the other way around when bidirectional.
func NewSubstitutionRule(itemA, itemB uuid.UUID, rationale string, ratio float64, category string, bidirectional bool) (*SubstitutionRule, error) {
	if itemA == itemB {
		return nil, ErrSelfSubstitution
	}
	if ratio <= 0 {
		return nil, ErrInvalidRatio
	}

	return &SubstitutionRule{
		ID:            uuid.New(),
		ItemA:         itemA,
		ItemB:         itemB,
		Rationale:     rationale,
		Ratio:         ratio,
		Category:      category,
		Bidirectional: bidirectional,
		CreatedAt:     time.Now(),
	}, nil
}

// PairKey identifies the unordered item pair. Rules for (a, b) and
// (b, a) share the same key, so a unique index over it rejects the
// reversed duplicate without touching the stored direction.
func (r *SubstitutionRule) PairKey() string {
	a, b := r.ItemA.String(), r.ItemB.String()
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// Covers reports whether the rule involves the given item at all.
func (r *SubstitutionRule) Covers(itemID uuid.UUID) bool {
	return r.ItemA == itemID || r.ItemB == itemID
}

// SubstituteFor returns the counterpart the rule offers for a missing
// item, honoring directionality: a one-directional rule only replaces
// ItemA with ItemB. The second return is false when the rule does not
// apply in that direction.
func (r *SubstitutionRule) SubstituteFor(missing uuid.UUID) (uuid.UUID, bool) {
	switch missing {
	case r.ItemA:
		return r.ItemB, true
	case r.ItemB:
		if r.Bidirectional {
			return r.ItemA, true
		}
		return uuid.Nil, false
	default:
		return uuid.Nil, false
	}
}

// Confidence bands a rule's strength. Strong requires bidirectionality
// and a ratio inside the tolerance band around 1.0; anything else is weak.
func (r *SubstitutionRule) Confidence(ratioLow, ratioHigh float64) RuleConfidence {
	if r.Bidirectional && r.Ratio >= ratioLow && r.Ratio <= ratioHigh {
		return RuleConfidenceStrong
	}
	return RuleConfidenceWeak
}

// RuleConfidence bands how much partial credit a substitution earns
type RuleConfidence string

const (
	RuleConfidenceStrong RuleConfidence = "strong"
	RuleConfidenceWeak   RuleConfidence = "weak"
)
