package matching

import (
	"sort"

	"github.com/google/uuid"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/matching"
)

// Substitution is a resolved stand-in for a missing canonical item.
type Substitution struct {
	UsedItemID uuid.UUID
	Confidence matching.RuleConfidence
	Weight     float64
}

// Weights carries the partial-credit configuration of the resolver.
type Weights struct {
	Strong    float64
	Weak      float64
	RatioLow  float64
	RatioHigh float64
}

// Resolver answers "can anything in the pantry stand in for this
// item" from a fixed rule set loaded once per scoring pass. Rules are
// symmetric when bidirectional; a one-directional rule only replaces
// its first item with its second.
type Resolver struct {
	byMissing map[uuid.UUID][]candidate
	weights   Weights
}

type candidate struct {
	usedItemID uuid.UUID
	confidence matching.RuleConfidence
}

// NewResolver indexes the given rules for per-item lookup. Candidate
// lists are ordered strong before weak, then by item ID, so resolution
// is deterministic regardless of rule load order.
func NewResolver(rules []*matching.SubstitutionRule, weights Weights) *Resolver {
	byMissing := make(map[uuid.UUID][]candidate)
	add := func(missing, used uuid.UUID, conf matching.RuleConfidence) {
		byMissing[missing] = append(byMissing[missing], candidate{usedItemID: used, confidence: conf})
	}
	for _, rule := range rules {
		conf := rule.Confidence(weights.RatioLow, weights.RatioHigh)
		if used, ok := rule.SubstituteFor(rule.ItemA); ok {
			add(rule.ItemA, used, conf)
		}
		if used, ok := rule.SubstituteFor(rule.ItemB); ok {
			add(rule.ItemB, used, conf)
		}
	}
	for missing := range byMissing {
		list := byMissing[missing]
		sort.Slice(list, func(i, j int) bool {
			if list[i].confidence != list[j].confidence {
				return list[i].confidence == matching.RuleConfidenceStrong
			}
			return list[i].usedItemID.String() < list[j].usedItemID.String()
		})
	}
	return &Resolver{byMissing: byMissing, weights: weights}
}

// Resolve finds the best available substitute for the missing item.
// The second return is false when no rule lands on an available item.
func (r *Resolver) Resolve(missing uuid.UUID, available map[uuid.UUID]struct{}) (Substitution, bool) {
	for _, cand := range r.byMissing[missing] {
		if _, ok := available[cand.usedItemID]; !ok {
			continue
		}
		weight := r.weights.Weak
		if cand.confidence == matching.RuleConfidenceStrong {
			weight = r.weights.Strong
		}
		return Substitution{
			UsedItemID: cand.usedItemID,
			Confidence: cand.confidence,
			Weight:     weight,
		}, true
	}
	return Substitution{}, false
}
