// Package classifier tags recipe ingredients as staples or as the
// critical ingredients that define the dish. Detection is heuristic
// and keyword driven, so a manual override field on the ingredient
// always wins over whatever the heuristic decides.
package classifier

import (
	"strings"

	"go.uber.org/zap"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/catalog"
)

// Service classifies recipe ingredients from a configured staple set
// and hero keyword families.
type Service struct {
	staples  map[string]struct{}
	families map[string][]string
	logger   *zap.Logger
}

// NewService creates a classifier from the configured staple list and
// hero keyword families.
func NewService(staples []string, heroFamilies map[string][]string, logger *zap.Logger) *Service {
	set := make(map[string]struct{}, len(staples))
	for _, s := range staples {
		set[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	return &Service{
		staples:  set,
		families: heroFamilies,
		logger:   logger.Named("classifier"),
	}
}

// ClassifyRecipe recomputes the automatic critical and staple flags on
// every ingredient of the recipe. Manual overrides live in separate
// fields and are untouched, so re-running after a title edit never
// loses a human decision.
func (s *Service) ClassifyRecipe(recipe *catalog.SavedRecipe) error {
	heroes := s.titleHeroes(recipe.Title())
	for _, ing := range recipe.Ingredients() {
		staple := s.IsStaple(ing.NormalizedName)
		critical := !staple && matchesHero(ing.NormalizedName, heroes)
		if err := recipe.SetClassification(ing.ID, critical, staple); err != nil {
			return err
		}
	}
	return nil
}

// ClassifyIngredients computes flags for detached ingredient lines,
// used at ingest time before the aggregate exists.
func (s *Service) ClassifyIngredients(title string, ingredients []catalog.RecipeIngredient) []catalog.RecipeIngredient {
	heroes := s.titleHeroes(title)
	out := make([]catalog.RecipeIngredient, len(ingredients))
	for i, ing := range ingredients {
		ing.IsStaple = s.IsStaple(ing.NormalizedName)
		ing.IsCritical = !ing.IsStaple && matchesHero(ing.NormalizedName, heroes)
		out[i] = ing
	}
	return out
}

// IsStaple reports whether a normalized name is in the staple set.
func (s *Service) IsStaple(normalizedName string) bool {
	_, ok := s.staples[normalizedName]
	return ok
}

// titleHeroes extracts the hero keywords the title mentions, grouped
// detection across all configured families.
func (s *Service) titleHeroes(title string) []string {
	lowered := strings.ToLower(title)
	var heroes []string
	for _, keywords := range s.families {
		for _, kw := range keywords {
			if strings.Contains(lowered, kw) {
				heroes = append(heroes, kw)
			}
		}
	}
	return heroes
}

// matchesHero reports whether the ingredient name carries one of the
// title's hero keywords as a whole word or substring token.
func matchesHero(normalizedName string, heroes []string) bool {
	if normalizedName == "" {
		return false
	}
	for _, hero := range heroes {
		if normalizedName == hero || strings.Contains(normalizedName, hero) {
			return true
		}
	}
	return false
}
