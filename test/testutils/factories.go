// Package testutils provides test data factories and in-memory fakes
// shared across package test suites.
package testutils

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/catalog"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/matching"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/pantry"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/vocabulary"
)

// VocabularyFactory creates canonical vocabulary items for tests
type VocabularyFactory struct {
	faker *gofakeit.Faker
}

// NewVocabularyFactory creates a factory with the given seed
func NewVocabularyFactory(seed int64) *VocabularyFactory {
	return &VocabularyFactory{faker: gofakeit.New(seed)}
}

// CreateItem builds a canonical item with a lowercase name and the
// given aliases.
func (f *VocabularyFactory) CreateItem(name, category string, aliases ...string) *vocabulary.CanonicalItem {
	item, err := vocabulary.NewCanonicalItem(strings.ToLower(name), category, aliases)
	if err != nil {
		panic(fmt.Sprintf("factory: invalid canonical item %q: %v", name, err))
	}
	item.Events() // drain creation events
	return item
}

// CreateRandomItem builds a canonical item with a unique generated name
func (f *VocabularyFactory) CreateRandomItem() *vocabulary.CanonicalItem {
	name := strings.ToLower(f.faker.Vegetable()) + " " + strings.ToLower(f.faker.LetterN(6))
	return f.CreateItem(name, "produce")
}

// IngredientSpec describes one ingredient line for the recipe factories
type IngredientSpec struct {
	RawName     string
	CanonicalID *uuid.UUID
	Critical    bool
	Staple      bool
	Optional    bool
}

func buildIngredients(specs []IngredientSpec) []catalog.RecipeIngredient {
	ingredients := make([]catalog.RecipeIngredient, 0, len(specs))
	for i, spec := range specs {
		ingredients = append(ingredients, catalog.RecipeIngredient{
			ID:              uuid.New(),
			RawName:         spec.RawName,
			NormalizedName:  strings.ToLower(spec.RawName),
			CanonicalItemID: spec.CanonicalID,
			IsCritical:      spec.Critical,
			IsStaple:        spec.Staple,
			IsOptional:      spec.Optional,
			SortOrder:       i,
		})
	}
	return ingredients
}

// RecipeFactory creates saved recipes and catalog templates for tests
type RecipeFactory struct {
	faker *gofakeit.Faker
}

// NewRecipeFactory creates a factory with the given seed
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{faker: gofakeit.New(seed)}
}

// CreateSavedRecipe builds a saved recipe for the household with the
// given ingredient lineup.
func (f *RecipeFactory) CreateSavedRecipe(householdID uuid.UUID, title string, specs []IngredientSpec) *catalog.SavedRecipe {
	recipe, err := catalog.NewSavedRecipe(householdID, title, f.faker.Sentence(6), f.faker.URL(), buildIngredients(specs))
	if err != nil {
		panic(fmt.Sprintf("factory: invalid saved recipe %q: %v", title, err))
	}
	recipe.Events()
	return recipe
}

// CreateTemplate builds a shared catalog template recipe
func (f *RecipeFactory) CreateTemplate(title string, specs []IngredientSpec) *catalog.TemplateRecipe {
	tmpl, err := catalog.NewTemplateRecipe(title, f.faker.Sentence(6), f.faker.URL(), buildIngredients(specs))
	if err != nil {
		panic(fmt.Sprintf("factory: invalid template %q: %v", title, err))
	}
	return tmpl
}

// PantryFactory creates pantry entries for tests
type PantryFactory struct {
	faker *gofakeit.Faker
}

// NewPantryFactory creates a factory with the given seed
func NewPantryFactory(seed int64) *PantryFactory {
	return &PantryFactory{faker: gofakeit.New(seed)}
}

// CreateEntry builds an active pantry entry, optionally linked to a
// canonical item.
func (f *PantryFactory) CreateEntry(householdID uuid.UUID, rawName string, canonicalID *uuid.UUID, quantity float64) *pantry.Entry {
	entry, err := pantry.NewEntry(householdID, rawName, quantity, "unit", "pantry")
	if err != nil {
		panic(fmt.Sprintf("factory: invalid pantry entry %q: %v", rawName, err))
	}
	entry.SetCanonicalLink(strings.ToLower(rawName), canonicalID)
	entry.Events()
	return entry
}

// RuleFactory creates substitution rules for tests
type RuleFactory struct{}

// NewRuleFactory creates a rule factory
func NewRuleFactory() *RuleFactory {
	return &RuleFactory{}
}

// CreateRule builds a substitution rule between two canonical items
func (f *RuleFactory) CreateRule(a, b uuid.UUID, ratio float64, bidirectional bool) *matching.SubstitutionRule {
	rule, err := matching.NewSubstitutionRule(a, b, "test rule", ratio, "general", bidirectional)
	if err != nil {
		panic(fmt.Sprintf("factory: invalid substitution rule: %v", err))
	}
	return rule
}
