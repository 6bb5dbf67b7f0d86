// Package catalog contains the recipe catalog domain: shared read-only
// template recipes and the household-owned saved copies made from them.
package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/shared"
)

// TemplateRecipe is a shared catalog recipe. Templates are curated or
// ingested once and are never mutated by a user action; households get
// their own mutable copy via SaveFromTemplate.
type TemplateRecipe struct {
	id          uuid.UUID
	title       string
	description string
	imageURL    string
	ingredients []RecipeIngredient
	createdAt   time.Time
}

// NewTemplateRecipe creates a template recipe with validation
func NewTemplateRecipe(title, description, imageURL string, ingredients []RecipeIngredient) (*TemplateRecipe, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	for _, ing := range ingredients {
		if err := ing.Validate(); err != nil {
			return nil, err
		}
	}

	return &TemplateRecipe{
		id:          uuid.New(),
		title:       title,
		description: description,
		imageURL:    imageURL,
		ingredients: ingredients,
		createdAt:   time.Now(),
	}, nil
}

// RehydrateTemplate reconstructs a TemplateRecipe from persisted state.
func RehydrateTemplate(id uuid.UUID, title, description, imageURL string, ingredients []RecipeIngredient, createdAt time.Time) *TemplateRecipe {
	return &TemplateRecipe{
		id:          id,
		title:       title,
		description: description,
		imageURL:    imageURL,
		ingredients: ingredients,
		createdAt:   createdAt,
	}
}

// ID returns the template's unique identifier
func (t *TemplateRecipe) ID() uuid.UUID {
	return t.id
}

// Title returns the template's title
func (t *TemplateRecipe) Title() string {
	return t.title
}

// Description returns the template's description
func (t *TemplateRecipe) Description() string {
	return t.description
}

// ImageURL returns the template's image URL
func (t *TemplateRecipe) ImageURL() string {
	return t.imageURL
}

// CreatedAt returns when the template was created
func (t *TemplateRecipe) CreatedAt() time.Time {
	return t.createdAt
}

// Ingredients returns a defensive copy of the ingredient lines so that
// callers cannot mutate the shared template through the slice.
func (t *TemplateRecipe) Ingredients() []RecipeIngredient {
	out := make([]RecipeIngredient, len(t.ingredients))
	copy(out, t.ingredients)
	return out
}

// SavedRecipe is a household's mutable copy of a recipe. It may
// originate from a template (copy-on-save) or directly from ingestion.
type SavedRecipe struct {
	shared.AggregateRoot

	id          uuid.UUID
	householdID uuid.UUID
	templateID  *uuid.UUID
	title       string
	description string
	imageURL    string
	ingredients []RecipeIngredient
	createdAt   time.Time
	updatedAt   time.Time
}

// NewSavedRecipe creates a household-owned recipe with validation
func NewSavedRecipe(householdID uuid.UUID, title, description, imageURL string, ingredients []RecipeIngredient) (*SavedRecipe, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	for i := range ingredients {
		if err := ingredients[i].Validate(); err != nil {
			return nil, err
		}
		if ingredients[i].ID == uuid.Nil {
			ingredients[i].ID = uuid.New()
		}
		ingredients[i].SortOrder = i
	}

	now := time.Now()
	recipe := &SavedRecipe{
		id:          uuid.New(),
		householdID: householdID,
		title:       title,
		description: description,
		imageURL:    imageURL,
		ingredients: ingredients,
		createdAt:   now,
		updatedAt:   now,
	}

	recipe.AddEvent(RecipeSavedEvent{
		RecipeID:    recipe.id,
		HouseholdID: householdID,
		Title:       title,
		SavedAt:     now,
	})

	return recipe, nil
}

// SaveFromTemplate performs the one-directional copy from the shared
// catalog into a household's collection. The template is read but never
// modified; every ingredient line gets a fresh identity on the copy.
func SaveFromTemplate(template *TemplateRecipe, householdID uuid.UUID) (*SavedRecipe, error) {
	ingredients := template.Ingredients()
	for i := range ingredients {
		ingredients[i].ID = uuid.New()
	}

	recipe, err := NewSavedRecipe(householdID, template.Title(), template.Description(), template.ImageURL(), ingredients)
	if err != nil {
		return nil, err
	}
	templateID := template.ID()
	recipe.templateID = &templateID
	return recipe, nil
}

// RehydrateSaved reconstructs a SavedRecipe from persisted state.
func RehydrateSaved(id, householdID uuid.UUID, templateID *uuid.UUID, title, description, imageURL string, ingredients []RecipeIngredient, createdAt, updatedAt time.Time) *SavedRecipe {
	return &SavedRecipe{
		id:          id,
		householdID: householdID,
		templateID:  templateID,
		title:       title,
		description: description,
		imageURL:    imageURL,
		ingredients: ingredients,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the recipe's unique identifier
func (r *SavedRecipe) ID() uuid.UUID {
	return r.id
}

// HouseholdID returns the owning household
func (r *SavedRecipe) HouseholdID() uuid.UUID {
	return r.householdID
}

// TemplateID returns the source template, if the recipe was copied from one
func (r *SavedRecipe) TemplateID() *uuid.UUID {
	return r.templateID
}

// Title returns the recipe's title
func (r *SavedRecipe) Title() string {
	return r.title
}

// Description returns the recipe's description
func (r *SavedRecipe) Description() string {
	return r.description
}

// ImageURL returns the recipe's image URL
func (r *SavedRecipe) ImageURL() string {
	return r.imageURL
}

// Ingredients returns the recipe's ingredient lines
func (r *SavedRecipe) Ingredients() []RecipeIngredient {
	return r.ingredients
}

// CreatedAt returns when the recipe was saved
func (r *SavedRecipe) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns when the recipe was last updated
func (r *SavedRecipe) UpdatedAt() time.Time {
	return r.updatedAt
}

// SetIngredientLinks records the derived canonicalization fields for an
// ingredient line. The raw text is left untouched.
func (r *SavedRecipe) SetIngredientLinks(ingredientID uuid.UUID, normalizedName string, canonicalItemID *uuid.UUID) error {
	for i := range r.ingredients {
		if r.ingredients[i].ID == ingredientID {
			r.ingredients[i].NormalizedName = normalizedName
			r.ingredients[i].CanonicalItemID = canonicalItemID
			r.updatedAt = time.Now()
			return nil
		}
	}
	return ErrIngredientNotFound
}

// SetClassification records the classifier's auto flags for an
// ingredient line without touching any manual override.
func (r *SavedRecipe) SetClassification(ingredientID uuid.UUID, critical, staple bool) error {
	for i := range r.ingredients {
		if r.ingredients[i].ID == ingredientID {
			r.ingredients[i].IsCritical = critical
			r.ingredients[i].IsStaple = staple
			r.updatedAt = time.Now()
			return nil
		}
	}
	return ErrIngredientNotFound
}

// OverrideCritical sets the manual critical override for an ingredient
// line. Later classifier re-runs will not clear it.
func (r *SavedRecipe) OverrideCritical(ingredientID uuid.UUID, critical bool) error {
	for i := range r.ingredients {
		if r.ingredients[i].ID == ingredientID {
			r.ingredients[i].CriticalOverride = &critical
			r.updatedAt = time.Now()
			return nil
		}
	}
	return ErrIngredientNotFound
}

// OverrideStaple sets the manual staple override for an ingredient
// line. Later classifier re-runs will not clear it.
func (r *SavedRecipe) OverrideStaple(ingredientID uuid.UUID, staple bool) error {
	for i := range r.ingredients {
		if r.ingredients[i].ID == ingredientID {
			r.ingredients[i].StapleOverride = &staple
			r.updatedAt = time.Now()
			return nil
		}
	}
	return ErrIngredientNotFound
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if len(title) < 3 {
		return ErrTitleTooShort
	}
	if len(title) > 200 {
		return ErrTitleTooLong
	}
	return nil
}
