package catalog

import (
	"time"

	"github.com/google/uuid"
)

// RecipeSavedEvent is raised when a household saves a recipe
type RecipeSavedEvent struct {
	RecipeID    uuid.UUID
	HouseholdID uuid.UUID
	Title       string
	SavedAt     time.Time
}

func (e RecipeSavedEvent) EventName() string {
	return "catalog.recipe.saved"
}

func (e RecipeSavedEvent) OccurredAt() time.Time {
	return e.SavedAt
}
