package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/catalog"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/outbound"
)

// TemplateRecipeRepository implements outbound.TemplateRecipeRepository using GORM
type TemplateRecipeRepository struct {
	db *gorm.DB
}

// NewTemplateRecipeRepository creates a new template recipe repository
func NewTemplateRecipeRepository(db *gorm.DB) outbound.TemplateRecipeRepository {
	return &TemplateRecipeRepository{db: db}
}

// Create persists a new template recipe with its ingredient lines
func (r *TemplateRecipeRepository) Create(ctx context.Context, template *catalog.TemplateRecipe) error {
	return r.db.WithContext(ctx).Create(templateRecipeToModel(template)).Error
}

// FindByID finds a template recipe by ID
func (r *TemplateRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.TemplateRecipe, error) {
	var model TemplateRecipeModel
	result := r.db.WithContext(ctx).Preload("Ingredients").First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrRecipeNotFound
		}
		return nil, result.Error
	}
	return templateRecipeToDomain(&model), nil
}

// List returns a page of the shared catalog with the total count
func (r *TemplateRecipeRepository) List(ctx context.Context, offset, limit int) ([]*catalog.TemplateRecipe, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&TemplateRecipeModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []TemplateRecipeModel
	result := r.db.WithContext(ctx).
		Preload("Ingredients").
		Order("title ASC").
		Offset(offset).
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	templates := make([]*catalog.TemplateRecipe, len(models))
	for i := range models {
		templates[i] = templateRecipeToDomain(&models[i])
	}
	return templates, int(total), nil
}

// SavedRecipeRepository implements outbound.SavedRecipeRepository using GORM
type SavedRecipeRepository struct {
	db *gorm.DB
}

// NewSavedRecipeRepository creates a new saved recipe repository
func NewSavedRecipeRepository(db *gorm.DB) outbound.SavedRecipeRepository {
	return &SavedRecipeRepository{db: db}
}

// Create persists a new saved recipe with its ingredient lines
func (r *SavedRecipeRepository) Create(ctx context.Context, recipe *catalog.SavedRecipe) error {
	return r.db.WithContext(ctx).Create(savedRecipeToModel(recipe)).Error
}

// Update persists changes to a saved recipe, replacing its lines
func (r *SavedRecipeRepository) Update(ctx context.Context, recipe *catalog.SavedRecipe) error {
	model := savedRecipeToModel(recipe)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&RecipeIngredientModel{}, "saved_recipe_id = ?", model.ID).Error; err != nil {
			return err
		}
		result := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return catalog.ErrRecipeNotFound
		}
		return nil
	})
}

// Delete removes a saved recipe and its ingredient lines
func (r *SavedRecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&RecipeIngredientModel{}, "saved_recipe_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&SavedRecipeModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return catalog.ErrRecipeNotFound
		}
		return nil
	})
}

// FindByID finds a saved recipe by ID
func (r *SavedRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.SavedRecipe, error) {
	var model SavedRecipeModel
	result := r.db.WithContext(ctx).Preload("Ingredients").First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrRecipeNotFound
		}
		return nil, result.Error
	}
	return savedRecipeToDomain(&model), nil
}

// FindByHousehold returns a page of the household's recipes
func (r *SavedRecipeRepository) FindByHousehold(ctx context.Context, householdID uuid.UUID, offset, limit int) ([]*catalog.SavedRecipe, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&SavedRecipeModel{}).
		Where("household_id = ?", householdID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []SavedRecipeModel
	result := r.db.WithContext(ctx).
		Preload("Ingredients").
		Where("household_id = ?", householdID).
		Order("title ASC").
		Offset(offset).
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	recipes := make([]*catalog.SavedRecipe, len(models))
	for i := range models {
		recipes[i] = savedRecipeToDomain(&models[i])
	}
	return recipes, int(total), nil
}

// ListRequiredIngredients loads every non-optional ingredient row of
// the batch in one query. Manual overrides are folded into the flags
// here so the match engine sees the effective classification.
func (r *SavedRecipeRepository) ListRequiredIngredients(ctx context.Context, recipeIDs []uuid.UUID) ([]outbound.IngredientRow, error) {
	var models []RecipeIngredientModel
	result := r.db.WithContext(ctx).
		Where("saved_recipe_id IN ?", recipeIDs).
		Where("is_optional = ?", false).
		Order("saved_recipe_id, sort_order").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	rows := make([]outbound.IngredientRow, 0, len(models))
	for _, model := range models {
		ing := ingredientToDomain(model)
		rows = append(rows, outbound.IngredientRow{
			RecipeID:        *model.SavedRecipeID,
			IngredientID:    model.ID,
			RawName:         model.RawName,
			CanonicalItemID: model.CanonicalItemID,
			Critical:        ing.Critical(),
			Staple:          ing.Staple(),
		})
	}
	return rows, nil
}
