package gorm

import (
	"sort"

	"github.com/google/uuid"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/catalog"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/matching"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/pantry"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/vocabulary"
)

func canonicalItemToModel(item *vocabulary.CanonicalItem) *CanonicalItemModel {
	return &CanonicalItemModel{
		ID:        item.ID(),
		Name:      item.Name(),
		Category:  item.Category(),
		Aliases:   StringSlice(item.Aliases()),
		CreatedAt: item.CreatedAt(),
	}
}

func canonicalItemToDomain(model *CanonicalItemModel) *vocabulary.CanonicalItem {
	return vocabulary.Rehydrate(model.ID, model.Name, model.Category, model.Aliases, model.CreatedAt)
}

func ingredientToModel(ing catalog.RecipeIngredient, savedID, templateID *uuid.UUID) RecipeIngredientModel {
	return RecipeIngredientModel{
		ID:               ing.ID,
		SavedRecipeID:    savedID,
		TemplateRecipeID: templateID,
		RawName:          ing.RawName,
		NormalizedName:   ing.NormalizedName,
		CanonicalItemID:  ing.CanonicalItemID,
		Amount:           ing.Amount,
		Unit:             ing.Unit,
		IsCritical:       ing.IsCritical,
		IsStaple:         ing.IsStaple,
		CriticalOverride: ing.CriticalOverride,
		StapleOverride:   ing.StapleOverride,
		IsOptional:       ing.IsOptional,
		GroupName:        ing.GroupName,
		SortOrder:        ing.SortOrder,
	}
}

func ingredientToDomain(model RecipeIngredientModel) catalog.RecipeIngredient {
	return catalog.RecipeIngredient{
		ID:               model.ID,
		RawName:          model.RawName,
		NormalizedName:   model.NormalizedName,
		CanonicalItemID:  model.CanonicalItemID,
		Amount:           model.Amount,
		Unit:             model.Unit,
		IsCritical:       model.IsCritical,
		IsStaple:         model.IsStaple,
		CriticalOverride: model.CriticalOverride,
		StapleOverride:   model.StapleOverride,
		IsOptional:       model.IsOptional,
		GroupName:        model.GroupName,
		SortOrder:        model.SortOrder,
	}
}

func ingredientsToDomain(models []RecipeIngredientModel) []catalog.RecipeIngredient {
	sort.Slice(models, func(i, j int) bool { return models[i].SortOrder < models[j].SortOrder })
	out := make([]catalog.RecipeIngredient, len(models))
	for i, model := range models {
		out[i] = ingredientToDomain(model)
	}
	return out
}

func templateRecipeToModel(template *catalog.TemplateRecipe) *TemplateRecipeModel {
	id := template.ID()
	ingredients := template.Ingredients()
	models := make([]RecipeIngredientModel, len(ingredients))
	for i, ing := range ingredients {
		models[i] = ingredientToModel(ing, nil, &id)
	}
	return &TemplateRecipeModel{
		ID:          id,
		Title:       template.Title(),
		Description: template.Description(),
		ImageURL:    template.ImageURL(),
		CreatedAt:   template.CreatedAt(),
		Ingredients: models,
	}
}

func templateRecipeToDomain(model *TemplateRecipeModel) *catalog.TemplateRecipe {
	return catalog.RehydrateTemplate(
		model.ID, model.Title, model.Description, model.ImageURL,
		ingredientsToDomain(model.Ingredients), model.CreatedAt,
	)
}

func savedRecipeToModel(recipe *catalog.SavedRecipe) *SavedRecipeModel {
	id := recipe.ID()
	ingredients := recipe.Ingredients()
	models := make([]RecipeIngredientModel, len(ingredients))
	for i, ing := range ingredients {
		models[i] = ingredientToModel(ing, &id, nil)
	}
	return &SavedRecipeModel{
		ID:          id,
		HouseholdID: recipe.HouseholdID(),
		TemplateID:  recipe.TemplateID(),
		Title:       recipe.Title(),
		Description: recipe.Description(),
		ImageURL:    recipe.ImageURL(),
		CreatedAt:   recipe.CreatedAt(),
		UpdatedAt:   recipe.UpdatedAt(),
		Ingredients: models,
	}
}

func savedRecipeToDomain(model *SavedRecipeModel) *catalog.SavedRecipe {
	return catalog.RehydrateSaved(
		model.ID, model.HouseholdID, model.TemplateID,
		model.Title, model.Description, model.ImageURL,
		ingredientsToDomain(model.Ingredients),
		model.CreatedAt, model.UpdatedAt,
	)
}

func pantryEntryToModel(entry *pantry.Entry) *PantryEntryModel {
	return &PantryEntryModel{
		ID:              entry.ID(),
		HouseholdID:     entry.HouseholdID(),
		RawName:         entry.RawName(),
		NormalizedName:  entry.NormalizedName(),
		CanonicalItemID: entry.CanonicalItemID(),
		Quantity:        entry.Quantity(),
		Unit:            entry.Unit(),
		Status:          string(entry.Status()),
		Location:        entry.Location(),
		CreatedAt:       entry.CreatedAt(),
		UpdatedAt:       entry.UpdatedAt(),
	}
}

func pantryEntryToDomain(model *PantryEntryModel) *pantry.Entry {
	return pantry.Rehydrate(
		model.ID, model.HouseholdID, model.RawName, model.NormalizedName,
		model.CanonicalItemID, model.Quantity, model.Unit,
		pantry.EntryStatus(model.Status), model.Location,
		model.CreatedAt, model.UpdatedAt,
	)
}

func substitutionRuleToModel(rule *matching.SubstitutionRule) *SubstitutionRuleModel {
	return &SubstitutionRuleModel{
		ID:            rule.ID,
		ItemAID:       rule.ItemA,
		ItemBID:       rule.ItemB,
		PairKey:       rule.PairKey(),
		Rationale:     rule.Rationale,
		Ratio:         rule.Ratio,
		Category:      rule.Category,
		Bidirectional: rule.Bidirectional,
		CreatedAt:     rule.CreatedAt,
	}
}

func substitutionRuleToDomain(model *SubstitutionRuleModel) *matching.SubstitutionRule {
	return &matching.SubstitutionRule{
		ID:            model.ID,
		ItemA:         model.ItemAID,
		ItemB:         model.ItemBID,
		Rationale:     model.Rationale,
		Ratio:         model.Ratio,
		Category:      model.Category,
		Bidirectional: model.Bidirectional,
		CreatedAt:     model.CreatedAt,
	}
}
