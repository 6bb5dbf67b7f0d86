package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// RecipeTestSuite provides a test suite for catalog recipe entities
type RecipeTestSuite struct {
	suite.Suite
}

func TestRecipeTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeTestSuite))
}

func templateIngredients() []RecipeIngredient {
	return []RecipeIngredient{
		{RawName: "2 salmon fillets", Amount: 2, Unit: "pcs"},
		{RawName: "1 tbsp olive oil", Amount: 1, Unit: "tbsp"},
	}
}

// TestSavedRecipeCreation tests saved recipe creation scenarios
func (suite *RecipeTestSuite) TestSavedRecipeCreation() {
	suite.Run("ValidRecipe_ShouldCreateSuccessfully", func() {
		// Arrange
		householdID := uuid.New()

		// Act
		recipe, err := NewSavedRecipe(householdID, "Pan-Seared Salmon", "", "", templateIngredients())

		// Assert
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), recipe)

		assert.Equal(suite.T(), householdID, recipe.HouseholdID())
		assert.Nil(suite.T(), recipe.TemplateID())

		ingredients := recipe.Ingredients()
		require.Len(suite.T(), ingredients, 2)
		for i, ing := range ingredients {
			assert.NotEqual(suite.T(), uuid.Nil, ing.ID)
			assert.Equal(suite.T(), i, ing.SortOrder)
		}

		// Check domain events
		events := recipe.Events()
		require.Len(suite.T(), events, 1)
		saved, ok := events[0].(RecipeSavedEvent)
		assert.True(suite.T(), ok, "Should emit RecipeSavedEvent")
		assert.Equal(suite.T(), recipe.ID(), saved.RecipeID)
	})

	suite.Run("ShortTitle_ShouldReturnError", func() {
		recipe, err := NewSavedRecipe(uuid.New(), "AB", "", "", nil)

		assert.Nil(suite.T(), recipe)
		assert.Equal(suite.T(), ErrTitleTooShort, err)
	})

	suite.Run("EmptyIngredientName_ShouldReturnError", func() {
		recipe, err := NewSavedRecipe(uuid.New(), "Valid Title", "", "", []RecipeIngredient{
			{RawName: "  "},
		})

		assert.Nil(suite.T(), recipe)
		assert.Equal(suite.T(), ErrEmptyIngredientName, err)
	})
}

// TestSaveFromTemplate tests the one-directional catalog copy
func (suite *RecipeTestSuite) TestSaveFromTemplate() {
	suite.Run("Copy_ShouldGetFreshIngredientIdentities", func() {
		// Arrange
		template, err := NewTemplateRecipe("Pan-Seared Salmon", "weeknight dinner", "", templateIngredients())
		require.NoError(suite.T(), err)
		templateLineIDs := make(map[uuid.UUID]bool)
		for _, ing := range template.Ingredients() {
			templateLineIDs[ing.ID] = true
		}
		householdID := uuid.New()

		// Act
		saved, err := SaveFromTemplate(template, householdID)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), householdID, saved.HouseholdID())
		require.NotNil(suite.T(), saved.TemplateID())
		assert.Equal(suite.T(), template.ID(), *saved.TemplateID())

		for _, ing := range saved.Ingredients() {
			assert.False(suite.T(), templateLineIDs[ing.ID], "copy must not share line identity with template")
		}
	})

	suite.Run("MutatingCopy_ShouldNotTouchTemplate", func() {
		// Arrange
		template, err := NewTemplateRecipe("Pan-Seared Salmon", "", "", templateIngredients())
		require.NoError(suite.T(), err)
		saved, err := SaveFromTemplate(template, uuid.New())
		require.NoError(suite.T(), err)

		// Act
		line := saved.Ingredients()[0]
		canonicalID := uuid.New()
		require.NoError(suite.T(), saved.SetIngredientLinks(line.ID, "salmon", &canonicalID))
		require.NoError(suite.T(), saved.SetClassification(line.ID, true, false))

		// Assert
		for _, ing := range template.Ingredients() {
			assert.Empty(suite.T(), ing.NormalizedName)
			assert.Nil(suite.T(), ing.CanonicalItemID)
			assert.False(suite.T(), ing.IsCritical)
		}
	})
}

// TestClassificationOverrides tests that manual overrides win and survive
func (suite *RecipeTestSuite) TestClassificationOverrides() {
	suite.Run("Override_ShouldSurviveReclassification", func() {
		// Arrange
		recipe, err := NewSavedRecipe(uuid.New(), "Garlic Butter Chicken", "", "", templateIngredients())
		require.NoError(suite.T(), err)
		line := recipe.Ingredients()[0]

		// Act
		require.NoError(suite.T(), recipe.OverrideCritical(line.ID, true))
		require.NoError(suite.T(), recipe.SetClassification(line.ID, false, false))

		// Assert
		assert.True(suite.T(), recipe.Ingredients()[0].Critical())
	})

	suite.Run("OverrideToFalse_ShouldSuppressAutoFlag", func() {
		// Arrange
		recipe, err := NewSavedRecipe(uuid.New(), "Garlic Butter Chicken", "", "", templateIngredients())
		require.NoError(suite.T(), err)
		line := recipe.Ingredients()[0]
		require.NoError(suite.T(), recipe.SetClassification(line.ID, true, false))

		// Act
		require.NoError(suite.T(), recipe.OverrideCritical(line.ID, false))

		// Assert
		assert.False(suite.T(), recipe.Ingredients()[0].Critical())
	})

	suite.Run("StapleOverride_ShouldSurviveReclassification", func() {
		// Arrange
		recipe, err := NewSavedRecipe(uuid.New(), "Garlic Butter Chicken", "", "", templateIngredients())
		require.NoError(suite.T(), err)
		line := recipe.Ingredients()[0]

		// Act
		require.NoError(suite.T(), recipe.OverrideStaple(line.ID, true))
		require.NoError(suite.T(), recipe.SetClassification(line.ID, false, false))

		// Assert
		assert.True(suite.T(), recipe.Ingredients()[0].Staple())
	})

	suite.Run("UnknownIngredient_ShouldReturnError", func() {
		recipe, err := NewSavedRecipe(uuid.New(), "Garlic Butter Chicken", "", "", templateIngredients())
		require.NoError(suite.T(), err)

		assert.Equal(suite.T(), ErrIngredientNotFound, recipe.OverrideCritical(uuid.New(), true))
		assert.Equal(suite.T(), ErrIngredientNotFound, recipe.OverrideStaple(uuid.New(), true))
	})
}
