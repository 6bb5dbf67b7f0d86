package classifier

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/catalog"
	"github.com/chamchi6619/pantry-app-v1-sub004/test/testutils"
)

// ClassifierTestSuite exercises staple and hero classification
type ClassifierTestSuite struct {
	suite.Suite
	service *Service
	recipes *testutils.RecipeFactory
}

// SetupTest builds a classifier with a representative configuration
func (suite *ClassifierTestSuite) SetupTest() {
	staples := []string{"salt", "pepper", "olive oil", "butter", "garlic", "flour", "sugar"}
	families := map[string][]string{
		"protein": {"salmon", "chicken", "beef", "tofu"},
		"starch":  {"pasta", "rice", "noodle"},
	}
	suite.service = NewService(staples, families, zap.NewNop())
	suite.recipes = testutils.NewRecipeFactory(99)
}

func (suite *ClassifierTestSuite) buildRecipe(title string, specs []testutils.IngredientSpec) *catalog.SavedRecipe {
	return suite.recipes.CreateSavedRecipe(uuid.New(), title, specs)
}

// TestClassifyRecipe covers automatic flag computation
func (suite *ClassifierTestSuite) TestClassifyRecipe() {
	suite.Run("TitleHero_ShouldMarkMatchingIngredientCritical", func() {
		// Arrange
		recipe := suite.buildRecipe("Pan-Seared Salmon", []testutils.IngredientSpec{
			{RawName: "salmon fillet"},
			{RawName: "olive oil"},
			{RawName: "salt"},
			{RawName: "pepper"},
		})

		// Act
		err := suite.service.ClassifyRecipe(recipe)

		// Assert
		require.NoError(suite.T(), err)
		ingredients := recipe.Ingredients()
		assert.True(suite.T(), ingredients[0].Critical(), "salmon fillet should be critical")
		assert.False(suite.T(), ingredients[0].Staple())
		for _, ing := range ingredients[1:] {
			assert.False(suite.T(), ing.Critical(), "%s should not be critical", ing.RawName)
			assert.True(suite.T(), ing.Staple(), "%s should be a staple", ing.RawName)
		}
	})

	suite.Run("StapleInTitle_ShouldStayStapleNotCritical", func() {
		// Arrange: garlic appears in the title but staples never carry
		// hero significance.
		recipe := suite.buildRecipe("Garlic Butter Chicken", []testutils.IngredientSpec{
			{RawName: "chicken thighs"},
			{RawName: "garlic"},
			{RawName: "butter"},
		})

		// Act
		err := suite.service.ClassifyRecipe(recipe)

		// Assert
		require.NoError(suite.T(), err)
		ingredients := recipe.Ingredients()
		assert.True(suite.T(), ingredients[0].Critical())
		assert.False(suite.T(), ingredients[1].Critical())
		assert.True(suite.T(), ingredients[1].Staple())
		assert.False(suite.T(), ingredients[2].Critical())
	})

	suite.Run("NoHeroInTitle_ShouldMarkNothingCritical", func() {
		// Arrange
		recipe := suite.buildRecipe("Weeknight Surprise", []testutils.IngredientSpec{
			{RawName: "eggplant"},
			{RawName: "salt"},
		})

		// Act
		err := suite.service.ClassifyRecipe(recipe)

		// Assert
		require.NoError(suite.T(), err)
		for _, ing := range recipe.Ingredients() {
			assert.False(suite.T(), ing.Critical())
		}
	})
}

// TestOverrideSurvival covers the manual override guarantee
func (suite *ClassifierTestSuite) TestOverrideSurvival() {
	suite.Run("ManualOverride_ShouldSurviveReclassification", func() {
		// Arrange
		recipe := suite.buildRecipe("Mystery Stew", []testutils.IngredientSpec{
			{RawName: "oxtail"},
			{RawName: "salt"},
		})
		require.NoError(suite.T(), suite.service.ClassifyRecipe(recipe))
		oxtailID := recipe.Ingredients()[0].ID
		require.NoError(suite.T(), recipe.OverrideCritical(oxtailID, true))

		// Act: reclassify twice, as a title edit would trigger
		require.NoError(suite.T(), suite.service.ClassifyRecipe(recipe))
		require.NoError(suite.T(), suite.service.ClassifyRecipe(recipe))

		// Assert
		assert.True(suite.T(), recipe.Ingredients()[0].Critical(),
			"override must survive heuristic re-runs")
	})

	suite.Run("OverrideToFalse_ShouldSuppressHeuristic", func() {
		// Arrange
		recipe := suite.buildRecipe("Chicken Rice Bowl", []testutils.IngredientSpec{
			{RawName: "chicken breast"},
			{RawName: "rice"},
		})
		require.NoError(suite.T(), suite.service.ClassifyRecipe(recipe))
		require.True(suite.T(), recipe.Ingredients()[0].Critical())
		chickenID := recipe.Ingredients()[0].ID
		require.NoError(suite.T(), recipe.OverrideCritical(chickenID, false))

		// Act
		require.NoError(suite.T(), suite.service.ClassifyRecipe(recipe))

		// Assert
		assert.False(suite.T(), recipe.Ingredients()[0].Critical())
	})
}

// TestClassifyIngredients covers the detached ingest-time path
func (suite *ClassifierTestSuite) TestClassifyIngredients() {
	// Arrange
	lines := []catalog.RecipeIngredient{
		{ID: uuid.New(), RawName: "Tofu", NormalizedName: "tofu"},
		{ID: uuid.New(), RawName: "Soy Sauce", NormalizedName: "soy sauce"},
		{ID: uuid.New(), RawName: "Salt", NormalizedName: "salt"},
	}

	// Act
	classified := suite.service.ClassifyIngredients("Crispy Tofu", lines)

	// Assert
	assert.True(suite.T(), classified[0].IsCritical)
	assert.False(suite.T(), classified[1].IsCritical)
	assert.True(suite.T(), classified[2].IsStaple)
}

func TestClassifierTestSuite(t *testing.T) {
	suite.Run(t, new(ClassifierTestSuite))
}
