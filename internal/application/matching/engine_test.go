package matching

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	domainmatching "github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/matching"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/infrastructure/config"
	"github.com/chamchi6619/pantry-app-v1-sub004/test/testutils"
)

// MatchEngineTestSuite exercises batch scoring end to end over
// in-memory stores.
type MatchEngineTestSuite struct {
	suite.Suite
	recipeRepo *testutils.FakeSavedRecipeRepository
	pantryRepo *testutils.FakePantryRepository
	ruleRepo   *testutils.FakeSubstitutionRepository
	cache      *testutils.FakeCacheRepository
	service    *Service

	vocab    *testutils.VocabularyFactory
	recipes  *testutils.RecipeFactory
	pantries *testutils.PantryFactory
	rules    *testutils.RuleFactory

	householdID uuid.UUID
	ctx         context.Context
}

func defaultMatchingConfig() config.MatchingConfig {
	return config.MatchingConfig{
		FuzzyThreshold:    0.8,
		StrongWeight:      0.8,
		WeakWeight:        0.4,
		StrongRatioLow:    0.75,
		StrongRatioHigh:   1.25,
		CookableThreshold: 70,
		PantryEpsilon:     0.01,
		MaxRecipesPerCall: 500,
		ResultCacheTTL:    0,
	}
}

// SetupTest wires a fresh engine over empty fakes
func (suite *MatchEngineTestSuite) SetupTest() {
	suite.recipeRepo = testutils.NewFakeSavedRecipeRepository()
	suite.pantryRepo = testutils.NewFakePantryRepository()
	suite.ruleRepo = testutils.NewFakeSubstitutionRepository()
	suite.cache = testutils.NewFakeCacheRepository()
	suite.service = NewService(
		suite.recipeRepo, suite.pantryRepo, suite.ruleRepo, suite.cache,
		defaultMatchingConfig(), zap.NewNop(),
	)
	suite.vocab = testutils.NewVocabularyFactory(1)
	suite.recipes = testutils.NewRecipeFactory(2)
	suite.pantries = testutils.NewPantryFactory(3)
	suite.rules = testutils.NewRuleFactory()
	suite.householdID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *MatchEngineTestSuite) stock(rawName string, canonicalID uuid.UUID) {
	entry := suite.pantries.CreateEntry(suite.householdID, rawName, &canonicalID, 1)
	require.NoError(suite.T(), suite.pantryRepo.Create(suite.ctx, entry))
}

// TestScoring covers the percentage and cookability rules
func (suite *MatchEngineTestSuite) TestScoring() {
	suite.Run("MissingCriticalHero_ShouldScoreHighButNotCook", func() {
		// Arrange: salmon is critical, the three staples are stocked
		salmon := suite.vocab.CreateItem("salmon", "protein")
		oil := suite.vocab.CreateItem("olive oil", "pantry")
		salt := suite.vocab.CreateItem("salt", "spice")
		pepper := suite.vocab.CreateItem("pepper", "spice")
		recipe := suite.recipes.CreateSavedRecipe(suite.householdID, "Pan-Seared Salmon", []testutils.IngredientSpec{
			{RawName: "salmon fillet", CanonicalID: ptr(salmon.ID()), Critical: true},
			{RawName: "olive oil", CanonicalID: ptr(oil.ID()), Staple: true},
			{RawName: "salt", CanonicalID: ptr(salt.ID()), Staple: true},
			{RawName: "pepper", CanonicalID: ptr(pepper.ID()), Staple: true},
		})
		require.NoError(suite.T(), suite.recipeRepo.Create(suite.ctx, recipe))
		suite.stock("olive oil", oil.ID())
		suite.stock("salt", salt.ID())
		suite.stock("pepper", pepper.ID())

		// Act
		results, err := suite.service.ComputeMatches(suite.ctx, suite.householdID, []uuid.UUID{recipe.ID()})

		// Assert
		require.NoError(suite.T(), err)
		result := results[recipe.ID()]
		assert.Equal(suite.T(), 75, result.MatchPercent)
		assert.Equal(suite.T(), 0, result.CorePercent)
		assert.False(suite.T(), result.Cookable)
		require.Len(suite.T(), result.MissingCritical, 1)
		assert.Equal(suite.T(), "salmon fillet", result.MissingCritical[0].RawName)
		assert.Empty(suite.T(), result.MissingOther)
	})

	suite.Run("AllStocked_ShouldBeCookable", func() {
		// Arrange
		chicken := suite.vocab.CreateItem("chicken", "protein")
		rice := suite.vocab.CreateItem("rice", "grain")
		recipe := suite.recipes.CreateSavedRecipe(suite.householdID, "Chicken Rice", []testutils.IngredientSpec{
			{RawName: "chicken", CanonicalID: ptr(chicken.ID()), Critical: true},
			{RawName: "rice", CanonicalID: ptr(rice.ID())},
		})
		require.NoError(suite.T(), suite.recipeRepo.Create(suite.ctx, recipe))
		suite.stock("chicken", chicken.ID())
		suite.stock("rice", rice.ID())

		// Act
		results, err := suite.service.ComputeMatches(suite.ctx, suite.householdID, []uuid.UUID{recipe.ID()})

		// Assert
		require.NoError(suite.T(), err)
		result := results[recipe.ID()]
		assert.Equal(suite.T(), 100, result.MatchPercent)
		assert.Equal(suite.T(), 100, result.CorePercent)
		assert.True(suite.T(), result.Cookable)
		assert.InDelta(suite.T(), 2.0, result.MatchedCount, 1e-9)
	})

	suite.Run("UnlinkedIngredient_ShouldCountAsMissing", func() {
		// Arrange: one line never resolved to the vocabulary
		rice := suite.vocab.CreateItem("arborio rice", "grain")
		recipe := suite.recipes.CreateSavedRecipe(suite.householdID, "Risotto", []testutils.IngredientSpec{
			{RawName: "arborio rice", CanonicalID: ptr(rice.ID())},
			{RawName: "dawadawa"},
		})
		require.NoError(suite.T(), suite.recipeRepo.Create(suite.ctx, recipe))
		suite.stock("arborio rice", rice.ID())

		// Act
		results, err := suite.service.ComputeMatches(suite.ctx, suite.householdID, []uuid.UUID{recipe.ID()})

		// Assert
		require.NoError(suite.T(), err)
		result := results[recipe.ID()]
		assert.Equal(suite.T(), 50, result.MatchPercent)
		require.Len(suite.T(), result.MissingOther, 1)
		assert.Equal(suite.T(), "dawadawa", result.MissingOther[0].RawName)
		assert.Nil(suite.T(), result.MissingOther[0].CanonicalItemID)
	})

	suite.Run("UnknownRecipe_ShouldReturnDefinedZeroResult", func() {
		// Act
		ghost := uuid.New()
		results, err := suite.service.ComputeMatches(suite.ctx, suite.householdID, []uuid.UUID{ghost})

		// Assert
		require.NoError(suite.T(), err)
		result, ok := results[ghost]
		require.True(suite.T(), ok)
		assert.Equal(suite.T(), domainmatching.EmptyResult(ghost), result)
	})
}

// TestSubstitutions covers partial credit through curated rules
func (suite *MatchEngineTestSuite) TestSubstitutions() {
	suite.Run("StrongRule_ShouldMatchAtStrongWeight", func() {
		// Arrange: butter needed, margarine stocked, bidirectional 1:1
		butter := suite.vocab.CreateItem("butter", "dairy")
		margarine := suite.vocab.CreateItem("margarine", "dairy")
		flour := suite.vocab.CreateItem("flour", "pantry")
		recipe := suite.recipes.CreateSavedRecipe(suite.householdID, "Shortbread", []testutils.IngredientSpec{
			{RawName: "butter", CanonicalID: ptr(butter.ID())},
			{RawName: "flour", CanonicalID: ptr(flour.ID())},
		})
		require.NoError(suite.T(), suite.recipeRepo.Create(suite.ctx, recipe))
		suite.stock("margarine", margarine.ID())
		suite.stock("flour", flour.ID())
		rule := suite.rules.CreateRule(butter.ID(), margarine.ID(), 1.0, true)
		require.NoError(suite.T(), suite.ruleRepo.Create(suite.ctx, rule))

		// Act
		results, err := suite.service.ComputeMatches(suite.ctx, suite.householdID, []uuid.UUID{recipe.ID()})

		// Assert
		require.NoError(suite.T(), err)
		result := results[recipe.ID()]
		assert.Empty(suite.T(), result.MissingOther)
		assert.Empty(suite.T(), result.MissingCritical)
		require.Len(suite.T(), result.Substituted, 1)
		sub := result.Substituted[0]
		assert.Equal(suite.T(), domainmatching.RuleConfidenceStrong, sub.Confidence)
		assert.InDelta(suite.T(), 0.8, sub.Weight, 1e-9)
		assert.Equal(suite.T(), margarine.ID(), sub.UsedItemID)
		assert.InDelta(suite.T(), 1.8, result.MatchedCount, 1e-9)
		assert.Equal(suite.T(), 90, result.MatchPercent)
		assert.True(suite.T(), result.Cookable)
	})

	suite.Run("OffRatioRule_ShouldMatchAtWeakWeight", func() {
		// Arrange: ratio outside the strong tolerance band
		cream := suite.vocab.CreateItem("heavy cream", "dairy")
		milk := suite.vocab.CreateItem("milk", "dairy")
		recipe := suite.recipes.CreateSavedRecipe(suite.householdID, "Sauce", []testutils.IngredientSpec{
			{RawName: "heavy cream", CanonicalID: ptr(cream.ID())},
		})
		require.NoError(suite.T(), suite.recipeRepo.Create(suite.ctx, recipe))
		suite.stock("milk", milk.ID())
		rule := suite.rules.CreateRule(cream.ID(), milk.ID(), 2.0, true)
		require.NoError(suite.T(), suite.ruleRepo.Create(suite.ctx, rule))

		// Act
		results, err := suite.service.ComputeMatches(suite.ctx, suite.householdID, []uuid.UUID{recipe.ID()})

		// Assert
		require.NoError(suite.T(), err)
		result := results[recipe.ID()]
		require.Len(suite.T(), result.Substituted, 1)
		assert.Equal(suite.T(), domainmatching.RuleConfidenceWeak, result.Substituted[0].Confidence)
		assert.InDelta(suite.T(), 0.4, result.Substituted[0].Weight, 1e-9)
		assert.Equal(suite.T(), 40, result.MatchPercent)
		assert.False(suite.T(), result.Cookable)
	})

	suite.Run("CriticalIngredient_ShouldNeverUseSubstitution", func() {
		// Arrange: a perfect rule exists but salmon defines the dish
		salmon := suite.vocab.CreateItem("salmon", "protein")
		trout := suite.vocab.CreateItem("trout", "protein")
		recipe := suite.recipes.CreateSavedRecipe(suite.householdID, "Pan-Seared Salmon", []testutils.IngredientSpec{
			{RawName: "salmon", CanonicalID: ptr(salmon.ID()), Critical: true},
		})
		require.NoError(suite.T(), suite.recipeRepo.Create(suite.ctx, recipe))
		suite.stock("trout", trout.ID())
		rule := suite.rules.CreateRule(salmon.ID(), trout.ID(), 1.0, true)
		require.NoError(suite.T(), suite.ruleRepo.Create(suite.ctx, rule))

		// Act
		results, err := suite.service.ComputeMatches(suite.ctx, suite.householdID, []uuid.UUID{recipe.ID()})

		// Assert
		require.NoError(suite.T(), err)
		result := results[recipe.ID()]
		assert.Empty(suite.T(), result.Substituted)
		require.Len(suite.T(), result.MissingCritical, 1)
		assert.False(suite.T(), result.Cookable)
	})

	suite.Run("RuleFetch_ShouldOnlyCoverUnsatisfiedNonCriticalItems", func() {
		// Arrange: one stocked, one missing critical, one missing other.
		stocked := suite.vocab.CreateItem("onion", "produce")
		hero := suite.vocab.CreateItem("duck breast", "protein")
		missing := suite.vocab.CreateItem("thyme", "herb")
		recipe := suite.recipes.CreateSavedRecipe(suite.householdID, "Duck Roast", []testutils.IngredientSpec{
			{RawName: "onion", CanonicalID: ptr(stocked.ID())},
			{RawName: "duck breast", CanonicalID: ptr(hero.ID()), Critical: true},
			{RawName: "thyme", CanonicalID: ptr(missing.ID())},
		})
		require.NoError(suite.T(), suite.recipeRepo.Create(suite.ctx, recipe))
		suite.stock("onion", stocked.ID())

		// Act
		_, err := suite.service.ComputeMatches(suite.ctx, suite.householdID, []uuid.UUID{recipe.ID()})

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), []uuid.UUID{missing.ID()}, suite.ruleRepo.LastItemIDs)
	})

	suite.Run("OneDirectionalRule_ReversedSortOrder_ShouldStillApplyForward", func() {
		// Arrange: the needed item's ID sorts after its substitute's.
		needed := uuid.MustParse("ffffffff-0000-0000-0000-00000000000a")
		substitute := uuid.MustParse("00000000-0000-0000-0000-00000000000b")
		rule := suite.rules.CreateRule(needed, substitute, 1.0, false)
		require.NoError(suite.T(), suite.ruleRepo.Create(suite.ctx, rule))
		recipe := suite.recipes.CreateSavedRecipe(suite.householdID, "Spread", []testutils.IngredientSpec{
			{RawName: "needs the source", CanonicalID: ptr(needed)},
		})
		require.NoError(suite.T(), suite.recipeRepo.Create(suite.ctx, recipe))
		suite.stock("substitute on hand", substitute)

		// Act
		results, err := suite.service.ComputeMatches(suite.ctx, suite.householdID, []uuid.UUID{recipe.ID()})

		// Assert
		require.NoError(suite.T(), err)
		result := results[recipe.ID()]
		require.Len(suite.T(), result.Substituted, 1)
		assert.Equal(suite.T(), substitute, result.Substituted[0].UsedItemID)
		assert.Empty(suite.T(), result.MissingOther)
	})

	suite.Run("OneDirectionalRule_ShouldNotApplyBackwards", func() {
		// Arrange: rule replaces A with B only; recipe needs B
		a := suite.vocab.CreateItem("creme fraiche", "dairy")
		b := suite.vocab.CreateItem("sour cream", "dairy")
		rule := suite.rules.CreateRule(a.ID(), b.ID(), 1.0, false)
		require.NoError(suite.T(), suite.ruleRepo.Create(suite.ctx, rule))

		// The one-way rule serves missing A with B, never missing B with A.
		missing, stocked := b.ID(), a.ID()
		recipe := suite.recipes.CreateSavedRecipe(suite.householdID, "Dip", []testutils.IngredientSpec{
			{RawName: "needs the target", CanonicalID: ptr(missing)},
		})
		require.NoError(suite.T(), suite.recipeRepo.Create(suite.ctx, recipe))
		suite.stock("stocked source", stocked)

		// Act
		results, err := suite.service.ComputeMatches(suite.ctx, suite.householdID, []uuid.UUID{recipe.ID()})

		// Assert
		require.NoError(suite.T(), err)
		result := results[recipe.ID()]
		assert.Empty(suite.T(), result.Substituted)
		assert.Len(suite.T(), result.MissingOther, 1)
	})
}

// TestBatchBehavior covers the constant-round-trip guarantee
func (suite *MatchEngineTestSuite) TestBatchBehavior() {
	queryCount := func() int {
		return suite.recipeRepo.Queries.Count() +
			suite.pantryRepo.Queries.Count() +
			suite.ruleRepo.Queries.Count()
	}

	suite.Run("EmptyPantryLargeBatch_ShouldUseSameQueriesAsSmall", func() {
		// Arrange
		item := suite.vocab.CreateItem("lentil", "legume")
		makeBatch := func(n int) []uuid.UUID {
			ids := make([]uuid.UUID, n)
			for i := range ids {
				recipe := suite.recipes.CreateSavedRecipe(suite.householdID, fmt.Sprintf("Recipe %03d", i), []testutils.IngredientSpec{
					{RawName: "lentils", CanonicalID: ptr(item.ID())},
				})
				require.NoError(suite.T(), suite.recipeRepo.Create(suite.ctx, recipe))
				ids[i] = recipe.ID()
			}
			return ids
		}
		small := makeBatch(6)
		large := makeBatch(200)

		// Act
		before := queryCount()
		smallResults, err := suite.service.ComputeMatches(suite.ctx, suite.householdID, small)
		require.NoError(suite.T(), err)
		smallQueries := queryCount() - before

		before = queryCount()
		largeResults, err := suite.service.ComputeMatches(suite.ctx, suite.householdID, large)
		require.NoError(suite.T(), err)
		largeQueries := queryCount() - before

		// Assert
		assert.Equal(suite.T(), 3, smallQueries)
		assert.Equal(suite.T(), smallQueries, largeQueries)
		assert.Len(suite.T(), largeResults, 200)
		for _, result := range largeResults {
			assert.Equal(suite.T(), 0, result.MatchPercent)
			assert.False(suite.T(), result.Cookable)
		}
		assert.Len(suite.T(), smallResults, 6)
	})

	suite.Run("DuplicateRecipeIDs_ShouldCollapse", func() {
		// Arrange
		item := suite.vocab.CreateItem("chickpea", "legume")
		recipe := suite.recipes.CreateSavedRecipe(suite.householdID, "Hummus", []testutils.IngredientSpec{
			{RawName: "chickpeas", CanonicalID: ptr(item.ID())},
		})
		require.NoError(suite.T(), suite.recipeRepo.Create(suite.ctx, recipe))

		// Act
		results, err := suite.service.ComputeMatches(suite.ctx, suite.householdID,
			[]uuid.UUID{recipe.ID(), recipe.ID(), recipe.ID()})

		// Assert
		require.NoError(suite.T(), err)
		assert.Len(suite.T(), results, 1)
	})

	suite.Run("EmptyRequest_ShouldReturnEmptyMapWithoutQueries", func() {
		// Act
		before := queryCount()
		results, err := suite.service.ComputeMatches(suite.ctx, suite.householdID, nil)

		// Assert
		require.NoError(suite.T(), err)
		assert.Empty(suite.T(), results)
		assert.Equal(suite.T(), before, queryCount())
	})

	suite.Run("OverBatchLimit_ShouldReject", func() {
		// Arrange
		ids := make([]uuid.UUID, 501)
		for i := range ids {
			ids[i] = uuid.New()
		}

		// Act
		_, err := suite.service.ComputeMatches(suite.ctx, suite.householdID, ids)

		// Assert
		assert.Error(suite.T(), err)
	})
}

// TestResultCaching covers the cache write and household invalidation
func (suite *MatchEngineTestSuite) TestResultCaching() {
	// Arrange
	item := suite.vocab.CreateItem("oat", "grain")
	recipe := suite.recipes.CreateSavedRecipe(suite.householdID, "Porridge", []testutils.IngredientSpec{
		{RawName: "oats", CanonicalID: ptr(item.ID())},
	})
	require.NoError(suite.T(), suite.recipeRepo.Create(suite.ctx, recipe))
	ids := []uuid.UUID{recipe.ID()}

	// Act: first call computes, second call is served from cache
	_, err := suite.service.ComputeMatches(suite.ctx, suite.householdID, ids)
	require.NoError(suite.T(), err)
	afterFirst := suite.recipeRepo.Queries.Count()
	cached, err := suite.service.ComputeMatches(suite.ctx, suite.householdID, ids)
	require.NoError(suite.T(), err)

	// Assert
	assert.Equal(suite.T(), afterFirst, suite.recipeRepo.Queries.Count())
	assert.Contains(suite.T(), cached, recipe.ID())

	// Act: a pantry change invalidates the household's prefix
	require.NoError(suite.T(), suite.cache.DeletePrefix(context.Background(), CacheKeyPrefix(suite.householdID)))
	suite.stock("oats", item.ID())
	fresh, err := suite.service.ComputeMatches(suite.ctx, suite.householdID, ids)
	require.NoError(suite.T(), err)

	// Assert
	assert.Equal(suite.T(), 100, fresh[recipe.ID()].MatchPercent)
}

func ptr(id uuid.UUID) *uuid.UUID {
	return &id
}

func TestMatchEngineTestSuite(t *testing.T) {
	suite.Run(t, new(MatchEngineTestSuite))
}

// BenchmarkComputeMatches scores a 200-recipe batch
func BenchmarkComputeMatches(b *testing.B) {
	recipeRepo := testutils.NewFakeSavedRecipeRepository()
	pantryRepo := testutils.NewFakePantryRepository()
	ruleRepo := testutils.NewFakeSubstitutionRepository()
	vocab := testutils.NewVocabularyFactory(11)
	recipes := testutils.NewRecipeFactory(12)
	pantries := testutils.NewPantryFactory(13)
	householdID := uuid.New()
	ctx := context.Background()

	items := make([]uuid.UUID, 50)
	for i := range items {
		item := vocab.CreateRandomItem()
		items[i] = item.ID()
		if i%2 == 0 {
			entry := pantries.CreateEntry(householdID, item.Name(), ptr(item.ID()), 1)
			if err := pantryRepo.Create(ctx, entry); err != nil {
				b.Fatal(err)
			}
		}
	}
	ids := make([]uuid.UUID, 200)
	for i := range ids {
		specs := []testutils.IngredientSpec{
			{RawName: "a", CanonicalID: ptr(items[i%50])},
			{RawName: "b", CanonicalID: ptr(items[(i+7)%50])},
			{RawName: "c", CanonicalID: ptr(items[(i+21)%50])},
		}
		recipe := recipes.CreateSavedRecipe(householdID, fmt.Sprintf("Recipe %d", i), specs)
		if err := recipeRepo.Create(ctx, recipe); err != nil {
			b.Fatal(err)
		}
		ids[i] = recipe.ID()
	}

	cache := testutils.NewFakeCacheRepository()
	service := NewService(recipeRepo, pantryRepo, ruleRepo, cache, defaultMatchingConfig(), zap.NewNop())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := service.ComputeMatches(ctx, householdID, ids); err != nil {
			b.Fatal(err)
		}
		if err := cache.DeletePrefix(ctx, CacheKeyPrefix(householdID)); err != nil {
			b.Fatal(err)
		}
	}
}
