package normalizer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	vocabcache "github.com/chamchi6619/pantry-app-v1-sub004/internal/infrastructure/vocabulary"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/inbound"
	"github.com/chamchi6619/pantry-app-v1-sub004/test/testutils"
)

// NormalizerTestSuite exercises the full resolution pipeline against
// an in-memory vocabulary.
type NormalizerTestSuite struct {
	suite.Suite
	vocabRepo *testutils.FakeVocabularyRepository
	oovRepo   *testutils.FakeOOVRepository
	service   *Service
	ctx       context.Context
}

// SetupTest seeds a small vocabulary before each test
func (suite *NormalizerTestSuite) SetupTest() {
	factory := testutils.NewVocabularyFactory(42)
	suite.vocabRepo = testutils.NewFakeVocabularyRepository()
	suite.vocabRepo.Add(
		factory.CreateItem("chicken", "protein", "chicken breast", "chicken thigh"),
		factory.CreateItem("tomato", "produce", "roma tomato"),
		factory.CreateItem("basil", "produce"),
		factory.CreateItem("olive oil", "pantry", "extra virgin olive oil"),
		factory.CreateItem("bell pepper", "produce"),
		factory.CreateItem("pepper", "spice", "black pepper"),
	)
	suite.oovRepo = testutils.NewFakeOOVRepository()
	cache := vocabcache.NewCache(suite.vocabRepo, time.Hour, zap.NewNop())
	suite.service = NewService(cache, suite.oovRepo, 0.8, zap.NewNop())
	suite.ctx = context.Background()
}

// TestExactAndAliasResolution covers the first two pipeline tiers
func (suite *NormalizerTestSuite) TestExactAndAliasResolution() {
	suite.Run("ExactName_ShouldResolveWithExactConfidence", func() {
		// Act
		result := suite.service.Normalize(suite.ctx, "Tomato")

		// Assert
		require.NotNil(suite.T(), result.CanonicalItemID)
		assert.Equal(suite.T(), "tomato", result.NormalizedName)
		assert.Equal(suite.T(), inbound.ConfidenceExact, result.Confidence)
	})

	suite.Run("QuantityAndPrepNoise_ShouldResolveThroughAlias", func() {
		// Act
		result := suite.service.Normalize(suite.ctx, "2 lbs organic chicken breast")

		// Assert
		require.NotNil(suite.T(), result.CanonicalItemID)
		assert.Equal(suite.T(), "chicken breast", result.NormalizedName)
		assert.Equal(suite.T(), inbound.ConfidenceAlias, result.Confidence)

		item, err := suite.vocabRepo.FindByID(suite.ctx, *result.CanonicalItemID)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "chicken", item.Name())
	})

	suite.Run("PluralForm_ShouldResolveExactly", func() {
		// Act
		result := suite.service.Normalize(suite.ctx, "3 tomatoes")

		// Assert
		require.NotNil(suite.T(), result.CanonicalItemID)
		assert.Equal(suite.T(), inbound.ConfidenceExact, result.Confidence)
		assert.Equal(suite.T(), "tomato", result.NormalizedName)
	})

	suite.Run("AccentedInput_ShouldFoldBeforeLookup", func() {
		// Act
		result := suite.service.Normalize(suite.ctx, "Tomáto")

		// Assert
		require.NotNil(suite.T(), result.CanonicalItemID)
		assert.Equal(suite.T(), inbound.ConfidenceExact, result.Confidence)
	})
}

// TestFuzzyAndContainment covers the last two resolution tiers
func (suite *NormalizerTestSuite) TestFuzzyAndContainment() {
	suite.Run("NearMiss_ShouldResolveFuzzily", func() {
		// Act
		result := suite.service.Normalize(suite.ctx, "tomatto")

		// Assert
		require.NotNil(suite.T(), result.CanonicalItemID)
		assert.Equal(suite.T(), inbound.ConfidenceFuzzy, result.Confidence)
		item, err := suite.vocabRepo.FindByID(suite.ctx, *result.CanonicalItemID)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "tomato", item.Name())
	})

	suite.Run("Containment_ShouldPreferLongestName", func() {
		// "red bell pepper" contains both "pepper" and "bell pepper";
		// the longer canonical name must win.

		// Act
		result := suite.service.Normalize(suite.ctx, "red bell pepper")

		// Assert
		require.NotNil(suite.T(), result.CanonicalItemID)
		item, err := suite.vocabRepo.FindByID(suite.ctx, *result.CanonicalItemID)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "bell pepper", item.Name())
	})

	suite.Run("ReverseContainment_ShouldResolveSubstringInput", func() {
		// "olive" is below the fuzzy threshold against "olive oil" but
		// is word-contained in it.

		// Act
		result := suite.service.Normalize(suite.ctx, "olive")

		// Assert
		require.NotNil(suite.T(), result.CanonicalItemID)
		assert.Equal(suite.T(), inbound.ConfidenceFuzzy, result.Confidence)
		item, err := suite.vocabRepo.FindByID(suite.ctx, *result.CanonicalItemID)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "olive oil", item.Name())
	})

	suite.Run("WordBoundary_ShouldNotMatchInsideWords", func() {
		// Act
		result := suite.service.Normalize(suite.ctx, "peppermint extract")

		// Assert
		assert.Nil(suite.T(), result.CanonicalItemID)
		assert.Equal(suite.T(), inbound.ConfidenceNone, result.Confidence)
	})

	suite.Run("Deterministic_SameInputSameResult", func() {
		first := suite.service.Normalize(suite.ctx, "tomatto")
		second := suite.service.Normalize(suite.ctx, "tomatto")
		assert.Equal(suite.T(), first, second)
	})
}

// TestOOVRecording covers the miss log behavior
func (suite *NormalizerTestSuite) TestOOVRecording() {
	suite.Run("UnknownIngredient_ShouldRecordMissVerbatim", func() {
		// Act
		result := suite.service.Normalize(suite.ctx, "dawadawa")

		// Assert
		assert.Nil(suite.T(), result.CanonicalItemID)
		assert.Equal(suite.T(), inbound.ConfidenceNone, result.Confidence)
		assert.Equal(suite.T(), []string{"dawadawa"}, suite.oovRepo.Appended())
	})

	suite.Run("ResolvedIngredient_ShouldNotRecordMiss", func() {
		// Arrange
		before := len(suite.oovRepo.Appended())

		// Act
		suite.service.Normalize(suite.ctx, "basil")

		// Assert
		assert.Len(suite.T(), suite.oovRepo.Appended(), before)
	})

	suite.Run("BlankInput_ShouldNotRecordMiss", func() {
		// Arrange
		before := len(suite.oovRepo.Appended())

		// Act
		result := suite.service.Normalize(suite.ctx, "   2 cups   ")

		// Assert
		assert.Equal(suite.T(), "", result.NormalizedName)
		assert.Equal(suite.T(), inbound.ConfidenceNone, result.Confidence)
		assert.Len(suite.T(), suite.oovRepo.Appended(), before)
	})
}

// TestVocabularyOutage covers graceful degradation
func (suite *NormalizerTestSuite) TestVocabularyOutage() {
	suite.Run("OutageBeforeFirstLoad_ShouldDegradeWithoutError", func() {
		// Arrange
		suite.vocabRepo.FailAll = true
		cache := vocabcache.NewCache(suite.vocabRepo, time.Hour, zap.NewNop())
		service := NewService(cache, suite.oovRepo, 0.8, zap.NewNop())

		// Act
		result := service.Normalize(suite.ctx, "tomato")

		// Assert
		assert.Nil(suite.T(), result.CanonicalItemID)
		assert.Equal(suite.T(), inbound.ConfidenceNone, result.Confidence)
		assert.Equal(suite.T(), "tomato", result.NormalizedName)
		assert.Empty(suite.T(), suite.oovRepo.Appended(), "outage misses must not pollute the OOV log")
	})

	suite.Run("OutageAfterLoad_ShouldServeStaleSnapshot", func() {
		// Arrange: a short TTL so the next call wants a refresh
		suite.vocabRepo.FailAll = false
		cache := vocabcache.NewCache(suite.vocabRepo, time.Nanosecond, zap.NewNop())
		service := NewService(cache, suite.oovRepo, 0.8, zap.NewNop())
		service.Normalize(suite.ctx, "tomato") // first load succeeds
		suite.vocabRepo.FailAll = true

		// Act
		result := service.Normalize(suite.ctx, "basil")

		// Assert
		require.NotNil(suite.T(), result.CanonicalItemID)
		assert.Equal(suite.T(), inbound.ConfidenceExact, result.Confidence)
	})
}

func TestNormalizerTestSuite(t *testing.T) {
	suite.Run(t, new(NormalizerTestSuite))
}

// TestFuzzyTieBreak covers the order of the fuzzy tie-break rules
func TestFuzzyTieBreak(t *testing.T) {
	factory := testutils.NewVocabularyFactory(9)
	repo := testutils.NewFakeVocabularyRepository()
	repo.Add(
		factory.CreateItem("statomate", "produce"),
		factory.CreateItem("tamato", "produce"),
	)
	cache := vocabcache.NewCache(repo, time.Hour, zap.NewNop())
	service := NewService(cache, testutils.NewFakeOOVRepository(), 0.6, zap.NewNop())
	ctx := context.Background()

	// Both names score 2/3 similarity against the input, at edit
	// distances 2 and 3. The smaller distance must win even though
	// "statomate" sorts first.
	result := service.Normalize(ctx, "tomate")

	require.NotNil(t, result.CanonicalItemID)
	item, err := repo.FindByID(ctx, *result.CanonicalItemID)
	require.NoError(t, err)
	assert.Equal(t, "tamato", item.Name())
}

// TestClean covers the text cleaning rules directly
func TestClean(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases and trims", "  Chicken  ", "chicken"},
		{"strips quantity and unit", "2 cups flour", "flour"},
		{"strips preparation words", "freshly chopped basil", "basil"},
		{"keeps multiword names", "extra virgin olive oil", "virgin olive oil"},
		{"singularizes oes plural", "4 tomatoes", "tomato"},
		{"singularizes ies plural", "strawberries", "strawberry"},
		{"keeps words ending in double s", "molasses", "molasses"},
		{"folds punctuation to spaces", "salt/pepper mix", "salt pepper mix"},
		{"empty after cleaning", "2 1/2", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Clean(tc.in))
		})
	}
}

// BenchmarkNormalize measures a full pipeline pass over a warm snapshot
func BenchmarkNormalize(b *testing.B) {
	factory := testutils.NewVocabularyFactory(7)
	repo := testutils.NewFakeVocabularyRepository()
	for i := 0; i < 500; i++ {
		repo.Add(factory.CreateRandomItem())
	}
	repo.Add(factory.CreateItem("tomato", "produce"))
	cache := vocabcache.NewCache(repo, time.Hour, zap.NewNop())
	service := NewService(cache, testutils.NewFakeOOVRepository(), 0.8, zap.NewNop())
	ctx := context.Background()
	service.Normalize(ctx, "warm up")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		service.Normalize(ctx, "2 diced tomatoes")
	}
}
