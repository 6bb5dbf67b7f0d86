package pantry

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	applicationmatching "github.com/chamchi6619/pantry-app-v1-sub004/internal/application/matching"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/application/normalizer"
	vocabcache "github.com/chamchi6619/pantry-app-v1-sub004/internal/infrastructure/vocabulary"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/inbound"
	apperrors "github.com/chamchi6619/pantry-app-v1-sub004/pkg/errors"
	"github.com/chamchi6619/pantry-app-v1-sub004/test/testutils"
)

// PantryServiceTestSuite exercises pantry writes and their effects
type PantryServiceTestSuite struct {
	suite.Suite
	repo      *testutils.FakePantryRepository
	vocabRepo *testutils.FakeVocabularyRepository
	cache     *testutils.FakeCacheRepository
	service   *Service

	householdID uuid.UUID
	ctx         context.Context
}

// SetupTest wires a pantry service over a small vocabulary
func (suite *PantryServiceTestSuite) SetupTest() {
	factory := testutils.NewVocabularyFactory(21)
	suite.vocabRepo = testutils.NewFakeVocabularyRepository()
	suite.vocabRepo.Add(factory.CreateItem("milk", "dairy", "whole milk"))
	snapshot := vocabcache.NewCache(suite.vocabRepo, time.Hour, zap.NewNop())
	norm := normalizer.NewService(snapshot, testutils.NewFakeOOVRepository(), 0.8, zap.NewNop())

	suite.repo = testutils.NewFakePantryRepository()
	suite.cache = testutils.NewFakeCacheRepository()
	suite.service = NewService(suite.repo, norm, suite.cache, zap.NewNop())
	suite.householdID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *PantryServiceTestSuite) seedCache() {
	key := applicationmatching.CacheKeyPrefix(suite.householdID) + "deadbeef"
	require.NoError(suite.T(), suite.cache.Set(suite.ctx, key, []byte("{}"), time.Minute))
}

// TestAddEntry covers the canonicalizing write path
func (suite *PantryServiceTestSuite) TestAddEntry() {
	suite.Run("KnownItem_ShouldLinkAndKeepRawVerbatim", func() {
		// Act
		dto, err := suite.service.AddEntry(suite.ctx, inbound.AddPantryEntryCommand{
			HouseholdID: suite.householdID,
			RawName:     "1L Whole Milk",
			Quantity:    1,
			Unit:        "l",
		})

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "1L Whole Milk", dto.RawName)
		assert.Equal(suite.T(), "whole milk", dto.NormalizedName)
		require.NotNil(suite.T(), dto.CanonicalItemID)

		stored, err := suite.repo.FindByID(suite.ctx, dto.ID)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "1L Whole Milk", stored.RawName())
	})

	suite.Run("UnknownItem_ShouldStoreWithoutLink", func() {
		// Act
		dto, err := suite.service.AddEntry(suite.ctx, inbound.AddPantryEntryCommand{
			HouseholdID: suite.householdID,
			RawName:     "dawadawa",
			Quantity:    2,
		})

		// Assert
		require.NoError(suite.T(), err)
		assert.Nil(suite.T(), dto.CanonicalItemID)
	})

	suite.Run("EmptyRawName_ShouldFailValidation", func() {
		// Act
		_, err := suite.service.AddEntry(suite.ctx, inbound.AddPantryEntryCommand{
			HouseholdID: suite.householdID,
			RawName:     "   ",
		})

		// Assert
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeValidationFailed))
	})

	suite.Run("Write_ShouldInvalidateHouseholdMatchCache", func() {
		// Arrange
		suite.seedCache()
		require.Equal(suite.T(), 1, suite.cache.Len())

		// Act
		_, err := suite.service.AddEntry(suite.ctx, inbound.AddPantryEntryCommand{
			HouseholdID: suite.householdID,
			RawName:     "milk",
			Quantity:    1,
		})

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 0, suite.cache.Len())
	})
}

// TestMutations covers quantity updates and archival
func (suite *PantryServiceTestSuite) TestMutations() {
	addEntry := func() uuid.UUID {
		dto, err := suite.service.AddEntry(suite.ctx, inbound.AddPantryEntryCommand{
			HouseholdID: suite.householdID,
			RawName:     "milk",
			Quantity:    2,
		})
		require.NoError(suite.T(), err)
		return dto.ID
	}

	suite.Run("SetQuantity_ShouldPersistAndInvalidate", func() {
		// Arrange
		id := addEntry()
		suite.seedCache()

		// Act
		err := suite.service.SetQuantity(suite.ctx, id, 0.5)

		// Assert
		require.NoError(suite.T(), err)
		entry, findErr := suite.repo.FindByID(suite.ctx, id)
		require.NoError(suite.T(), findErr)
		assert.InDelta(suite.T(), 0.5, entry.Quantity(), 1e-9)
		assert.Equal(suite.T(), 0, suite.cache.Len())
	})

	suite.Run("NegativeQuantity_ShouldFailValidation", func() {
		// Arrange
		id := addEntry()

		// Act
		err := suite.service.SetQuantity(suite.ctx, id, -1)

		// Assert
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeValidationFailed))
	})

	suite.Run("Archive_ShouldHideFromListing", func() {
		// Arrange
		id := addEntry()
		before, err := suite.service.ListEntries(suite.ctx, suite.householdID)
		require.NoError(suite.T(), err)

		// Act
		require.NoError(suite.T(), suite.service.ArchiveEntry(suite.ctx, id))

		// Assert
		after, err := suite.service.ListEntries(suite.ctx, suite.householdID)
		require.NoError(suite.T(), err)
		assert.Len(suite.T(), after, len(before)-1)
	})

	suite.Run("UnknownEntry_ShouldReturnNotFound", func() {
		// Act
		err := suite.service.SetQuantity(suite.ctx, uuid.New(), 1)

		// Assert
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeNotFound))
	})
}

func TestPantryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PantryServiceTestSuite))
}
