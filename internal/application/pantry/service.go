// Package pantry implements the household pantry use cases. Every
// write canonicalizes the entry's raw text and drops the household's
// cached match results, since any quantity change can flip a verdict.
package pantry

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	applicationmatching "github.com/chamchi6619/pantry-app-v1-sub004/internal/application/matching"
	domainpantry "github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/pantry"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/inbound"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/outbound"
	apperrors "github.com/chamchi6619/pantry-app-v1-sub004/pkg/errors"
)

// Service implements inbound.PantryService.
type Service struct {
	repo       outbound.PantryRepository
	normalizer inbound.Normalizer
	cache      outbound.CacheRepository
	logger     *zap.Logger
}

// NewService creates the pantry service.
func NewService(
	repo outbound.PantryRepository,
	normalizer inbound.Normalizer,
	cache outbound.CacheRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:       repo,
		normalizer: normalizer,
		cache:      cache,
		logger:     logger.Named("pantry"),
	}
}

// AddEntry records a pantry item from manual entry, receipt
// confirmation, or shopping-list check-off. The raw text is stored
// verbatim; canonicalization only adds a link next to it.
func (s *Service) AddEntry(ctx context.Context, cmd inbound.AddPantryEntryCommand) (*inbound.PantryEntryDTO, error) {
	entry, err := domainpantry.NewEntry(cmd.HouseholdID, cmd.RawName, cmd.Quantity, cmd.Unit, cmd.Location)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	normalized := s.normalizer.Normalize(ctx, cmd.RawName)
	entry.SetCanonicalLink(normalized.NormalizedName, normalized.CanonicalItemID)

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, apperrors.NewDatabaseError("create pantry entry", err)
	}

	s.invalidateMatches(ctx, cmd.HouseholdID)
	s.logger.Debug("pantry entry added",
		zap.String("household_id", cmd.HouseholdID.String()),
		zap.String("confidence", string(normalized.Confidence)))
	return toDTO(entry), nil
}

// SetQuantity updates an entry's quantity, clamping handled by the
// domain rules.
func (s *Service) SetQuantity(ctx context.Context, entryID uuid.UUID, quantity float64) error {
	entry, err := s.load(ctx, entryID)
	if err != nil {
		return err
	}
	if err := entry.SetQuantity(quantity); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	if err := s.repo.Update(ctx, entry); err != nil {
		return apperrors.NewDatabaseError("update pantry entry", err)
	}
	s.invalidateMatches(ctx, entry.HouseholdID())
	return nil
}

// ArchiveEntry retires an entry without deleting its history.
func (s *Service) ArchiveEntry(ctx context.Context, entryID uuid.UUID) error {
	entry, err := s.load(ctx, entryID)
	if err != nil {
		return err
	}
	if err := entry.Archive(); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	if err := s.repo.Update(ctx, entry); err != nil {
		return apperrors.NewDatabaseError("archive pantry entry", err)
	}
	s.invalidateMatches(ctx, entry.HouseholdID())
	return nil
}

// ListEntries returns the household's active entries.
func (s *Service) ListEntries(ctx context.Context, householdID uuid.UUID) ([]inbound.PantryEntryDTO, error) {
	entries, err := s.repo.FindByHousehold(ctx, householdID, false)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list pantry entries", err)
	}
	out := make([]inbound.PantryEntryDTO, len(entries))
	for i, entry := range entries {
		out[i] = *toDTO(entry)
	}
	return out, nil
}

func (s *Service) load(ctx context.Context, entryID uuid.UUID) (*domainpantry.Entry, error) {
	entry, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		if err == domainpantry.ErrEntryNotFound {
			return nil, apperrors.NewNotFoundError("pantry entry")
		}
		return nil, apperrors.NewDatabaseError("load pantry entry", err)
	}
	return entry, nil
}

func (s *Service) invalidateMatches(ctx context.Context, householdID uuid.UUID) {
	prefix := applicationmatching.CacheKeyPrefix(householdID)
	if err := s.cache.DeletePrefix(ctx, prefix); err != nil {
		s.logger.Warn("failed to invalidate cached match results",
			zap.String("household_id", householdID.String()),
			zap.Error(err))
	}
}

func toDTO(entry *domainpantry.Entry) *inbound.PantryEntryDTO {
	return &inbound.PantryEntryDTO{
		ID:              entry.ID(),
		HouseholdID:     entry.HouseholdID(),
		RawName:         entry.RawName(),
		NormalizedName:  entry.NormalizedName(),
		CanonicalItemID: entry.CanonicalItemID(),
		Quantity:        entry.Quantity(),
		Unit:            entry.Unit(),
		Status:          string(entry.Status()),
		Location:        entry.Location(),
	}
}

var _ inbound.PantryService = (*Service)(nil)
