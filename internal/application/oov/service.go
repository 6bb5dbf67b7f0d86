// Package oov implements the out-of-vocabulary review workflow: the
// ranked weekly list of unresolved ingredient strings and the
// human-gated promotion of a reviewed string into the vocabulary.
package oov

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/vocabulary"
	vocabcache "github.com/chamchi6619/pantry-app-v1-sub004/internal/infrastructure/vocabulary"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/inbound"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/outbound"
	apperrors "github.com/chamchi6619/pantry-app-v1-sub004/pkg/errors"
)

// Service implements inbound.OOVService.
type Service struct {
	oovRepo      outbound.OOVRepository
	vocabRepo    outbound.VocabularyRepository
	snapshot     *vocabcache.Cache
	defaultLimit int
	logger       *zap.Logger
}

// NewService creates the OOV review service.
func NewService(
	oovRepo outbound.OOVRepository,
	vocabRepo outbound.VocabularyRepository,
	snapshot *vocabcache.Cache,
	defaultLimit int,
	logger *zap.Logger,
) *Service {
	return &Service{
		oovRepo:      oovRepo,
		vocabRepo:    vocabRepo,
		snapshot:     snapshot,
		defaultLimit: defaultLimit,
		logger:       logger.Named("oov"),
	}
}

// ReviewList returns unresolved strings recorded inside the window,
// most frequent first. Nothing in this list changes the vocabulary;
// it exists for a human to read.
func (s *Service) ReviewList(ctx context.Context, window time.Duration, limit int) ([]outbound.OOVAggregate, error) {
	if window <= 0 {
		return nil, apperrors.NewBadRequestError("review window must be positive")
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}
	since := time.Now().Add(-window)
	aggregates, err := s.oovRepo.Aggregate(ctx, since, limit)
	if err != nil {
		return nil, apperrors.NewDatabaseError("aggregate vocabulary misses", err)
	}
	return aggregates, nil
}

// Promote creates a canonical item from a reviewed string. The raw
// text becomes an alias when it differs from the chosen canonical
// name, so the next normalization of the same string resolves.
func (s *Service) Promote(ctx context.Context, cmd inbound.PromoteCommand) (*inbound.CanonicalItemDTO, error) {
	name := strings.ToLower(strings.TrimSpace(cmd.Name))
	aliases := make([]string, 0, len(cmd.Aliases)+1)
	if raw := strings.ToLower(strings.TrimSpace(cmd.RawText)); raw != "" && raw != name {
		aliases = append(aliases, raw)
	}
	for _, a := range cmd.Aliases {
		aliases = append(aliases, a)
	}

	item, err := vocabulary.NewCanonicalItem(name, cmd.Category, aliases)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.vocabRepo.Create(ctx, item); err != nil {
		if err == vocabulary.ErrDuplicateName {
			return nil, apperrors.NewDuplicateCanonicalItemError(name)
		}
		return nil, apperrors.NewDatabaseError("create canonical item", err)
	}

	s.snapshot.Invalidate()
	s.logger.Info("promoted vocabulary item",
		zap.String("name", item.Name()),
		zap.String("raw_text", cmd.RawText))

	return &inbound.CanonicalItemDTO{
		ID:       item.ID(),
		Name:     item.Name(),
		Category: item.Category(),
		Aliases:  item.Aliases(),
	}, nil
}

var _ inbound.OOVService = (*Service)(nil)
