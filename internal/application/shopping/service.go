// Package shopping turns match results into shopping list lines:
// whatever a batch of recipes is missing, merged into the household's
// existing list without duplicates.
package shopping

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/inbound"
)

// Service implements inbound.ShoppingService.
type Service struct {
	matcher inbound.MatchService
	logger  *zap.Logger
}

// NewService creates the shopping list builder.
func NewService(matcher inbound.MatchService, logger *zap.Logger) *Service {
	return &Service{
		matcher: matcher,
		logger:  logger.Named("shopping"),
	}
}

// BuildList merges every missing ingredient of the given recipes into
// the existing list. Lines are deduplicated by canonical identity
// first; lines that never resolved to the vocabulary fall back to
// case-insensitive raw-text comparison. A line needed by several
// recipes carries all of their IDs.
func (s *Service) BuildList(ctx context.Context, householdID uuid.UUID, recipeIDs []uuid.UUID, existing []inbound.ShoppingListEntry) ([]inbound.ShoppingListEntry, error) {
	results, err := s.matcher.ComputeMatches(ctx, householdID, recipeIDs)
	if err != nil {
		return nil, err
	}

	merged := newMerger(existing)
	for recipeID, result := range results {
		for _, missing := range result.Missing() {
			merged.add(inbound.ShoppingListEntry{
				RawName:         missing.RawName,
				CanonicalItemID: missing.CanonicalItemID,
				Critical:        missing.Critical,
			}, recipeID)
		}
	}

	list := merged.entries()
	s.logger.Debug("built shopping list",
		zap.String("household_id", householdID.String()),
		zap.Int("recipes", len(recipeIDs)),
		zap.Int("lines", len(list)))
	return list, nil
}

// merger accumulates list lines under stable dedup keys.
type merger struct {
	order []string
	fixed int
	lines map[string]*inbound.ShoppingListEntry
}

func newMerger(existing []inbound.ShoppingListEntry) *merger {
	m := &merger{lines: make(map[string]*inbound.ShoppingListEntry)}
	for _, entry := range existing {
		m.add(entry, uuid.Nil)
	}
	m.fixed = len(m.order)
	return m
}

func dedupKey(entry inbound.ShoppingListEntry) string {
	if entry.CanonicalItemID != nil {
		return "c:" + entry.CanonicalItemID.String()
	}
	return "r:" + strings.ToLower(strings.TrimSpace(entry.RawName))
}

func (m *merger) add(entry inbound.ShoppingListEntry, recipeID uuid.UUID) {
	key := dedupKey(entry)
	line, ok := m.lines[key]
	if !ok {
		copied := entry
		copied.RecipeIDs = append([]uuid.UUID(nil), entry.RecipeIDs...)
		m.lines[key] = &copied
		m.order = append(m.order, key)
		line = &copied
	}
	// A line stays critical once any recipe needs it critically.
	line.Critical = line.Critical || entry.Critical
	if recipeID != uuid.Nil && !containsID(line.RecipeIDs, recipeID) {
		line.RecipeIDs = append(line.RecipeIDs, recipeID)
	}
}

// entries returns the merged lines: existing lines keep their order,
// new lines follow sorted by name so the result is stable across
// calls regardless of map iteration.
func (m *merger) entries() []inbound.ShoppingListEntry {
	tail := m.order[m.fixed:]
	sort.Slice(tail, func(i, j int) bool {
		return m.lines[tail[i]].RawName < m.lines[tail[j]].RawName
	})
	out := make([]inbound.ShoppingListEntry, 0, len(m.order))
	for _, key := range m.order {
		line := *m.lines[key]
		sort.Slice(line.RecipeIDs, func(i, j int) bool {
			return line.RecipeIDs[i].String() < line.RecipeIDs[j].String()
		})
		out = append(out, line)
	}
	return out
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

var _ inbound.ShoppingService = (*Service)(nil)
