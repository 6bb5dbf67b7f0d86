// Package matching implements batch pantry-compatibility scoring: one
// call scores any number of recipes against a household's pantry with
// a fixed number of storage round trips.
package matching

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/matching"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/infrastructure/config"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/inbound"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/outbound"
	apperrors "github.com/chamchi6619/pantry-app-v1-sub004/pkg/errors"
)

// Service implements inbound.MatchService.
type Service struct {
	recipeRepo outbound.SavedRecipeRepository
	pantryRepo outbound.PantryRepository
	ruleRepo   outbound.SubstitutionRepository
	cache      outbound.CacheRepository
	cfg        config.MatchingConfig
	logger     *zap.Logger
}

// NewService creates the batch match engine.
func NewService(
	recipeRepo outbound.SavedRecipeRepository,
	pantryRepo outbound.PantryRepository,
	ruleRepo outbound.SubstitutionRepository,
	cache outbound.CacheRepository,
	cfg config.MatchingConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		recipeRepo: recipeRepo,
		pantryRepo: pantryRepo,
		ruleRepo:   ruleRepo,
		cache:      cache,
		cfg:        cfg,
		logger:     logger.Named("match-engine"),
	}
}

// ComputeMatches scores every requested recipe against the household
// pantry. The storage cost is exactly three bulk fetches whether one
// recipe is scored or five hundred. Recipes unknown to the store score
// as the defined empty result rather than failing the batch.
func (s *Service) ComputeMatches(ctx context.Context, householdID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]matching.MatchResult, error) {
	ids := dedupe(recipeIDs)
	if len(ids) == 0 {
		return map[uuid.UUID]matching.MatchResult{}, nil
	}
	if s.cfg.MaxRecipesPerCall > 0 && len(ids) > s.cfg.MaxRecipesPerCall {
		return nil, apperrors.NewBadRequestError("too many recipes in one match call")
	}

	cacheKey := s.cacheKey(householdID, ids)
	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	// Bulk fetch #1: every non-optional ingredient row of the batch.
	rows, err := s.recipeRepo.ListRequiredIngredients(ctx, ids)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load recipe ingredients", err)
	}

	// Bulk fetch #2: the household's available canonical items.
	availableIDs, err := s.pantryRepo.ListAvailableCanonicalIDs(ctx, householdID, s.cfg.PantryEpsilon)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load pantry availability", err)
	}

	available := make(map[uuid.UUID]struct{}, len(availableIDs))
	for _, id := range availableIDs {
		available[id] = struct{}{}
	}

	// Bulk fetch #3: substitution rules for items the pantry does not
	// already satisfy. Critical lines never use substitutions, so their
	// items are left out too.
	rules, err := s.ruleRepo.ListByItemIDs(ctx, unresolvedCanonicalIDs(rows, available))
	if err != nil {
		return nil, apperrors.NewDatabaseError("load substitution rules", err)
	}
	resolver := NewResolver(rules, Weights{
		Strong:    s.cfg.StrongWeight,
		Weak:      s.cfg.WeakWeight,
		RatioLow:  s.cfg.StrongRatioLow,
		RatioHigh: s.cfg.StrongRatioHigh,
	})

	byRecipe := make(map[uuid.UUID][]outbound.IngredientRow, len(ids))
	for _, row := range rows {
		byRecipe[row.RecipeID] = append(byRecipe[row.RecipeID], row)
	}

	results := make(map[uuid.UUID]matching.MatchResult, len(ids))
	for _, recipeID := range ids {
		results[recipeID] = s.score(recipeID, byRecipe[recipeID], available, resolver)
	}

	s.toCache(ctx, cacheKey, results)
	s.logger.Debug("computed match batch",
		zap.String("household_id", householdID.String()),
		zap.Int("recipes", len(ids)),
		zap.Int("pantry_items", len(availableIDs)))
	return results, nil
}

// score evaluates one recipe against the prepared pantry set.
func (s *Service) score(recipeID uuid.UUID, rows []outbound.IngredientRow, available map[uuid.UUID]struct{}, resolver *Resolver) matching.MatchResult {
	if len(rows) == 0 {
		return matching.EmptyResult(recipeID)
	}

	result := matching.MatchResult{
		RecipeID:        recipeID,
		TotalCount:      len(rows),
		MissingCritical: []matching.MissingIngredient{},
		MissingOther:    []matching.MissingIngredient{},
		Substituted:     []matching.SubstitutedIngredient{},
	}

	var matched, coreMatched float64
	var coreTotal int
	for _, row := range rows {
		if !row.Staple {
			coreTotal++
		}

		if row.CanonicalItemID != nil {
			if _, ok := available[*row.CanonicalItemID]; ok {
				matched++
				if !row.Staple {
					coreMatched++
				}
				continue
			}
			// Substitutions never satisfy a critical ingredient.
			if !row.Critical {
				if sub, ok := resolver.Resolve(*row.CanonicalItemID, available); ok {
					matched += sub.Weight
					if !row.Staple {
						coreMatched += sub.Weight
					}
					result.Substituted = append(result.Substituted, matching.SubstitutedIngredient{
						IngredientID:    row.IngredientID,
						RawName:         row.RawName,
						CanonicalItemID: *row.CanonicalItemID,
						UsedItemID:      sub.UsedItemID,
						Confidence:      sub.Confidence,
						Weight:          sub.Weight,
					})
					continue
				}
			}
		}

		missing := matching.MissingIngredient{
			IngredientID:    row.IngredientID,
			RawName:         row.RawName,
			CanonicalItemID: row.CanonicalItemID,
			Critical:        row.Critical,
		}
		if row.Critical {
			result.MissingCritical = append(result.MissingCritical, missing)
		} else {
			result.MissingOther = append(result.MissingOther, missing)
		}
	}

	sortMissing(result.MissingCritical)
	sortMissing(result.MissingOther)
	sort.Slice(result.Substituted, func(i, j int) bool {
		return result.Substituted[i].RawName < result.Substituted[j].RawName
	})

	result.MatchedCount = matched
	result.MatchPercent = percent(matched, len(rows))
	if coreTotal == 0 {
		// All-staple recipe: cookability rides on the overall score.
		result.CorePercent = result.MatchPercent
	} else {
		result.CorePercent = percent(coreMatched, coreTotal)
	}
	result.Cookable = result.CorePercent >= s.cfg.CookableThreshold && len(result.MissingCritical) == 0
	return result
}

func percent(matched float64, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(matched / float64(total) * 100))
}

func sortMissing(list []matching.MissingIngredient) {
	sort.Slice(list, func(i, j int) bool { return list[i].RawName < list[j].RawName })
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func unresolvedCanonicalIDs(rows []outbound.IngredientRow, available map[uuid.UUID]struct{}) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, row := range rows {
		if row.CanonicalItemID == nil || row.Critical {
			continue
		}
		id := *row.CanonicalItemID
		if _, stocked := available[id]; stocked {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// cacheKey identifies one batch for one household. The recipe set is
// hashed order-independently so reordered requests share an entry.
func (s *Service) cacheKey(householdID uuid.UUID, ids []uuid.UUID) string {
	sorted := make([]string, len(ids))
	for i, id := range ids {
		sorted[i] = id.String()
	}
	sort.Strings(sorted)
	h := sha256.New()
	for _, id := range sorted {
		h.Write([]byte(id))
	}
	return "match:" + householdID.String() + ":" + hex.EncodeToString(h.Sum(nil)[:16])
}

// CacheKeyPrefix returns the prefix under which a household's match
// results are cached; pantry writes invalidate it wholesale.
func CacheKeyPrefix(householdID uuid.UUID) string {
	return "match:" + householdID.String() + ":"
}

func (s *Service) fromCache(ctx context.Context, key string) map[uuid.UUID]matching.MatchResult {
	data, err := s.cache.Get(ctx, key)
	if err != nil || len(data) == 0 {
		return nil
	}
	var results map[uuid.UUID]matching.MatchResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil
	}
	return results
}

func (s *Service) toCache(ctx context.Context, key string, results map[uuid.UUID]matching.MatchResult) {
	data, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cfg.ResultCacheTTL); err != nil {
		s.logger.Debug("failed to cache match results", zap.Error(err))
	}
}

var _ inbound.MatchService = (*Service)(nil)
