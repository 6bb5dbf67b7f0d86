// Package normalizer resolves raw ingredient strings to canonical
// vocabulary items through a tiered pipeline: exact name match, alias
// match, fuzzy match, then word containment. Anything that falls
// through every tier is recorded as an out-of-vocabulary miss.
package normalizer

import (
	"context"
	"time"

	"go.uber.org/zap"

	vocabcache "github.com/chamchi6619/pantry-app-v1-sub004/internal/infrastructure/vocabulary"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/inbound"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/outbound"
)

// Service implements inbound.Normalizer over a vocabulary snapshot.
type Service struct {
	vocab          *vocabcache.Cache
	oov            outbound.OOVRepository
	fuzzyThreshold float64
	logger         *zap.Logger
}

// NewService creates a normalizer service.
func NewService(
	vocab *vocabcache.Cache,
	oov outbound.OOVRepository,
	fuzzyThreshold float64,
	logger *zap.Logger,
) *Service {
	return &Service{
		vocab:          vocab,
		oov:            oov,
		fuzzyThreshold: fuzzyThreshold,
		logger:         logger.Named("normalizer"),
	}
}

// Normalize resolves one raw ingredient string. It never returns an
// error: when the vocabulary is unreachable the result degrades to
// ConfidenceNone with the cleaned text, and the caller keeps working
// with raw strings.
func (s *Service) Normalize(ctx context.Context, raw string) inbound.Normalization {
	cleaned := Clean(raw)
	result := inbound.Normalization{
		NormalizedName: cleaned,
		Confidence:     inbound.ConfidenceNone,
	}
	if cleaned == "" {
		return result
	}

	snap, err := s.vocab.Current(ctx)
	if err != nil {
		// Degradation is already logged by the cache; no OOV record
		// either, because an unreachable vocabulary proves nothing
		// about the term.
		return result
	}

	if entry, ok := snap.LookupName(cleaned); ok {
		return resolved(cleaned, entry, inbound.ConfidenceExact)
	}

	if entry, ok := snap.LookupAlias(cleaned); ok {
		return resolved(cleaned, entry, inbound.ConfidenceAlias)
	}

	if entry, ok := s.fuzzyMatch(snap, cleaned); ok {
		return resolved(cleaned, entry, inbound.ConfidenceFuzzy)
	}

	if entry, ok := containmentMatch(snap, cleaned); ok {
		return resolved(cleaned, entry, inbound.ConfidenceFuzzy)
	}

	s.recordMiss(ctx, raw)
	return result
}

func resolved(cleaned string, entry vocabcache.Entry, conf inbound.NormalizationConfidence) inbound.Normalization {
	id := entry.ItemID
	return inbound.Normalization{
		NormalizedName:  cleaned,
		CanonicalItemID: &id,
		Confidence:      conf,
	}
}

// fuzzyMatch scans the vocabulary for the highest similarity at or
// above the configured threshold. Equal similarity resolves to the
// smallest raw edit distance; names are visited in sorted order and an
// equal distance never replaces the candidate, so remaining ties go to
// the lexicographically smaller name and the result is deterministic
// across runs.
func (s *Service) fuzzyMatch(snap *vocabcache.Snapshot, cleaned string) (vocabcache.Entry, bool) {
	var (
		bestName string
		bestSim  float64
		bestDist int
	)
	for _, name := range snap.Names() {
		diff := len(name) - len(cleaned)
		longest := len(name)
		if len(cleaned) > longest {
			longest = len(cleaned)
			diff = -diff
		}
		// The length gap lower-bounds the edit distance; skip names
		// that cannot reach the threshold.
		if float64(diff) > float64(longest)*(1-s.fuzzyThreshold) {
			continue
		}
		sim := similarity(cleaned, name)
		if sim < s.fuzzyThreshold {
			continue
		}
		dist := editDistance(cleaned, name)
		if sim > bestSim || (sim == bestSim && dist < bestDist) {
			bestName, bestSim, bestDist = name, sim, dist
		}
	}
	if bestName == "" {
		return vocabcache.Entry{}, false
	}
	entry, _ := snap.LookupName(bestName)
	return entry, true
}

// containmentMatch resolves by word containment in either direction.
// A canonical name inside the cleaned text wins longest-first, so
// "boneless chicken thigh" resolves to "chicken thigh" rather than
// "chicken". When no name is contained, the cleaned text itself may be
// contained in a canonical name; the shortest such name wins so the
// least-qualified candidate is chosen.
func containmentMatch(snap *vocabcache.Snapshot, cleaned string) (vocabcache.Entry, bool) {
	var bestInside, bestAround string
	for _, name := range snap.Names() {
		if len(name) > len(bestInside) && containsWord(cleaned, name) {
			bestInside = name
		}
		if (bestAround == "" || len(name) < len(bestAround)) && containsWord(name, cleaned) {
			bestAround = name
		}
	}
	best := bestInside
	if best == "" {
		best = bestAround
	}
	if best == "" {
		return vocabcache.Entry{}, false
	}
	entry, _ := snap.LookupName(best)
	return entry, true
}

func (s *Service) recordMiss(ctx context.Context, raw string) {
	if err := s.oov.Append(ctx, raw, time.Now()); err != nil {
		// A lost miss record must never fail the caller's write.
		s.logger.Warn("failed to record vocabulary miss",
			zap.String("raw", raw),
			zap.Error(err))
	}
}

var _ inbound.Normalizer = (*Service)(nil)
