// Package vocabulary provides an in-process snapshot of the canonical
// vocabulary so the normalizer never hits the database per lookup.
package vocabulary

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/vocabulary"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/outbound"
	apperrors "github.com/chamchi6619/pantry-app-v1-sub004/pkg/errors"
)

// Entry is a single resolved vocabulary term. Name lookups and alias
// lookups both land here.
type Entry struct {
	ItemID   uuid.UUID
	Name     string
	Category string
}

// Snapshot is an immutable view of the whole vocabulary at one point
// in time. Lookups never block each other.
type Snapshot struct {
	byName  map[string]Entry // canonical name -> entry
	byAlias map[string]Entry // alias -> entry
	names   []string         // sorted canonical names, for fuzzy scans
	loaded  time.Time
}

// LookupName returns the entry whose canonical name matches exactly.
func (s *Snapshot) LookupName(name string) (Entry, bool) {
	e, ok := s.byName[name]
	return e, ok
}

// LookupAlias returns the entry one of whose aliases matches exactly.
func (s *Snapshot) LookupAlias(alias string) (Entry, bool) {
	e, ok := s.byAlias[alias]
	return e, ok
}

// Names returns the sorted canonical name list. Callers must not
// mutate the returned slice.
func (s *Snapshot) Names() []string {
	return s.names
}

// LoadedAt reports when this snapshot was built.
func (s *Snapshot) LoadedAt() time.Time {
	return s.loaded
}

// Size returns the number of canonical items in the snapshot.
func (s *Snapshot) Size() int {
	return len(s.byName)
}

// refreshBackoff is how long a failed refresh suppresses further store
// attempts. Lookups inside the window serve the stale snapshot, or the
// degraded error when nothing has ever loaded, without touching the
// repository.
const refreshBackoff = 30 * time.Second

// Cache serves snapshots and refreshes them once the TTL expires.
// A failed refresh keeps serving the previous snapshot; staleness is
// preferred over an unavailable vocabulary.
type Cache struct {
	repo   outbound.VocabularyRepository
	ttl    time.Duration
	logger *zap.Logger

	mu          sync.RWMutex
	current     *Snapshot
	degraded    bool
	lastFailure time.Time
	lastErr     error
}

// NewCache creates a snapshot cache over the given repository.
func NewCache(repo outbound.VocabularyRepository, ttl time.Duration, logger *zap.Logger) *Cache {
	return &Cache{
		repo:   repo,
		ttl:    ttl,
		logger: logger.Named("vocabulary-cache"),
	}
}

// Current returns a usable snapshot, refreshing first when the TTL has
// lapsed. It fails only when no snapshot has ever been loaded and the
// initial load fails too.
func (c *Cache) Current(ctx context.Context) (*Snapshot, error) {
	c.mu.RLock()
	snap := c.current
	lastFailure := c.lastFailure
	lastErr := c.lastErr
	c.mu.RUnlock()

	if snap != nil && time.Since(snap.loaded) < c.ttl {
		return snap, nil
	}
	if time.Since(lastFailure) < refreshBackoff {
		if snap != nil {
			return snap, nil
		}
		return nil, apperrors.NewVocabularyUnavailableError(lastErr)
	}

	return c.refresh(ctx)
}

// Invalidate drops the current snapshot so the next lookup reloads.
// Called after vocabulary writes.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.current = nil
	c.lastFailure = time.Time{}
	c.lastErr = nil
	c.mu.Unlock()
}

func (c *Cache) refresh(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Another goroutine may have refreshed or failed while we waited.
	if c.current != nil && time.Since(c.current.loaded) < c.ttl {
		return c.current, nil
	}
	if time.Since(c.lastFailure) < refreshBackoff {
		if c.current != nil {
			return c.current, nil
		}
		return nil, apperrors.NewVocabularyUnavailableError(c.lastErr)
	}

	items, err := c.repo.FindAll(ctx)
	if err != nil {
		c.lastFailure = time.Now()
		c.lastErr = err
		if c.current != nil {
			// Serve stale; log the degradation once per outage.
			if !c.degraded {
				c.degraded = true
				c.logger.Warn("vocabulary refresh failed, serving stale snapshot",
					zap.Time("loaded_at", c.current.loaded),
					zap.Error(err))
			}
			return c.current, nil
		}
		if !c.degraded {
			c.degraded = true
			c.logger.Error("vocabulary unavailable and no snapshot loaded", zap.Error(err))
		}
		return nil, apperrors.NewVocabularyUnavailableError(err)
	}

	snap := build(items)
	if c.degraded {
		c.logger.Info("vocabulary refresh recovered", zap.Int("items", snap.Size()))
	}
	c.current = snap
	c.degraded = false
	c.lastFailure = time.Time{}
	c.lastErr = nil
	c.logger.Debug("vocabulary snapshot refreshed", zap.Int("items", snap.Size()))
	return snap, nil
}

func build(items []*vocabulary.CanonicalItem) *Snapshot {
	snap := &Snapshot{
		byName:  make(map[string]Entry, len(items)),
		byAlias: make(map[string]Entry),
		names:   make([]string, 0, len(items)),
		loaded:  time.Now(),
	}
	for _, item := range items {
		entry := Entry{
			ItemID:   item.ID(),
			Name:     item.Name(),
			Category: item.Category(),
		}
		snap.byName[item.Name()] = entry
		snap.names = append(snap.names, item.Name())
		for _, alias := range item.Aliases() {
			snap.byAlias[alias] = entry
		}
	}
	sort.Strings(snap.names)
	return snap
}
