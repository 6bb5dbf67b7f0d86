package testutils

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/catalog"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/matching"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/pantry"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/vocabulary"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/outbound"
)

// QueryCounter counts storage round trips so tests can assert the
// match engine's constant-fetch guarantee.
type QueryCounter struct {
	mu    sync.Mutex
	count int
}

func (c *QueryCounter) inc() {
	c.mu.Lock()
	c.count++
	c.mu.Unlock()
}

// Count returns the number of recorded round trips
func (c *QueryCounter) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Reset zeroes the counter
func (c *QueryCounter) Reset() {
	c.mu.Lock()
	c.count = 0
	c.mu.Unlock()
}

// FakeVocabularyRepository is an in-memory VocabularyRepository
type FakeVocabularyRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*vocabulary.CanonicalItem

	// FailAll makes every read fail, simulating a vocabulary outage
	FailAll bool
	Queries *QueryCounter
}

// NewFakeVocabularyRepository creates an empty fake vocabulary store
func NewFakeVocabularyRepository() *FakeVocabularyRepository {
	return &FakeVocabularyRepository{
		items:   make(map[uuid.UUID]*vocabulary.CanonicalItem),
		Queries: &QueryCounter{},
	}
}

// Add seeds the store outside the repository interface
func (r *FakeVocabularyRepository) Add(items ...*vocabulary.CanonicalItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		r.items[item.ID()] = item
	}
}

func (r *FakeVocabularyRepository) Create(ctx context.Context, item *vocabulary.CanonicalItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Name() == item.Name() {
			return vocabulary.ErrDuplicateName
		}
	}
	r.items[item.ID()] = item
	return nil
}

func (r *FakeVocabularyRepository) Update(ctx context.Context, item *vocabulary.CanonicalItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID()]; !ok {
		return vocabulary.ErrItemNotFound
	}
	r.items[item.ID()] = item
	return nil
}

func (r *FakeVocabularyRepository) FindByID(ctx context.Context, id uuid.UUID) (*vocabulary.CanonicalItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, vocabulary.ErrItemNotFound
	}
	return item, nil
}

func (r *FakeVocabularyRepository) FindByName(ctx context.Context, name string) (*vocabulary.CanonicalItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, item := range r.items {
		if item.Name() == name {
			return item, nil
		}
	}
	return nil, vocabulary.ErrItemNotFound
}

func (r *FakeVocabularyRepository) FindAll(ctx context.Context) ([]*vocabulary.CanonicalItem, error) {
	r.Queries.inc()
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.FailAll {
		return nil, context.DeadlineExceeded
	}
	out := make([]*vocabulary.CanonicalItem, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

// FakeSavedRecipeRepository is an in-memory SavedRecipeRepository
type FakeSavedRecipeRepository struct {
	mu      sync.RWMutex
	recipes map[uuid.UUID]*catalog.SavedRecipe
	Queries *QueryCounter
}

// NewFakeSavedRecipeRepository creates an empty fake recipe store
func NewFakeSavedRecipeRepository() *FakeSavedRecipeRepository {
	return &FakeSavedRecipeRepository{
		recipes: make(map[uuid.UUID]*catalog.SavedRecipe),
		Queries: &QueryCounter{},
	}
}

func (r *FakeSavedRecipeRepository) Create(ctx context.Context, recipe *catalog.SavedRecipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recipes[recipe.ID()] = recipe
	return nil
}

func (r *FakeSavedRecipeRepository) Update(ctx context.Context, recipe *catalog.SavedRecipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.recipes[recipe.ID()]; !ok {
		return catalog.ErrRecipeNotFound
	}
	r.recipes[recipe.ID()] = recipe
	return nil
}

func (r *FakeSavedRecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.recipes[id]; !ok {
		return catalog.ErrRecipeNotFound
	}
	delete(r.recipes, id)
	return nil
}

func (r *FakeSavedRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.SavedRecipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	recipe, ok := r.recipes[id]
	if !ok {
		return nil, catalog.ErrRecipeNotFound
	}
	return recipe, nil
}

func (r *FakeSavedRecipeRepository) FindByHousehold(ctx context.Context, householdID uuid.UUID, offset, limit int) ([]*catalog.SavedRecipe, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var all []*catalog.SavedRecipe
	for _, recipe := range r.recipes {
		if recipe.HouseholdID() == householdID {
			all = append(all, recipe)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Title() < all[j].Title() })
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (r *FakeSavedRecipeRepository) ListRequiredIngredients(ctx context.Context, recipeIDs []uuid.UUID) ([]outbound.IngredientRow, error) {
	r.Queries.inc()
	r.mu.RLock()
	defer r.mu.RUnlock()
	var rows []outbound.IngredientRow
	for _, id := range recipeIDs {
		recipe, ok := r.recipes[id]
		if !ok {
			continue
		}
		for _, ing := range recipe.Ingredients() {
			if ing.IsOptional {
				continue
			}
			rows = append(rows, outbound.IngredientRow{
				RecipeID:        recipe.ID(),
				IngredientID:    ing.ID,
				RawName:         ing.RawName,
				CanonicalItemID: ing.CanonicalItemID,
				Critical:        ing.Critical(),
				Staple:          ing.Staple(),
			})
		}
	}
	return rows, nil
}

// FakePantryRepository is an in-memory PantryRepository
type FakePantryRepository struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*pantry.Entry
	Queries *QueryCounter
}

// NewFakePantryRepository creates an empty fake pantry store
func NewFakePantryRepository() *FakePantryRepository {
	return &FakePantryRepository{
		entries: make(map[uuid.UUID]*pantry.Entry),
		Queries: &QueryCounter{},
	}
}

func (r *FakePantryRepository) Create(ctx context.Context, entry *pantry.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.ID()] = entry
	return nil
}

func (r *FakePantryRepository) Update(ctx context.Context, entry *pantry.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[entry.ID()]; !ok {
		return pantry.ErrEntryNotFound
	}
	r.entries[entry.ID()] = entry
	return nil
}

func (r *FakePantryRepository) FindByID(ctx context.Context, id uuid.UUID) (*pantry.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[id]
	if !ok {
		return nil, pantry.ErrEntryNotFound
	}
	return entry, nil
}

func (r *FakePantryRepository) FindByHousehold(ctx context.Context, householdID uuid.UUID, includeArchived bool) ([]*pantry.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*pantry.Entry
	for _, entry := range r.entries {
		if entry.HouseholdID() != householdID {
			continue
		}
		if !includeArchived && entry.Status() != pantry.EntryStatusActive {
			continue
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RawName() < out[j].RawName() })
	return out, nil
}

func (r *FakePantryRepository) ListAvailableCanonicalIDs(ctx context.Context, householdID uuid.UUID, epsilon float64) ([]uuid.UUID, error) {
	r.Queries.inc()
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, entry := range r.entries {
		if entry.HouseholdID() != householdID || !entry.Available(epsilon) {
			continue
		}
		if id := entry.CanonicalItemID(); id != nil {
			if _, dup := seen[*id]; !dup {
				seen[*id] = struct{}{}
				ids = append(ids, *id)
			}
		}
	}
	return ids, nil
}

// FakeSubstitutionRepository is an in-memory SubstitutionRepository.
// LastItemIDs records the item set of the most recent ListByItemIDs
// call so tests can assert its scope.
type FakeSubstitutionRepository struct {
	mu          sync.RWMutex
	rules       map[uuid.UUID]*matching.SubstitutionRule
	LastItemIDs []uuid.UUID
	Queries     *QueryCounter
}

// NewFakeSubstitutionRepository creates an empty fake rule store
func NewFakeSubstitutionRepository() *FakeSubstitutionRepository {
	return &FakeSubstitutionRepository{
		rules:   make(map[uuid.UUID]*matching.SubstitutionRule),
		Queries: &QueryCounter{},
	}
}

func (r *FakeSubstitutionRepository) Create(ctx context.Context, rule *matching.SubstitutionRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rules {
		if existing.PairKey() == rule.PairKey() {
			return matching.ErrDuplicateRule
		}
	}
	r.rules[rule.ID] = rule
	return nil
}

func (r *FakeSubstitutionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rules, id)
	return nil
}

func (r *FakeSubstitutionRepository) ListByItemIDs(ctx context.Context, itemIDs []uuid.UUID) ([]*matching.SubstitutionRule, error) {
	r.Queries.inc()
	r.mu.Lock()
	r.LastItemIDs = append([]uuid.UUID(nil), itemIDs...)
	r.mu.Unlock()
	r.mu.RLock()
	defer r.mu.RUnlock()
	wanted := make(map[uuid.UUID]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = struct{}{}
	}
	var out []*matching.SubstitutionRule
	for _, rule := range r.rules {
		_, a := wanted[rule.ItemA]
		_, b := wanted[rule.ItemB]
		if a || b {
			out = append(out, rule)
		}
	}
	return out, nil
}

// FakeOOVRepository is an in-memory append-only OOV sink
type FakeOOVRepository struct {
	mu      sync.Mutex
	records []oovRecord
}

type oovRecord struct {
	rawText string
	at      time.Time
}

// NewFakeOOVRepository creates an empty fake OOV log
func NewFakeOOVRepository() *FakeOOVRepository {
	return &FakeOOVRepository{}
}

func (r *FakeOOVRepository) Append(ctx context.Context, rawText string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, oovRecord{rawText: rawText, at: at})
	return nil
}

func (r *FakeOOVRepository) Aggregate(ctx context.Context, since time.Time, limit int) ([]outbound.OOVAggregate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]*outbound.OOVAggregate)
	for _, rec := range r.records {
		if rec.at.Before(since) {
			continue
		}
		agg, ok := counts[rec.rawText]
		if !ok {
			agg = &outbound.OOVAggregate{RawText: rec.rawText}
			counts[rec.rawText] = agg
		}
		agg.Count++
		if rec.at.After(agg.LastSeen) {
			agg.LastSeen = rec.at
		}
	}
	out := make([]outbound.OOVAggregate, 0, len(counts))
	for _, agg := range counts {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].RawText < out[j].RawText
	})
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// Appended returns the raw texts recorded so far, in order
func (r *FakeOOVRepository) Appended() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.records))
	for i, rec := range r.records {
		out[i] = rec.rawText
	}
	return out
}

// FakeCacheRepository is an in-memory CacheRepository without TTL
// expiry; tests control its contents directly.
type FakeCacheRepository struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewFakeCacheRepository creates an empty fake cache
func NewFakeCacheRepository() *FakeCacheRepository {
	return &FakeCacheRepository{items: make(map[string][]byte)}
}

func (c *FakeCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.items[key]
	if !ok {
		return nil, nil
	}
	return value, nil
}

func (c *FakeCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

func (c *FakeCacheRepository) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *FakeCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.items[key]
	return ok, nil
}

func (c *FakeCacheRepository) DeletePrefix(ctx context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
	return nil
}

// Len returns the number of cached keys
func (c *FakeCacheRepository) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

var (
	_ outbound.VocabularyRepository   = (*FakeVocabularyRepository)(nil)
	_ outbound.SavedRecipeRepository  = (*FakeSavedRecipeRepository)(nil)
	_ outbound.PantryRepository       = (*FakePantryRepository)(nil)
	_ outbound.SubstitutionRepository = (*FakeSubstitutionRepository)(nil)
	_ outbound.OOVRepository          = (*FakeOOVRepository)(nil)
	_ outbound.CacheRepository        = (*FakeCacheRepository)(nil)
)
