// Package vocabulary contains the canonical ingredient vocabulary domain.
// A CanonicalItem is the deduplicated identity an ingredient concept
// resolves to; everything else in the matching path reads from it.
package vocabulary

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/shared"
)

// CanonicalItem represents one entry in the canonical vocabulary.
// Items are created by curation or by promotion from OOV review and are
// never deleted in normal operation.
type CanonicalItem struct {
	shared.AggregateRoot

	id        uuid.UUID
	name      string
	category  string
	aliases   map[string]struct{}
	createdAt time.Time
}

// NewCanonicalItem creates a new CanonicalItem with validation.
// The name must already be in canonical form: lowercase, singular, trimmed.
func NewCanonicalItem(name, category string, aliases []string) (*CanonicalItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if name != strings.ToLower(name) {
		return nil, ErrNameNotLowercase
	}

	item := &CanonicalItem{
		id:        uuid.New(),
		name:      name,
		category:  category,
		aliases:   make(map[string]struct{}, len(aliases)),
		createdAt: time.Now(),
	}
	for _, alias := range aliases {
		if err := item.AddAlias(alias); err != nil && err != ErrAliasIsName {
			return nil, err
		}
	}

	item.AddEvent(ItemCreatedEvent{
		ItemID:    item.id,
		Name:      name,
		Category:  category,
		CreatedAt: item.createdAt,
	})

	return item, nil
}

// Rehydrate reconstructs a CanonicalItem from persisted state without
// raising creation events.
func Rehydrate(id uuid.UUID, name, category string, aliases []string, createdAt time.Time) *CanonicalItem {
	item := &CanonicalItem{
		id:        id,
		name:      name,
		category:  category,
		aliases:   make(map[string]struct{}, len(aliases)),
		createdAt: createdAt,
	}
	for _, alias := range aliases {
		alias = strings.ToLower(strings.TrimSpace(alias))
		if alias != "" && alias != name {
			item.aliases[alias] = struct{}{}
		}
	}
	return item
}

// ID returns the item's unique identifier
func (c *CanonicalItem) ID() uuid.UUID {
	return c.id
}

// Name returns the canonical name
func (c *CanonicalItem) Name() string {
	return c.name
}

// Category returns the item's category
func (c *CanonicalItem) Category() string {
	return c.category
}

// CreatedAt returns when the item was created
func (c *CanonicalItem) CreatedAt() time.Time {
	return c.createdAt
}

// Aliases returns the alias set in deterministic order
func (c *CanonicalItem) Aliases() []string {
	aliases := make([]string, 0, len(c.aliases))
	for alias := range c.aliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// AddAlias registers an alternate string for this item. Aliases are
// stored lowercase and deduplicated; the canonical name itself is not
// a valid alias.
func (c *CanonicalItem) AddAlias(alias string) error {
	alias = strings.ToLower(strings.TrimSpace(alias))
	if alias == "" {
		return ErrEmptyAlias
	}
	if alias == c.name {
		return ErrAliasIsName
	}
	if _, exists := c.aliases[alias]; exists {
		return nil
	}

	c.aliases[alias] = struct{}{}
	c.AddEvent(AliasAddedEvent{
		ItemID:  c.id,
		Alias:   alias,
		AddedAt: time.Now(),
	})
	return nil
}

// HasAlias reports whether the given string is a registered alias.
func (c *CanonicalItem) HasAlias(alias string) bool {
	_, ok := c.aliases[strings.ToLower(strings.TrimSpace(alias))]
	return ok
}
