package vocabulary

import (
	"time"

	"github.com/google/uuid"
)

// ItemCreatedEvent is raised when a new canonical item enters the vocabulary
type ItemCreatedEvent struct {
	ItemID    uuid.UUID
	Name      string
	Category  string
	CreatedAt time.Time
}

func (e ItemCreatedEvent) EventName() string {
	return "vocabulary.item.created"
}

func (e ItemCreatedEvent) OccurredAt() time.Time {
	return e.CreatedAt
}

// AliasAddedEvent is raised when an alias is registered for an item
type AliasAddedEvent struct {
	ItemID  uuid.UUID
	Alias   string
	AddedAt time.Time
}

func (e AliasAddedEvent) EventName() string {
	return "vocabulary.alias.added"
}

func (e AliasAddedEvent) OccurredAt() time.Time {
	return e.AddedAt
}
