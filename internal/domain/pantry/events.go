package pantry

import (
	"time"

	"github.com/google/uuid"
)

// EntryAddedEvent is raised when an item is added to a pantry
type EntryAddedEvent struct {
	EntryID     uuid.UUID
	HouseholdID uuid.UUID
	RawName     string
	AddedAt     time.Time
}

func (e EntryAddedEvent) EventName() string {
	return "pantry.entry.added"
}

func (e EntryAddedEvent) OccurredAt() time.Time {
	return e.AddedAt
}

// QuantityChangedEvent is raised when an entry's quantity changes
type QuantityChangedEvent struct {
	EntryID     uuid.UUID
	HouseholdID uuid.UUID
	Quantity    float64
	ChangedAt   time.Time
}

func (e QuantityChangedEvent) EventName() string {
	return "pantry.entry.quantity_changed"
}

func (e QuantityChangedEvent) OccurredAt() time.Time {
	return e.ChangedAt
}

// EntryArchivedEvent is raised when an entry leaves the pantry
type EntryArchivedEvent struct {
	EntryID     uuid.UUID
	HouseholdID uuid.UUID
	ArchivedAt  time.Time
}

func (e EntryArchivedEvent) EventName() string {
	return "pantry.entry.archived"
}

func (e EntryArchivedEvent) OccurredAt() time.Time {
	return e.ArchivedAt
}
