// Package pantry contains the household pantry domain. A PantryEntry
// keeps the text the household member typed (or the receipt produced)
// verbatim; canonicalization only ever attaches an auxiliary link.
package pantry

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/shared"
)

// EntryStatus represents the lifecycle state of a pantry entry
type EntryStatus string

const (
	EntryStatusActive   EntryStatus = "active"
	EntryStatusArchived EntryStatus = "archived"
)

// Entry represents one item in a household's pantry
type Entry struct {
	shared.AggregateRoot

	id              uuid.UUID
	householdID     uuid.UUID
	rawName         string
	normalizedName  string
	canonicalItemID *uuid.UUID
	quantity        float64
	unit            string
	status          EntryStatus
	location        string
	createdAt       time.Time
	updatedAt       time.Time
}

// NewEntry creates a pantry entry with validation
func NewEntry(householdID uuid.UUID, rawName string, quantity float64, unit, location string) (*Entry, error) {
	if strings.TrimSpace(rawName) == "" {
		return nil, ErrEmptyRawName
	}
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}

	now := time.Now()
	entry := &Entry{
		id:          uuid.New(),
		householdID: householdID,
		rawName:     rawName,
		quantity:    quantity,
		unit:        unit,
		status:      EntryStatusActive,
		location:    location,
		createdAt:   now,
		updatedAt:   now,
	}

	entry.AddEvent(EntryAddedEvent{
		EntryID:     entry.id,
		HouseholdID: householdID,
		RawName:     rawName,
		AddedAt:     now,
	})

	return entry, nil
}

// Rehydrate reconstructs an Entry from persisted state.
func Rehydrate(id, householdID uuid.UUID, rawName, normalizedName string, canonicalItemID *uuid.UUID, quantity float64, unit string, status EntryStatus, location string, createdAt, updatedAt time.Time) *Entry {
	return &Entry{
		id:              id,
		householdID:     householdID,
		rawName:         rawName,
		normalizedName:  normalizedName,
		canonicalItemID: canonicalItemID,
		quantity:        quantity,
		unit:            unit,
		status:          status,
		location:        location,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// ID returns the entry's unique identifier
func (e *Entry) ID() uuid.UUID {
	return e.id
}

// HouseholdID returns the owning household
func (e *Entry) HouseholdID() uuid.UUID {
	return e.householdID
}

// RawName returns the text exactly as it was entered
func (e *Entry) RawName() string {
	return e.rawName
}

// NormalizedName returns the derived lookup form
func (e *Entry) NormalizedName() string {
	return e.normalizedName
}

// CanonicalItemID returns the canonical vocabulary link, if any
func (e *Entry) CanonicalItemID() *uuid.UUID {
	return e.canonicalItemID
}

// Quantity returns the current quantity
func (e *Entry) Quantity() float64 {
	return e.quantity
}

// Unit returns the entry's unit
func (e *Entry) Unit() string {
	return e.unit
}

// Status returns the entry's status
func (e *Entry) Status() EntryStatus {
	return e.status
}

// Location returns where the item is stored
func (e *Entry) Location() string {
	return e.location
}

// CreatedAt returns when the entry was created
func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

// UpdatedAt returns when the entry was last updated
func (e *Entry) UpdatedAt() time.Time {
	return e.updatedAt
}

// SetCanonicalLink attaches the derived canonicalization fields. The
// raw name is never touched, even when the link is cleared.
func (e *Entry) SetCanonicalLink(normalizedName string, canonicalItemID *uuid.UUID) {
	e.normalizedName = normalizedName
	e.canonicalItemID = canonicalItemID
	e.updatedAt = time.Now()
}

// SetQuantity replaces the quantity
func (e *Entry) SetQuantity(quantity float64) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	e.quantity = quantity
	e.updatedAt = time.Now()
	e.AddEvent(QuantityChangedEvent{
		EntryID:     e.id,
		HouseholdID: e.householdID,
		Quantity:    quantity,
		ChangedAt:   e.updatedAt,
	})
	return nil
}

// Consume reduces the quantity by the given amount, clamping at zero.
func (e *Entry) Consume(amount float64) error {
	if amount < 0 {
		return ErrNegativeQuantity
	}
	remaining := e.quantity - amount
	if remaining < 0 {
		remaining = 0
	}
	return e.SetQuantity(remaining)
}

// Archive marks the entry as no longer in the pantry
func (e *Entry) Archive() error {
	if e.status == EntryStatusArchived {
		return ErrAlreadyArchived
	}
	e.status = EntryStatusArchived
	e.updatedAt = time.Now()
	e.AddEvent(EntryArchivedEvent{
		EntryID:     e.id,
		HouseholdID: e.householdID,
		ArchivedAt:  e.updatedAt,
	})
	return nil
}

// Available reports whether the entry counts as present for matching:
// active and with a quantity above the epsilon threshold.
func (e *Entry) Available(epsilon float64) bool {
	return e.status == EntryStatusActive && e.quantity > epsilon
}
