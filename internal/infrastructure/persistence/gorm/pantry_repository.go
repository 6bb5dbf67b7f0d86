package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/pantry"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/outbound"
)

// PantryRepository implements outbound.PantryRepository using GORM
type PantryRepository struct {
	db *gorm.DB
}

// NewPantryRepository creates a new pantry repository
func NewPantryRepository(db *gorm.DB) outbound.PantryRepository {
	return &PantryRepository{db: db}
}

// Create persists a new pantry entry
func (r *PantryRepository) Create(ctx context.Context, entry *pantry.Entry) error {
	return r.db.WithContext(ctx).Create(pantryEntryToModel(entry)).Error
}

// Update persists changes to a pantry entry
func (r *PantryRepository) Update(ctx context.Context, entry *pantry.Entry) error {
	result := r.db.WithContext(ctx).Save(pantryEntryToModel(entry))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pantry.ErrEntryNotFound
	}
	return nil
}

// FindByID finds a pantry entry by ID
func (r *PantryRepository) FindByID(ctx context.Context, id uuid.UUID) (*pantry.Entry, error) {
	var model PantryEntryModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, pantry.ErrEntryNotFound
		}
		return nil, result.Error
	}
	return pantryEntryToDomain(&model), nil
}

// FindByHousehold lists a household's pantry entries
func (r *PantryRepository) FindByHousehold(ctx context.Context, householdID uuid.UUID, includeArchived bool) ([]*pantry.Entry, error) {
	query := r.db.WithContext(ctx).Where("household_id = ?", householdID)
	if !includeArchived {
		query = query.Where("status = ?", string(pantry.EntryStatusActive))
	}

	var models []PantryEntryModel
	result := query.Order("raw_name ASC").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]*pantry.Entry, len(models))
	for i := range models {
		entries[i] = pantryEntryToDomain(&models[i])
	}
	return entries, nil
}

// ListAvailableCanonicalIDs returns the distinct canonical item IDs of
// every active entry with usable quantity, in one query.
func (r *PantryRepository) ListAvailableCanonicalIDs(ctx context.Context, householdID uuid.UUID, epsilon float64) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	result := r.db.WithContext(ctx).
		Model(&PantryEntryModel{}).
		Distinct("canonical_item_id").
		Where("household_id = ?", householdID).
		Where("status = ?", string(pantry.EntryStatusActive)).
		Where("quantity > ?", epsilon).
		Where("canonical_item_id IS NOT NULL").
		Pluck("canonical_item_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}
