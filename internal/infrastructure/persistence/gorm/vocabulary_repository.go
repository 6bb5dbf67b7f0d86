package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/vocabulary"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/outbound"
)

// VocabularyRepository implements outbound.VocabularyRepository using GORM
type VocabularyRepository struct {
	db *gorm.DB
}

// NewVocabularyRepository creates a new vocabulary repository
func NewVocabularyRepository(db *gorm.DB) outbound.VocabularyRepository {
	return &VocabularyRepository{db: db}
}

// Create persists a new canonical item
func (r *VocabularyRepository) Create(ctx context.Context, item *vocabulary.CanonicalItem) error {
	result := r.db.WithContext(ctx).Create(canonicalItemToModel(item))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return vocabulary.ErrDuplicateName
		}
		return result.Error
	}
	return nil
}

// Update persists changes to an existing canonical item
func (r *VocabularyRepository) Update(ctx context.Context, item *vocabulary.CanonicalItem) error {
	result := r.db.WithContext(ctx).Save(canonicalItemToModel(item))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return vocabulary.ErrItemNotFound
	}
	return nil
}

// FindByID finds a canonical item by ID
func (r *VocabularyRepository) FindByID(ctx context.Context, id uuid.UUID) (*vocabulary.CanonicalItem, error) {
	var model CanonicalItemModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, vocabulary.ErrItemNotFound
		}
		return nil, result.Error
	}
	return canonicalItemToDomain(&model), nil
}

// FindByName finds a canonical item by its exact name
func (r *VocabularyRepository) FindByName(ctx context.Context, name string) (*vocabulary.CanonicalItem, error) {
	var model CanonicalItemModel
	result := r.db.WithContext(ctx).First(&model, "name = ?", name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, vocabulary.ErrItemNotFound
		}
		return nil, result.Error
	}
	return canonicalItemToDomain(&model), nil
}

// FindAll loads the whole vocabulary, backing the snapshot cache
func (r *VocabularyRepository) FindAll(ctx context.Context) ([]*vocabulary.CanonicalItem, error) {
	var models []CanonicalItemModel
	result := r.db.WithContext(ctx).Order("name ASC").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	items := make([]*vocabulary.CanonicalItem, len(models))
	for i := range models {
		items[i] = canonicalItemToDomain(&models[i])
	}
	return items, nil
}
