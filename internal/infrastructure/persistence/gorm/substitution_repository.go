package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/domain/matching"
	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/outbound"
)

// SubstitutionRepository implements outbound.SubstitutionRepository using GORM
type SubstitutionRepository struct {
	db *gorm.DB
}

// NewSubstitutionRepository creates a new substitution rule repository
func NewSubstitutionRepository(db *gorm.DB) outbound.SubstitutionRepository {
	return &SubstitutionRepository{db: db}
}

// Create persists a new substitution rule. The unique index on
// pair_key rejects the reversed duplicate as well.
func (r *SubstitutionRepository) Create(ctx context.Context, rule *matching.SubstitutionRule) error {
	result := r.db.WithContext(ctx).Create(substitutionRuleToModel(rule))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return matching.ErrDuplicateRule
		}
		return result.Error
	}
	return nil
}

// Delete removes a substitution rule by ID
func (r *SubstitutionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&SubstitutionRuleModel{}, "id = ?", id).Error
}

// ListByItemIDs loads every rule touching any of the given canonical
// items in one query.
func (r *SubstitutionRepository) ListByItemIDs(ctx context.Context, itemIDs []uuid.UUID) ([]*matching.SubstitutionRule, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	var models []SubstitutionRuleModel
	result := r.db.WithContext(ctx).
		Where("item_a_id IN ? OR item_b_id IN ?", itemIDs, itemIDs).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	rules := make([]*matching.SubstitutionRule, len(models))
	for i := range models {
		rules[i] = substitutionRuleToDomain(&models[i])
	}
	return rules, nil
}
