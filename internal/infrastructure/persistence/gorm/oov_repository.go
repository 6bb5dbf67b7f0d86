package gorm

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/outbound"
)

// OOVRepository implements outbound.OOVRepository using GORM
type OOVRepository struct {
	db *gorm.DB
}

// NewOOVRepository creates a new out-of-vocabulary miss repository
func NewOOVRepository(db *gorm.DB) outbound.OOVRepository {
	return &OOVRepository{db: db}
}

// Append records one normalization miss verbatim
func (r *OOVRepository) Append(ctx context.Context, rawText string, at time.Time) error {
	return r.db.WithContext(ctx).Create(&OOVRecordModel{
		RawText: rawText,
		SeenAt:  at,
	}).Error
}

// Aggregate groups misses since the given time by raw text, most
// frequent first, ties broken alphabetically.
func (r *OOVRepository) Aggregate(ctx context.Context, since time.Time, limit int) ([]outbound.OOVAggregate, error) {
	var rows []outbound.OOVAggregate
	result := r.db.WithContext(ctx).
		Model(&OOVRecordModel{}).
		Select("raw_text, COUNT(*) AS count, MAX(seen_at) AS last_seen").
		Where("seen_at >= ?", since).
		Group("raw_text").
		Order("count DESC, raw_text ASC").
		Limit(limit).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return rows, nil
}
