// Repository functions for the Climber model. Same conventions as the route
// repository: context-aware free functions, raw gorm errors propagated.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/summitlog/go-crag-backend/internal/domain"
)

// CreateClimber inserts a new climber row, backfilling the assigned id.
func CreateClimber(ctx context.Context, db *gorm.DB, c *domain.Climber) error {
	c.ID = nil
	c.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(c).Error
}

// ListRecentClimbers returns up to limit climbers, most recently registered
// first.
func ListRecentClimbers(ctx context.Context, db *gorm.DB, limit int) ([]domain.Climber, error) {
	var out []domain.Climber
	err := db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetClimber fetches a single climber by id, or ErrNotFound if missing.
func GetClimber(ctx context.Context, db *gorm.DB, id int32) (*domain.Climber, error) {
	var c domain.Climber
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteClimber removes the climber with the given id (idempotent).
func DeleteClimber(ctx context.Context, db *gorm.DB, id int32) error {
	return db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Climber{}).Error
}
