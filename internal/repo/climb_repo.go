// Repository functions for the Climb model, keyed by the natural
// (climber_id, route_id) pair.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/summitlog/go-crag-backend/internal/domain"
)

// ErrAmbiguousClimb is returned when more than one climb row matches a
// (climber_id, route_id) pair. The composite unique index makes this
// unreachable through normal writes, so hitting it means the stored data
// violates the one-review-per-pair invariant.
var ErrAmbiguousClimb = errors.New("multiple climbs stored for one climber/route pair")

// CreateClimb inserts a new climb row for the pair, backfilling the assigned
// id. A duplicate pair violates ux_climbs_climber_route and surfaces as the
// raw constraint error.
func CreateClimb(ctx context.Context, db *gorm.DB, c *domain.Climb) error {
	c.ID = nil
	c.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(c).Error
}

// GetClimb fetches the single climb matching the pair. Zero matches return
// ErrNotFound; more than one match returns ErrAmbiguousClimb rather than
// silently picking a row.
func GetClimb(ctx context.Context, db *gorm.DB, climberID, routeID int32) (*domain.Climb, error) {
	var out []domain.Climb
	err := db.WithContext(ctx).
		Where("climber_id = ? AND route_id = ?", climberID, routeID).
		Limit(2).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	switch len(out) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return &out[0], nil
	default:
		return nil, ErrAmbiguousClimb
	}
}

// UpdateClimb replaces rating/review/completion_date for the row matching the
// pair. If no row matches, it returns ErrNotFound.
func UpdateClimb(ctx context.Context, db *gorm.DB, climberID, routeID int32, rev domain.Review) error {
	res := db.WithContext(ctx).
		Model(&domain.Climb{}).
		Where("climber_id = ? AND route_id = ?", climberID, routeID).
		Updates(map[string]any{
			"rating":          rev.Rating,
			"review":          rev.Review,
			"completion_date": rev.CompletionDate,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteClimb removes the climb matching the pair (idempotent).
func DeleteClimb(ctx context.Context, db *gorm.DB, climberID, routeID int32) error {
	return db.WithContext(ctx).
		Where("climber_id = ? AND route_id = ?", climberID, routeID).
		Delete(&domain.Climb{}).Error
}
