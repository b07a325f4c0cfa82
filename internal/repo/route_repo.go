// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Route model.
//
// All functions are context-aware and accept a *gorm.DB handle. They follow
// the "thin repository" approach: no business logic, only CRUD persistence
// and query composition.
//
// Error semantics:
//   - When a route is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated; classification into the failure
//     taxonomy happens in the service layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/summitlog/go-crag-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateRoute inserts a new route row. The store assigns the surrogate id,
// which is backfilled into r.ID; CreatedAt is set to UTC.
func CreateRoute(ctx context.Context, db *gorm.DB, r *domain.Route) error {
	r.ID = nil
	r.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(r).Error
}

// ListRecentRoutes returns up to limit routes ordered by creation time
// descending (most recently inserted first). Ordering among equal timestamps
// is unspecified. It returns an empty slice when the table is empty.
func ListRecentRoutes(ctx context.Context, db *gorm.DB, limit int) ([]domain.Route, error) {
	var out []domain.Route
	err := db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetRoute fetches a single route by id, or ErrNotFound if missing.
func GetRoute(ctx context.Context, db *gorm.DB, id int32) (*domain.Route, error) {
	var r domain.Route
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateRoute replaces name/difficulty/latitude/longitude for the given id.
// A zero-row update is not an error: the operation is a blind full-field
// replace, matching the delete semantics below.
func UpdateRoute(ctx context.Context, db *gorm.DB, id int32, r *domain.Route) error {
	return db.WithContext(ctx).
		Model(&domain.Route{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":       r.Name,
			"difficulty": r.Difficulty,
			"latitude":   r.Latitude,
			"longitude":  r.Longitude,
		}).Error
}

// DeleteRoute removes the route with the given id. Deleting a nonexistent id
// deletes zero rows and is reported as success (idempotent).
func DeleteRoute(ctx context.Context, db *gorm.DB, id int32) error {
	return db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Route{}).Error
}
