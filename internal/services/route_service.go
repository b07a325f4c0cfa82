// Package services – RouteService
//
// This file implements the RouteService, which manages the catalog of
// climbing routes. Each operation performs exactly one store round trip and
// classifies any failure into the shared taxonomy so handlers can map it to
// an HTTP status consistently. The service holds no state across requests.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/summitlog/go-crag-backend/internal/domain"
)

// DefaultListLimit is the number of rows list operations return when the
// caller supplies no count (or a non-positive one).
const DefaultListLimit = 5

// RouteRepo defines the repository contract required by RouteService.
// Implementations are responsible for persistence of route rows.
type RouteRepo interface {
	// CreateRoute inserts a route, backfilling the store-assigned id.
	CreateRoute(ctx context.Context, db *gorm.DB, r *domain.Route) error

	// ListRecentRoutes returns up to limit routes, newest first.
	ListRecentRoutes(ctx context.Context, db *gorm.DB, limit int) ([]domain.Route, error)

	// GetRoute fetches a route by id.
	GetRoute(ctx context.Context, db *gorm.DB, id int32) (*domain.Route, error)

	// UpdateRoute replaces all mutable fields of a route.
	UpdateRoute(ctx context.Context, db *gorm.DB, id int32, r *domain.Route) error

	// DeleteRoute removes a route by id.
	DeleteRoute(ctx context.Context, db *gorm.DB, id int32) error
}

// RouteService provides CRUD operations for climbing routes.
type RouteService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the route repository used by this service.
	Repo RouteRepo
	// ListLimit is the default row count for ListRecent.
	ListLimit int
}

// NewRouteService constructs a RouteService with the default list limit.
func NewRouteService(db *gorm.DB, r RouteRepo) *RouteService {
	return &RouteService{DB: db, Repo: r, ListLimit: DefaultListLimit}
}

// Add inserts a new route and returns it with the store-assigned id.
// Any client-supplied id is discarded.
func (s *RouteService) Add(ctx context.Context, r *domain.Route) (*domain.Route, error) {
	if err := s.Repo.CreateRoute(ctx, s.DB, r); err != nil {
		return nil, classify("routes.add", err)
	}
	return r, nil
}

// ListRecent returns up to limit routes, most recently created first.
// A non-positive limit falls back to the service default.
func (s *RouteService) ListRecent(ctx context.Context, limit int) ([]domain.Route, error) {
	if limit <= 0 {
		limit = s.defaultLimit()
	}
	out, err := s.Repo.ListRecentRoutes(ctx, s.DB, limit)
	if err != nil {
		return nil, classify("routes.list", err)
	}
	return out, nil
}

// GetByID fetches a single route. A missing row classifies as not found; a
// stored difficulty label that no longer parses classifies as a parse
// failure — both client-facing but logically distinct.
func (s *RouteService) GetByID(ctx context.Context, id int32) (*domain.Route, error) {
	r, err := s.Repo.GetRoute(ctx, s.DB, id)
	if err != nil {
		return nil, classify("routes.get", err)
	}
	return r, nil
}

// UpdateByID replaces name/difficulty/latitude/longitude for the given id.
// Updating a nonexistent id touches zero rows and is reported as success,
// mirroring the idempotent delete.
func (s *RouteService) UpdateByID(ctx context.Context, id int32, r *domain.Route) error {
	return classify("routes.update", s.Repo.UpdateRoute(ctx, s.DB, id, r))
}

// DeleteByID removes a route. Deleting a nonexistent id is success.
func (s *RouteService) DeleteByID(ctx context.Context, id int32) error {
	return classify("routes.delete", s.Repo.DeleteRoute(ctx, s.DB, id))
}

func (s *RouteService) defaultLimit() int {
	if s.ListLimit > 0 {
		return s.ListLimit
	}
	return DefaultListLimit
}
