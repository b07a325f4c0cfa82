// Package services – ClimbService
//
// Review operations keyed by the (climber, route) pair. A climb links one
// climber to one route with a rating, free-form review text and a completion
// date; the pair is unique, so the service exposes one review per pair.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/summitlog/go-crag-backend/internal/domain"
)

// ClimbRepo defines the repository contract required by ClimbService.
type ClimbRepo interface {
	CreateClimb(ctx context.Context, db *gorm.DB, c *domain.Climb) error
	GetClimb(ctx context.Context, db *gorm.DB, climberID, routeID int32) (*domain.Climb, error)
	UpdateClimb(ctx context.Context, db *gorm.DB, climberID, routeID int32, rev domain.Review) error
	DeleteClimb(ctx context.Context, db *gorm.DB, climberID, routeID int32) error
}

// ClimbService provides review CRUD keyed by (climberID, routeID).
type ClimbService struct {
	DB   *gorm.DB
	Repo ClimbRepo
}

// NewClimbService constructs a ClimbService.
func NewClimbService(db *gorm.DB, r ClimbRepo) *ClimbService {
	return &ClimbService{DB: db, Repo: r}
}

// GetReview returns the stored climb for the pair, ids included, so callers
// can confirm which climber and route the review belongs to.
func (s *ClimbService) GetReview(ctx context.Context, climberID, routeID int32) (*domain.Climb, error) {
	c, err := s.Repo.GetClimb(ctx, s.DB, climberID, routeID)
	if err != nil {
		return nil, classify("climbs.get", err)
	}
	return c, nil
}

// AddReview records a new review for the pair. A second review for the same
// pair violates the unique index and surfaces as a store failure rather than
// overwriting the first.
func (s *ClimbService) AddReview(ctx context.Context, climberID, routeID int32, rev domain.Review) error {
	climb := &domain.Climb{
		ClimberID:      climberID,
		RouteID:        routeID,
		Rating:         rev.Rating,
		Review:         rev.Review,
		CompletionDate: rev.CompletionDate,
	}
	return classify("climbs.add", s.Repo.CreateClimb(ctx, s.DB, climb))
}

// UpdateReview replaces the stored review for the pair. Updating a pair with
// no stored review is a not-found failure.
func (s *ClimbService) UpdateReview(ctx context.Context, climberID, routeID int32, rev domain.Review) error {
	return classify("climbs.update", s.Repo.UpdateClimb(ctx, s.DB, climberID, routeID, rev))
}

// DeleteReview removes the review for the pair (idempotent).
func (s *ClimbService) DeleteReview(ctx context.Context, climberID, routeID int32) error {
	return classify("climbs.delete", s.Repo.DeleteClimb(ctx, s.DB, climberID, routeID))
}
