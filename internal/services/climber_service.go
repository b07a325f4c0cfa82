// Package services – ClimberService
//
// CRUD operations for registered climbers. Same contract shape as
// RouteService: one round trip per call, classified failures, no state.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/summitlog/go-crag-backend/internal/domain"
)

// ClimberRepo defines the repository contract required by ClimberService.
type ClimberRepo interface {
	CreateClimber(ctx context.Context, db *gorm.DB, c *domain.Climber) error
	ListRecentClimbers(ctx context.Context, db *gorm.DB, limit int) ([]domain.Climber, error)
	GetClimber(ctx context.Context, db *gorm.DB, id int32) (*domain.Climber, error)
	DeleteClimber(ctx context.Context, db *gorm.DB, id int32) error
}

// ClimberService provides CRUD operations for climbers.
type ClimberService struct {
	DB        *gorm.DB
	Repo      ClimberRepo
	ListLimit int
}

// NewClimberService constructs a ClimberService with the default list limit.
func NewClimberService(db *gorm.DB, r ClimberRepo) *ClimberService {
	return &ClimberService{DB: db, Repo: r, ListLimit: DefaultListLimit}
}

// Add registers a new climber and returns it with the store-assigned id.
func (s *ClimberService) Add(ctx context.Context, c *domain.Climber) (*domain.Climber, error) {
	if err := s.Repo.CreateClimber(ctx, s.DB, c); err != nil {
		return nil, classify("climbers.add", err)
	}
	return c, nil
}

// ListRecent returns up to limit climbers, most recently registered first.
func (s *ClimberService) ListRecent(ctx context.Context, limit int) ([]domain.Climber, error) {
	if limit <= 0 {
		limit = s.defaultLimit()
	}
	out, err := s.Repo.ListRecentClimbers(ctx, s.DB, limit)
	if err != nil {
		return nil, classify("climbers.list", err)
	}
	return out, nil
}

// GetByID fetches a single climber by id.
func (s *ClimberService) GetByID(ctx context.Context, id int32) (*domain.Climber, error) {
	c, err := s.Repo.GetClimber(ctx, s.DB, id)
	if err != nil {
		return nil, classify("climbers.get", err)
	}
	return c, nil
}

// DeleteByID removes a climber. Deleting a nonexistent id is success.
func (s *ClimberService) DeleteByID(ctx context.Context, id int32) error {
	return classify("climbers.delete", s.Repo.DeleteClimber(ctx, s.DB, id))
}

func (s *ClimberService) defaultLimit() int {
	if s.ListLimit > 0 {
		return s.ListLimit
	}
	return DefaultListLimit
}
