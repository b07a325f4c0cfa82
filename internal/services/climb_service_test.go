package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/summitlog/go-crag-backend/internal/domain"
	"github.com/summitlog/go-crag-backend/internal/repo"
)

// ----- Fake repo -----

type fakeClimbRepo struct {
	createClimb *domain.Climb
	createErr   error

	getClimberID int32
	getRouteID   int32
	getClimb     *domain.Climb
	getErr       error

	updateClimberID int32
	updateRouteID   int32
	updateRev       domain.Review
	updateErr       error

	deleteClimberID int32
	deleteRouteID   int32
	deleteErr       error
}

func (r *fakeClimbRepo) CreateClimb(ctx context.Context, db *gorm.DB, c *domain.Climb) error {
	r.createClimb = c
	return r.createErr
}

func (r *fakeClimbRepo) GetClimb(ctx context.Context, db *gorm.DB, climberID, routeID int32) (*domain.Climb, error) {
	r.getClimberID, r.getRouteID = climberID, routeID
	return r.getClimb, r.getErr
}

func (r *fakeClimbRepo) UpdateClimb(ctx context.Context, db *gorm.DB, climberID, routeID int32, rev domain.Review) error {
	r.updateClimberID, r.updateRouteID, r.updateRev = climberID, routeID, rev
	return r.updateErr
}

func (r *fakeClimbRepo) DeleteClimb(ctx context.Context, db *gorm.DB, climberID, routeID int32) error {
	r.deleteClimberID, r.deleteRouteID = climberID, routeID
	return r.deleteErr
}

// ----- Tests -----

func TestClimbGetReview_ReturnsStoredClimbWithPair(t *testing.T) {
	date, err := domain.ParseDate("2024-06-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	id := int32(11)
	r := &fakeClimbRepo{getClimb: &domain.Climb{
		ID:             &id,
		ClimberID:      1,
		RouteID:        2,
		Rating:         domain.NewRating(8),
		Review:         "classic crimps",
		CompletionDate: date,
	}}
	s := NewClimbService(nil, r)

	climb, err := s.GetReview(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("GetReview error: %v", err)
	}
	if r.getClimberID != 1 || r.getRouteID != 2 {
		t.Fatalf("repo got pair (%d, %d)", r.getClimberID, r.getRouteID)
	}
	if climb.ClimberID != 1 || climb.RouteID != 2 {
		t.Fatalf("climb pair = (%d, %d); want (1, 2)", climb.ClimberID, climb.RouteID)
	}
	if climb.ID == nil || *climb.ID != 11 {
		t.Fatalf("climb id = %v; want 11", climb.ID)
	}
	if climb.Rating.Int() != 8 || climb.Review != "classic crimps" || !climb.CompletionDate.Equal(date) {
		t.Fatalf("unexpected climb payload: %+v", climb)
	}
}

func TestClimbGetReview_NotFound(t *testing.T) {
	r := &fakeClimbRepo{getErr: repo.ErrNotFound}
	s := NewClimbService(nil, r)

	_, err := s.GetReview(context.Background(), 1, 2)
	var se *StoreError
	if !errors.As(err, &se) {
		t.Fatalf("expected StoreError, got %T", err)
	}
	if se.Kind != KindNotFound || se.Op != "climbs.get" {
		t.Fatalf("got kind=%s op=%q", se.Kind, se.Op)
	}
}

func TestClimbGetReview_AmbiguousPairIsIntegrityFailure(t *testing.T) {
	r := &fakeClimbRepo{getErr: repo.ErrAmbiguousClimb}
	s := NewClimbService(nil, r)

	_, err := s.GetReview(context.Background(), 1, 2)
	var se *StoreError
	if !errors.As(err, &se) {
		t.Fatalf("expected StoreError, got %T", err)
	}
	if se.Kind != KindIntegrity {
		t.Fatalf("Kind = %s; want %s", se.Kind, KindIntegrity)
	}
	if se.ClientFacing() {
		t.Fatalf("integrity failures must not be client-facing")
	}
}

func TestClimbAddReview_BuildsClimbFromPair(t *testing.T) {
	r := &fakeClimbRepo{}
	s := NewClimbService(nil, r)

	date, _ := domain.ParseDate("2024-01-02")
	rev := domain.NewReview(9, "sandbagged", date)
	if err := s.AddReview(context.Background(), 3, 4, rev); err != nil {
		t.Fatalf("AddReview error: %v", err)
	}
	c := r.createClimb
	if c == nil {
		t.Fatalf("repo did not receive a climb")
	}
	if c.ClimberID != 3 || c.RouteID != 4 {
		t.Fatalf("climb pair = (%d, %d); want (3, 4)", c.ClimberID, c.RouteID)
	}
	if c.Rating.Int() != 9 || c.Review != "sandbagged" || !c.CompletionDate.Equal(date) {
		t.Fatalf("climb payload = %+v", c)
	}
}

func TestClimbAddReview_DuplicatePairSurfacesAsStatementFailure(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed: climbs.climber_id, climbs.route_id")
	r := &fakeClimbRepo{createErr: cause}
	s := NewClimbService(nil, r)

	err := s.AddReview(context.Background(), 1, 1, domain.Review{})
	var se *StoreError
	if !errors.As(err, &se) {
		t.Fatalf("expected StoreError, got %T", err)
	}
	if se.Kind != KindStatement {
		t.Fatalf("Kind = %s; want %s", se.Kind, KindStatement)
	}
	if !IsDuplicatePair(err) {
		t.Fatalf("IsDuplicatePair should detect the constraint violation")
	}
}

func TestClimbUpdateReview_ZeroRowsIsNotFound(t *testing.T) {
	r := &fakeClimbRepo{updateErr: gorm.ErrRecordNotFound}
	s := NewClimbService(nil, r)

	err := s.UpdateReview(context.Background(), 5, 6, domain.Review{})
	var se *StoreError
	if !errors.As(err, &se) || se.Kind != KindNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
	if r.updateClimberID != 5 || r.updateRouteID != 6 {
		t.Fatalf("repo got pair (%d, %d)", r.updateClimberID, r.updateRouteID)
	}
}

func TestClimbUpdateReview_ForwardsReview(t *testing.T) {
	r := &fakeClimbRepo{}
	s := NewClimbService(nil, r)

	date, _ := domain.ParseDate("2023-12-31")
	rev := domain.NewReview(2, "wet now", date)
	if err := s.UpdateReview(context.Background(), 7, 8, rev); err != nil {
		t.Fatalf("UpdateReview error: %v", err)
	}
	if r.updateRev.Rating.Int() != 2 || r.updateRev.Review != "wet now" {
		t.Fatalf("repo got review %+v", r.updateRev)
	}
}

func TestClimbDeleteReview_Idempotent(t *testing.T) {
	r := &fakeClimbRepo{}
	s := NewClimbService(nil, r)

	if err := s.DeleteReview(context.Background(), 9, 10); err != nil {
		t.Fatalf("DeleteReview error: %v", err)
	}
	if r.deleteClimberID != 9 || r.deleteRouteID != 10 {
		t.Fatalf("repo got pair (%d, %d)", r.deleteClimberID, r.deleteRouteID)
	}
}
