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

type fakeRouteRepo struct {
	// capture args
	createRoute *domain.Route
	createErr   error

	listLimit int
	listItems []domain.Route
	listErr   error

	getID    int32
	getRoute *domain.Route
	getErr   error

	updateID    int32
	updateRoute *domain.Route
	updateErr   error

	deleteID  int32
	deleteErr error
}

func (r *fakeRouteRepo) CreateRoute(ctx context.Context, db *gorm.DB, route *domain.Route) error {
	r.createRoute = route
	if r.createErr == nil {
		id := int32(7)
		route.ID = &id
	}
	return r.createErr
}

func (r *fakeRouteRepo) ListRecentRoutes(ctx context.Context, db *gorm.DB, limit int) ([]domain.Route, error) {
	r.listLimit = limit
	return r.listItems, r.listErr
}

func (r *fakeRouteRepo) GetRoute(ctx context.Context, db *gorm.DB, id int32) (*domain.Route, error) {
	r.getID = id
	return r.getRoute, r.getErr
}

func (r *fakeRouteRepo) UpdateRoute(ctx context.Context, db *gorm.DB, id int32, route *domain.Route) error {
	r.updateID, r.updateRoute = id, route
	return r.updateErr
}

func (r *fakeRouteRepo) DeleteRoute(ctx context.Context, db *gorm.DB, id int32) error {
	r.deleteID = id
	return r.deleteErr
}

// ----- Tests -----

func TestNewRouteService_Defaults(t *testing.T) {
	r := &fakeRouteRepo{}
	s := NewRouteService(nil, r)

	if s.DB != nil { // DB can be nil in tests
		t.Fatalf("expected nil DB, got %v", s.DB)
	}
	if s.Repo != r {
		t.Fatalf("repo not set")
	}
	if s.ListLimit != DefaultListLimit {
		t.Fatalf("ListLimit default = %d, got %d", DefaultListLimit, s.ListLimit)
	}
}

func TestRouteAdd_ReturnsPersistedEntity(t *testing.T) {
	r := &fakeRouteRepo{}
	s := NewRouteService(nil, r)

	in := &domain.Route{Name: "Moonlight Buttress", Difficulty: domain.Grade512}
	out, err := s.Add(context.Background(), in)
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if out != in {
		t.Fatalf("expected the same entity back")
	}
	if out.ID == nil || *out.ID != 7 {
		t.Fatalf("expected assigned id 7, got %v", out.ID)
	}
	if r.createRoute != in {
		t.Fatalf("repo did not receive the route")
	}
}

func TestRouteAdd_ClassifiesFailure(t *testing.T) {
	r := &fakeRouteRepo{createErr: errors.New("no such table: routes")}
	s := NewRouteService(nil, r)

	_, err := s.Add(context.Background(), &domain.Route{Name: "x"})
	var se *StoreError
	if !errors.As(err, &se) {
		t.Fatalf("expected StoreError, got %T (%v)", err, err)
	}
	if se.Kind != KindStatement {
		t.Fatalf("Kind = %s; want %s", se.Kind, KindStatement)
	}
	if se.Op != "routes.add" {
		t.Fatalf("Op = %q; want routes.add", se.Op)
	}
}

func TestRouteListRecent_ClampsNonPositiveLimit(t *testing.T) {
	r := &fakeRouteRepo{listItems: []domain.Route{{Name: "a"}, {Name: "b"}}}
	s := NewRouteService(nil, r)

	for _, limit := range []int{0, -3} {
		out, err := s.ListRecent(context.Background(), limit)
		if err != nil {
			t.Fatalf("ListRecent(%d) error: %v", limit, err)
		}
		if r.listLimit != DefaultListLimit {
			t.Fatalf("ListRecent(%d): repo got limit %d; want %d", limit, r.listLimit, DefaultListLimit)
		}
		if len(out) != 2 {
			t.Fatalf("expected 2 items, got %d", len(out))
		}
	}
}

func TestRouteListRecent_ForwardsExplicitLimit(t *testing.T) {
	r := &fakeRouteRepo{}
	s := NewRouteService(nil, r)

	if _, err := s.ListRecent(context.Background(), 12); err != nil {
		t.Fatalf("ListRecent error: %v", err)
	}
	if r.listLimit != 12 {
		t.Fatalf("repo got limit %d; want 12", r.listLimit)
	}
}

func TestRouteGetByID_NotFound(t *testing.T) {
	r := &fakeRouteRepo{getErr: gorm.ErrRecordNotFound}
	s := NewRouteService(nil, r)

	_, err := s.GetByID(context.Background(), 42)
	var se *StoreError
	if !errors.As(err, &se) {
		t.Fatalf("expected StoreError, got %T", err)
	}
	if se.Kind != KindNotFound || !se.ClientFacing() {
		t.Fatalf("expected client-facing not_found, got kind %s", se.Kind)
	}
	if r.getID != 42 {
		t.Fatalf("repo got id %d; want 42", r.getID)
	}
}

func TestRouteGetByID_CorruptDifficultyIsParseFailure(t *testing.T) {
	cause := domain.ErrParseDifficultyRating
	r := &fakeRouteRepo{getErr: cause}
	s := NewRouteService(nil, r)

	_, err := s.GetByID(context.Background(), 1)
	var se *StoreError
	if !errors.As(err, &se) {
		t.Fatalf("expected StoreError, got %T", err)
	}
	if se.Kind != KindParse {
		t.Fatalf("Kind = %s; want %s", se.Kind, KindParse)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause not preserved through Unwrap")
	}
}

func TestRouteUpdateByID_ZeroRowsIsSuccess(t *testing.T) {
	r := &fakeRouteRepo{} // repo returns nil even when nothing matched
	s := NewRouteService(nil, r)

	route := &domain.Route{Name: "renamed"}
	if err := s.UpdateByID(context.Background(), 9, route); err != nil {
		t.Fatalf("UpdateByID error: %v", err)
	}
	if r.updateID != 9 || r.updateRoute != route {
		t.Fatalf("repo got (%d, %v)", r.updateID, r.updateRoute)
	}
}

func TestRouteDeleteByID_ForwardsID(t *testing.T) {
	r := &fakeRouteRepo{}
	s := NewRouteService(nil, r)

	if err := s.DeleteByID(context.Background(), 3); err != nil {
		t.Fatalf("DeleteByID error: %v", err)
	}
	if r.deleteID != 3 {
		t.Fatalf("repo got id %d; want 3", r.deleteID)
	}
}

func TestRouteDefaultLimit_FallsBackWhenUnset(t *testing.T) {
	s := &RouteService{Repo: &fakeRouteRepo{}}
	if got := s.defaultLimit(); got != DefaultListLimit {
		t.Fatalf("defaultLimit = %d; want %d", got, DefaultListLimit)
	}
	s.ListLimit = 8
	if got := s.defaultLimit(); got != 8 {
		t.Fatalf("defaultLimit = %d; want 8", got)
	}
}

func TestRouteGetByID_RepoNotFoundSentinel(t *testing.T) {
	r := &fakeRouteRepo{getErr: repo.ErrNotFound}
	s := NewRouteService(nil, r)

	_, err := s.GetByID(context.Background(), 5)
	var se *StoreError
	if !errors.As(err, &se) || se.Kind != KindNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}
