package repo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/summitlog/go-crag-backend/internal/domain"
)

func newRouteRepoDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("route_repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Ensure the file handle is released before TempDir cleanup (Windows needs this).
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func testRoute() *domain.Route {
	return &domain.Route{
		Name:       "funky monkey",
		Difficulty: domain.Grade59,
		Latitude:   123.45,
		Longitude:  52.31,
	}
}

func TestCreateRoute_Error_NoTable(t *testing.T) {
	db := newRouteRepoDB(t /* no migrations */)
	if err := CreateRoute(context.Background(), db, testRoute()); err == nil {
		t.Fatalf("expected error creating without table")
	}
}

func TestCreateRoute_Success_AssignsID(t *testing.T) {
	db := newRouteRepoDB(t, &domain.Route{})

	r := testRoute()
	// A stray client-supplied id must not survive creation.
	stray := int32(999)
	r.ID = &stray

	if err := CreateRoute(context.Background(), db, r); err != nil {
		t.Fatalf("CreateRoute: %v", err)
	}
	if r.ID == nil || *r.ID == 999 {
		t.Fatalf("expected store-assigned id, got %v", r.ID)
	}

	// round-trip: equal in all fields except the now-populated id
	var got domain.Route
	if err := db.First(&got, "id = ?", *r.ID).Error; err != nil {
		t.Fatalf("load created route: %v", err)
	}
	if got.Name != "funky monkey" || got.Difficulty != domain.Grade59 ||
		got.Latitude != 123.45 || got.Longitude != 52.31 {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestListRecentRoutes_OrderAndLimit(t *testing.T) {
	db := newRouteRepoDB(t, &domain.Route{})

	// Seed with known CreatedAt so order is deterministic.
	t1 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC) // oldest
	t2 := t1.Add(1 * time.Hour)
	t3 := t2.Add(1 * time.Hour) // newest
	for i, ts := range []time.Time{t1, t2, t3} {
		r := domain.Route{Name: fmt.Sprintf("r%d", i+1), Difficulty: domain.Grade510, CreatedAt: ts}
		if err := db.Create(&r).Error; err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	list, err := ListRecentRoutes(context.Background(), db, 2)
	if err != nil {
		t.Fatalf("ListRecentRoutes: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(list))
	}
	// Must be descending by CreatedAt: r3, r2.
	if list[0].Name != "r3" || list[1].Name != "r2" {
		t.Fatalf("unexpected order: %#v", list)
	}

	// A limit above the row count returns everything present.
	all, err := ListRecentRoutes(context.Background(), db, 10)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected all 3 routes, got %d (err %v)", len(all), err)
	}
}

func TestGetRoute_NotFound(t *testing.T) {
	db := newRouteRepoDB(t, &domain.Route{})
	_, err := GetRoute(context.Background(), db, 12345)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateRoute_FullReplace(t *testing.T) {
	db := newRouteRepoDB(t, &domain.Route{})

	r := testRoute()
	if err := CreateRoute(context.Background(), db, r); err != nil {
		t.Fatalf("CreateRoute: %v", err)
	}

	upd := &domain.Route{Name: "funky monkey", Difficulty: domain.Grade512, Latitude: 1.5, Longitude: -2.5}
	if err := UpdateRoute(context.Background(), db, *r.ID, upd); err != nil {
		t.Fatalf("UpdateRoute: %v", err)
	}

	got, err := GetRoute(context.Background(), db, *r.ID)
	if err != nil {
		t.Fatalf("GetRoute: %v", err)
	}
	if got.Difficulty != domain.Grade512 || got.Latitude != 1.5 || got.Longitude != -2.5 {
		t.Fatalf("update not applied: %+v", got)
	}
}

func TestUpdateRoute_ZeroRows_IsSuccess(t *testing.T) {
	db := newRouteRepoDB(t, &domain.Route{})
	if err := UpdateRoute(context.Background(), db, 999, testRoute()); err != nil {
		t.Fatalf("expected zero-row update to succeed, got %v", err)
	}
}

func TestDeleteRoute_Idempotent(t *testing.T) {
	db := newRouteRepoDB(t, &domain.Route{})

	r := testRoute()
	if err := CreateRoute(context.Background(), db, r); err != nil {
		t.Fatalf("CreateRoute: %v", err)
	}
	if err := DeleteRoute(context.Background(), db, *r.ID); err != nil {
		t.Fatalf("DeleteRoute: %v", err)
	}
	if _, err := GetRoute(context.Background(), db, *r.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	// Deleting again removes zero rows and still succeeds.
	if err := DeleteRoute(context.Background(), db, *r.ID); err != nil {
		t.Fatalf("second delete should be idempotent, got %v", err)
	}
}
