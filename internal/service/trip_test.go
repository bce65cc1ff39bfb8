package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tripdesk/tripdesk/internal/metrics"
	"github.com/tripdesk/tripdesk/internal/testutil"
)

func newTripService(store TripStore, pages TripPageCache) *TripService {
	return NewTripService(store, pages, TripServiceConfig{
		DefaultPageSize: 10,
		MaxPageSize:     100,
		CacheTTL:        time.Minute,
	}, nil)
}

func TestAssignClientToTrip(t *testing.T) {
	store := testutil.NewMemStore()
	store.AddTrip(7, 48*time.Hour)
	svc := newTripService(store, nil)

	reg, err := svc.AssignClientToTrip(context.Background(), 7, validClientInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reg.Client.ID == 0 {
		t.Error("expected assigned client ID")
	}
	if reg.Registration.ClientID != reg.Client.ID {
		t.Errorf("registration client ID %d does not match client %d", reg.Registration.ClientID, reg.Client.ID)
	}
	if reg.Registration.TripID != 7 {
		t.Errorf("expected trip ID 7, got %d", reg.Registration.TripID)
	}
	if reg.Registration.Reference == "" {
		t.Error("expected a registration reference")
	}
	if reg.Registration.RegisteredAt.IsZero() {
		t.Error("expected RegisteredAt to be set")
	}
	if store.RegistrationCount() != 1 {
		t.Fatalf("expected 1 registration, got %d", store.RegistrationCount())
	}
}

func TestAssignClientToTripValidation(t *testing.T) {
	store := testutil.NewMemStore()
	store.AddTrip(7, 48*time.Hour)
	svc := newTripService(store, nil)

	input := validClientInput()
	input.Pesel = "bad"

	_, err := svc.AssignClientToTrip(context.Background(), 7, input)
	if !errors.Is(err, ErrInvalidPesel) {
		t.Fatalf("expected ErrInvalidPesel, got %v", err)
	}
	if store.ClientCount() != 0 || store.RegistrationCount() != 0 {
		t.Error("expected no writes on validation failure")
	}
}

func TestAssignClientToTripDuplicatePesel(t *testing.T) {
	store := testutil.NewMemStore()
	store.AddTrip(7, 48*time.Hour)
	recorder := metrics.NewInMemory()
	svc := NewTripService(store, nil, TripServiceConfig{}, recorder)

	if _, err := svc.AssignClientToTrip(context.Background(), 7, validClientInput()); err != nil {
		t.Fatalf("first assignment failed: %v", err)
	}

	input := validClientInput()
	input.FirstName = "Anna"

	_, err := svc.AssignClientToTrip(context.Background(), 7, input)
	if !errors.Is(err, ErrDuplicatePesel) {
		t.Fatalf("expected ErrDuplicatePesel, got %v", err)
	}
	if store.ClientCount() != 1 || store.RegistrationCount() != 1 {
		t.Error("expected no writes on duplicate pesel")
	}

	snap := recorder.Snapshot()
	if snap.AssignmentsAccepted != 1 {
		t.Errorf("expected 1 accepted, got %d", snap.AssignmentsAccepted)
	}
	if snap.AssignmentsRejectedDup != 1 {
		t.Errorf("expected 1 duplicate rejection, got %d", snap.AssignmentsRejectedDup)
	}
}

func TestAssignClientToTripMissingTrip(t *testing.T) {
	svc := newTripService(testutil.NewMemStore(), nil)

	_, err := svc.AssignClientToTrip(context.Background(), 99, validClientInput())
	if !errors.Is(err, ErrInvalidTrip) {
		t.Fatalf("expected ErrInvalidTrip, got %v", err)
	}
}

func TestAssignClientToTripStartedTrip(t *testing.T) {
	store := testutil.NewMemStore()
	store.AddTrip(7, -time.Hour)
	svc := newTripService(store, nil)

	_, err := svc.AssignClientToTrip(context.Background(), 7, validClientInput())
	if !errors.Is(err, ErrInvalidTrip) {
		t.Fatalf("expected ErrInvalidTrip, got %v", err)
	}
	if store.ClientCount() != 0 {
		t.Error("expected no client row for a started trip")
	}
}

func TestAssignClientToTripInvalidatesCache(t *testing.T) {
	store := testutil.NewMemStore()
	store.AddTrip(7, 48*time.Hour)
	pages := newFakePageCache()
	svc := newTripService(store, pages)

	if _, err := svc.ListTrips(context.Background(), 1, 10); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(pages.pages) != 1 {
		t.Fatalf("expected cached page, got %d", len(pages.pages))
	}

	if _, err := svc.AssignClientToTrip(context.Background(), 7, validClientInput()); err != nil {
		t.Fatalf("assignment failed: %v", err)
	}
	if pages.invalidated != 1 {
		t.Errorf("expected 1 invalidation, got %d", pages.invalidated)
	}
	if len(pages.pages) != 0 {
		t.Error("expected cached pages to be dropped")
	}
}

func TestListTripsValidation(t *testing.T) {
	svc := newTripService(testutil.NewMemStore(), nil)

	tests := []struct {
		name     string
		page     int
		pageSize int
		wantErr  error
	}{
		{"zero_page", 0, 10, ErrInvalidPage},
		{"negative_page", -1, 10, ErrInvalidPage},
		{"zero_page_size", 1, 0, ErrInvalidPageSize},
		{"negative_page_size", 1, -5, ErrInvalidPageSize},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := svc.ListTrips(context.Background(), test.page, test.pageSize)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}

func TestListTripsPagination(t *testing.T) {
	store := testutil.NewMemStore()
	for i := 1; i <= 25; i++ {
		store.AddTrip(int64(i), time.Duration(i)*24*time.Hour)
	}
	svc := newTripService(store, nil)

	page, err := svc.ListTrips(context.Background(), 3, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.PageNum != 3 || page.PageSize != 10 {
		t.Errorf("unexpected page metadata: %+v", page)
	}
	if page.AllPages != 3 {
		t.Errorf("expected 3 pages, got %d", page.AllPages)
	}
	if len(page.Trips) != 5 {
		t.Errorf("expected 5 trips on the last page, got %d", len(page.Trips))
	}
}

func TestListTripsNewestFirst(t *testing.T) {
	store := testutil.NewMemStore()
	for i := 1; i <= 5; i++ {
		store.AddTrip(int64(i), time.Duration(i)*24*time.Hour)
	}
	svc := newTripService(store, nil)

	page, err := svc.ListTrips(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for i := 1; i < len(page.Trips); i++ {
		if page.Trips[i-1].DateFrom.Before(page.Trips[i].DateFrom) {
			t.Fatal("expected trips ordered newest first")
		}
	}
}

func TestListTripsBeyondLastPage(t *testing.T) {
	store := testutil.NewMemStore()
	store.AddTrip(1, 24*time.Hour)
	svc := newTripService(store, nil)

	page, err := svc.ListTrips(context.Background(), 5, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page.Trips) != 0 {
		t.Errorf("expected empty page, got %d trips", len(page.Trips))
	}
	if page.AllPages != 1 {
		t.Errorf("expected 1 page total, got %d", page.AllPages)
	}
}

func TestListTripsClampsPageSize(t *testing.T) {
	store := testutil.NewMemStore()
	store.AddTrip(1, 24*time.Hour)
	svc := newTripService(store, nil)

	page, err := svc.ListTrips(context.Background(), 1, 5000)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.PageSize != 100 {
		t.Errorf("expected page size clamped to 100, got %d", page.PageSize)
	}
}

func TestListTripsEmpty(t *testing.T) {
	svc := newTripService(testutil.NewMemStore(), nil)

	page, err := svc.ListTrips(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.AllPages != 0 {
		t.Errorf("expected 0 pages, got %d", page.AllPages)
	}
	if page.Trips == nil || len(page.Trips) != 0 {
		t.Errorf("expected empty trips slice, got %v", page.Trips)
	}
}

func TestListTripsUsesCache(t *testing.T) {
	store := testutil.NewMemStore()
	store.AddTrip(1, 24*time.Hour)
	pages := newFakePageCache()
	recorder := metrics.NewInMemory()
	svc := NewTripService(store, pages, TripServiceConfig{CacheTTL: time.Minute}, recorder)

	first, err := svc.ListTrips(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	// A second trip added behind the cache's back is not visible until
	// invalidation.
	store.AddTrip(2, 48*time.Hour)

	second, err := svc.ListTrips(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(second.Trips) != len(first.Trips) {
		t.Errorf("expected cached result with %d trips, got %d", len(first.Trips), len(second.Trips))
	}

	snap := recorder.Snapshot()
	if snap.TripPageCacheMisses != 1 {
		t.Errorf("expected 1 cache miss, got %d", snap.TripPageCacheMisses)
	}
	if snap.TripPageCacheHits != 1 {
		t.Errorf("expected 1 cache hit, got %d", snap.TripPageCacheHits)
	}
}

func TestListTripsDistinctCacheKeys(t *testing.T) {
	store := testutil.NewMemStore()
	for i := 1; i <= 4; i++ {
		store.AddTrip(int64(i), time.Duration(i)*24*time.Hour)
	}
	pages := newFakePageCache()
	svc := newTripService(store, pages)

	for _, req := range [][2]int{{1, 2}, {2, 2}, {1, 3}} {
		if _, err := svc.ListTrips(context.Background(), req[0], req[1]); err != nil {
			t.Fatalf("list %v failed: %v", req, err)
		}
	}
	if len(pages.pages) != 3 {
		t.Errorf("expected 3 distinct cached pages, got %d", len(pages.pages))
	}
}

func TestAllPagesMath(t *testing.T) {
	tests := []struct {
		total    int
		pageSize int
		want     int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("%d_by_%d", test.total, test.pageSize), func(t *testing.T) {
			store := testutil.NewMemStore()
			for i := 1; i <= test.total; i++ {
				store.AddTrip(int64(i), time.Duration(i)*time.Hour)
			}
			svc := newTripService(store, nil)

			page, err := svc.ListTrips(context.Background(), 1, test.pageSize)
			if err != nil {
				t.Fatalf("list failed: %v", err)
			}
			if page.AllPages != test.want {
				t.Errorf("total=%d pageSize=%d: expected %d pages, got %d", test.total, test.pageSize, test.want, page.AllPages)
			}
		})
	}
}
