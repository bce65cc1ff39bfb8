package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/tripdesk/tripdesk/internal/cache"
	"github.com/tripdesk/tripdesk/internal/metrics"
	"github.com/tripdesk/tripdesk/internal/model"
	"github.com/tripdesk/tripdesk/internal/repository"
)

// TripStore defines the persistence operations the trip service needs.
// *repository.Repository satisfies it.
type TripStore interface {
	GetTripByID(ctx context.Context, id int64) (*model.Trip, error)
	CountTrips(ctx context.Context) (int64, error)
	ListTripPage(ctx context.Context, offset, limit int) ([]*model.Trip, error)
	PeselExists(ctx context.Context, pesel string) (bool, error)
	CreateRegistration(ctx context.Context, client *model.Client, reg *model.ClientTrip) error
}

// TripPageCache caches serialized trip pages. A nil cache disables caching.
type TripPageCache interface {
	GetTripPage(ctx context.Context, page, pageSize int) ([]byte, error)
	SetTripPage(ctx context.Context, page, pageSize int, payload []byte, ttl time.Duration) error
	InvalidateTripPages(ctx context.Context) error
}

// TripServiceConfig carries tunables for the trip service.
type TripServiceConfig struct {
	DefaultPageSize int
	MaxPageSize     int
	CacheTTL        time.Duration
}

func (c *TripServiceConfig) applyDefaults() {
	if c.DefaultPageSize <= 0 {
		c.DefaultPageSize = 10
	}
	if c.MaxPageSize <= 0 {
		c.MaxPageSize = 100
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = cache.DefaultTripPageTTL
	}
}

// TripService handles trip listing and client-to-trip assignment.
type TripService struct {
	store   TripStore
	pages   TripPageCache
	cfg     TripServiceConfig
	metrics metrics.Recorder
}

// NewTripService creates a new TripService. pages may be nil to run without
// a cache.
func NewTripService(store TripStore, pages TripPageCache, cfg TripServiceConfig, recorder metrics.Recorder) *TripService {
	cfg.applyDefaults()
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &TripService{
		store:   store,
		pages:   pages,
		cfg:     cfg,
		metrics: recorder,
	}
}

// DefaultPageSize returns the page size used when the caller omits one.
func (s *TripService) DefaultPageSize() int {
	return s.cfg.DefaultPageSize
}

// Registration is the result of assigning a client to a trip.
type Registration struct {
	Client       *model.Client
	Registration *model.ClientTrip
}

// AssignClientToTrip registers a brand-new client for a trip. The client
// must not exist yet (pesel is checked first), and the trip must exist and
// not have started. The client row and the registration row are written in
// a single transaction, so a failure on either leaves no partial state.
func (s *TripService) AssignClientToTrip(ctx context.Context, tripID int64, input ClientInput) (*Registration, error) {
	input.normalize()
	if err := input.validate(); err != nil {
		return nil, err
	}

	exists, err := s.store.PeselExists(ctx, input.Pesel)
	if err != nil {
		return nil, fmt.Errorf("failed to check pesel: %w", err)
	}
	if exists {
		s.metrics.IncAssignmentRejected("duplicate_person")
		return nil, ErrDuplicatePesel
	}

	trip, err := s.store.GetTripByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrTripNotFound) {
			s.metrics.IncAssignmentRejected("invalid_trip")
			return nil, ErrInvalidTrip
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	now := time.Now().UTC()
	if trip.HasStarted(now) {
		s.metrics.IncAssignmentRejected("invalid_trip")
		return nil, ErrInvalidTrip
	}

	client := &model.Client{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Telephone: input.Telephone,
		Pesel:     input.Pesel,
		CreatedAt: now,
		UpdatedAt: now,
	}
	reg := &model.ClientTrip{
		TripID:       trip.ID,
		RegisteredAt: now,
		Reference:    ulid.Make().String(),
	}

	if err := s.store.CreateRegistration(ctx, client, reg); err != nil {
		switch {
		case errors.Is(err, repository.ErrPeselTaken):
			// Lost the race against a concurrent registration with the same
			// pesel; the unique constraint is authoritative.
			s.metrics.IncAssignmentRejected("duplicate_person")
			return nil, ErrDuplicatePesel
		case errors.Is(err, repository.ErrAlreadyRegistered):
			s.metrics.IncAssignmentRejected("duplicate_person")
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	s.metrics.IncAssignmentAccepted()

	if s.pages != nil {
		// Best-effort: a stale page expires via TTL anyway.
		_ = s.pages.InvalidateTripPages(ctx)
	}

	return &Registration{Client: client, Registration: reg}, nil
}

// TripPage is one page of trips together with pagination metadata.
type TripPage struct {
	PageNum  int
	PageSize int
	AllPages int
	Trips    []*model.Trip
}

// ListTrips returns the requested page of trips, newest first. Pages beyond
// the last one come back empty rather than failing.
func (s *TripService) ListTrips(ctx context.Context, page, pageSize int) (*TripPage, error) {
	if page <= 0 {
		return nil, ErrInvalidPage
	}
	if pageSize <= 0 {
		return nil, ErrInvalidPageSize
	}
	if pageSize > s.cfg.MaxPageSize {
		pageSize = s.cfg.MaxPageSize
	}

	start := time.Now()
	defer func() {
		s.metrics.ObserveTripListDuration(time.Since(start))
	}()

	if s.pages != nil {
		if payload, err := s.pages.GetTripPage(ctx, page, pageSize); err == nil {
			var cached TripPage
			if err := json.Unmarshal(payload, &cached); err == nil {
				s.metrics.IncTripPageCacheHit()
				return &cached, nil
			}
		}
		s.metrics.IncTripPageCacheMiss()
	}

	total, err := s.store.CountTrips(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count trips: %w", err)
	}

	trips, err := s.store.ListTripPage(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}

	result := &TripPage{
		PageNum:  page,
		PageSize: pageSize,
		AllPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
		Trips:    trips,
	}

	if s.pages != nil {
		if payload, err := json.Marshal(result); err == nil {
			_ = s.pages.SetTripPage(ctx, page, pageSize, payload, s.cfg.CacheTTL)
		}
	}

	return result, nil
}
