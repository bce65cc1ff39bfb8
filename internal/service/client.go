// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/tripdesk/tripdesk/internal/metrics"
	"github.com/tripdesk/tripdesk/internal/model"
	"github.com/tripdesk/tripdesk/internal/repository"
)

// Service errors.
var (
	ErrInvalidPesel      = errors.New("invalid pesel format")
	ErrMissingName       = errors.New("first and last name are required")
	ErrDuplicatePesel    = errors.New("duplicate person")
	ErrInvalidTrip       = errors.New("invalid or past trip")
	ErrAlreadyRegistered = errors.New("client already registered for trip")
	ErrClientNotFound    = errors.New("client not found")
	ErrInvalidPage       = errors.New("page must be positive")
	ErrInvalidPageSize   = errors.New("page size must be positive")
)

// Pesel validation regex: the national identifier is always 11 digits.
var peselRegex = regexp.MustCompile(`^[0-9]{11}$`)

// ClientStore defines the persistence operations the client registry needs.
// *repository.Repository satisfies it.
type ClientStore interface {
	CreateClient(ctx context.Context, client *model.Client) error
	GetClientByID(ctx context.Context, id int64) (*model.Client, error)
	ListClients(ctx context.Context) ([]*model.Client, error)
	UpdateClient(ctx context.Context, client *model.Client) error
	DeleteClient(ctx context.Context, id int64) error
}

// ClientService handles client registry business logic.
type ClientService struct {
	store   ClientStore
	metrics metrics.Recorder
}

// NewClientService creates a new ClientService.
func NewClientService(store ClientStore, recorder metrics.Recorder) *ClientService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ClientService{
		store:   store,
		metrics: recorder,
	}
}

// ClientInput defines input for creating or replacing a client.
type ClientInput struct {
	FirstName string
	LastName  string
	Email     string
	Telephone string
	Pesel     string
}

func (in *ClientInput) normalize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.Telephone = strings.TrimSpace(in.Telephone)
	in.Pesel = strings.TrimSpace(in.Pesel)
}

func (in *ClientInput) validate() error {
	if in.FirstName == "" || in.LastName == "" {
		return ErrMissingName
	}
	if !peselRegex.MatchString(in.Pesel) {
		return ErrInvalidPesel
	}
	return nil
}

// CreateClient registers a new client. The pesel must be unique system-wide;
// the database constraint is the source of truth for that rule.
func (s *ClientService) CreateClient(ctx context.Context, input ClientInput) (*model.Client, error) {
	input.normalize()
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	client := &model.Client{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Telephone: input.Telephone,
		Pesel:     input.Pesel,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateClient(ctx, client); err != nil {
		if errors.Is(err, repository.ErrPeselTaken) {
			return nil, ErrDuplicatePesel
		}
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	s.metrics.IncClientCreated()

	return client, nil
}

// GetClient retrieves a client by ID.
func (s *ClientService) GetClient(ctx context.Context, id int64) (*model.Client, error) {
	client, err := s.store.GetClientByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	return client, nil
}

// ListClients retrieves all clients.
func (s *ClientService) ListClients(ctx context.Context) ([]*model.Client, error) {
	return s.store.ListClients(ctx)
}

// UpdateClient replaces a client's mutable fields.
func (s *ClientService) UpdateClient(ctx context.Context, id int64, input ClientInput) (*model.Client, error) {
	input.normalize()
	if err := input.validate(); err != nil {
		return nil, err
	}

	// Get existing client
	client, err := s.store.GetClientByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	client.FirstName = input.FirstName
	client.LastName = input.LastName
	client.Email = input.Email
	client.Telephone = input.Telephone
	client.Pesel = input.Pesel
	client.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateClient(ctx, client); err != nil {
		switch {
		case errors.Is(err, repository.ErrClientNotFound):
			// Deleted between the read and the write; report the entity as
			// gone instead of a raw conflict.
			return nil, ErrClientNotFound
		case errors.Is(err, repository.ErrPeselTaken):
			return nil, ErrDuplicatePesel
		}
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	s.metrics.IncClientUpdated()

	return client, nil
}

// DeleteClient removes a client and, through the store schema, its trip
// registrations.
func (s *ClientService) DeleteClient(ctx context.Context, id int64) error {
	if err := s.store.DeleteClient(ctx, id); err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to delete client: %w", err)
	}

	s.metrics.IncClientDeleted()

	return nil
}
