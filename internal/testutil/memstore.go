package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tripdesk/tripdesk/internal/model"
	"github.com/tripdesk/tripdesk/internal/repository"
)

// MemStore is an in-memory store for tests. It satisfies the service
// layer's ClientStore and TripStore interfaces and returns the same
// sentinel errors as the real repository, so error translation can be
// exercised without a database.
type MemStore struct {
	mu           sync.Mutex
	clients      map[int64]*model.Client
	trips        map[int64]*model.Trip
	regs         []*model.ClientTrip
	nextClientID int64

	// Err, when set, is returned by every write operation.
	Err error
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		clients: make(map[int64]*model.Client),
		trips:   make(map[int64]*model.Trip),
	}
}

// AddTrip seeds a trip whose DateFrom is offset from now by startsIn.
func (m *MemStore) AddTrip(id int64, startsIn time.Duration) *model.Trip {
	m.mu.Lock()
	defer m.mu.Unlock()

	start := time.Now().UTC().Add(startsIn)
	trip := &model.Trip{
		ID:        id,
		Name:      "Trip",
		DateFrom:  start,
		DateTo:    start.Add(7 * 24 * time.Hour),
		MaxPeople: 30,
		Countries: []model.Country{},
		Clients:   []model.Client{},
	}
	m.trips[id] = trip
	return trip
}

// ClientCount returns the number of stored clients.
func (m *MemStore) ClientCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clients)
}

// RegistrationCount returns the number of stored registrations.
func (m *MemStore) RegistrationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.regs)
}

func (m *MemStore) peselExistsLocked(pesel string) bool {
	for _, c := range m.clients {
		if c.Pesel == pesel {
			return true
		}
	}
	return false
}

// CreateClient stores a new client, enforcing pesel uniqueness.
func (m *MemStore) CreateClient(_ context.Context, client *model.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if m.peselExistsLocked(client.Pesel) {
		return repository.ErrPeselTaken
	}
	m.nextClientID++
	client.ID = m.nextClientID
	cp := *client
	m.clients[client.ID] = &cp
	return nil
}

// GetClientByID returns a copy of the stored client.
func (m *MemStore) GetClientByID(_ context.Context, id int64) (*model.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.clients[id]
	if !ok {
		return nil, repository.ErrClientNotFound
	}
	cp := *c
	return &cp, nil
}

// ListClients returns all clients ordered by ID.
func (m *MemStore) ListClients(_ context.Context) ([]*model.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*model.Client, 0, len(m.clients))
	for _, c := range m.clients {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateClient replaces a stored client, preserving CreatedAt.
func (m *MemStore) UpdateClient(_ context.Context, client *model.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	existing, ok := m.clients[client.ID]
	if !ok {
		return repository.ErrClientNotFound
	}
	for id, c := range m.clients {
		if id != client.ID && c.Pesel == client.Pesel {
			return repository.ErrPeselTaken
		}
	}
	cp := *client
	cp.CreatedAt = existing.CreatedAt
	m.clients[client.ID] = &cp
	return nil
}

// DeleteClient removes a client and its registrations.
func (m *MemStore) DeleteClient(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.clients[id]; !ok {
		return repository.ErrClientNotFound
	}
	delete(m.clients, id)
	kept := m.regs[:0]
	for _, r := range m.regs {
		if r.ClientID != id {
			kept = append(kept, r)
		}
	}
	m.regs = kept
	return nil
}

// GetTripByID returns a copy of the stored trip.
func (m *MemStore) GetTripByID(_ context.Context, id int64) (*model.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	trip, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrTripNotFound
	}
	cp := *trip
	return &cp, nil
}

// CountTrips returns the number of stored trips.
func (m *MemStore) CountTrips(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.trips)), nil
}

// ListTripPage returns a window of trips ordered by DateFrom descending,
// ID descending, mirroring the repository's ordering.
func (m *MemStore) ListTripPage(_ context.Context, offset, limit int) ([]*model.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make([]*model.Trip, 0, len(m.trips))
	for _, trip := range m.trips {
		cp := *trip
		cp.Clients = m.tripClientsLocked(trip.ID)
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].DateFrom.Equal(all[j].DateFrom) {
			return all[i].DateFrom.After(all[j].DateFrom)
		}
		return all[i].ID > all[j].ID
	})
	if offset >= len(all) {
		return []*model.Trip{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *MemStore) tripClientsLocked(tripID int64) []model.Client {
	clients := []model.Client{}
	for _, r := range m.regs {
		if r.TripID != tripID {
			continue
		}
		if c, ok := m.clients[r.ClientID]; ok {
			clients = append(clients, *c)
		}
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].ID < clients[j].ID })
	return clients
}

// PeselExists reports whether any stored client has the given pesel.
func (m *MemStore) PeselExists(_ context.Context, pesel string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.peselExistsLocked(pesel), nil
}

// CreateRegistration stores a new client and its trip registration.
func (m *MemStore) CreateRegistration(_ context.Context, client *model.Client, reg *model.ClientTrip) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if m.peselExistsLocked(client.Pesel) {
		return repository.ErrPeselTaken
	}
	m.nextClientID++
	client.ID = m.nextClientID
	reg.ClientID = client.ID
	for _, r := range m.regs {
		if r.ClientID == reg.ClientID && r.TripID == reg.TripID {
			return repository.ErrAlreadyRegistered
		}
	}
	ccp := *client
	rcp := *reg
	m.clients[client.ID] = &ccp
	m.regs = append(m.regs, &rcp)
	return nil
}
