package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tripdesk/tripdesk/internal/model"
)

// GetTripByID retrieves a trip by its ID. Countries and clients are not
// loaded here; single-trip reads only need the trip row itself.
func (r *Repository) GetTripByID(ctx context.Context, id int64) (*model.Trip, error) {
	query := `
		SELECT id, name, description, date_from, date_to, max_people
		FROM trips
		WHERE id = $1
	`

	var trip model.Trip
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&trip.ID,
		&trip.Name,
		&trip.Description,
		&trip.DateFrom,
		&trip.DateTo,
		&trip.MaxPeople,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTripNotFound
		}
		return nil, fmt.Errorf("failed to get trip by ID: %w", err)
	}

	return &trip, nil
}

// CountTrips returns the total number of trips.
func (r *Repository) CountTrips(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM trips`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count trips: %w", err)
	}
	return count, nil
}

// ListTripPage returns one window of trips ordered by start date descending
// (ID descending as tiebreak), with each trip's countries and registered
// clients eagerly loaded.
func (r *Repository) ListTripPage(ctx context.Context, offset, limit int) ([]*model.Trip, error) {
	query := `
		SELECT id, name, description, date_from, date_to, max_people
		FROM trips
		ORDER BY date_from DESC, id DESC
		OFFSET $1 LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	trips := []*model.Trip{}
	byID := map[int64]*model.Trip{}
	ids := []int64{}

	for rows.Next() {
		var trip model.Trip
		if err := rows.Scan(
			&trip.ID,
			&trip.Name,
			&trip.Description,
			&trip.DateFrom,
			&trip.DateTo,
			&trip.MaxPeople,
		); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trip.Countries = []model.Country{}
		trip.Clients = []model.Client{}
		trips = append(trips, &trip)
		byID[trip.ID] = &trip
		ids = append(ids, trip.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trips: %w", err)
	}

	if len(ids) == 0 {
		return trips, nil
	}

	if err := r.loadTripCountries(ctx, byID, ids); err != nil {
		return nil, err
	}
	if err := r.loadTripClients(ctx, byID, ids); err != nil {
		return nil, err
	}

	return trips, nil
}

// loadTripCountries attaches countries to the given trips.
func (r *Repository) loadTripCountries(ctx context.Context, byID map[int64]*model.Trip, ids []int64) error {
	query := `
		SELECT ct.trip_id, c.id, c.name
		FROM country_trips ct
		JOIN countries c ON c.id = ct.country_id
		WHERE ct.trip_id = ANY($1)
		ORDER BY ct.trip_id, c.id
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load trip countries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tripID int64
		var country model.Country
		if err := rows.Scan(&tripID, &country.ID, &country.Name); err != nil {
			return fmt.Errorf("failed to scan trip country: %w", err)
		}
		if trip, ok := byID[tripID]; ok {
			trip.Countries = append(trip.Countries, country)
		}
	}
	return rows.Err()
}

// loadTripClients attaches registered clients to the given trips, ordered
// by registration time.
func (r *Repository) loadTripClients(ctx context.Context, byID map[int64]*model.Trip, ids []int64) error {
	query := `
		SELECT ct.trip_id, cl.id, cl.first_name, cl.last_name, cl.email, cl.telephone, cl.pesel, cl.created_at, cl.updated_at
		FROM client_trips ct
		JOIN clients cl ON cl.id = ct.client_id
		WHERE ct.trip_id = ANY($1)
		ORDER BY ct.trip_id, ct.registered_at, cl.id
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load trip clients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tripID int64
		var client model.Client
		if err := rows.Scan(
			&tripID,
			&client.ID,
			&client.FirstName,
			&client.LastName,
			&client.Email,
			&client.Telephone,
			&client.Pesel,
			&client.CreatedAt,
			&client.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to scan trip client: %w", err)
		}
		if trip, ok := byID[tripID]; ok {
			trip.Clients = append(trip.Clients, client)
		}
	}
	return rows.Err()
}

// CreateRegistration persists a new client and its trip registration in one
// transaction: either both rows commit or neither does. The client's
// store-assigned ID is filled in on success.
func (r *Repository) CreateRegistration(ctx context.Context, client *model.Client, reg *model.ClientTrip) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin registration: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	insertClient := `
		INSERT INTO clients (first_name, last_name, email, telephone, pesel, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err = tx.QueryRow(ctx, insertClient,
		client.FirstName,
		client.LastName,
		client.Email,
		client.Telephone,
		client.Pesel,
		client.CreatedAt,
		client.UpdatedAt,
	).Scan(&client.ID)
	if err != nil {
		if translated := translateUniqueViolation(err); translated != nil {
			return translated
		}
		return fmt.Errorf("failed to insert registration client: %w", err)
	}

	reg.ClientID = client.ID

	insertLink := `
		INSERT INTO client_trips (client_id, trip_id, registered_at, reference)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.Exec(ctx, insertLink, reg.ClientID, reg.TripID, reg.RegisteredAt, reg.Reference); err != nil {
		if translated := translateUniqueViolation(err); translated != nil {
			return translated
		}
		return fmt.Errorf("failed to insert client trip: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit registration: %w", err)
	}

	return nil
}

// CountRegistrations returns the total number of client_trips rows.
func (r *Repository) CountRegistrations(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM client_trips`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}
	return count, nil
}

// CountClients returns the total number of clients.
func (r *Repository) CountClients(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM clients`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}
	return count, nil
}
