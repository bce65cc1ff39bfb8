package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tripdesk/tripdesk/internal/model"
)

// CreateClient inserts a new client and fills in the store-assigned ID.
func (r *Repository) CreateClient(ctx context.Context, client *model.Client) error {
	query := `
		INSERT INTO clients (first_name, last_name, email, telephone, pesel, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
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
		return fmt.Errorf("failed to create client: %w", err)
	}

	return nil
}

// GetClientByID retrieves a client by its ID.
func (r *Repository) GetClientByID(ctx context.Context, id int64) (*model.Client, error) {
	query := `
		SELECT id, first_name, last_name, email, telephone, pesel, created_at, updated_at
		FROM clients
		WHERE id = $1
	`

	client, err := scanClient(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by ID: %w", err)
	}

	return client, nil
}

// ListClients retrieves all clients ordered by ID.
func (r *Repository) ListClients(ctx context.Context) ([]*model.Client, error) {
	query := `
		SELECT id, first_name, last_name, email, telephone, pesel, created_at, updated_at
		FROM clients
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	clients := []*model.Client{}
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clients: %w", err)
	}

	return clients, nil
}

// PeselExists checks whether any client carries the given pesel.
func (r *Repository) PeselExists(ctx context.Context, pesel string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM clients WHERE pesel = $1)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, pesel).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check pesel existence: %w", err)
	}

	return exists, nil
}

// UpdateClient updates a client's mutable fields.
// A zero-row update means the client is gone; that is reported as
// ErrClientNotFound rather than a raw conflict.
func (r *Repository) UpdateClient(ctx context.Context, client *model.Client) error {
	query := `
		UPDATE clients
		SET first_name = $2, last_name = $3, email = $4, telephone = $5, pesel = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		client.ID,
		client.FirstName,
		client.LastName,
		client.Email,
		client.Telephone,
		client.Pesel,
		client.UpdatedAt,
	)

	if err != nil {
		if translated := translateUniqueViolation(err); translated != nil {
			return translated
		}
		return fmt.Errorf("failed to update client: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrClientNotFound
	}

	return nil
}

// DeleteClient removes a client. Owned client_trips rows are removed by the
// ON DELETE CASCADE on the join table.
func (r *Repository) DeleteClient(ctx context.Context, id int64) error {
	query := `DELETE FROM clients WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrClientNotFound
	}

	return nil
}

// scanClient scans a single row into a Client model.
func scanClient(row pgx.Row) (*model.Client, error) {
	var client model.Client
	err := row.Scan(
		&client.ID,
		&client.FirstName,
		&client.LastName,
		&client.Email,
		&client.Telephone,
		&client.Pesel,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	return &client, err
}
