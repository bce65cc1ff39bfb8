// Package repository provides database access layer.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Common errors for repository operations.
var (
	ErrClientNotFound    = errors.New("client not found")
	ErrTripNotFound      = errors.New("trip not found")
	ErrPeselTaken        = errors.New("pesel already registered")
	ErrAlreadyRegistered = errors.New("client already registered for trip")
)

// Constraint names from migrations. The unique-violation translation relies
// on these staying in sync with the schema.
const (
	constraintPeselUnique        = "clients_pesel_key"
	constraintRegistrationUnique = "client_trips_client_id_trip_id_key"
)

// Repository provides database access methods.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new Repository with a connection pool.
func New(ctx context.Context, databaseURL string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pool settings
	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{pool: pool}, nil
}

// Ping checks database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool.
func (r *Repository) Close() {
	r.pool.Close()
}

// Pool returns the underlying connection pool.
// Use sparingly - prefer adding methods to Repository.
func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}

// translateUniqueViolation maps a PostgreSQL unique-constraint violation
// (SQLSTATE 23505) to the matching domain error, or returns nil when the
// error is something else.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}

	switch pgErr.ConstraintName {
	case constraintPeselUnique:
		return ErrPeselTaken
	case constraintRegistrationUnique:
		return ErrAlreadyRegistered
	}
	return nil
}
