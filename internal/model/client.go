// Package model defines domain entities for the application.
package model

import "time"

// Client represents a natural person registered in the system.
// The Pesel field is a national personal identifier and is unique
// system-wide; the database enforces this with a unique constraint.
type Client struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Telephone string    `json:"telephone"`
	Pesel     string    `json:"pesel"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientTrip links a client to a trip. Rows are created only by trip
// assignment and are immutable afterwards.
type ClientTrip struct {
	ClientID     int64     `json:"client_id"`
	TripID       int64     `json:"trip_id"`
	RegisteredAt time.Time `json:"registered_at"`
	// Reference is a ULID handed back to the caller so a registration can
	// be correlated in logs and support requests.
	Reference string `json:"reference"`
}
