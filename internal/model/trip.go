package model

import "time"

// Country is a destination country. Read-only from this service's
// perspective; rows are maintained by the seed tooling.
type Country struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Trip represents an organized trip. Trips are created and modified
// externally; the API reads them and appends client registrations.
type Trip struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DateFrom    time.Time `json:"date_from"`
	DateTo      time.Time `json:"date_to"`
	MaxPeople   int       `json:"max_people"`

	// Countries and Clients are populated by the listing query only.
	Countries []Country `json:"countries,omitempty"`
	Clients   []Client  `json:"clients,omitempty"`
}

// HasStarted reports whether the trip's start date has already passed at
// the given instant. A trip starting exactly at now has not started.
func (t *Trip) HasStarted(now time.Time) bool {
	return t.DateFrom.Before(now)
}
