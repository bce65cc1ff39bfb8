package dto

import (
	"time"

	"github.com/tripdesk/tripdesk/internal/model"
)

// CountryResponse represents a country visited by a trip.
type CountryResponse struct {
	ID   int64  `json:"idCountry"`
	Name string `json:"name"`
}

// TripResponse represents a trip with its countries and registered clients.
type TripResponse struct {
	ID          int64             `json:"idTrip"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	DateFrom    time.Time         `json:"dateFrom"`
	DateTo      time.Time         `json:"dateTo"`
	MaxPeople   int               `json:"maxPeople"`
	Countries   []CountryResponse `json:"countries"`
	Clients     []ClientResponse  `json:"clients"`
}

// TripListResponse represents one page of trips.
type TripListResponse struct {
	PageNum  int            `json:"pageNum"`
	PageSize int            `json:"pageSize"`
	AllPages int            `json:"allPages"`
	Trips    []TripResponse `json:"trips"`
}

// RegistrationResponse represents a client-to-trip registration.
type RegistrationResponse struct {
	Reference    string    `json:"reference"`
	TripID       int64     `json:"idTrip"`
	ClientID     int64     `json:"idClient"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// AssignmentResponse is the body returned after assigning a client to a trip.
type AssignmentResponse struct {
	Client       ClientResponse       `json:"client"`
	Registration RegistrationResponse `json:"registration"`
}

// ToTripResponse converts a Trip model to TripResponse DTO.
func ToTripResponse(trip *model.Trip) *TripResponse {
	countries := make([]CountryResponse, len(trip.Countries))
	for i, country := range trip.Countries {
		countries[i] = CountryResponse{ID: country.ID, Name: country.Name}
	}
	clients := make([]ClientResponse, len(trip.Clients))
	for i := range trip.Clients {
		clients[i] = *ToClientResponse(&trip.Clients[i])
	}
	return &TripResponse{
		ID:          trip.ID,
		Name:        trip.Name,
		Description: trip.Description,
		DateFrom:    trip.DateFrom,
		DateTo:      trip.DateTo,
		MaxPeople:   trip.MaxPeople,
		Countries:   countries,
		Clients:     clients,
	}
}

// ToTripListResponse converts a page of Trip models to TripListResponse.
func ToTripListResponse(pageNum, pageSize, allPages int, trips []*model.Trip) *TripListResponse {
	responses := make([]TripResponse, len(trips))
	for i, trip := range trips {
		responses[i] = *ToTripResponse(trip)
	}
	return &TripListResponse{
		PageNum:  pageNum,
		PageSize: pageSize,
		AllPages: allPages,
		Trips:    responses,
	}
}

// ToAssignmentResponse converts a new client and its registration to the
// assignment response body.
func ToAssignmentResponse(client *model.Client, reg *model.ClientTrip) *AssignmentResponse {
	return &AssignmentResponse{
		Client: *ToClientResponse(client),
		Registration: RegistrationResponse{
			Reference:    reg.Reference,
			TripID:       reg.TripID,
			ClientID:     reg.ClientID,
			RegisteredAt: reg.RegisteredAt,
		},
	}
}
