// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/tripdesk/tripdesk/internal/model"
)

// ClientRequest represents the request body for creating or replacing a
// client. The same shape is used when assigning a new client to a trip.
type ClientRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Pesel     string `json:"pesel"`
}

// ClientResponse represents a client in API responses.
type ClientResponse struct {
	ID        int64     `json:"idClient"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Telephone string    `json:"telephone"`
	Pesel     string    `json:"pesel"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToClientResponse converts a Client model to ClientResponse DTO.
func ToClientResponse(client *model.Client) *ClientResponse {
	return &ClientResponse{
		ID:        client.ID,
		FirstName: client.FirstName,
		LastName:  client.LastName,
		Email:     client.Email,
		Telephone: client.Telephone,
		Pesel:     client.Pesel,
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
	}
}

// ToClientListResponse converts a slice of Client models to DTOs.
func ToClientListResponse(clients []*model.Client) []ClientResponse {
	responses := make([]ClientResponse, len(clients))
	for i, client := range clients {
		responses[i] = *ToClientResponse(client)
	}
	return responses
}
