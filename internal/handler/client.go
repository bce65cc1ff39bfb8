package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tripdesk/tripdesk/internal/handler/dto"
	"github.com/tripdesk/tripdesk/internal/service"
)

// ClientHandler handles HTTP requests for the client registry.
type ClientHandler struct {
	svc    *service.ClientService
	logger *slog.Logger
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(svc *service.ClientService, logger *slog.Logger) *ClientHandler {
	return &ClientHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/clients.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	client, err := h.svc.CreateClient(r.Context(), clientInput(req))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("client_created", "client_id", client.ID)

	w.Header().Set("Location", fmt.Sprintf("/api/clients/%d", client.ID))
	writeJSON(w, http.StatusCreated, dto.ToClientResponse(client))
}

// List handles GET /api/clients.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.svc.ListClients(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToClientListResponse(clients))
}

// Get handles GET /api/clients/{id}.
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Client ID must be an integer")
		return
	}

	client, err := h.svc.GetClient(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToClientResponse(client))
}

// Update handles PUT /api/clients/{id}.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Client ID must be an integer")
		return
	}

	var req dto.ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	client, err := h.svc.UpdateClient(r.Context(), id, clientInput(req))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("client_updated", "client_id", client.ID)

	writeJSON(w, http.StatusOK, dto.ToClientResponse(client))
}

// Delete handles DELETE /api/clients/{id}.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Client ID must be an integer")
		return
	}

	if err := h.svc.DeleteClient(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("client_deleted", "client_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// handleServiceError maps service errors to HTTP responses.
func (h *ClientHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrClientNotFound):
		writeError(w, http.StatusNotFound, "CLIENT_NOT_FOUND", "Client not found")
	case errors.Is(err, service.ErrMissingName):
		writeError(w, http.StatusBadRequest, "MISSING_NAME", "First and last name are required")
	case errors.Is(err, service.ErrInvalidPesel):
		writeError(w, http.StatusBadRequest, "INVALID_PESEL", "Pesel must be exactly 11 digits")
	case errors.Is(err, service.ErrDuplicatePesel):
		writeError(w, http.StatusBadRequest, "DUPLICATE_PERSON", "A client with this pesel already exists")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// clientInput converts the request DTO to a service input.
func clientInput(req dto.ClientRequest) service.ClientInput {
	return service.ClientInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Telephone: req.Telephone,
		Pesel:     req.Pesel,
	}
}
