package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/tripdesk/tripdesk/internal/handler/dto"
	"github.com/tripdesk/tripdesk/internal/service"
)

// TripHandler handles HTTP requests for trip listing and assignment.
type TripHandler struct {
	svc    *service.TripService
	logger *slog.Logger
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(svc *service.TripService, logger *slog.Logger) *TripHandler {
	return &TripHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/trips.
// Omitted page and pageSize fall back to defaults; explicit zero or
// negative values are rejected.
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page := 1
	if p := query.Get("page"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_PAGE", "page must be an integer")
			return
		}
		page = parsed
	}

	pageSize := h.svc.DefaultPageSize()
	if ps := query.Get("pageSize"); ps != "" {
		parsed, err := strconv.Atoi(ps)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_PAGE_SIZE", "pageSize must be an integer")
			return
		}
		pageSize = parsed
	}

	result, err := h.svc.ListTrips(r.Context(), page, pageSize)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	response := dto.ToTripListResponse(result.PageNum, result.PageSize, result.AllPages, result.Trips)
	writeJSON(w, http.StatusOK, response)
}

// Assign handles POST /api/trips/{tripId}/clients.
func (h *TripHandler) Assign(w http.ResponseWriter, r *http.Request) {
	tripID, err := idParam(r, "tripId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_TRIP_ID", "Trip ID must be an integer")
		return
	}

	var req dto.ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	reg, err := h.svc.AssignClientToTrip(r.Context(), tripID, clientInput(req))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("trip_assignment_accepted",
		"trip_id", tripID,
		"client_id", reg.Client.ID,
		"reference", reg.Registration.Reference,
	)

	w.Header().Set("Location", fmt.Sprintf("/api/clients/%d", reg.Client.ID))
	writeJSON(w, http.StatusCreated, dto.ToAssignmentResponse(reg.Client, reg.Registration))
}

// handleServiceError maps service errors to HTTP responses.
func (h *TripHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingName):
		writeError(w, http.StatusBadRequest, "MISSING_NAME", "First and last name are required")
	case errors.Is(err, service.ErrInvalidPesel):
		writeError(w, http.StatusBadRequest, "INVALID_PESEL", "Pesel must be exactly 11 digits")
	case errors.Is(err, service.ErrDuplicatePesel):
		writeError(w, http.StatusBadRequest, "DUPLICATE_PERSON", "A client with this pesel already exists")
	case errors.Is(err, service.ErrAlreadyRegistered):
		writeError(w, http.StatusBadRequest, "DUPLICATE_PERSON", "Client is already registered for this trip")
	case errors.Is(err, service.ErrInvalidTrip):
		writeError(w, http.StatusBadRequest, "INVALID_TRIP", "Trip does not exist or has already started")
	case errors.Is(err, service.ErrInvalidPage):
		writeError(w, http.StatusBadRequest, "INVALID_PAGE", "page must be positive")
	case errors.Is(err, service.ErrInvalidPageSize):
		writeError(w, http.StatusBadRequest, "INVALID_PAGE_SIZE", "pageSize must be positive")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
