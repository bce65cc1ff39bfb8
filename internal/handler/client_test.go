package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/tripdesk/tripdesk/internal/handler/dto"
	"github.com/tripdesk/tripdesk/internal/service"
	"github.com/tripdesk/tripdesk/internal/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newClientRouter(store *testutil.MemStore) http.Handler {
	svc := service.NewClientService(store, nil)
	h := NewClientHandler(svc, discardLogger())

	r := chi.NewRouter()
	r.Route("/api/clients", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	return r
}

const clientBody = `{"firstName":"Jan","lastName":"Kowalski","email":"jan@example.com","telephone":"+48123456789","pesel":"90010112345"}`

func TestClientHandler_Create(t *testing.T) {
	router := newClientRouter(testutil.NewMemStore())

	req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(clientBody))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response dto.ClientResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.ID == 0 {
		t.Error("expected assigned client ID")
	}
	if response.Pesel != "90010112345" {
		t.Errorf("unexpected pesel: %s", response.Pesel)
	}

	location := rec.Header().Get("Location")
	if location != "/api/clients/1" {
		t.Errorf("unexpected Location header: %s", location)
	}
}

func TestClientHandler_CreateInvalid(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"invalid_json", `{not json`, "INVALID_JSON"},
		{"bad_pesel", `{"firstName":"Jan","lastName":"Kowalski","pesel":"123"}`, "INVALID_PESEL"},
		{"missing_name", `{"firstName":"","lastName":"Kowalski","pesel":"90010112345"}`, "MISSING_NAME"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			router := newClientRouter(testutil.NewMemStore())

			req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(test.body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}

			var response dto.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if response.Code != test.wantCode {
				t.Errorf("expected code %s, got %s", test.wantCode, response.Code)
			}
		})
	}
}

func TestClientHandler_CreateDuplicatePesel(t *testing.T) {
	router := newClientRouter(testutil.NewMemStore())

	req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(clientBody))
	router.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(clientBody))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var response dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Code != "DUPLICATE_PERSON" {
		t.Errorf("expected code DUPLICATE_PERSON, got %s", response.Code)
	}
}

func TestClientHandler_Get(t *testing.T) {
	router := newClientRouter(testutil.NewMemStore())

	req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(clientBody))
	router.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/api/clients/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var response dto.ClientResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.ID != 1 || response.FirstName != "Jan" {
		t.Errorf("unexpected client: %+v", response)
	}
}

func TestClientHandler_GetErrors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantCode   string
	}{
		{"not_found", "/api/clients/42", http.StatusNotFound, "CLIENT_NOT_FOUND"},
		{"bad_id", "/api/clients/abc", http.StatusBadRequest, "INVALID_ID"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			router := newClientRouter(testutil.NewMemStore())

			req := httptest.NewRequest(http.MethodGet, test.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != test.wantStatus {
				t.Fatalf("expected status %d, got %d", test.wantStatus, rec.Code)
			}

			var response dto.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if response.Code != test.wantCode {
				t.Errorf("expected code %s, got %s", test.wantCode, response.Code)
			}
		})
	}
}

func TestClientHandler_List(t *testing.T) {
	router := newClientRouter(testutil.NewMemStore())

	bodies := []string{
		clientBody,
		`{"firstName":"Anna","lastName":"Nowak","email":"anna@example.com","telephone":"+48111222333","pesel":"85050554321"}`,
	}
	for _, body := range bodies {
		req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(body))
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var response []dto.ClientResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(response))
	}
	if response[0].ID != 1 || response[1].ID != 2 {
		t.Error("expected clients ordered by ID")
	}
}

func TestClientHandler_Update(t *testing.T) {
	router := newClientRouter(testutil.NewMemStore())

	req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(clientBody))
	router.ServeHTTP(httptest.NewRecorder(), req)

	updated := `{"firstName":"Jan","lastName":"Kowalski","email":"new@example.com","telephone":"+48123456789","pesel":"90010112345"}`
	req = httptest.NewRequest(http.MethodPut, "/api/clients/1", strings.NewReader(updated))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response dto.ClientResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Email != "new@example.com" {
		t.Errorf("expected updated email, got %s", response.Email)
	}
}

func TestClientHandler_UpdateNotFound(t *testing.T) {
	router := newClientRouter(testutil.NewMemStore())

	req := httptest.NewRequest(http.MethodPut, "/api/clients/9", strings.NewReader(clientBody))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestClientHandler_Delete(t *testing.T) {
	router := newClientRouter(testutil.NewMemStore())

	req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(clientBody))
	router.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodDelete, "/api/clients/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/clients/1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 on second delete, got %d", rec.Code)
	}
}
