package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/petpal/petpal/internal/handler/dto"
	"github.com/petpal/petpal/internal/metrics"
	"github.com/petpal/petpal/internal/service"
	"github.com/petpal/petpal/internal/testutil"
)

func newDirectoryTestEnv(t *testing.T) (*testutil.MemoryDirectory, *chi.Mux) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := testutil.NewMemoryDirectory()
	recorder := metrics.NewNoop()

	users := NewUserHandler(service.NewUserService(dir, nil, time.Minute, logger, recorder), logger)
	pets := NewPetHandler(service.NewPetService(dir, dir, recorder), logger)

	r := chi.NewRouter()
	r.Route("/users", users.Routes)
	r.Route("/pets", pets.Routes)

	return dir, r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp
}

func TestUserHandler_CreateAndList(t *testing.T) {
	_, router := newDirectoryTestEnv(t)

	rec := doJSON(t, router, http.MethodGet, "/users", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("empty list: expected 404, got %d", rec.Code)
	}
	if code := decodeError(t, rec).Code; code != "NO_USERS" {
		t.Errorf("expected NO_USERS, got %s", code)
	}

	rec = doJSON(t, router, http.MethodPost, "/users/", dto.CreateUserRequest{User: "Alice", Email: "alice@example.com"})
	if rec.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var created dto.UserResponse
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	if created.UserID == uuid.Nil || created.User != "Alice" {
		t.Errorf("unexpected created user: %+v", created)
	}

	rec = doJSON(t, router, http.MethodGet, "/users", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}

	var listed []dto.UserResponse
	if err := json.NewDecoder(rec.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 || listed[0].UserID != created.UserID {
		t.Errorf("unexpected list: %+v", listed)
	}
}

func TestUserHandler_Create_BadRequests(t *testing.T) {
	_, router := newDirectoryTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/users/", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid JSON: expected 400, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/users/", dto.CreateUserRequest{User: "NoEmail"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("missing email: expected 422, got %d", rec.Code)
	}
}

func TestUserHandler_Update(t *testing.T) {
	dir, router := newDirectoryTestEnv(t)

	user := testutil.NewTestUser(t, "bob")
	if err := dir.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	tests := []struct {
		name       string
		path       string
		body       dto.UpdateUserRequest
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			path:       "/users/" + user.ID.String(),
			body:       dto.UpdateUserRequest{UserID: user.ID, User: "Robert", Email: "robert@example.com"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "id mismatch",
			path:       "/users/" + user.ID.String(),
			body:       dto.UpdateUserRequest{UserID: uuid.New(), User: "Robert", Email: "robert@example.com"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "USER_ID_MISMATCH",
		},
		{
			name:       "unknown user",
			path:       "/users/" + uuid.NewString(),
			body:       dto.UpdateUserRequest{UserID: user.ID, User: "Robert", Email: "robert@example.com"},
			wantStatus: http.StatusNotFound,
			wantCode:   "USER_NOT_FOUND",
		},
		{
			name:       "malformed id",
			path:       "/users/not-a-uuid",
			body:       dto.UpdateUserRequest{UserID: user.ID},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPut, tt.path, tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.wantCode != "" {
				if code := decodeError(t, rec).Code; code != tt.wantCode {
					t.Errorf("expected code %s, got %s", tt.wantCode, code)
				}
				return
			}

			var resp dto.UserResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.User != "Robert" || resp.Email != "robert@example.com" {
				t.Errorf("unexpected response: %+v", resp)
			}
		})
	}
}

func TestUserHandler_Delete(t *testing.T) {
	dir, router := newDirectoryTestEnv(t)

	user := testutil.NewTestUser(t, "eve")
	if err := dir.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	rec := doJSON(t, router, http.MethodDelete, "/users/"+user.ID.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.DeleteResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "success" {
		t.Errorf("unexpected status: %s", resp.Status)
	}

	rec = doJSON(t, router, http.MethodDelete, "/users/"+user.ID.String(), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %d", rec.Code)
	}
}

func TestUserHandler_StoreFailure(t *testing.T) {
	dir, router := newDirectoryTestEnv(t)
	dir.Err = errors.New("connection refused")

	rec := doJSON(t, router, http.MethodGet, "/users", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if code := decodeError(t, rec).Code; code != "INTERNAL_ERROR" {
		t.Errorf("expected INTERNAL_ERROR, got %s", code)
	}
}

func TestPetHandler_Lifecycle(t *testing.T) {
	dir, router := newDirectoryTestEnv(t)

	owner := testutil.NewTestUser(t, "diana")
	if err := dir.CreateUser(context.Background(), owner); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	rec := doJSON(t, router, http.MethodGet, "/pets/"+owner.ID.String(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("no pets: expected 404, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/pets/", dto.CreatePetRequest{Pet: "Rex", UserID: owner.ID})
	if rec.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var pet dto.PetResponse
	if err := json.NewDecoder(rec.Body).Decode(&pet); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if pet.UserID != owner.ID || pet.Pet != "Rex" {
		t.Errorf("unexpected pet: %+v", pet)
	}

	rec = doJSON(t, router, http.MethodGet, "/pets/"+owner.ID.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}

	var pets []dto.PetResponse
	if err := json.NewDecoder(rec.Body).Decode(&pets); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(pets) != 1 || pets[0].PetID != pet.PetID {
		t.Errorf("unexpected pets: %+v", pets)
	}

	rec = doJSON(t, router, http.MethodDelete, "/pets/"+pet.PetID.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/pets/"+pet.PetID.String(), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %d", rec.Code)
	}
	if code := decodeError(t, rec).Code; code != "PET_NOT_FOUND" {
		t.Errorf("expected PET_NOT_FOUND, got %s", code)
	}
}

func TestPetHandler_Create_UnknownOwner(t *testing.T) {
	_, router := newDirectoryTestEnv(t)

	rec := doJSON(t, router, http.MethodPost, "/pets/", dto.CreatePetRequest{Pet: "Rex", UserID: uuid.New()})
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if code := decodeError(t, rec).Code; code != "USER_NOT_FOUND" {
		t.Errorf("expected USER_NOT_FOUND, got %s", code)
	}
}
