package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/petpal/petpal/internal/handler/dto"
	"github.com/petpal/petpal/internal/service"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		logger: logger,
	}
}

// Routes registers the user endpoints on r, which is mounted at /users.
func (h *UserHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{user_id}", h.Update)
	r.Delete("/{user_id}", h.Delete)
}

// Create handles POST /users/.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	user, err := h.svc.CreateUser(r.Context(), service.CreateUserInput{
		User:  req.User,
		Email: req.Email,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_created", "user_id", user.ID)

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserListResponse(users))
}

// Update handles PUT /users/{user_id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "user_id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	user, err := h.svc.UpdateUser(r.Context(), service.UpdateUserInput{
		ID:     id,
		BodyID: req.UserID,
		User:   req.User,
		Email:  req.Email,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_updated", "user_id", user.ID)

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// Delete handles DELETE /users/{user_id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "user_id")
	if !ok {
		return
	}

	if err := h.svc.DeleteUser(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_deleted", "user_id", id)

	writeJSON(w, http.StatusOK, dto.DeleteResponse{
		Status:  "success",
		Message: fmt.Sprintf("User with id %s deleted successfully", id),
	})
}

// handleServiceError maps service errors to HTTP responses.
func (h *UserHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, service.ErrNoUsers):
		writeError(w, http.StatusNotFound, "NO_USERS", "No users found")
	case errors.Is(err, service.ErrUserIDMismatch):
		writeError(w, http.StatusBadRequest, "USER_ID_MISMATCH", "User ID mismatch")
	case errors.Is(err, service.ErrInvalidUser):
		writeError(w, http.StatusUnprocessableEntity, "INVALID_USER", "User and email are required")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal Server Error")
	}
}

// parseID reads a UUID path parameter, writing a 400 when it is malformed.
func parseID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid "+param)
		return uuid.Nil, false
	}
	return id, true
}
