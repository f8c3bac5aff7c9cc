package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/petpal/petpal/internal/handler/dto"
	"github.com/petpal/petpal/internal/service"
)

// PetHandler handles HTTP requests for pet operations.
type PetHandler struct {
	svc    *service.PetService
	logger *slog.Logger
}

// NewPetHandler creates a new PetHandler.
func NewPetHandler(svc *service.PetService, logger *slog.Logger) *PetHandler {
	return &PetHandler{
		svc:    svc,
		logger: logger,
	}
}

// Routes registers the pet endpoints on r, which is mounted at /pets.
// The {id} segment is an owner ID for GET and a pet ID for DELETE.
func (h *PetHandler) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/{id}", h.ListByUser)
	r.Delete("/{id}", h.Delete)
}

// Create handles POST /pets/.
func (h *PetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePetRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	pet, err := h.svc.CreatePet(r.Context(), service.CreatePetInput{
		Pet:    req.Pet,
		UserID: req.UserID,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("pet_created", "pet_id", pet.ID, "user_id", pet.UserID)

	writeJSON(w, http.StatusOK, dto.ToPetResponse(pet))
}

// ListByUser handles GET /pets/{user_id}.
func (h *PetHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	pets, err := h.svc.ListPets(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPetListResponse(pets))
}

// Delete handles DELETE /pets/{pet_id}.
func (h *PetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeletePet(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("pet_deleted", "pet_id", id)

	writeJSON(w, http.StatusOK, dto.DeleteResponse{
		Status:  "success",
		Message: fmt.Sprintf("Pet with id %s deleted successfully", id),
	})
}

// handleServiceError maps service errors to HTTP responses.
func (h *PetHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, service.ErrNoPets):
		writeError(w, http.StatusNotFound, "NO_PETS", "No pets found for this user")
	case errors.Is(err, service.ErrPetNotFound):
		writeError(w, http.StatusNotFound, "PET_NOT_FOUND", "Pet not found")
	case errors.Is(err, service.ErrInvalidPet):
		writeError(w, http.StatusUnprocessableEntity, "INVALID_PET", "Pet name is required")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal Server Error")
	}
}
