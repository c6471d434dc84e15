package restaurant

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"food-preorder/internal/api"
	"food-preorder/internal/auth"
	"food-preorder/internal/logger"
	"food-preorder/internal/models"
)

var validate = validator.New()

// Handler handles HTTP requests for the restaurant directory
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new restaurant handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// List handles GET /api/restaurants
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("restaurant_list_failed", "Failed to list restaurants", logger.GenerateRequestID(), err, nil)
		api.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	api.WriteList(w, http.StatusOK, restaurants, len(restaurants), nil)
}

// Get handles GET /api/restaurants/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid restaurant id")
		return
	}

	restaurant, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	api.WriteData(w, http.StatusOK, restaurant)
}

// Create handles POST /api/restaurants
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var req models.UpsertRestaurantRequest
	if !api.DecodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	restaurant, err := h.service.Create(r.Context(), identity, &req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	api.WriteData(w, http.StatusCreated, restaurant)
}

// Update handles PUT /api/restaurants/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid restaurant id")
		return
	}

	var req models.UpsertRestaurantRequest
	if !api.DecodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	restaurant, err := h.service.Update(r.Context(), identity, id, &req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	api.WriteData(w, http.StatusOK, restaurant)
}

// Delete handles DELETE /api/restaurants/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid restaurant id")
		return
	}

	if err := h.service.Delete(r.Context(), identity, id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	api.WriteData(w, http.StatusOK, map[string]interface{}{})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrRestaurantNotFound):
		api.WriteError(w, http.StatusNotFound, "Restaurant not found")
	case errors.Is(err, models.ErrForbidden):
		api.WriteError(w, http.StatusForbidden, "Not authorized to perform this action")
	default:
		h.logger.Error("restaurant_request_failed", "Unexpected error", logger.GenerateRequestID(), err, nil)
		api.WriteError(w, http.StatusInternalServerError, "Server error")
	}
}
