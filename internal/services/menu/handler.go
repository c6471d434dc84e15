package menu

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"food-preorder/internal/api"
	"food-preorder/internal/auth"
	"food-preorder/internal/logger"
	"food-preorder/internal/models"
)

var validate = validator.New()

// Handler handles HTTP requests for the menu catalog
type Handler struct {
	store  Store
	logger *logger.Logger
}

// NewHandler creates a new menu handler
func NewHandler(store Store, log *logger.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: log,
	}
}

// List handles GET /api/menu with page/limit/category query parameters
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	page, limit, offset := api.PageParams(page, limit)

	category := models.MenuCategory(r.URL.Query().Get("category"))
	if category != "" && !category.IsValid() {
		api.WriteError(w, http.StatusBadRequest, "Invalid category")
		return
	}

	items, total, err := h.store.List(r.Context(), category, limit, offset)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	api.WriteList(w, http.StatusOK, items, len(items), api.PageLinks(page, limit, total))
}

// Get handles GET /api/menu/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid menu item id")
		return
	}

	item, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	api.WriteData(w, http.StatusOK, item)
}

// ListByRestaurant handles GET /api/menu/restaurant/{restaurantId}
func (h *Handler) ListByRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := uuid.Parse(chi.URLParam(r, "restaurantId"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid restaurant id")
		return
	}

	items, err := h.store.ListByRestaurant(r.Context(), restaurantID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	api.WriteList(w, http.StatusOK, items, len(items), nil)
}

// Create handles POST /api/menu
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var req models.UpsertMenuItemRequest
	if !api.DecodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.store.Create(r.Context(), identity, &req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	api.WriteData(w, http.StatusCreated, item)
}

// Update handles PUT /api/menu/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid menu item id")
		return
	}

	var req models.UpsertMenuItemRequest
	if !api.DecodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.store.Update(r.Context(), identity, id, &req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	api.WriteData(w, http.StatusOK, item)
}

// Delete handles DELETE /api/menu/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid menu item id")
		return
	}

	if err := h.store.Delete(r.Context(), identity, id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	api.WriteData(w, http.StatusOK, map[string]interface{}{})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrMenuItemNotFound):
		api.WriteError(w, http.StatusNotFound, "Menu item not found")
	case errors.Is(err, models.ErrRestaurantNotFound):
		api.WriteError(w, http.StatusNotFound, "Restaurant not found")
	case errors.Is(err, models.ErrForbidden):
		api.WriteError(w, http.StatusForbidden, "Not authorized to perform this action")
	default:
		h.logger.Error("menu_request_failed", "Unexpected error", logger.GenerateRequestID(), err, nil)
		api.WriteError(w, http.StatusInternalServerError, "Server error")
	}
}
