package order

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

// Handler handles HTTP requests for orders
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new order handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Create handles POST /api/orders
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var req models.CreateOrderRequest
	if !api.DecodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.service.Create(r.Context(), identity, &req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	api.WriteData(w, http.StatusCreated, order)
}

// List handles GET /api/orders with page/limit query parameters
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	page, limit, offset := api.PageParams(page, limit)

	orders, total, err := h.service.List(r.Context(), identity, limit, offset)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	api.WriteList(w, http.StatusOK, orders, len(orders), api.PageLinks(page, limit, total))
}

// Get handles GET /api/orders/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	order, err := h.service.Get(r.Context(), identity, id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	api.WriteData(w, http.StatusOK, order)
}

// Update handles PUT /api/orders/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	var req models.UpdateOrderRequest
	if !api.DecodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Status == nil && req.PaymentStatus == nil {
		api.WriteError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), identity, id, &req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	api.WriteData(w, http.StatusOK, order)
}

// Cancel handles DELETE /api/orders/{id}
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	order, err := h.service.Cancel(r.Context(), identity, id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	api.WriteData(w, http.StatusOK, order)
}

// History handles GET /api/orders/{id}/history
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	history, err := h.service.History(r.Context(), identity, id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	api.WriteList(w, http.StatusOK, history, len(history), nil)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var pickupErr *PickupTimeError
	switch {
	case errors.As(err, &pickupErr):
		api.WriteError(w, http.StatusBadRequest, string(pickupErr.Reason)+": "+pickupErr.Error())
	case errors.Is(err, models.ErrOrderNotFound):
		api.WriteError(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, models.ErrRestaurantNotFound):
		api.WriteError(w, http.StatusNotFound, "Restaurant not found")
	case errors.Is(err, models.ErrMenuItemNotFound):
		api.WriteError(w, http.StatusNotFound, "Menu item not found")
	case errors.Is(err, models.ErrMenuItemUnavailable):
		api.WriteError(w, http.StatusBadRequest, "Menu item is not available")
	case errors.Is(err, models.ErrItemWrongRestaurant):
		api.WriteError(w, http.StatusBadRequest, "All items must belong to the order's restaurant")
	case errors.Is(err, models.ErrEmptyOrder):
		api.WriteError(w, http.StatusBadRequest, "Order must contain at least one item")
	case errors.Is(err, models.ErrIllegalTransition):
		api.WriteError(w, http.StatusBadRequest, "Cannot change status of a completed or cancelled order")
	case errors.Is(err, models.ErrStatusConflict):
		api.WriteError(w, http.StatusConflict, "Order status changed concurrently, retry with the current status")
	case errors.Is(err, models.ErrForbidden):
		api.WriteError(w, http.StatusForbidden, "Not authorized to perform this action")
	default:
		h.logger.Error("order_request_failed", "Unexpected error", logger.GenerateRequestID(), err, nil)
		api.WriteError(w, http.StatusInternalServerError, "Server error")
	}
}
