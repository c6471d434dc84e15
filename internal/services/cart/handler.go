package cart

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
	"food-preorder/internal/services/order"
)

var validate = validator.New()

// Handler handles HTTP requests for the cart
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new cart handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Get handles GET /api/cart
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	cart, err := h.service.Get(r.Context(), identity.AccountID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	api.WriteData(w, http.StatusOK, cart)
}

// AddItem handles POST /api/cart/items
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var req models.AddCartItemRequest
	if !api.DecodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	cart, err := h.service.AddItem(r.Context(), identity.AccountID, &req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	api.WriteData(w, http.StatusOK, cart)
}

// RemoveItem handles DELETE /api/cart/items/{menuItemId}
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	menuItemID, err := uuid.Parse(chi.URLParam(r, "menuItemId"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid menu item id")
		return
	}

	cart, err := h.service.RemoveItem(r.Context(), identity.AccountID, menuItemID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	api.WriteData(w, http.StatusOK, cart)
}

// Clear handles DELETE /api/cart
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	if err := h.service.Clear(r.Context(), identity.AccountID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	api.WriteData(w, http.StatusOK, map[string]interface{}{})
}

// Checkout handles POST /api/cart/checkout
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var req models.CheckoutRequest
	if !api.DecodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	orders, err := h.service.Checkout(r.Context(), identity, &req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	api.WriteList(w, http.StatusCreated, orders, len(orders), nil)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var pickupErr *order.PickupTimeError
	switch {
	case errors.As(err, &pickupErr):
		api.WriteError(w, http.StatusBadRequest, string(pickupErr.Reason)+": "+pickupErr.Error())
	case errors.Is(err, models.ErrCartEmpty):
		api.WriteError(w, http.StatusBadRequest, "Cart is empty")
	case errors.Is(err, models.ErrPickupTimeMissing):
		api.WriteError(w, http.StatusBadRequest, "A pickup time is required for every restaurant in the cart")
	case errors.Is(err, models.ErrMenuItemNotFound):
		api.WriteError(w, http.StatusNotFound, "Menu item not found")
	case errors.Is(err, models.ErrMenuItemUnavailable):
		api.WriteError(w, http.StatusBadRequest, "Menu item is not available")
	case errors.Is(err, models.ErrRestaurantNotFound):
		api.WriteError(w, http.StatusNotFound, "Restaurant not found")
	case errors.Is(err, models.ErrForbidden):
		api.WriteError(w, http.StatusForbidden, "Not authorized to perform this action")
	default:
		h.logger.Error("cart_request_failed", "Unexpected error", logger.GenerateRequestID(), err, nil)
		api.WriteError(w, http.StatusInternalServerError, "Server error")
	}
}
