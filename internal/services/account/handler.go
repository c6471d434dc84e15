package account

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"food-preorder/internal/api"
	"food-preorder/internal/auth"
	"food-preorder/internal/logger"
	"food-preorder/internal/models"
)

var validate = validator.New()

// Handler handles HTTP requests for registration and login
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new account handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Register handles POST /api/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !api.DecodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			api.WriteError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		h.logger.Error("register_failed", "Failed to register account", logger.GenerateRequestID(), err, nil)
		api.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	api.WriteData(w, http.StatusCreated, resp)
}

// Login handles POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !api.DecodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			api.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.logger.Error("login_failed", "Failed to log in", logger.GenerateRequestID(), err, nil)
		api.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	api.WriteData(w, http.StatusOK, resp)
}

// Me handles GET /api/auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	account, err := h.service.Get(r.Context(), identity.AccountID)
	if err != nil {
		if errors.Is(err, models.ErrAccountNotFound) {
			api.WriteError(w, http.StatusNotFound, "Account not found")
			return
		}
		h.logger.Error("account_lookup_failed", "Failed to load account", logger.GenerateRequestID(), err, nil)
		api.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	api.WriteData(w, http.StatusOK, account)
}
