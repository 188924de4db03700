package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/oversea-labs/compass/internal/platform/httpx"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/auth", h.handleAuth)
	r.Delete("/auth", h.handleLogout)
}

type authRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"`
	Action   string `json:"action"`
}

func (h *Handler) handleAuth(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "email and password are required")
		return
	}

	var (
		token   string
		user    *PublicUser
		message string
		err     error
	)
	if req.Action == "signup" {
		if req.Name == "" {
			httpx.Fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "name is required for signup")
			return
		}
		token, user, err = h.service.Signup(r.Context(), req.Email, req.Password, req.Name)
		message = "Account created successfully"
	} else {
		token, user, err = h.service.Login(r.Context(), req.Email, req.Password)
		message = "Login successful"
	}
	if err != nil {
		h.logger.Warn("auth failed",
			slog.String("action", req.Action),
			slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	SetSessionCookies(w, token, user)
	httpx.OK(w, http.StatusOK, message, user)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ClearSessionCookies(w)
	httpx.OK(w, http.StatusOK, "Logged out successfully", nil)
}
