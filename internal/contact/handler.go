package contact

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/oversea-labs/compass/internal/platform/httpx"
)

// Handler wires HTTP endpoints for contact submissions.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers contact routes on the provided router. POST is
// reachable anonymously via the access gate; GET is admin-only.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/contact", func(r chi.Router) {
		r.Post("/", h.submit)
		r.Get("/", h.listAll)
	})
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "name, email and message are required")
		return
	}
	sub, err := h.service.Submit(r.Context(), req)
	if err != nil {
		h.logger.Error("submit contact", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Message received successfully", sub)
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	subs, err := h.service.ListAll(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Submissions fetched successfully", subs)
}
