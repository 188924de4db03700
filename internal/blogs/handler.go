package blogs

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/oversea-labs/compass/internal/platform/httpx"
)

// Handler wires HTTP endpoints for blog posts.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers blog routes on the provided router. The access gate
// keeps everything except the published endpoints admin-only.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/blogs", func(r chi.Router) {
		r.Get("/published", h.listPublished)
		r.Get("/published/{slug}", h.getPublished)
		r.Get("/", h.listAll)
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler) listPublished(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPublished(r.Context())
	if err != nil {
		h.logger.Error("list published blogs", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Published blogs fetched successfully", posts)
}

func (h *Handler) getPublished(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.GetPublished(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Blog fetched successfully", post)
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListAll(r.Context())
	if err != nil {
		h.logger.Error("list blogs", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Blogs fetched successfully", posts)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateBlogRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "title and content are required")
		return
	}
	post, err := h.service.Create(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusCreated, "Blog created successfully", post)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdateBlogRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}
	post, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Blog updated successfully", post)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Blog deleted successfully", nil)
}
