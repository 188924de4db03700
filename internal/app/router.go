package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oversea-labs/compass/internal/auth"
	"github.com/oversea-labs/compass/internal/blogs"
	"github.com/oversea-labs/compass/internal/contact"
	"github.com/oversea-labs/compass/internal/courses"
	"github.com/oversea-labs/compass/internal/gallery"
	"github.com/oversea-labs/compass/internal/gate"
	"github.com/oversea-labs/compass/internal/observability"
	"github.com/oversea-labs/compass/internal/subscribers"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger      *slog.Logger
	Config      *Config
	Metrics     *observability.Metrics
	Gate        *gate.Gate
	Auth        *auth.Handler
	Blogs       *blogs.Handler
	Courses     *courses.Handler
	Gallery     *gallery.Handler
	Contact     *contact.Handler
	Subscribers *subscribers.Handler
}

// NewRouter assembles the full HTTP surface. The access gate runs after the
// platform middleware and before every route, page and API alike.
func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()
	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  p.Logger,
		Config:  p.Config,
		Metrics: p.Metrics,
	}) {
		r.Use(mw)
	}
	if p.Gate != nil {
		r.Use(p.Gate.Handler)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if p.Metrics != nil {
		r.Handle("/metrics", p.Metrics.Handler())
	}

	r.Route("/api/routes", func(r chi.Router) {
		p.Auth.MountRoutes(r)
		p.Blogs.MountRoutes(r)
		p.Courses.MountRoutes(r)
		p.Gallery.MountRoutes(r)
		p.Contact.MountRoutes(r)
		p.Subscribers.MountRoutes(r)
	})

	return r
}
