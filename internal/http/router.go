package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/http/application"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/http/export"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/http/importcsv"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/http/lease"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/http/template"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/metrics"
)

type Handlers struct {
	Applications *application.Handler
	Leases       *lease.Handler
	Templates    *template.Handler
	Import       *importcsv.Handler
	Export       *export.Handler
}

type Options struct {
	AllowedOrigins []string
	Metrics        *metrics.Metrics
	// Health backs /healthz; nil always reports ok.
	Health func(ctx context.Context) error
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware)
		router.Handle("/metrics", opts.Metrics.Handler())
	}

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if opts.Health != nil {
			if err := opts.Health(r.Context()); err != nil {
				http.Error(w, "unavailable", http.StatusServiceUnavailable)
				return
			}
		}

		w.Write([]byte("ok"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"Content-Disposition"},
			MaxAge:         300,
		}))

		r.Route("/applications", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Applications.Routes(r)
			r.Post("/{id}/lease", h.Leases.CreateFromApplication)
		})

		r.Route("/leases", func(r chi.Router) {
			r.Route("/import", h.Import.Routes)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				r.Route("/export", h.Export.Routes)
				h.Leases.Routes(r)
			})
		})

		r.Route("/templates", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Templates.Routes(r)
		})
	})

	return router
}
