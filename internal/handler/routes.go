package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/passforge/passforge-go/internal/middleware"
)

// RouterOptions carries the settings NewRouter needs besides the handlers.
type RouterOptions struct {
	TokenSecret    string
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter mounts the API:
//
//	GET  /health            liveness probe
//	POST /api/v1/generate   rate limited; requires a bearer token when TokenSecret is set
//
// Background work started for the router stops when ctx is cancelled.
func NewRouter(ctx context.Context, gen *GeneratorHandler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", HandleHealth)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(ctx, opts.RateLimitRPS, opts.RateLimitBurst))
		if opts.TokenSecret != "" {
			r.Use(middleware.TokenAuth(opts.TokenSecret))
		}
		r.Post("/api/v1/generate", gen.HandleGenerate)
	})

	return r
}
