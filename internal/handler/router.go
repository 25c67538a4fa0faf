package handler

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pantrychef/pantrychef/internal/middleware"
)

// Handlers groups the handlers mounted by NewRouter.
type Handlers struct {
	Base    *Handler
	Health  *HealthHandler
	Metrics *MetricsHandler
	Pantry  *PantryHandler
	Recipes *RecipeHandler
}

// RouterOptions carries the HTTP settings of the router's middleware chain.
type RouterOptions struct {
	IsDevelopment      bool
	CORSAllowedOrigins []string
	MaxRequestBodySize int64
}

// NewRouter configures the chi router with all routes and middleware.
func NewRouter(h Handlers, opts RouterOptions, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = opts.CORSAllowedOrigins

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: opts.IsDevelopment}))
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.MaxBodySize(opts.MaxRequestBodySize))

	r.Get("/", h.Base.Hello)
	r.Get("/healthz", h.Health.Healthz)
	r.Get("/readyz", h.Health.Readyz)
	r.Get("/metrics", h.Metrics.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/expiring-items", func(r chi.Router) {
			r.Post("/", h.Pantry.AddExpiringItems)
			r.Get("/", h.Pantry.ListExpiringItems)
		})
		r.Route("/favorites", func(r chi.Router) {
			r.Post("/", h.Pantry.SaveFavorite)
			r.Get("/", h.Pantry.ListFavorites)
		})
		r.Post("/recipes/search", h.Recipes.Search)
		r.Get("/recipes/steps", h.Recipes.Steps)
	})

	// Unversioned paths kept for existing clients.
	r.Post("/add_expiring_items", h.Pantry.AddExpiringItems)
	r.Post("/get_recipes", h.Recipes.Search)
	r.Get("/get_recipe_steps", h.Recipes.Steps)
	r.Post("/save_favorite", h.Pantry.SaveFavorite)

	r.NotFound(h.Base.NotFound)
	r.MethodNotAllowed(h.Base.MethodNotAllowed)

	return r
}
