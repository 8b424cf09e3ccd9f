package rest

import (
	"log/slog"
	"net/http"

	"github.com/adityakarchi/recipe-management/internal/config"
	"github.com/adityakarchi/recipe-management/internal/metrics"
	"github.com/adityakarchi/recipe-management/internal/transport/middleware"
)

// NewRouter mounts every endpoint and wraps the mux in the middleware chain.
// The API routes are rate limited; probes, metrics and static files are not.
func NewRouter(logger *slog.Logger, cfg *config.Config, recipes *RecipeHandler, health *HealthHandler) http.Handler {
	mux := http.NewServeMux()
	limit := middleware.RateLimit(cfg.RateLimit)
	api := func(h http.HandlerFunc) http.Handler { return limit(h) }

	mux.Handle("GET /api/recipes", api(recipes.List))
	mux.Handle("POST /api/recipes", api(recipes.Create))
	mux.Handle("GET /api/recipes/{id}", api(recipes.Get))
	mux.Handle("PUT /api/recipes/{id}", api(recipes.Update))
	mux.Handle("DELETE /api/recipes/{id}", api(recipes.Delete))
	mux.Handle("GET /api/ingredients", api(recipes.ListIngredients))
	mux.HandleFunc("/api/", APINotFound)

	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	if cfg.Metrics.Enabled {
		mux.Handle("GET "+cfg.Metrics.Path, metrics.Handler())
	}

	mux.Handle("/", NewSPAHandler(cfg.Static))

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.When(cfg.Metrics.Enabled, middleware.Metrics()),
	)(mux)
}
