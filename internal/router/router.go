package router

import (
	"context"
	"net/http"
	"time"

	"bought-tab/internal/handler"
	"bought-tab/internal/identity"
	"bought-tab/internal/middleware"
	"bought-tab/internal/platform"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Deps are the handlers and settings the router mounts.
type Deps struct {
	Products *handler.ProductHandler
	Admin    *handler.AdminHandler
	Resolver *identity.Resolver
	Platform platform.Status
	APIKey   string
	// Ping checks the database for /health. Optional.
	Ping func(ctx context.Context) error
	// Metrics serves /metrics; defaults to the Prometheus default registry.
	Metrics http.Handler
}

// New creates the HTTP router. When the host platform is inactive the product
// and tab editing routes are replaced by a PLATFORM_INACTIVE response and only
// notices, health and metrics stay available.
func New(deps Deps, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Recovery -> RequestID -> Logging -> CORS
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	r.Get("/health", health(deps.Ping, deps.Platform))

	metricsHandler := deps.Metrics
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	inactive := handler.PlatformInactive(logger)

	r.Route("/api/products", func(r chi.Router) {
		if !deps.Platform.Active || deps.Products == nil {
			r.HandleFunc("/*", inactive)
			r.HandleFunc("/", inactive)
			return
		}

		r.Use(middleware.Viewer(deps.Resolver, logger))
		r.Get("/", deps.Products.GetAll)
		r.Get("/{id}", deps.Products.GetByID)
		r.Get("/{id}/tabs", deps.Products.Tabs)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(deps.APIKey, logger))

		r.Get("/notices", deps.Admin.Notices)

		r.Route("/products/{id}/bought-tab", func(r chi.Router) {
			if !deps.Platform.Active {
				r.HandleFunc("/", inactive)
				return
			}
			r.Get("/", deps.Admin.GetBoughtTab)
			r.Put("/", deps.Admin.PutBoughtTab)
		})
	})

	return r
}

func health(ping func(ctx context.Context) error, status platform.Status) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status": "unhealthy"}`))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		if !status.Active {
			_, _ = w.Write([]byte(`{"status": "healthy", "platform": "inactive"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status": "healthy", "platform": "active"}`))
	}
}
