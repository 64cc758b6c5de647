package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/akyuz-dev/product-search-api/internal/service"
	"github.com/akyuz-dev/product-search-api/pkg/health"
	"github.com/akyuz-dev/product-search-api/pkg/middleware"
)

// RouterConfig carries the cross-cutting settings the router needs.
type RouterConfig struct {
	ServiceName    string
	Environment    string
	AllowedOrigins []string
	TracingEnabled bool
	PprofEnabled   bool
	PprofCIDRs     []string
}

// NewRouter creates a chi router with all API routes registered.
func NewRouter(
	cfg RouterConfig,
	products *service.ProductService,
	search *service.SearchService,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		Environment:    cfg.Environment,
	}))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	// Tracing must wrap RequestLogger so request-scoped log lines carry
	// trace and span ids.
	if cfg.TracingEnabled {
		r.Use(middleware.Tracing(cfg.ServiceName))
	}
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))

	// Operational endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	if cfg.PprofEnabled {
		middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)
	}

	productHandler := NewProductHandler(products, logger)
	searchHandler := NewSearchHandler(search, logger)

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/{id}", productHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON)
			r.Post("/", productHandler.Create)
			r.Post("/bulk", productHandler.CreateBulk)
			r.Put("/{id}", productHandler.Update)
			r.Delete("/{id}", productHandler.Delete)
		})
	})

	r.Route("/api/search", func(r chi.Router) {
		r.Get("/", searchHandler.SearchGet)
		r.Get("/suggestions", searchHandler.SuggestGet)

		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON)
			r.Post("/", searchHandler.Search)
			r.Post("/suggestions", searchHandler.Suggest)
		})
	})

	return r
}
