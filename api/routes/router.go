package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abenezer-t/bizpredict-backend/api/controllers"
	"github.com/abenezer-t/bizpredict-backend/api/middleware"
	"github.com/abenezer-t/bizpredict-backend/internal/analytics"
	"github.com/abenezer-t/bizpredict-backend/pkg/config"
	"github.com/abenezer-t/bizpredict-backend/pkg/logger"
	"github.com/abenezer-t/bizpredict-backend/pkg/metrics"
)

// NewRouter wires the full HTTP surface around the analytics service.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	service analytics.Service,
	httpMetrics *metrics.HTTPMetrics,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
	)

	r.Get("/", controllers.Root())

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, service))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/stats", controllers.Stats(service, logg))
		r.Post("/forecast", controllers.Forecast(service, logg))
		r.Get("/insights", controllers.Insights(service, logg))
		r.Get("/products", controllers.Products(service, logg))
		r.Get("/regions", controllers.Regions(service, logg))
		r.Get("/segments", controllers.Segments(service, logg))
		r.Get("/categories", controllers.Categories(service, logg))
		r.Get("/trends", controllers.Trends(service, logg))
		r.Get("/historical", controllers.Historical(service, logg))
	})

	return r
}
