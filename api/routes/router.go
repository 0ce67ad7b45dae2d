package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tolkflow/tolkflow-backend/api/controllers"
	"github.com/tolkflow/tolkflow-backend/api/middleware"
	"github.com/tolkflow/tolkflow-backend/internal/discounts"
	"github.com/tolkflow/tolkflow-backend/internal/pricing"
	"github.com/tolkflow/tolkflow-backend/internal/quotes"
	"github.com/tolkflow/tolkflow-backend/internal/skills"
	"github.com/tolkflow/tolkflow-backend/internal/vendors"
	"github.com/tolkflow/tolkflow-backend/pkg/config"
	"github.com/tolkflow/tolkflow-backend/pkg/logger"
	"github.com/tolkflow/tolkflow-backend/pkg/metrics"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	HTTPMetrics *metrics.HTTPMetrics
	MetricsHTTP http.Handler

	Pingers map[string]controllers.HealthPinger

	Vendors   vendors.Service
	Skills    skills.Service
	Discounts discounts.Service
	Quotes    quotes.Service
	Pricing   pricing.Service
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	logg := deps.Logger

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, logg, deps.Pingers))
	})

	metricsHandler := deps.MetricsHTTP
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/skills", controllers.ListSkills(deps.Skills, logg))

		r.Route("/discounts", func(r chi.Router) {
			r.Get("/default", controllers.GetDefaultDiscounts(deps.Discounts, logg))
			r.Put("/default", controllers.UpdateDefaultDiscounts(deps.Discounts, logg))
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", controllers.ListVendors(deps.Vendors, logg))
			r.Post("/", controllers.CreateVendor(deps.Vendors, logg))

			r.Route("/{vendorID}", func(r chi.Router) {
				r.Get("/", controllers.GetVendor(deps.Vendors, logg))
				r.Get("/discounts", controllers.GetVendorDiscounts(deps.Discounts, logg))
				r.Put("/discounts", controllers.UpdateVendorDiscounts(deps.Discounts, logg))
				r.Post("/quotes", controllers.VendorQuote(deps.Quotes, logg))
				r.Get("/price-list", controllers.GetPriceList(deps.Pricing, logg))
				r.Put("/price-list", controllers.SubmitPriceList(deps.Pricing, logg))
			})
		})
	})

	return r
}
