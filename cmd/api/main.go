package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tolkflow/tolkflow-backend/api/controllers"
	"github.com/tolkflow/tolkflow-backend/api/routes"
	"github.com/tolkflow/tolkflow-backend/internal/discounts"
	"github.com/tolkflow/tolkflow-backend/internal/pricing"
	"github.com/tolkflow/tolkflow-backend/internal/quotes"
	"github.com/tolkflow/tolkflow-backend/internal/skills"
	"github.com/tolkflow/tolkflow-backend/internal/vendors"
	"github.com/tolkflow/tolkflow-backend/pkg/config"
	"github.com/tolkflow/tolkflow-backend/pkg/db"
	"github.com/tolkflow/tolkflow-backend/pkg/logger"
	"github.com/tolkflow/tolkflow-backend/pkg/metrics"
	"github.com/tolkflow/tolkflow-backend/pkg/migrate"
	"github.com/tolkflow/tolkflow-backend/pkg/pubsub"
	"github.com/tolkflow/tolkflow-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	pricingMetrics := metrics.NewPricingMetrics(registry)

	pingers := map[string]controllers.HealthPinger{
		"database": dbClient,
		"redis":    redisClient,
	}

	var publisher pricing.EventPublisher = pricing.NewEventPublisher(nil, logg)
	if cfg.PubSub.Enabled() {
		psClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer func() {
			if err := psClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()
		pingers["pubsub"] = psClient
		publisher = pricing.NewEventPublisher(psClient.PriceEventsPublisher(), logg)
	}

	skillService, err := skills.NewService(skills.NewRepository(dbClient.DB()), redisClient, cfg.Catalog.SkillCacheTTL, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create skill service", err)
		os.Exit(1)
	}

	discountService, err := discounts.NewService(discounts.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create discount service", err)
		os.Exit(1)
	}

	vendorService, err := vendors.NewService(vendors.NewRepository(dbClient.DB()), discountService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create vendor service", err)
		os.Exit(1)
	}

	quoteService, err := quotes.NewService(discountService, pricingMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create quote service", err)
		os.Exit(1)
	}

	pricingService, err := pricing.NewService(
		pricing.NewRepository(dbClient.DB()),
		skillService,
		publisher,
		pricingMetrics,
		logg,
		cfg.Pricing.DispatchTimeout,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			HTTPMetrics: httpMetrics,
			MetricsHTTP: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			Pingers:     pingers,
			Vendors:     vendorService,
			Skills:      skillService,
			Discounts:   discountService,
			Quotes:      quoteService,
			Pricing:     pricingService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
