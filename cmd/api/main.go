package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gtlearning/storefront-backend/api/controllers"
	"github.com/gtlearning/storefront-backend/api/routes"
	"github.com/gtlearning/storefront-backend/internal/cart"
	"github.com/gtlearning/storefront-backend/internal/catalog"
	"github.com/gtlearning/storefront-backend/internal/orders"
	"github.com/gtlearning/storefront-backend/internal/quotes"
	"github.com/gtlearning/storefront-backend/pkg/config"
	"github.com/gtlearning/storefront-backend/pkg/db"
	"github.com/gtlearning/storefront-backend/pkg/enums"
	"github.com/gtlearning/storefront-backend/pkg/logger"
	"github.com/gtlearning/storefront-backend/pkg/metrics"
	"github.com/gtlearning/storefront-backend/pkg/migrate"
	"github.com/gtlearning/storefront-backend/pkg/redis"
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

	catalogRepo := catalog.NewRepository(dbClient.DB())
	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(
		cart.NewRedisStore(redisClient),
		catalogRepo,
		cfg.Checkout.CartSnapshotTTL,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	defaultCurrency := enums.Currency(cfg.Checkout.DefaultCurrency)
	ordersService, err := orders.NewService(
		orders.NewRepository(dbClient.DB()),
		dbClient,
		catalogRepo,
		logg,
		defaultCurrency,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	quotesService, err := quotes.NewService(
		quotes.NewRepository(dbClient.DB()),
		dbClient,
		catalogRepo,
		logg,
		quotes.Config{
			ReferencePrefix: cfg.Checkout.QuoteRefPrefix,
			Validity:        cfg.Checkout.QuoteValidity,
			DefaultCurrency: defaultCurrency,
		},
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create quotes service", err)
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
			Metrics:     metrics.NewHTTPMetrics(prometheus.DefaultRegisterer),
			Idempotency: redisClient,
			Pingers: map[string]controllers.Pinger{
				"database": dbClient,
				"redis":    redisClient,
			},
			Catalog: catalogService,
			Cart:    cartService,
			Orders:  ordersService,
			Quotes:  quotesService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
