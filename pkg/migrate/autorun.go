package migrate

import (
	"context"
	"fmt"

	"github.com/gtlearning/storefront-backend/pkg/config"
	"github.com/gtlearning/storefront-backend/pkg/db"
	"github.com/gtlearning/storefront-backend/pkg/db/models"
	"github.com/gtlearning/storefront-backend/pkg/logger"
)

// MaybeRunDev applies schema automatically when running in dev mode
// with the auto-migrate flag enabled. SQLite setups use GORM
// AutoMigrate; Postgres runs the versioned goose migrations.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	if cfg.FeatureFlags.UseSQLite || cfg.DB.Driver == "sqlite" {
		logg.Info(ctx, "auto-migrating sqlite schema")
		return client.DB().AutoMigrate(
			&models.Product{},
			&models.Order{},
			&models.OrderLineItem{},
			&models.Quote{},
			&models.QuoteLineItem{},
			&models.QuoteCounter{},
		)
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dir": DefaultDir})
	logg.Info(ctx, "running goose migrations (dev auto-run)")

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}
