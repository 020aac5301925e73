package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/astrosocial-backend/pkg/config"
	"github.com/angelmondragon/astrosocial-backend/pkg/db"
	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	"github.com/angelmondragon/astrosocial-backend/pkg/logger"
)

// ApplySchema brings the database to the latest schema. Postgres runs the goose
// files in dir; sqlite is built from the gorm models since those files are
// Postgres SQL.
func ApplySchema(ctx context.Context, client *db.Client, driver, dir string, logg *logger.Logger) error {
	if driver == db.DriverSQLite {
		if err := client.DB().WithContext(ctx).AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("sqlite automigrate: %w", err)
		}
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}
	runner, err := NewRunner(sqlDB, driver, dir, logg)
	if err != nil {
		return err
	}
	return runner.Up(ctx)
}

// MaybeRunDev applies the schema on boot when running in dev with auto-migrate on.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}
	ctx = logg.WithFields(ctx, logger.Fields{"env": cfg.App.Env, "driver": cfg.DB.Driver})
	logg.Info(ctx, "migrate.dev_autorun")
	if err := ApplySchema(ctx, client, cfg.DB.Driver, DefaultDir, logg); err != nil {
		return err
	}
	logg.Info(ctx, "migrate.dev_autorun_complete")
	return nil
}
