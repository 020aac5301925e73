package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/angelmondragon/astrosocial-backend/internal/catalog"
	"github.com/angelmondragon/astrosocial-backend/internal/cron"
	"github.com/angelmondragon/astrosocial-backend/internal/notifications"
	"github.com/angelmondragon/astrosocial-backend/internal/otp"
	"github.com/angelmondragon/astrosocial-backend/pkg/config"
	"github.com/angelmondragon/astrosocial-backend/pkg/db"
	"github.com/angelmondragon/astrosocial-backend/pkg/logger"
	"github.com/angelmondragon/astrosocial-backend/pkg/metrics"
	"github.com/angelmondragon/astrosocial-backend/pkg/migrate"
	"github.com/angelmondragon/astrosocial-backend/pkg/redis"
)

func main() {
	boot := logger.New(logger.Options{ServiceName: "cron-worker"})
	if err := godotenv.Load(); err != nil {
		boot.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		boot.Error(context.Background(), "config.load_failed", err)
		os.Exit(1)
	}
	logg := logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "cron.exit", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer func() { err = multierr.Append(err, dbClient.Close()) }()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return fmt.Errorf("dev migrations: %w", err)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer func() { err = multierr.Append(err, redisClient.Close()) }()

	lock, err := cron.NewRedisLock(redisClient, redisClient.LockKey("cron-worker"), cfg.Cron.LockTTL)
	if err != nil {
		return fmt.Errorf("cron lock: %w", err)
	}

	cronMetrics := metrics.NewCronJobMetrics(prometheus.DefaultRegisterer)
	entries, err := buildSchedule(cfg, logg, dbClient, cronMetrics)
	if err != nil {
		return fmt.Errorf("schedule: %w", err)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:  logg,
		Entries: entries,
		Lock:    lock,
		Metrics: cronMetrics,
		Tick:    cfg.Cron.Tick,
	})
	if err != nil {
		return err
	}

	ctx = logg.WithFields(ctx, logger.Fields{
		"env":  cfg.App.Env,
		"tick": cfg.Cron.Tick.String(),
		"jobs": service.Jobs(),
	})
	logg.Info(ctx, "cron.started")
	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func buildSchedule(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, m *metrics.CronJobMetrics) ([]cron.Entry, error) {
	conn := dbClient.DB()
	otpJob, err := cron.NewOTPExpiryJob(otp.NewRepository(conn), logg, m)
	if err != nil {
		return nil, err
	}
	subscriptionJob, err := cron.NewPlanSubscriptionExpiryJob(catalog.NewSubscriptionExpirer(conn), logg, m)
	if err != nil {
		return nil, err
	}
	retentionJob, err := cron.NewNotificationRetentionJob(notifications.NewRepository(conn), cfg.Notifications.ReadRetention, logg, m)
	if err != nil {
		return nil, err
	}
	return []cron.Entry{
		cron.Every(otpJob, cfg.Cron.OTPSweepEvery),
		cron.Every(subscriptionJob, cfg.Cron.SubscriptionEvery),
		cron.Every(retentionJob, cfg.Cron.RetentionEvery),
	}, nil
}
