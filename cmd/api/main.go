package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/astrosocial-backend/api/routes"
	"github.com/angelmondragon/astrosocial-backend/pkg/config"
	"github.com/angelmondragon/astrosocial-backend/pkg/db"
	"github.com/angelmondragon/astrosocial-backend/pkg/email"
	"github.com/angelmondragon/astrosocial-backend/pkg/logger"
	"github.com/angelmondragon/astrosocial-backend/pkg/migrate"
	"github.com/angelmondragon/astrosocial-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	boot := logger.New(logger.Options{ServiceName: "api"})
	if err := godotenv.Load(); err != nil {
		boot.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		boot.Error(context.Background(), "config.load_failed", err)
		os.Exit(1)
	}
	logg := logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "api.exit", err)
		os.Exit(1)
	}
}

// run owns every resource the api process opens and releases them in reverse order.
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

	mailer, err := email.NewSender(cfg, logg)
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	services, err := routes.NewServices(routes.ServiceParams{
		Config:   cfg,
		DB:       dbClient.DB(),
		Mailer:   mailer,
		Registry: reg,
		Logger:   logg,
	})
	if err != nil {
		return fmt.Errorf("services: %w", err)
	}

	// PORT wins over ASTRO_PORT so hosted platforms can assign one.
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	server := &http.Server{
		Addr: ":" + port,
		Handler: routes.NewRouter(cfg, logg, services, routes.Infra{
			DB:       dbClient,
			Redis:    redisClient,
			Gatherer: reg,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logCtx := logg.WithFields(ctx, logger.Fields{"env": cfg.App.Env, "addr": server.Addr})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logg.Info(logCtx, "api.listening")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logg.Info(logCtx, "api.shutting_down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
