package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bid-ledger-api/internal/config"
	"bid-ledger-api/internal/controller"
	"bid-ledger-api/internal/repo"
	"bid-ledger-api/internal/repo/memdb"
	"bid-ledger-api/internal/service"
	"bid-ledger-api/pkg/clock"
	"bid-ledger-api/pkg/http_server"
	"bid-ledger-api/pkg/logger"
	"bid-ledger-api/pkg/metrics"
	"bid-ledger-api/pkg/postgres"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func runMigrations(pg *postgres.Postgres, sourceUrl string, databaseName string, log *slog.Logger) error {
	driver, err := pgmigrate.WithInstance(pg.Database, &pgmigrate.Config{DatabaseName: databaseName})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	migrations, err := migrate.NewWithDatabaseInstance(sourceUrl, databaseName, driver)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	if err := migrations.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("apply migrations: %w", err)
		}
		log.Info("no change made by migration scripts")
	}

	return nil
}

// newRepositories builds the storage backend chosen by the configuration.
// The returned func releases it.
func newRepositories(cfg *config.Config, log *slog.Logger) (*repo.Repositories, func(), error) {
	if cfg.Storage == config.StoragePostgres {
		log.Info("connecting database")
		pg, err := postgres.NewDB(cfg.PostgresConn)
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}

		log.Info("running migrations", slog.String("source", cfg.MigrationsSource))
		if err := runMigrations(pg, cfg.MigrationsSource, cfg.PostgresDatabase, log); err != nil {
			pg.Close()
			return nil, nil, err
		}

		closeDB := func() {
			if err := pg.Close(); err != nil {
				log.Error("close database", slog.Any("error", err))
			}
		}

		return repo.NewRepositories(pg), closeDB, nil
	}

	registry := memdb.NewRegistry()
	accounts := memdb.NewAccounts()
	if cfg.RegistrySeedFile != "" {
		log.Info("loading registry seed", slog.String("file", cfg.RegistrySeedFile))
		seed, err := memdb.LoadSeedFile(cfg.RegistrySeedFile)
		if err != nil {
			return nil, nil, err
		}
		if err := seed.Apply(registry, accounts); err != nil {
			return nil, nil, fmt.Errorf("apply seed: %w", err)
		}
	}

	return repo.NewInMemoryRepositories(registry, accounts), func() {}, nil
}

func requestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			req := c.Request()
			log.InfoContext(req.Context(), "request",
				slog.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.Int("status", c.Response().Status),
				slog.Duration("latency", time.Since(start)))

			return err
		}
	}
}

func newHandler(services *service.Services, reg *prometheus.Registry, log *slog.Logger) *echo.Echo {
	handler := echo.New()
	handler.HideBanner = true
	handler.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	handler.Use(requestLogger(log))
	handler.Use(middleware.Recover())

	handler.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	controller.SetupRoutesHandlers(handler, services, clock.Unix{})

	return handler
}

func Run() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(log)

	repositories, closeStorage, err := newRepositories(cfg, log)
	if err != nil {
		log.Error("storage setup failed", slog.String("storage", cfg.Storage), slog.Any("error", err))
		os.Exit(1)
	}
	defer closeStorage()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	services := service.NewServices(repositories,
		service.WithLogger(log),
		service.WithMetrics(metrics.New(reg)),
		service.WithMaxBidsPerProject(cfg.MaxBidsPerProject),
		service.WithHoldingAccount(cfg.HoldingAccount),
		service.WithAuthority(cfg.Authority),
	)

	log.Info("setup routes")
	handler := newHandler(services, reg, log)

	log.Info("starting server", slog.String("address", cfg.ServerAddress), slog.String("storage", cfg.Storage))
	httpServer := http_server.New(handler, cfg.ServerAddress)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("got signal", slog.String("signal", s.String()))
	case err = <-httpServer.Notify():
		log.Error("server stopped", slog.Any("error", err))
	}

	log.Info("shutting down")
	if err := httpServer.Shutdown(); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		return
	}
	log.Info("successful shutdown")
}
