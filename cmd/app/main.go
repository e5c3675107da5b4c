package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tracker/cmd"
	httpin "tracker/internal/adapters/in/http"
	"tracker/internal/adapters/out/kafka"
	"tracker/internal/adapters/out/postgres"
	"tracker/internal/adapters/out/redislock"
	"tracker/internal/pkg/observability"

	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger := newLogger(configs.LogFormat)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, configs, logger); err != nil {
		logger.Error("Tracker stopped with error", "error", err)
		os.Exit(1)
	}
}

func newLogger(format string) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func run(ctx context.Context, configs cmd.Config, logger *slog.Logger) error {
	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	redisClient, err := redislock.NewClient(ctx, configs.RedisAddr)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	producer := kafka.NewOrderEventsProducer(configs.KafkaBrokers, configs.KafkaOrderEventsTopic, logger)
	defer func() {
		if closeErr := producer.Close(); closeErr != nil {
			logger.Error("Failed to close order events producer", "error", closeErr)
		}
	}()

	metrics := observability.NewMetrics()
	locker := redislock.NewVehicleLocker(redisClient, configs.LockMaxWait, logger)
	app := cmd.NewCompositionRoot(configs, gormDB, locker, producer, metrics, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := httpin.NewRouter(httpin.RouterConfig{
		Server:             httpin.NewServer(app.CreateHandlers(), logger),
		Resolver:           app.CreateScopeResolver(),
		JWTSecret:          configs.JWTSecret,
		RateLimitPerMinute: configs.RateLimitPerMinute,
		Production:         configs.IsProduction(),
		Metrics:            metrics,
		Logger:             logger,
	})
	if err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case err = <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
