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

	"ordertracking/cmd"
	httpadapter "ordertracking/internal/adapters/in/http"
	"ordertracking/internal/telemetry"
	"ordertracking/migrations"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := func(context.Context) error { return nil }
	if configs.TracingEnabled {
		var err error
		shutdownTracing, err = telemetry.InitTracerProvider(ctx, configs.OTLPEndpoint, configs.ServiceName, configs.ServiceVersion)
		if err != nil {
			log.Fatalf("Failed to init tracing: %v", err)
		}
	}

	metricsHandler, shutdownMetrics, err := telemetry.InitMeterProvider(configs.ServiceName, configs.ServiceVersion)
	if err != nil {
		log.Fatalf("Failed to init metrics: %v", err)
	}

	sqlDB, err := telemetry.OpenDB(configs.DSN(), configs.PoolConfig())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err = sqlDB.PingContext(ctx); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if configs.MigrateOnStart {
		if err = migrations.Up(sqlDB); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
	}

	gormDB, err := telemetry.OpenGorm(sqlDB)
	if err != nil {
		log.Fatalf("Failed to open gorm: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	e, err := httpadapter.NewRouter(httpadapter.Routes{
		API:         app.CreateHTTPServer(),
		OrderStream: app.CreateWebsocketHandler().ServeOrder,
		Metrics:     metricsHandler,
	}, configs.ServiceName, logger)
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	go func() {
		logger.Info("starting order tracking service", "port", configs.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), configs.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", "error", err)
	}
	jobManager.StopAll()
	if err := app.Close(shutdownCtx); err != nil {
		logger.Error("application shutdown error", "error", err)
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}
	if err := shutdownMetrics(shutdownCtx); err != nil {
		logger.Error("metrics shutdown error", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing shutdown error", "error", err)
	}
}

func getConfigs() cmd.Config {
	// a missing .env is fine; the environment alone may carry the configuration
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return config
}
