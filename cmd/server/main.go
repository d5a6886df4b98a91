package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pesio-ai/be-hr-leave/internal/client"
	"github.com/pesio-ai/be-hr-leave/internal/config"
	"github.com/pesio-ai/be-hr-leave/internal/database"
	"github.com/pesio-ai/be-hr-leave/internal/directory"
	"github.com/pesio-ai/be-hr-leave/internal/handler"
	"github.com/pesio-ai/be-hr-leave/internal/logger"
	"github.com/pesio-ai/be-hr-leave/internal/middleware"
	"github.com/pesio-ai/be-hr-leave/internal/repository"
	"github.com/pesio-ai/be-hr-leave/internal/service"
)

const readinessInterval = 5 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Service.Environment,
		ServiceName: cfg.Service.Name,
		Version:     cfg.Service.Version,
	})

	log.Info().
		Str("service", cfg.Service.Name).
		Str("version", cfg.Service.Version).
		Str("environment", cfg.Service.Environment).
		Str("storage", cfg.Storage.Driver).
		Msg("Starting HR Leave Service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Directory seed
	seed := directory.SampleUsers()
	if cfg.DirectorySeedPath != "" {
		seed, err = directory.LoadFile(cfg.DirectorySeedPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DirectorySeedPath).Msg("Failed to load directory seed")
		}
	}

	// Initialize storage
	var (
		leaveRepo  service.LeaveRepositoryInterface
		dir        service.DirectoryInterface
		readyCheck func(context.Context) error
	)

	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		db, err := database.New(ctx, database.Config{
			Host:        cfg.Database.Host,
			Port:        cfg.Database.Port,
			User:        cfg.Database.User,
			Password:    cfg.Database.Password,
			Database:    cfg.Database.Database,
			SSLMode:     cfg.Database.SSLMode,
			MaxConns:    cfg.Database.MaxConns,
			MinConns:    cfg.Database.MinConns,
			MaxConnTime: cfg.Database.MaxConnTime,
			MaxIdleTime: cfg.Database.MaxIdleTime,
			HealthCheck: cfg.Database.HealthCheck,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply database schema")
		}
		log.Info().Msg("Database connection established")

		pgDir := directory.NewPostgresDirectory(db)
		if err := pgDir.Seed(ctx, seed); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed directory")
		}
		dir = pgDir
		leaveRepo = repository.NewLeaveRepository(db)
		readyCheck = db.Ping
	default:
		dir = directory.NewMemoryDirectory(seed...)
		leaveRepo = repository.NewMemoryLeaveRepository()
	}
	log.Info().Int("users", len(seed)).Msg("Directory loaded")

	// Notification events
	var events service.EventPublisher
	if cfg.NATS.URL != "" {
		publisher, err := client.NewNotificationPublisher(cfg.NATS.URL, cfg.NATS.SubjectPrefix, cfg.NATS.Timeout, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to NATS")
		}
		defer publisher.Close()
		events = publisher
		log.Info().Str("url", cfg.NATS.URL).Str("prefix", cfg.NATS.SubjectPrefix).Msg("Notification publisher initialized")
	}

	// Initialize services
	leaveService := service.NewLeaveService(leaveRepo, dir, events, log)

	// Setup HTTP routes
	health := handler.NewHealth(readyCheck)
	httpHandler := handler.NewHTTPHandler(leaveService, log)

	router := chi.NewRouter()
	router.Use(middleware.Stack(&log.Logger, middleware.Options{
		Timeout: cfg.Server.RequestTimeout,
		RPS:     cfg.RateLimit.RPS,
		Burst:   cfg.RateLimit.Burst,
	})...)
	router.Get("/health", health.Live)
	router.Get("/readyz", health.Readyz)
	router.Mount("/api/v1", httpHandler.Routes())

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("HTTP server failed")
		}
	}()

	// Start gRPC server
	grpcServer, grpcHealth := handler.NewGRPCServer(log.Logger)

	grpcListener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRPCPort))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create gRPC listener")
	}

	go func() {
		log.Info().Int("port", cfg.Server.GRPCPort).Msg("Starting gRPC server")
		if err := grpcServer.Serve(grpcListener); err != nil {
			log.Error().Err(err).Msg("gRPC server failed")
		}
	}()

	health.SetReady(true)
	go handler.WatchReadiness(ctx, health, grpcHealth, readinessInterval)
	log.Info().Msg("Service ready")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	health.SetReady(false)
	cancel()
	handler.SetServing(grpcHealth, false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	// Stop gRPC server gracefully
	grpcServer.GracefulStop()

	log.Info().Msg("Server stopped")
}
