package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/clinicbook/admin-console/internal/adapters/database"
	"github.com/clinicbook/admin-console/internal/adapters/store"
	"github.com/clinicbook/admin-console/internal/api/handlers"
	"github.com/clinicbook/admin-console/internal/api/routes"
	"github.com/clinicbook/admin-console/internal/application/projections"
	"github.com/clinicbook/admin-console/internal/application/services"
	"github.com/clinicbook/admin-console/internal/domain/providers"
	"github.com/clinicbook/admin-console/internal/domain/repositories"
	mongoclient "github.com/clinicbook/admin-console/internal/infrastructure/clients/mongo"
	"github.com/clinicbook/admin-console/internal/infrastructure/clients/postgres"
	redisclient "github.com/clinicbook/admin-console/internal/infrastructure/clients/redis"
	"github.com/clinicbook/admin-console/internal/infrastructure/observability"
	"github.com/clinicbook/admin-console/pkg/config"
)

func main() {
	// Load .env if present; real environments configure via the process env.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger("admin-console", cfg.Log.Env)
	log.Info().Str("backend", cfg.Store.Backend).Msg("starting admin console")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the document store backend
	docStore, cleanup, err := buildStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize document store")
	}
	defer cleanup()

	// Initialize the audit trail when the Postgres sink is enabled
	var auditRepo repositories.AuditRepository
	if cfg.Database.Enabled {
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
		}
		defer pgClient.Close()
		auditAdapter := database.NewAuditAdapter(pgClient)
		if err := auditAdapter.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to ensure audit schema")
		}
		auditRepo = auditAdapter
		log.Info().Msg("audit trail enabled")
	}

	// Start the live projections
	aggregator := projections.NewAggregator(docStore)
	if err := aggregator.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start projections")
	}
	defer aggregator.Stop()

	// Initialize services
	ratingService := services.NewRatingService(docStore)
	appointmentService := services.NewAppointmentService(docStore, auditRepo)
	doctorService := services.NewDoctorService(docStore, auditRepo)
	reviewService := services.NewReviewService(docStore, aggregator, ratingService, auditRepo)

	// Initialize handlers
	dashboardHandler := handlers.NewDashboardHandler(aggregator)
	streamHandler := handlers.NewStreamHandler(aggregator)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService, aggregator)
	doctorHandler := handlers.NewDoctorHandler(doctorService, aggregator)
	reviewHandler := handlers.NewReviewHandler(reviewService, aggregator)
	userHandler := handlers.NewUserHandler(aggregator)
	adminHandler := handlers.NewAdminHandler(aggregator)
	auditHandler := handlers.NewAuditHandler(auditRepo)

	// Set up router
	router := routes.NewRouter(
		dashboardHandler,
		streamHandler,
		appointmentHandler,
		doctorHandler,
		reviewHandler,
		userHandler,
		adminHandler,
		auditHandler,
	)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // No timeout for SSE streaming
		IdleTimeout:  120 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("admin console listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("admin console shutting down")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("admin console stopped")
}

// buildStore constructs the configured document store backend. The returned
// cleanup closes the store and any backing client.
func buildStore(cfg *config.Config) (providers.DocumentStore, func(), error) {
	switch cfg.Store.Backend {
	case "memory":
		s := store.NewMemoryStore()
		return s, func() { s.Close() }, nil

	case "redis":
		client, err := redisclient.NewClient(&cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		s := store.NewRedisStore(client)
		return s, func() {
			s.Close()
			client.Close()
		}, nil

	case "mongo":
		client, err := mongoclient.NewClient(&cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		s := store.NewMongoStore(client)
		return s, func() {
			s.Close()
			client.Close()
		}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
