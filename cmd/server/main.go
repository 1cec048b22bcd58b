package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/fundscope/internal/clientdata"
	"github.com/aristath/fundscope/internal/clients/mfapi"
	"github.com/aristath/fundscope/internal/config"
	"github.com/aristath/fundscope/internal/database"
	"github.com/aristath/fundscope/internal/modules/catalog"
	"github.com/aristath/fundscope/internal/modules/schemes"
	"github.com/aristath/fundscope/internal/scheduler"
	"github.com/aristath/fundscope/internal/server"
	"github.com/aristath/fundscope/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting Fundscope")

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Cache repository and provider client
	cache := clientdata.NewRepository(db.Conn(), cfg.CacheCapacity)
	provider := mfapi.NewClient(cfg.MFAPIBaseURL, cache, cfg.CatalogCacheTTL, cfg.SchemeCacheTTL, log)

	// Module services and handlers
	catalogHandler := catalog.NewHandler(catalog.NewService(provider, log), log)
	schemesHandler := schemes.NewHandler(schemes.NewService(provider, log), log)

	// Initialize scheduler
	sched := scheduler.New(log)
	sched.Start()
	defer sched.Stop()

	// Register background jobs
	if err := registerJobs(sched, provider, cache, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to register jobs")
	}

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:           cfg.Port,
		Log:            log,
		Cache:          cache,
		CatalogHandler: catalogHandler,
		SchemesHandler: schemesHandler,
		DevMode:        cfg.DevMode,
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func registerJobs(
	sched *scheduler.Scheduler,
	provider *mfapi.Client,
	cache *clientdata.Repository,
	log zerolog.Logger,
) error {
	// Keep the catalog warm so listing requests never block on upstream
	if err := sched.AddJob("@every 12h", scheduler.NewCatalogRefreshJob(provider, log)); err != nil {
		return err
	}

	// Sweep expired cache entries daily
	if err := sched.AddJob("@daily", clientdata.NewCleanupJob(cache, log)); err != nil {
		return err
	}

	return nil
}
