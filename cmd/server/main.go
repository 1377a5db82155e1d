package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-content-api/internal/api"
	"github.com/portfolio-content-api/internal/config"
	"github.com/portfolio-content-api/internal/database"
	"github.com/portfolio-content-api/internal/feed"
	"github.com/portfolio-content-api/internal/repository"
	"github.com/portfolio-content-api/internal/service"
	"github.com/portfolio-content-api/pkg/logger"
	"github.com/rs/zerolog"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	log.Info().Msg("Starting portfolio content API server...")

	if !strings.EqualFold(cfg.Log.Level, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	repos := repository.New(db)

	// Change bus: redis when configured, in-process otherwise
	bus, err := newBus(cfg.Feed, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect change bus")
	}
	defer bus.Close()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	hub := feed.NewHub(repos.Documents, cfg.Feed.ReadTimeout, log)
	if err := hub.Start(ctx, bus); err != nil {
		log.Fatal().Err(err).Msg("Failed to start feed hub")
	}
	defer hub.Close()

	// Writes must reach live subscribers
	repos.Documents = feed.NewNotifyingRepository(repos.Documents, bus, log)

	// Initialize services
	services, err := service.NewServices(repos, hub, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to mount sections")
	}
	log.Info().Strs("sections", services.Site.Sections()).Msg("Sections mounted")

	// Initialize router
	router := api.NewRouter(services, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Tear sections down first so open streams end
	services.Site.Close()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}

func newBus(cfg config.FeedConfig, log zerolog.Logger) (feed.Bus, error) {
	if cfg.RedisAddr == "" {
		log.Info().Msg("Using in-process change bus")
		return feed.NewMemoryBus(), nil
	}
	return feed.NewRedisBus(feed.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		Channel:  cfg.RedisChannel,
	}, log)
}
