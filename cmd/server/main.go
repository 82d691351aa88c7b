package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/brandpulse/monitor/internal/analysis"
	"github.com/brandpulse/monitor/internal/api"
	"github.com/brandpulse/monitor/internal/config"
	"github.com/brandpulse/monitor/internal/monitoring"
	"github.com/brandpulse/monitor/internal/notifications"
	"github.com/brandpulse/monitor/internal/repository"
	"github.com/brandpulse/monitor/internal/scheduler"
	"github.com/brandpulse/monitor/internal/storage"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Info("Starting brand monitor")

	// Initialize persistence
	var repo repository.Repository
	if cfg.DatabaseURL != "" {
		pg, err := repository.NewPostgresRepository(cfg.DatabaseURL)
		if err != nil {
			logrus.Fatalf("Failed to initialize database: %v", err)
		}
		defer pg.Close()
		repo = pg
	} else {
		logrus.Info("No DATABASE_URL configured, using in-memory repository")
		repo = repository.NewMemoryRepository()
	}

	// Initialize optional snapshot archive
	var archive storage.Interface
	if cfg.StorageAccount != "" {
		archive, err = storage.NewAzureArchive(cfg.StorageAccount, cfg.StorageContainer)
		if err != nil {
			logrus.Fatalf("Failed to initialize snapshot archive: %v", err)
		}
	}

	// Initialize the sentiment pipeline; the model strategy degrades to
	// the lexicon when no endpoint is configured or inference fails
	modelScorer := analysis.NewModelScorer(cfg.ModelEndpoint, cfg.ModelName)
	sentimentScorer := analysis.NewFallbackScorer(modelScorer)
	if modelScorer.Available() {
		logrus.Infof("Sentiment model strategy enabled: %s", cfg.ModelName)
	} else {
		logrus.Info("No model endpoint configured, using lexicon sentiment strategy")
	}

	// Initialize notification and monitoring services
	notificationService := notifications.NewService(cfg)
	monitoringService := monitoring.NewService(cfg, repo, notificationService, archive, sentimentScorer)

	// Start scheduler
	schedulerService := scheduler.NewService(cfg, monitoringService)
	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	// Set up HTTP server
	apiServer := api.NewServer(cfg, repo, monitoringService)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      apiServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server in a goroutine
	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
