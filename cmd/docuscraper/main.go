package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"docuscraper/internal/api"
	"docuscraper/internal/config"
	"docuscraper/internal/fetch"
	"docuscraper/internal/monitoring"
	"docuscraper/internal/pipeline"
	"docuscraper/internal/registry"
	"docuscraper/internal/report"
	"docuscraper/internal/search"
	"docuscraper/internal/store"
	"docuscraper/internal/validate"
)

func main() {
	// Initialize structured logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("could not load config", zap.Error(err))
	}

	// Document class registry, optionally overridden from file
	reg := registry.New()
	if cfg.DocClassesFile != "" {
		reg, err = registry.LoadFile(cfg.DocClassesFile)
		if err != nil {
			logger.Fatal("could not load document classes", zap.Error(err))
		}
	}

	// Initialize Monitoring
	metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer)

	// Initialize Core Pipeline
	provider := search.NewFirecrawlClient(cfg, metrics, logger)
	fetcher := fetch.New(cfg, metrics, logger)
	validator := validate.New(metrics, logger)
	orchestrator := pipeline.New(reg, provider, fetcher, validator, logger)

	// Transient stores and report generator
	jobs := store.NewJobStore()
	documents := store.NewDocumentStore()
	reports := store.NewReportStore()
	generator := report.NewGenerator(filepath.Join(filepath.Dir(cfg.DataDir), "reports"), logger)

	// Initialize API Server
	server := api.NewServer(cfg, orchestrator, reg, jobs, documents, reports, generator, logger)

	// Graceful Shutdown
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	logger.Info("server started", zap.String("port", cfg.ServerPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}
