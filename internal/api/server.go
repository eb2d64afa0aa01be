package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"docuscraper/internal/config"
	"docuscraper/internal/pipeline"
	"docuscraper/internal/registry"
	"docuscraper/internal/report"
	"docuscraper/internal/store"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	config       *config.Config
	router       http.Handler
	httpServer   *http.Server
	orchestrator *pipeline.Orchestrator
	registry     *registry.Registry
	jobs         store.Jobs
	documents    store.Documents
	reports      store.Reports
	generator    *report.Generator
	logger       *zap.Logger
}

func NewServer(cfg *config.Config, o *pipeline.Orchestrator, reg *registry.Registry,
	jobs store.Jobs, documents store.Documents, reports store.Reports,
	generator *report.Generator, l *zap.Logger) *Server {

	s := &Server{
		config:       cfg,
		orchestrator: o,
		registry:     reg,
		jobs:         jobs,
		documents:    documents,
		reports:      reports,
		generator:    generator,
		logger:       l,
	}
	s.router = s.setupRouter()
	return s
}

func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", s.config.ServerPort),
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
