package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/", s.handleRoot)
	r.Get("/api/health", s.handleHealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Get("/classes", s.handleClasses)
		r.Post("/search", s.handleSearchRequest)
		r.Get("/search/{jobID}", s.handleJobStatus)
		r.Get("/documents", s.handleListDocuments)
		r.Get("/documents/{docID}/download", s.handleDownloadDocument)
		r.Delete("/documents/{docID}", s.handleDeleteDocument)
		r.Post("/reports", s.handleCreateReport)
		r.Get("/reports/{reportID}/download", s.handleDownloadReport)
		r.Get("/charts", s.handleCharts)
	})

	return r
}
