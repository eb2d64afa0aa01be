package api

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"docuscraper/internal/domain"
	"docuscraper/internal/report"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respondWithJSON(w, http.StatusOK, map[string]string{
		"name":        "docuscraper",
		"version":     "1.0.0",
		"description": "Service for searching, downloading, and classifying document files from the web",
	})
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	s.respondWithJSON(w, http.StatusOK, map[string]any{
		"status":          "healthy",
		"timestamp":       time.Now().Format(time.RFC3339),
		"jobs":            s.jobs.Count(),
		"documents_count": s.documents.Count(),
	})
}

func (s *Server) handleClasses(w http.ResponseWriter, r *http.Request) {
	grouped := map[string][]domain.DocumentClass{
		"company":    s.registry.ByCategory("company"),
		"individual": s.registry.ByCategory("individual"),
	}
	s.respondWithJSON(w, http.StatusOK, grouped)
}

func (s *Server) handleSearchRequest(w http.ResponseWriter, r *http.Request) {
	var req domain.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	class, ok := s.registry.Get(req.DocClass)
	if !ok {
		s.respondWithError(w, http.StatusBadRequest, "Invalid document class: "+req.DocClass)
		return
	}

	job := domain.Job{
		ID:        uuid.NewString(),
		DocClass:  class.ID,
		Status:    domain.JobStatusQueued,
		StartTime: time.Now(),
	}
	s.jobs.Insert(job)

	go s.runAcquisition(job.ID, class.ID, req)

	s.respondWithJSON(w, http.StatusAccepted, job)
}

// runAcquisition executes one acquisition job in the background and
// records its outcome in the stores.
func (s *Server) runAcquisition(jobID, docClassID string, req domain.SearchRequest) {
	s.jobs.Update(jobID, func(j *domain.Job) {
		j.Status = domain.JobStatusRunning
	})

	records := s.orchestrator.Acquire(context.Background(), docClassID, domain.AcquireOptions{
		Limit:          req.Limit,
		DeepValidation: req.DeepValidation,
		Parallel:       req.Parallel,
		MaxWorkers:     req.MaxWorkers,
	})

	for i := range records {
		records[i].ID = uuid.NewString()
		s.documents.Insert(records[i])
	}

	now := time.Now()
	s.jobs.Update(jobID, func(j *domain.Job) {
		j.Status = domain.JobStatusCompleted
		j.Completed = true
		j.EndTime = &now
		j.DocumentsFound = len(records)
		j.DocumentsDownloaded = len(records)
	})

	s.logger.Info("acquisition job finished",
		zap.String("job_id", jobID),
		zap.String("doc_class", docClassID),
		zap.Int("documents_downloaded", len(records)))
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job, ok := s.jobs.Get(jobID)
	if !ok {
		s.respondWithError(w, http.StatusNotFound, "Job not found: "+jobID)
		return
	}
	s.respondWithJSON(w, http.StatusOK, job)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docClass := r.URL.Query().Get("doc_class")
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	docs := s.documents.List(docClass, limit, offset)
	if docs == nil {
		docs = []domain.DocumentRecord{}
	}
	s.respondWithJSON(w, http.StatusOK, docs)
}

func (s *Server) handleDownloadDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	doc, ok := s.documents.Get(docID)
	if !ok {
		s.respondWithError(w, http.StatusNotFound, "Document not found: "+docID)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	http.ServeFile(w, r, doc.FilePath)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	doc, ok := s.documents.Get(docID)
	if !ok {
		s.respondWithError(w, http.StatusNotFound, "Document not found: "+docID)
		return
	}

	if err := os.Remove(doc.FilePath); err != nil && !os.IsNotExist(err) {
		s.logger.Error("failed to delete document file",
			zap.String("file_path", doc.FilePath), zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "Could not delete document file")
		return
	}
	s.documents.Delete(docID)

	s.respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Document " + docID + " deleted",
	})
}

func (s *Server) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	var req domain.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Format == "" {
		req.Format = "text"
	}
	if req.Format != "text" && req.Format != "docx" {
		s.respondWithError(w, http.StatusBadRequest, "Unsupported report format: "+req.Format)
		return
	}

	docs := s.documents.List(req.DocClass, 0, 0)
	if len(docs) == 0 {
		s.respondWithError(w, http.StatusNotFound, "No documents found")
		return
	}

	reportID := uuid.NewString()
	sum := report.Build(docs)

	var path string
	var err error
	switch req.Format {
	case "docx":
		path, err = s.generator.WriteDocx(reportID, sum, docs)
	default:
		path, err = s.generator.WriteText(reportID, sum, docs)
	}
	if err != nil {
		s.logger.Error("failed to generate report", zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "Error generating report")
		return
	}

	info := domain.ReportInfo{
		ReportID:      reportID,
		DocClass:      req.DocClass,
		Format:        req.Format,
		DocumentCount: len(docs),
		FilePath:      path,
		DownloadURL:   "/api/reports/" + reportID + "/download",
		Timestamp:     time.Now(),
	}
	s.reports.Insert(info)

	s.respondWithJSON(w, http.StatusOK, info)
}

func (s *Server) handleDownloadReport(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportID")
	info, ok := s.reports.Get(reportID)
	if !ok {
		s.respondWithError(w, http.StatusNotFound, "Report not found: "+reportID)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	http.ServeFile(w, r, info.FilePath)
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	docs := s.documents.List("", 0, 0)
	if err := report.RenderCharts(w, docs); err != nil {
		s.logger.Error("failed to render charts", zap.Error(err))
	}
}

// --- Helper Functions ---

func (s *Server) respondWithError(w http.ResponseWriter, code int, message string) {
	s.respondWithJSON(w, code, map[string]string{"error": message})
}

func (s *Server) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
