package domain

import "time"

// DocumentClass describes one acquirable category of document and how to
// search for it. Loaded once at startup and treated as read-only.
type DocumentClass struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"` // "company" or "individual"
	FileTypes     []string `json:"file_types"`
	SearchQueries []string `json:"search_queries"`
	Keywords      []string `json:"keywords"`
}

// SearchResult is one candidate URL returned by the search provider.
// DocClass is assigned by the orchestrator, not the provider.
type SearchResult struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	DocClass string `json:"doc_class"`
}

// DocumentRecord is the metadata for one successfully downloaded file.
// Validated is tri-state: nil means not yet checked.
type DocumentRecord struct {
	ID                 string    `json:"id,omitempty"`
	DocClass           string    `json:"doc_class"`
	Title              string    `json:"title"`
	URL                string    `json:"url"`
	FilePath           string    `json:"file_path"`
	FileType           string    `json:"file_type"`
	FileSize           int64     `json:"file_size"`
	MIMEType           string    `json:"mime_type,omitempty"`
	Timestamp          time.Time `json:"timestamp"`
	DownloadSuccessful bool      `json:"download_successful"`
	Validated          *bool     `json:"validated"`
}

// AcquireOptions controls a single acquisition run.
type AcquireOptions struct {
	Limit          int
	DeepValidation bool
	Parallel       bool
	MaxWorkers     int
}

type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// Job tracks one background acquisition request.
type Job struct {
	ID                  string     `json:"job_id"`
	DocClass            string     `json:"doc_class"`
	Status              JobStatus  `json:"status"`
	StartTime           time.Time  `json:"start_time"`
	EndTime             *time.Time `json:"end_time,omitempty"`
	Completed           bool       `json:"completed"`
	DocumentsFound      int        `json:"documents_found"`
	DocumentsDownloaded int        `json:"documents_downloaded"`
	Error               string     `json:"error,omitempty"`
}

// SearchRequest is the payload for starting an acquisition job.
type SearchRequest struct {
	DocClass       string `json:"doc_class"`
	Limit          int    `json:"limit"`
	DeepValidation bool   `json:"deep_validation"`
	Parallel       bool   `json:"parallel"`
	MaxWorkers     int    `json:"max_workers"`
}

// ReportRequest is the payload for generating a catalog report.
type ReportRequest struct {
	DocClass string `json:"doc_class,omitempty"`
	Format   string `json:"format"` // "text" or "docx"
}

// ReportInfo describes a generated report.
type ReportInfo struct {
	ReportID      string    `json:"report_id"`
	DocClass      string    `json:"doc_class,omitempty"`
	Format        string    `json:"format"`
	DocumentCount int       `json:"document_count"`
	FilePath      string    `json:"-"`
	DownloadURL   string    `json:"download_url"`
	Timestamp     time.Time `json:"timestamp"`
}
