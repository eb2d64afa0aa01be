// Package fetch downloads candidate documents to local storage under a
// bounded worker pool. Every task is independent: one failed download
// never aborts the batch, and failures surface only as an absent record.
package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"docuscraper/internal/config"
	"docuscraper/internal/domain"
	"docuscraper/internal/monitoring"
)

const (
	defaultExt = ".pdf"
	chunkSize  = 8 * 1024
)

// Fetcher downloads documents and records their metadata.
type Fetcher struct {
	httpClient *http.Client
	dataDir    string
	timeout    time.Duration
	userAgent  string
	metrics    *monitoring.Metrics
	logger     *zap.Logger
}

func New(cfg *config.Config, m *monitoring.Metrics, l *zap.Logger) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{},
		dataDir:    cfg.DataDir,
		timeout:    time.Duration(cfg.DownloadTimeout) * time.Second,
		userAgent:  cfg.UserAgent,
		metrics:    m,
		logger:     l,
	}
}

// FetchAll downloads all candidates using a fixed-size worker pool. Output
// order is completion order; callers must not rely on it. Every successful
// candidate yields exactly one record, every failed candidate yields none.
func (f *Fetcher) FetchAll(ctx context.Context, candidates []domain.SearchResult, workers int) []domain.DocumentRecord {
	if len(candidates) == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(candidates) {
		workers = len(candidates)
	}

	f.logger.Info("starting parallel download",
		zap.Int("candidates", len(candidates)),
		zap.Int("workers", workers))
	start := time.Now()

	tasks := make(chan domain.SearchResult)
	results := make(chan domain.DocumentRecord, len(candidates))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range tasks {
				if rec, err := f.FetchOne(ctx, c); err == nil {
					results <- *rec
				}
			}
		}()
	}

	for _, c := range candidates {
		tasks <- c
	}
	close(tasks)
	wg.Wait()
	close(results)

	var records []domain.DocumentRecord
	for rec := range results {
		records = append(records, rec)
	}

	f.logger.Info("parallel download completed",
		zap.Int("downloaded", len(records)),
		zap.Int("candidates", len(candidates)),
		zap.Duration("duration", time.Since(start)))
	return records
}

// FetchOne downloads a single candidate. The local file name is derived
// from a SHA-256 hash of the source URL, so re-downloading the same URL
// deterministically overwrites the same path. Partial output is removed
// on any error.
func (f *Fetcher) FetchOne(ctx context.Context, candidate domain.SearchResult) (*domain.DocumentRecord, error) {
	if candidate.URL == "" {
		f.logger.Warn("missing URL in search result", zap.String("doc_class", candidate.DocClass))
		return nil, fmt.Errorf("missing URL")
	}

	title := candidate.Title
	if title == "" {
		title = "Unknown Document"
	}
	docClass := candidate.DocClass
	if docClass == "" {
		docClass = "unknown"
	}

	ext := extensionOf(candidate.URL)
	dir := filepath.Join(f.dataDir, docClass)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		f.logDownload(candidate.URL, "", err)
		return nil, err
	}
	dest := filepath.Join(dir, HashURL(candidate.URL)+ext)

	reqCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, candidate.URL, nil)
	if err != nil {
		f.logDownload(candidate.URL, dest, err)
		f.metrics.IncDownloadErrors("request")
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logDownload(candidate.URL, dest, err)
		f.metrics.IncDownloadErrors("request")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("download status: %d", resp.StatusCode)
		f.logDownload(candidate.URL, dest, err)
		f.metrics.IncDownloadErrors("status")
		return nil, err
	}

	if err := f.streamToFile(resp.Body, dest); err != nil {
		f.logDownload(candidate.URL, dest, err)
		f.metrics.IncDownloadErrors("filesystem")
		return nil, err
	}

	info, err := os.Stat(dest)
	if err != nil {
		f.logDownload(candidate.URL, dest, err)
		f.metrics.IncDownloadErrors("filesystem")
		return nil, err
	}

	f.logDownload(candidate.URL, dest, nil)
	f.metrics.IncDownloads()

	return &domain.DocumentRecord{
		DocClass:           docClass,
		Title:              title,
		URL:                candidate.URL,
		FilePath:           dest,
		FileType:           ext,
		FileSize:           info.Size(),
		Timestamp:          time.Now(),
		DownloadSuccessful: true,
		Validated:          nil,
	}, nil
}

// streamToFile copies the body to dest in fixed-size chunks so large files
// never get buffered whole in memory. The partial file is removed on error.
func (f *Fetcher) streamToFile(body io.Reader, dest string) error {
	out, err := os.Create(dest)
	if err != nil {
		return err
	}

	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(out, body, buf); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return err
	}
	return nil
}

func (f *Fetcher) logDownload(rawURL, filePath string, err error) {
	fields := []zap.Field{
		zap.String("operation", "document_download"),
		zap.String("url", rawURL),
		zap.String("file_path", filePath),
		zap.Bool("success", err == nil),
	}
	if err != nil {
		f.logger.Error("document download failed", append(fields, zap.Error(err))...)
		return
	}
	f.logger.Info("document downloaded", fields...)
}

// HashURL creates a SHA-256 hash of a URL string, used as the
// content-address for the local file name.
func HashURL(rawURL string) string {
	h := sha256.New()
	h.Write([]byte(rawURL))
	return hex.EncodeToString(h.Sum(nil))
}

// extensionOf returns the lowercased extension of the URL path, or the
// default extension when none is present.
func extensionOf(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	}
	ext := strings.ToLower(path.Ext(p))
	if ext == "" {
		return defaultExt
	}
	return ext
}
