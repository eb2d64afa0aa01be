package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docuscraper/internal/config"
	"docuscraper/internal/domain"
	"docuscraper/internal/monitoring"
)

func newTestFetcher(t *testing.T) (*Fetcher, string) {
	t.Helper()
	dataDir := t.TempDir()
	cfg := &config.Config{
		DataDir:         dataDir,
		DownloadTimeout: 5,
		UserAgent:       "docuscraper-test",
	}
	m := monitoring.NewMetrics(prometheus.NewRegistry())
	return New(cfg, m, zap.NewNop()), dataDir
}

func TestFetchOneDownloadsFile(t *testing.T) {
	body := []byte("%PDF-1.4 test document body")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	f, dataDir := newTestFetcher(t)
	url := srv.URL + "/doc.pdf"

	rec, err := f.FetchOne(context.Background(), domain.SearchResult{
		URL: url, Title: "Doc", DocClass: "passport",
	})

	require.NoError(t, err)
	assert.Equal(t, "passport", rec.DocClass)
	assert.Equal(t, "Doc", rec.Title)
	assert.Equal(t, ".pdf", rec.FileType)
	assert.Equal(t, int64(len(body)), rec.FileSize)
	assert.True(t, rec.DownloadSuccessful)
	assert.Nil(t, rec.Validated)

	assert.Equal(t, filepath.Join(dataDir, "passport", HashURL(url)+".pdf"), rec.FilePath)
	onDisk, err := os.ReadFile(rec.FilePath)
	require.NoError(t, err)
	assert.Equal(t, body, onDisk)
}

func TestFetchOneDefaultsTitleAndExtension(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("content"))
	}))
	defer srv.Close()

	f, _ := newTestFetcher(t)
	rec, err := f.FetchOne(context.Background(), domain.SearchResult{
		URL: srv.URL + "/download", DocClass: "id",
	})

	require.NoError(t, err)
	assert.Equal(t, "Unknown Document", rec.Title)
	assert.Equal(t, ".pdf", rec.FileType)
	assert.True(t, strings.HasSuffix(rec.FilePath, ".pdf"))
}

func TestFetchOneServerErrorLeavesNoRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f, dataDir := newTestFetcher(t)
	rec, err := f.FetchOne(context.Background(), domain.SearchResult{
		URL: srv.URL + "/missing.pdf", DocClass: "passport",
	})

	require.Error(t, err)
	assert.Nil(t, rec)

	entries, _ := os.ReadDir(filepath.Join(dataDir, "passport"))
	assert.Empty(t, entries)
}

func TestFetchOneMissingURL(t *testing.T) {
	f, _ := newTestFetcher(t)
	rec, err := f.FetchOne(context.Background(), domain.SearchResult{DocClass: "passport"})
	require.Error(t, err)
	assert.Nil(t, rec)
}

func TestFetchSameURLTwiceOverwritesSamePath(t *testing.T) {
	content := []byte("first version")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(content)
	}))
	defer srv.Close()

	f, _ := newTestFetcher(t)
	candidate := domain.SearchResult{URL: srv.URL + "/doc.pdf", DocClass: "passport"}

	first, err := f.FetchOne(context.Background(), candidate)
	require.NoError(t, err)

	content = []byte("second version, longer than the first one")
	second, err := f.FetchOne(context.Background(), candidate)
	require.NoError(t, err)

	assert.Equal(t, first.FilePath, second.FilePath)
	onDisk, err := os.ReadFile(second.FilePath)
	require.NoError(t, err)
	assert.Equal(t, content, onDisk)
}

func TestFetchAllIsolatesFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "broken") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("file content"))
	}))
	defer srv.Close()

	f, _ := newTestFetcher(t)
	candidates := []domain.SearchResult{
		{URL: srv.URL + "/a.pdf", DocClass: "passport"},
		{URL: srv.URL + "/broken.pdf", DocClass: "passport"},
		{URL: srv.URL + "/b.jpg", DocClass: "passport"},
		{URL: srv.URL + "/c.png", DocClass: "passport"},
	}

	records := f.FetchAll(context.Background(), candidates, 3)

	assert.Len(t, records, 3)
	assert.LessOrEqual(t, len(records), len(candidates))
	for _, rec := range records {
		_, err := os.Stat(rec.FilePath)
		assert.NoError(t, err, "record %s must exist on disk", rec.FilePath)
	}
}

func TestFetchAllMatchesSequentialFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("identical content"))
	}))
	defer srv.Close()

	f, _ := newTestFetcher(t)
	candidate := domain.SearchResult{URL: srv.URL + "/x.pdf", Title: "X", DocClass: "id"}

	seq, err := f.FetchOne(context.Background(), candidate)
	require.NoError(t, err)

	par := f.FetchAll(context.Background(), []domain.SearchResult{candidate}, 2)
	require.Len(t, par, 1)

	// Parallelism is a performance choice, never a semantic one.
	assert.Equal(t, seq.FilePath, par[0].FilePath)
	assert.Equal(t, seq.FileType, par[0].FileType)
	assert.Equal(t, seq.FileSize, par[0].FileSize)
	assert.Equal(t, seq.DocClass, par[0].DocClass)
	assert.Equal(t, seq.Title, par[0].Title)
}

func TestFetchAllEmptyInput(t *testing.T) {
	f, _ := newTestFetcher(t)
	assert.Nil(t, f.FetchAll(context.Background(), nil, 4))
}

func TestHashURLIsDeterministic(t *testing.T) {
	a := HashURL("https://example.com/a.pdf")
	b := HashURL("https://example.com/a.pdf")
	c := HashURL("https://example.com/b.pdf")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
