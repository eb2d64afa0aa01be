package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuscraper/internal/domain"
)

func TestJobStoreLifecycle(t *testing.T) {
	s := NewJobStore()

	s.Insert(domain.Job{ID: "j1", DocClass: "passport", Status: domain.JobStatusQueued})
	assert.Equal(t, 1, s.Count())

	job, ok := s.Get("j1")
	require.True(t, ok)
	assert.Equal(t, domain.JobStatusQueued, job.Status)

	ok = s.Update("j1", func(j *domain.Job) {
		j.Status = domain.JobStatusCompleted
		j.DocumentsDownloaded = 3
	})
	require.True(t, ok)

	job, _ = s.Get("j1")
	assert.Equal(t, domain.JobStatusCompleted, job.Status)
	assert.Equal(t, 3, job.DocumentsDownloaded)

	assert.False(t, s.Update("missing", func(j *domain.Job) {}))
	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestDocumentStoreListFilterAndPagination(t *testing.T) {
	s := NewDocumentStore()
	s.Insert(domain.DocumentRecord{ID: "d1", DocClass: "passport"})
	s.Insert(domain.DocumentRecord{ID: "d2", DocClass: "id"})
	s.Insert(domain.DocumentRecord{ID: "d3", DocClass: "passport"})

	assert.Equal(t, 3, s.Count())

	all := s.List("", 0, 0)
	require.Len(t, all, 3)
	assert.Equal(t, "d1", all[0].ID)
	assert.Equal(t, "d3", all[2].ID)

	passports := s.List("passport", 0, 0)
	require.Len(t, passports, 2)

	page := s.List("", 2, 1)
	require.Len(t, page, 2)
	assert.Equal(t, "d2", page[0].ID)

	assert.Empty(t, s.List("", 10, 99))
}

func TestDocumentStoreDelete(t *testing.T) {
	s := NewDocumentStore()
	s.Insert(domain.DocumentRecord{ID: "d1", DocClass: "passport"})

	assert.True(t, s.Delete("d1"))
	assert.False(t, s.Delete("d1"))
	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.List("", 0, 0))
}

func TestDocumentStoreInsertSameIDKeepsOnePosition(t *testing.T) {
	s := NewDocumentStore()
	s.Insert(domain.DocumentRecord{ID: "d1", DocClass: "passport"})
	s.Insert(domain.DocumentRecord{ID: "d1", DocClass: "id"})

	assert.Equal(t, 1, s.Count())
	doc, _ := s.Get("d1")
	assert.Equal(t, "id", doc.DocClass)
}

func TestReportStore(t *testing.T) {
	s := NewReportStore()
	s.Insert(domain.ReportInfo{ReportID: "r1", Format: "text"})

	info, ok := s.Get("r1")
	require.True(t, ok)
	assert.Equal(t, "text", info.Format)

	_, ok = s.Get("r2")
	assert.False(t, ok)
}
