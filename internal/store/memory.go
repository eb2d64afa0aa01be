package store

import (
	"sync"

	"docuscraper/internal/domain"
)

// JobStore is an in-memory Jobs implementation.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[string]domain.Job
}

func NewJobStore() *JobStore {
	return &JobStore{jobs: make(map[string]domain.Job)}
}

func (s *JobStore) Insert(job domain.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) (domain.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	return job, ok
}

// Update applies fn to the stored job under the lock. Returns false when
// the job does not exist.
func (s *JobStore) Update(id string, fn func(*domain.Job)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return false
	}
	fn(&job)
	s.jobs[id] = job
	return true
}

func (s *JobStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

// DocumentStore is an in-memory Documents implementation preserving
// insertion order for listings.
type DocumentStore struct {
	mu    sync.RWMutex
	docs  map[string]domain.DocumentRecord
	order []string
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]domain.DocumentRecord)}
}

func (s *DocumentStore) Insert(doc domain.DocumentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[doc.ID]; !exists {
		s.order = append(s.order, doc.ID)
	}
	s.docs[doc.ID] = doc
}

func (s *DocumentStore) Get(id string) (domain.DocumentRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	return doc, ok
}

// List returns documents in insertion order, optionally filtered by class,
// with offset/limit pagination. A non-positive limit means no cap.
func (s *DocumentStore) List(docClass string, limit, offset int) []domain.DocumentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var filtered []domain.DocumentRecord
	for _, id := range s.order {
		doc := s.docs[id]
		if docClass != "" && doc.DocClass != docClass {
			continue
		}
		filtered = append(filtered, doc)
	}

	if offset >= len(filtered) {
		return nil
	}
	filtered = filtered[offset:]
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered
}

func (s *DocumentStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return false
	}
	delete(s.docs, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *DocumentStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// ReportStore is an in-memory Reports implementation.
type ReportStore struct {
	mu      sync.RWMutex
	reports map[string]domain.ReportInfo
}

func NewReportStore() *ReportStore {
	return &ReportStore{reports: make(map[string]domain.ReportInfo)}
}

func (s *ReportStore) Insert(report domain.ReportInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[report.ReportID] = report
}

func (s *ReportStore) Get(id string) (domain.ReportInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[id]
	return report, ok
}
