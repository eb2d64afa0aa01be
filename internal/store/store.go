// Package store holds the transient job and document catalogs behind
// explicit interfaces so handlers never touch process-wide maps. Only
// in-memory implementations exist; the system keeps no database.
package store

import "docuscraper/internal/domain"

// Jobs tracks acquisition jobs across their lifecycle.
type Jobs interface {
	Insert(job domain.Job)
	Get(id string) (domain.Job, bool)
	Update(id string, fn func(*domain.Job)) bool
	Count() int
}

// Documents catalogs downloaded documents.
type Documents interface {
	Insert(doc domain.DocumentRecord)
	Get(id string) (domain.DocumentRecord, bool)
	List(docClass string, limit, offset int) []domain.DocumentRecord
	Delete(id string) bool
	Count() int
}

// Reports tracks generated report files.
type Reports interface {
	Insert(report domain.ReportInfo)
	Get(id string) (domain.ReportInfo, bool)
}
