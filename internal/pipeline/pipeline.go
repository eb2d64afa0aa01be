// Package pipeline composes search, filtering, download and validation
// into one acquisition run per document-class request.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"docuscraper/internal/domain"
	"docuscraper/internal/fetch"
	"docuscraper/internal/registry"
	"docuscraper/internal/search"
	"docuscraper/internal/validate"
)

// Only the first two query templates of a class are used per run.
const maxQueriesPerRun = 2

const (
	defaultLimit      = 10
	defaultMaxWorkers = 5
)

// Orchestrator turns a document-class request into a verified set of
// locally stored files.
type Orchestrator struct {
	registry  *registry.Registry
	provider  search.Provider
	fetcher   *fetch.Fetcher
	validator *validate.Validator
	logger    *zap.Logger
}

func New(reg *registry.Registry, p search.Provider, f *fetch.Fetcher, v *validate.Validator, l *zap.Logger) *Orchestrator {
	return &Orchestrator{
		registry:  reg,
		provider:  p,
		fetcher:   f,
		validator: v,
		logger:    l,
	}
}

// Acquire runs the full pipeline for one document class. It never returns
// an error for expected failure modes: an unknown class, provider outages
// and failed downloads all degrade to a smaller (possibly empty) result,
// with the cause in the logs.
func (o *Orchestrator) Acquire(ctx context.Context, docClassID string, opts domain.AcquireOptions) []domain.DocumentRecord {
	start := time.Now()
	o.logger.Info("starting document search", zap.String("doc_class", docClassID))

	if opts.Limit <= 0 {
		opts.Limit = defaultLimit
	}
	if opts.MaxWorkers <= 0 {
		opts.MaxWorkers = defaultMaxWorkers
	}

	class, ok := o.registry.Get(docClassID)
	if !ok {
		o.logger.Error("unknown document class", zap.String("doc_class", docClassID))
		return nil
	}

	queries := class.SearchQueries
	if len(queries) == 0 {
		o.logger.Warn("no search queries defined for document class",
			zap.String("doc_class", docClassID))
		queries = []string{fmt.Sprintf("%s document sample filetype:pdf", docClassID)}
	}
	if len(queries) > maxQueriesPerRun {
		queries = queries[:maxQueriesPerRun]
	}

	// Each query gets half the limit; for odd limits the floor is used, so
	// the total candidate budget sits slightly under the nominal limit.
	// Kept as-is from the original system.
	perQueryLimit := opts.Limit / 2

	var candidates []domain.SearchResult
	for _, query := range queries {
		o.logger.Info("searching with query", zap.String("query", query))
		results, err := o.provider.Search(ctx, query, perQueryLimit)
		if err != nil {
			o.logger.Error("search query failed",
				zap.String("query", query), zap.Error(err))
			continue
		}
		candidates = append(candidates, results...)
	}

	for i := range candidates {
		candidates[i].DocClass = class.ID
	}

	unique := search.Filter(candidates, class.FileTypes)

	var records []domain.DocumentRecord
	if opts.Parallel && len(unique) > 1 {
		records = o.fetcher.FetchAll(ctx, unique, opts.MaxWorkers)
	} else {
		for _, candidate := range unique {
			rec, err := o.fetcher.FetchOne(ctx, candidate)
			if err != nil {
				continue // already logged by the fetcher
			}
			records = append(records, *rec)
		}
	}

	if opts.DeepValidation {
		records = o.deepValidate(records, opts.Limit)
	} else {
		// Not checked, assumed acceptable.
		for i := range records {
			valid := true
			records[i].Validated = &valid
		}
	}
	if len(records) > opts.Limit {
		records = records[:opts.Limit]
	}

	o.logger.Info("document search completed",
		zap.String("operation", "document_search"),
		zap.String("doc_class", class.ID),
		zap.String("query", strings.Join(queries, ", ")),
		zap.Int("results_count", len(records)),
		zap.Duration("duration", time.Since(start)))

	return records
}

// deepValidate checks every record's content. Valid records are always
// kept; invalid ones are kept only as padding while the accepted count is
// still below half the requested limit, preferring some result over none
// when validation is harsh.
func (o *Orchestrator) deepValidate(records []domain.DocumentRecord, limit int) []domain.DocumentRecord {
	var kept []domain.DocumentRecord
	for i := range records {
		rec := &records[i]
		valid := o.validator.Validate(rec, validate.ExpectedMIMETypes(rec.FileType))
		rec.Validated = &valid

		if valid || len(kept) < limit/2 {
			kept = append(kept, *rec)
		}
	}
	return kept
}
