package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	SearchesTotal    *prometheus.CounterVec
	DownloadsTotal   prometheus.Counter
	DownloadErrors   *prometheus.CounterVec
	ValidationsTotal *prometheus.CounterVec
}

// NewMetrics registers the metric set on the given registerer. Tests pass
// a fresh registry so repeated construction does not collide.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SearchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "docuscraper_searches_total",
			Help: "The total number of search provider calls",
		}, []string{"outcome"}), // 'ok', 'empty', 'failed'
		DownloadsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "docuscraper_documents_downloaded_total",
			Help: "The total number of documents downloaded successfully",
		}),
		DownloadErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "docuscraper_download_errors_total",
			Help: "The total number of failed downloads",
		}, []string{"reason"}), // e.g. 'request', 'status', 'filesystem'
		ValidationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "docuscraper_validations_total",
			Help: "The total number of document validations",
		}, []string{"result"}), // 'valid', 'invalid'
	}
}

func (m *Metrics) IncSearches(outcome string) {
	m.SearchesTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncDownloads() {
	m.DownloadsTotal.Inc()
}

func (m *Metrics) IncDownloadErrors(reason string) {
	m.DownloadErrors.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncValidations(result string) {
	m.ValidationsTotal.WithLabelValues(result).Inc()
}
