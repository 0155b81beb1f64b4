package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/gaapledger/internal/domain"
)

const namespace = "gaapledger"

// Metrics holds all Prometheus metrics. It implements usecase.Recorder
// and the HTTP middleware's observer.
type Metrics struct {
	// Ledger metrics
	BooksCreated    prometheus.Counter
	AccountsCreated *prometheus.CounterVec
	EntriesRecorded prometheus.Counter
	EntryPostings   prometheus.Histogram
	EntriesRejected *prometheus.CounterVec
	ReportDuration  *prometheus.HistogramVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Idempotency metrics
	IdempotencyLookups *prometheus.CounterVec
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Ledger metrics
		BooksCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "books_created_total",
			Help:      "Total number of books created",
		}),
		AccountsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "accounts_created_total",
				Help:      "Total number of accounts created by type",
			},
			[]string{"type"},
		),
		EntriesRecorded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_recorded_total",
			Help:      "Total number of journal entries recorded",
		}),
		EntryPostings: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "entry_postings",
			Help:      "Number of postings per recorded journal entry",
			Buckets:   []float64{2, 3, 4, 6, 8, 12, 20},
		}),
		EntriesRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "entries_rejected_total",
				Help:      "Total number of rejected journal entries by reason",
			},
			[]string{"reason"},
		),
		ReportDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "report_duration_seconds",
				Help:      "Time spent replaying the journal for a report",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"report"},
		),

		// API metrics
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route"},
		),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		}),

		// Idempotency metrics
		IdempotencyLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "idempotency_lookups_total",
				Help:      "Idempotency key lookups by outcome",
			},
			[]string{"outcome"},
		),
	}
}

func (m *Metrics) BookCreated() {
	m.BooksCreated.Inc()
}

func (m *Metrics) AccountCreated(accountType domain.AccountType) {
	m.AccountsCreated.WithLabelValues(accountType.String()).Inc()
}

func (m *Metrics) EntryRecorded(postings int) {
	m.EntriesRecorded.Inc()
	m.EntryPostings.Observe(float64(postings))
}

func (m *Metrics) EntryRejected(reason string) {
	m.EntriesRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) ReportGenerated(report string, duration time.Duration) {
	m.ReportDuration.WithLabelValues(report).Observe(duration.Seconds())
}

// RequestStarted marks a request as in flight.
func (m *Metrics) RequestStarted() {
	m.HTTPInFlight.Inc()
}

// RequestFinished records a completed request.
func (m *Metrics) RequestFinished(method, route string, status int, duration time.Duration) {
	m.HTTPInFlight.Dec()
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// IdempotencyLookup counts an idempotency key lookup: "claimed", "replayed"
// or "in_flight".
func (m *Metrics) IdempotencyLookup(outcome string) {
	m.IdempotencyLookups.WithLabelValues(outcome).Inc()
}
