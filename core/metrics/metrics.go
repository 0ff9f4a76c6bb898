package metrics

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "genedb"

// Metrics contains the build metrics.
type Metrics struct {
	BuildsTotal    *prometheus.CounterVec
	BuildDuration  prometheus.Histogram
	GenomesTotal   *prometheus.CounterVec
	MatchRate      *prometheus.GaugeVec
	RecordsEmitted *prometheus.CounterVec
	LinesSkipped   *prometheus.CounterVec
}

// New creates the build metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BuildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "build",
				Name:      "runs_total",
				Help:      "Total number of repository builds by outcome",
			},
			[]string{"status"},
		),

		BuildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "build",
				Name:      "duration_seconds",
				Help:      "Repository build duration in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
			},
		),

		GenomesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "genome",
				Name:      "processed_total",
				Help:      "Total number of genomes processed by path (matched, fallback)",
			},
			[]string{"path"},
		),

		MatchRate: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "genome",
				Name:      "match_rate_percent",
				Help:      "Combined match rate of the last build per genome",
			},
			[]string{"genome"},
		),

		RecordsEmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "genome",
				Name:      "records_total",
				Help:      "Total number of sequence records emitted",
			},
			[]string{"genome"},
		),

		LinesSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "annotation",
				Name:      "lines_skipped_total",
				Help:      "Total number of malformed annotation lines skipped",
			},
			[]string{"genome"},
		),
	}

	reg.MustRegister(
		m.BuildsTotal,
		m.BuildDuration,
		m.GenomesTotal,
		m.MatchRate,
		m.RecordsEmitted,
		m.LinesSkipped,
	)
	return m
}

// ObserveGenome records the outcome of one genome.
func (m *Metrics) ObserveGenome(genome, path string, rate float64, records, skipped int) {
	m.GenomesTotal.WithLabelValues(path).Inc()
	m.MatchRate.WithLabelValues(genome).Set(rate)
	m.RecordsEmitted.WithLabelValues(genome).Add(float64(records))
	m.LinesSkipped.WithLabelValues(genome).Add(float64(skipped))
}

// ObserveBuild records a finished build.
func (m *Metrics) ObserveBuild(status string, elapsed time.Duration) {
	m.BuildsTotal.WithLabelValues(status).Inc()
	m.BuildDuration.Observe(elapsed.Seconds())
}

// Handler serves the gathered metrics in the Prometheus text format.
func Handler(g prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}
