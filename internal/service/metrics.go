package service

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// recordFields maps event fields to the record kind label of
// throughput_records_created_total.
var recordFields = map[string]string{
	"projects_created":     "project",
	"features_created":     "feature",
	"stories_created":      "story",
	"productivity_created": "productivity",
}

// MetricsObserver turns use-case events into Prometheus metrics.
type MetricsObserver struct {
	runs      *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	records   *prometheus.CounterVec
	conflicts prometheus.Counter
}

// NewMetricsObserver creates the observer and registers its collectors
// with reg.
func NewMetricsObserver(reg prometheus.Registerer) (*MetricsObserver, error) {
	m := &MetricsObserver{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "throughput",
			Name:      "use_case_total",
			Help:      "Service use cases by name and outcome.",
		}, []string{"use_case", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "throughput",
			Name:      "use_case_duration_seconds",
			Help:      "Service use case latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"use_case"}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "throughput",
			Name:      "records_created_total",
			Help:      "Rows committed by imports, by record kind.",
		}, []string{"kind"}),
		conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "throughput",
			Name:      "header_conflicts_total",
			Help:      "Feature header values ignored because an earlier row disagreed.",
		}),
	}
	for _, c := range []prometheus.Collector{m.runs, m.duration, m.records, m.conflicts} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *MetricsObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	outcome := "success"
	if !event.Success {
		outcome, _ = event.Fields["error_kind"].(string)
		if outcome == "" {
			outcome = KindOther
		}
	}
	m.runs.WithLabelValues(event.Name, outcome).Inc()
	m.duration.WithLabelValues(event.Name).Observe(event.Duration.Seconds())

	if !event.Success || event.Name != "import" {
		return
	}
	for field, kind := range recordFields {
		if n, ok := event.Fields[field].(int); ok {
			m.records.WithLabelValues(kind).Add(float64(n))
		}
	}
	if n, ok := event.Fields["conflicts"].(int); ok {
		m.conflicts.Add(float64(n))
	}
}
