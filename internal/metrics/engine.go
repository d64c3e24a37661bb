package metrics

import "github.com/prometheus/client_golang/prometheus"

// Resolution and catalog-hygiene Prometheus metrics.
var (
	ResolveCandidatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "placedex",
			Name:      "resolve_candidates_total",
			Help:      "Candidates resolved, by outcome provenance",
		},
		[]string{"matched_from"}, // "live" / "cache" / "none"
	)

	ResolveDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "placedex",
			Name:      "resolve_duration_seconds",
			Help:      "Batch resolution duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	SupplementSignalsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "placedex",
			Name:      "supplement_signals_total",
			Help:      "Resolutions that asked the caller for more candidates",
		},
	)

	DedupeGroupsFound = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "placedex",
			Name:      "dedupe_groups_found",
			Help:      "Duplicate groups found by the last sweep",
		},
	)

	DedupeDeletionsPlanned = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "placedex",
			Name:      "dedupe_deletions_planned",
			Help:      "Record deletions planned by the last sweep",
		},
	)

	DedupeSweepDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "placedex",
			Name:      "dedupe_sweep_duration_seconds",
			Help:      "Full dedupe sweep duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	SuggestRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "placedex",
			Name:      "suggest_requests_total",
			Help:      "Candidate suggestion requests, by model and status",
		},
		[]string{"model", "status"},
	)

	SuggestRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "placedex",
			Name:      "suggest_request_duration_seconds",
			Help:      "Candidate suggestion request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"model"},
	)
)

var engineMetricsRegistered bool

// RegisterEngineMetrics registers Prometheus engine metrics. Must be called once from main.
func RegisterEngineMetrics() {
	if engineMetricsRegistered {
		return
	}
	prometheus.MustRegister(ResolveCandidatesTotal)
	prometheus.MustRegister(ResolveDuration)
	prometheus.MustRegister(SupplementSignalsTotal)
	prometheus.MustRegister(DedupeGroupsFound)
	prometheus.MustRegister(DedupeDeletionsPlanned)
	prometheus.MustRegister(DedupeSweepDuration)
	prometheus.MustRegister(SuggestRequestsTotal)
	prometheus.MustRegister(SuggestRequestDuration)
	engineMetricsRegistered = true
}
