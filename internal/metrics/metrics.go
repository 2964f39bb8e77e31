package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Simulation Metrics
var (
	RunsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRunsStarted,
			Help: HelpTextRunsStarted,
		},
		[]string{LabelScenario},
	)

	RunsFinished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRunsFinished,
			Help: HelpTextRunsFinished,
		},
		[]string{LabelScenario, LabelState},
	)

	RunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameRunDuration,
			Help:    HelpTextRunDuration,
			Buckets: RunDurationBuckets,
		},
		[]string{LabelScenario},
	)

	WeeksSimulated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWeeksSimulated,
			Help: HelpTextWeeksSimulated,
		},
		[]string{LabelScenario},
	)

	TokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTokensIssued,
			Help: HelpTextTokensIssued,
		},
	)

	LatestGini = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameLatestGini,
			Help: HelpTextLatestGini,
		},
		[]string{LabelScenario},
	)
)

// Projection Metrics
var (
	Validations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameValidations,
			Help: HelpTextValidations,
		},
		[]string{LabelConfidence, LabelMarket},
	)

	ValidationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameValidationTime,
			Help:    HelpTextValidationTime,
			Buckets: RunDurationBuckets,
		},
	)

	ReportCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameReportCacheLooks,
			Help: HelpTextReportCacheLooks,
		},
		[]string{LabelResult},
	)
)
