package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Simulation metric names
const (
	MetricNameRunsStarted      = "simulation_runs_started_total"
	MetricNameRunsFinished     = "simulation_runs_finished_total"
	MetricNameRunDuration      = "simulation_run_duration_seconds"
	MetricNameWeeksSimulated   = "simulation_weeks_total"
	MetricNameTokensIssued     = "simulation_tokens_issued_total"
	MetricNameLatestGini       = "simulation_latest_gini"
	MetricNameValidations      = "projection_validations_total"
	MetricNameValidationTime   = "projection_validation_duration_seconds"
	MetricNameReportCacheLooks = "report_cache_lookups_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Simulation metric help text
const (
	HelpTextRunsStarted      = "Total number of simulation runs started"
	HelpTextRunsFinished     = "Total number of simulation runs finished, by final state"
	HelpTextRunDuration      = "Wall clock duration of simulation runs in seconds"
	HelpTextWeeksSimulated   = "Total number of simulated weeks"
	HelpTextTokensIssued     = "Total reward tokens issued across all runs"
	HelpTextLatestGini       = "Gini coefficient of the most recently simulated week"
	HelpTextValidations      = "Total number of projection validations, by outcome"
	HelpTextValidationTime   = "Wall clock duration of projection validations in seconds"
	HelpTextReportCacheLooks = "Report cache lookups, by result"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelScenario   = "scenario"
	LabelState      = "state"
	LabelConfidence = "confidence"
	LabelMarket     = "market"
	LabelResult     = "result"
)

// Cache lookup results
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

// unmatchedRoute labels requests that matched no route
const unmatchedRoute = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// RunDurationBuckets covers runs from a few milliseconds up to a minute
var RunDurationBuckets = []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60}
