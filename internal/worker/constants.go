package worker

import "time"

// Log messages for worker pool operations
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgJobQueueFull    = "Worker queue full, job dropped"
)

// Log messages for catalog reload jobs
const (
	LogMsgCatalogReloadFailed = "Projection catalog reload failed"
	LogMsgReportCachePurged   = "Report cache purged after catalog change"
)

// DefaultJobTimeout bounds a single job when the pool is created without one
const DefaultJobTimeout = time.Minute
