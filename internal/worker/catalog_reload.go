package worker

import (
	"context"

	"github.com/osse101/CoopTokenSim_Go/internal/logger"
)

// CatalogJobName identifies catalog reload jobs in logs
const CatalogJobName = "catalog_reload"

// Catalog is the reloadable scenario source
type Catalog interface {
	Reload(ctx context.Context) error
	Revision() uint64
}

// Purger drops every cached report
type Purger interface {
	Purge()
}

// CatalogReloadJob re-reads the projection scenario files and purges cached
// reports whenever the loaded scenarios change
type CatalogReloadJob struct {
	catalog Catalog
	cache   Purger
}

// NewCatalogReloadJob creates a reload job for catalog and cache
func NewCatalogReloadJob(catalog Catalog, cache Purger) *CatalogReloadJob {
	return &CatalogReloadJob{catalog: catalog, cache: cache}
}

// Name implements Job
func (j *CatalogReloadJob) Name() string {
	return CatalogJobName
}

// Process implements Job. A failed reload leaves both catalog and cache untouched.
func (j *CatalogReloadJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)

	before := j.catalog.Revision()
	if err := j.catalog.Reload(ctx); err != nil {
		log.Warn(LogMsgCatalogReloadFailed, "error", err)
		return err
	}
	if j.catalog.Revision() != before {
		j.cache.Purge()
		log.Info(LogMsgReportCachePurged, "revision", j.catalog.Revision())
	}
	return nil
}
