package projection

import (
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/CoopTokenSim_Go/internal/domain"
)

// CacheRecorder counts report cache lookups
type CacheRecorder interface {
	CacheLookup(hit bool)
}

type noopCacheRecorder struct{}

func (noopCacheRecorder) CacheLookup(bool) {}

// cachedReport wraps a report with version metadata for cache invalidation
type cachedReport struct {
	Version  string
	Report   *domain.ValidationReport
	CachedAt time.Time
}

// ReportCache is an in-memory LRU of validation reports with time-based expiration.
// Reports are keyed by scenario name, seed and horizon, which fully determine a run.
type ReportCache struct {
	lru      *expirable.LRU[string, *cachedReport]
	recorder CacheRecorder
}

// NewReportCache creates a cache holding at most size reports for ttl. recorder may be nil.
func NewReportCache(size int, ttl time.Duration, recorder CacheRecorder) *ReportCache {
	if recorder == nil {
		recorder = noopCacheRecorder{}
	}
	return &ReportCache{
		lru:      expirable.NewLRU[string, *cachedReport](size, nil, ttl),
		recorder: recorder,
	}
}

func reportKey(name string, seed int64, horizon int) string {
	return name + ":" + strconv.FormatInt(seed, 10) + ":" + strconv.Itoa(horizon)
}

// Get returns the cached report, or false if it is missing, expired or stale
func (c *ReportCache) Get(name string, seed int64, horizon int) (*domain.ValidationReport, bool) {
	key := reportKey(name, seed, horizon)
	entry, found := c.lru.Get(key)
	if found && entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		found = false
	}
	c.recorder.CacheLookup(found)
	if !found {
		return nil, false
	}
	return entry.Report, true
}

// Set stores a report under its scenario name and seed for horizon weeks
func (c *ReportCache) Set(horizon int, r *domain.ValidationReport) {
	c.lru.Add(reportKey(r.ScenarioName, r.Seed, horizon), &cachedReport{
		Version:  CacheSchemaVersion,
		Report:   r,
		CachedAt: time.Now(),
	})
}

// Len returns the number of live entries
func (c *ReportCache) Len() int {
	return c.lru.Len()
}

// Purge removes every entry
func (c *ReportCache) Purge() {
	c.lru.Purge()
}
