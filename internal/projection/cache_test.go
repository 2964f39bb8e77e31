package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CoopTokenSim_Go/internal/domain"
)

type countingCacheRecorder struct {
	hits, misses int
}

func (r *countingCacheRecorder) CacheLookup(hit bool) {
	if hit {
		r.hits++
		return
	}
	r.misses++
}

func TestReportCache_GetSet(t *testing.T) {
	// ARRANGE
	rec := &countingCacheRecorder{}
	c := NewReportCache(4, time.Minute, rec)
	report := &domain.ValidationReport{ScenarioName: "seed_round", Seed: 42, Weeks: 260}

	// ACT
	_, found := c.Get("seed_round", 42, 260)
	c.Set(260, report)
	got, hit := c.Get("seed_round", 42, 260)

	// ASSERT
	assert.False(t, found)
	require.True(t, hit)
	assert.Same(t, report, got)
	assert.Equal(t, 1, rec.hits)
	assert.Equal(t, 1, rec.misses)
}

func TestReportCache_KeyIncludesSeedAndHorizon(t *testing.T) {
	c := NewReportCache(4, time.Minute, nil)
	c.Set(260, &domain.ValidationReport{ScenarioName: "seed_round", Seed: 42})

	_, otherSeed := c.Get("seed_round", 7, 260)
	_, otherHorizon := c.Get("seed_round", 42, 52)

	assert.False(t, otherSeed)
	assert.False(t, otherHorizon)
}

func TestReportCache_VersionMismatch(t *testing.T) {
	// ARRANGE
	c := NewReportCache(4, time.Minute, nil)
	c.lru.Add(reportKey("old", 1, 10), &cachedReport{Version: "0.1", Report: &domain.ValidationReport{}})

	// ACT
	_, found := c.Get("old", 1, 10)

	// ASSERT
	assert.False(t, found)
	assert.Equal(t, 0, c.Len(), "stale entry should be evicted")
}

func TestReportCache_Eviction(t *testing.T) {
	c := NewReportCache(2, time.Minute, nil)
	for _, name := range []string{"a", "b", "c"} {
		c.Set(10, &domain.ValidationReport{ScenarioName: name})
	}

	_, oldest := c.Get("a", 0, 10)
	assert.False(t, oldest)
	assert.Equal(t, 2, c.Len())

	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestReportCache_Expiry(t *testing.T) {
	c := NewReportCache(2, 20*time.Millisecond, nil)
	c.Set(10, &domain.ValidationReport{ScenarioName: "a"})

	assert.Eventually(t, func() bool {
		_, found := c.Get("a", 0, 10)
		return !found
	}, time.Second, 10*time.Millisecond)
}
