// Package leaktest checks that code under test leaves no goroutines behind
// and runs without fanning out.
package leaktest

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

const (
	settleDelay    = 10 * time.Millisecond
	drainDelay     = 50 * time.Millisecond
	sampleInterval = 200 * time.Microsecond
)

// GoroutineChecker compares the goroutine count before and after a test step
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	runtime.Gosched()
	time.Sleep(settleDelay)

	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		t:      t,
	}
}

// Check fails the test if more than tolerance goroutines outlived the step
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	runtime.Gosched()
	time.Sleep(drainDelay)
	runtime.GC()

	after := runtime.NumGoroutine()
	if leaked := after - g.before; leaked > tolerance {
		g.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, after, leaked, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and fails if any goroutine outlives it
func CheckNoGoroutineLeak(t *testing.T, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// PeakSampler polls the goroutine count in the background and keeps the maximum
type PeakSampler struct {
	baseline int
	peak     atomic.Int64
	stop     chan struct{}
	done     sync.WaitGroup
}

// StartPeakSampler starts sampling. The baseline includes the sampler itself.
func StartPeakSampler() *PeakSampler {
	s := &PeakSampler{stop: make(chan struct{})}
	s.done.Add(1)
	go s.run()
	runtime.Gosched()
	time.Sleep(settleDelay)
	s.baseline = runtime.NumGoroutine()
	s.peak.Store(int64(s.baseline))
	return s
}

func (s *PeakSampler) run() {
	defer s.done.Done()
	ticker := time.NewTicker(sampleInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			n := int64(runtime.NumGoroutine())
			for {
				cur := s.peak.Load()
				if n <= cur || s.peak.CompareAndSwap(cur, n) {
					break
				}
			}
		}
	}
}

// Stop ends sampling and returns how many goroutines above the baseline were seen at once
func (s *PeakSampler) Stop() int {
	close(s.stop)
	s.done.Wait()
	return int(s.peak.Load()) - s.baseline
}

// CheckSequential runs fn and fails if it was ever observed running extra goroutines
func CheckSequential(t *testing.T, fn func()) {
	t.Helper()

	sampler := StartPeakSampler()
	fn()
	if extra := sampler.Stop(); extra > 0 {
		t.Errorf("Expected sequential execution, observed %d extra goroutines", extra)
	}
}

// WaitForGoroutines waits until at most target goroutines remain or fails after timeout
func WaitForGoroutines(t *testing.T, target int, timeout time.Duration) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		runtime.Gosched()
		if runtime.NumGoroutine() <= target {
			return
		}
		time.Sleep(settleDelay)
	}

	t.Errorf("Timeout waiting for goroutines to complete: current=%d, target=%d",
		runtime.NumGoroutine(), target)
}
