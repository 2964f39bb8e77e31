package scenario

import (
	"time"
)

// Clock provides an abstraction for time operations
type Clock interface {
	// Now returns the current time
	Now() time.Time
	// Since returns the duration since the given time
	Since(t time.Time) time.Duration
}

// RealClock uses the actual system time
type RealClock struct{}

// NewRealClock creates a new RealClock instance
func NewRealClock() *RealClock {
	return &RealClock{}
}

// Now returns the current system time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Since returns the duration since the given time
func (c *RealClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// SimulatedClock allows time manipulation for testing
type SimulatedClock struct {
	current time.Time
	step    time.Duration
}

// NewSimulatedClock creates a SimulatedClock starting at start that moves
// forward by step on every call to Now
func NewSimulatedClock(start time.Time, step time.Duration) *SimulatedClock {
	return &SimulatedClock{
		current: start,
		step:    step,
	}
}

// Now returns the simulated current time and advances it
func (c *SimulatedClock) Now() time.Time {
	now := c.current
	c.current = c.current.Add(c.step)
	return now
}

// Since returns the duration since the given time
func (c *SimulatedClock) Since(t time.Time) time.Duration {
	return c.current.Sub(t)
}

// Advance moves the simulated time forward by the given duration
func (c *SimulatedClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
