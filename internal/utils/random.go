package utils

import (
	"math"
	"math/rand/v2"
)

// pcgStream is mixed into the seed to derive the second PCG word
const pcgStream = 0x9e3779b97f4a7c15

// Rand is the single source of randomness for a run.
// Every draw goes through it so the same seed always yields the same run.
type Rand struct {
	r *rand.Rand
}

// NewRand creates a deterministic generator for seed
func NewRand(seed int64) *Rand {
	s := uint64(seed)
	return &Rand{r: rand.New(rand.NewPCG(s, s^pcgStream))} //nolint:gosec // Simulation randomness, not security critical
}

// Float64 returns a uniform value in [0, 1)
func (g *Rand) Float64() float64 {
	return g.r.Float64()
}

// IntN returns a uniform integer in [0, n)
func (g *Rand) IntN(n int) int {
	return g.r.IntN(n)
}

// Gauss draws from N(mean, stddev)
func (g *Rand) Gauss(mean, stddev float64) float64 {
	return mean + stddev*g.r.NormFloat64()
}

// GaussAtLeast draws from N(mean, stddev) and floors the result at min
func (g *Rand) GaussAtLeast(mean, stddev, min float64) float64 {
	return FloorAt(g.Gauss(mean, stddev), min)
}

// GaussClamped draws from N(mean, stddev) bounded to [min, max]
func (g *Rand) GaussClamped(mean, stddev, min, max float64) float64 {
	return Clamp(g.Gauss(mean, stddev), min, max)
}

// LogNormal draws exp(N(location, scale))
func (g *Rand) LogNormal(location, scale float64) float64 {
	return math.Exp(g.Gauss(location, scale))
}

// Chance returns true with probability p
func (g *Rand) Chance(p float64) bool {
	return g.r.Float64() < p
}
