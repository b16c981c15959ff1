package domain

import (
	"math"

	m "prior.dev/pkg/prior/internal/model"
)

// Moments accumulates running summary statistics for one variable using
// Welford's online algorithm, so arbitrarily long runs need constant memory.
type Moments struct {
	count uint64
	mean  float64
	m2    float64
	min   float64
	max   float64
}

// NewMoments constructs an empty accumulator.
func NewMoments() *Moments {
	return &Moments{min: math.Inf(1), max: math.Inf(-1)}
}

// Add folds one observation into the accumulator.
func (a *Moments) Add(v float64) {
	a.count++

	delta := v - a.mean
	a.mean += delta / float64(a.count)
	a.m2 += delta * (v - a.mean)

	if v < a.min {
		a.min = v
	}

	if v > a.max {
		a.max = v
	}
}

// AddAll folds a slice of observations into the accumulator.
func (a *Moments) AddAll(vs []float64) {
	for _, v := range vs {
		a.Add(v)
	}
}

// Merge folds another accumulator into this one using Chan's parallel update,
// so per-chain accumulators can be pooled after the chains finish.
func (a *Moments) Merge(b *Moments) {
	if b.count == 0 {
		return
	}

	if a.count == 0 {
		*a = *b
		return
	}

	na, nb := float64(a.count), float64(b.count)
	delta := b.mean - a.mean

	a.mean += delta * nb / (na + nb)
	a.m2 += b.m2 + delta*delta*na*nb/(na+nb)
	a.count += b.count

	if b.min < a.min {
		a.min = b.min
	}

	if b.max > a.max {
		a.max = b.max
	}
}

// Count returns the number of observations folded in so far.
func (a *Moments) Count() uint64 { return a.count }

// Stats freezes the accumulator into a VarStats record. Std is the population
// standard deviation; it is zero for fewer than two observations.
func (a *Moments) Stats(name string) m.VarStats {
	stats := m.VarStats{Name: name, Count: a.count}

	if a.count == 0 {
		return stats
	}

	stats.Mean = a.mean
	stats.Min = a.min
	stats.Max = a.max

	if a.count > 1 {
		stats.Std = math.Sqrt(a.m2 / float64(a.count))
	}

	return stats
}

// momentsFromStats rebuilds an accumulator from persisted statistics so
// already-finished runs can be pooled without their raw draws.
func momentsFromStats(s m.VarStats) *Moments {
	a := NewMoments()
	if s.Count == 0 {
		return a
	}

	a.count = s.Count
	a.mean = s.Mean
	a.m2 = s.Std * s.Std * float64(s.Count)
	a.min = s.Min
	a.max = s.Max

	return a
}
