package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoments_KnownValues(t *testing.T) {
	acc := NewMoments()
	acc.AddAll([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	stats := acc.Stats("x")
	assert.Equal(t, "x", stats.Name)
	assert.Equal(t, uint64(8), stats.Count)
	assert.InDelta(t, 5.0, stats.Mean, 1e-12)
	assert.InDelta(t, 2.0, stats.Std, 1e-12)
	assert.Equal(t, 2.0, stats.Min)
	assert.Equal(t, 9.0, stats.Max)
}

func TestMoments_Empty(t *testing.T) {
	stats := NewMoments().Stats("x")

	assert.Equal(t, uint64(0), stats.Count)
	assert.Zero(t, stats.Mean)
	assert.Zero(t, stats.Std)
	assert.Zero(t, stats.Min)
	assert.Zero(t, stats.Max)
}

func TestMoments_MergeMatchesSequential(t *testing.T) {
	all := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	sequential := NewMoments()
	sequential.AddAll(all)

	left := NewMoments()
	left.AddAll(all[:3])

	right := NewMoments()
	right.AddAll(all[3:])

	left.Merge(right)

	want := sequential.Stats("x")
	got := left.Stats("x")

	assert.Equal(t, want.Count, got.Count)
	assert.InDelta(t, want.Mean, got.Mean, 1e-12)
	assert.InDelta(t, want.Std, got.Std, 1e-12)
	assert.Equal(t, want.Min, got.Min)
	assert.Equal(t, want.Max, got.Max)
}

func TestMoments_MergeWithEmpty(t *testing.T) {
	acc := NewMoments()
	acc.AddAll([]float64{1, 2, 3})

	acc.Merge(NewMoments())
	assert.Equal(t, uint64(3), acc.Count())

	empty := NewMoments()
	empty.Merge(acc)
	assert.Equal(t, uint64(3), empty.Count())
	assert.InDelta(t, 2.0, empty.Stats("x").Mean, 1e-12)
}

func TestMomentsFromStats_RoundTrip(t *testing.T) {
	acc := NewMoments()
	acc.AddAll([]float64{3, 1, 4, 1, 5, 9, 2, 6})

	want := acc.Stats("x")

	rebuilt := momentsFromStats(want)
	got := rebuilt.Stats("x")

	assert.Equal(t, want.Count, got.Count)
	assert.InDelta(t, want.Mean, got.Mean, 1e-12)
	assert.InDelta(t, want.Std, got.Std, 1e-9)
	assert.Equal(t, want.Min, got.Min)
	assert.Equal(t, want.Max, got.Max)
}

func TestMomentsFromStats_PoolsLikeRawData(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	b := []float64{10, 20, 30, 40, 50}

	accA := NewMoments()
	accA.AddAll(a)

	accB := NewMoments()
	accB.AddAll(b)

	// Pool the frozen stats, not the raw accumulators.
	pooled := momentsFromStats(accA.Stats("x"))
	pooled.Merge(momentsFromStats(accB.Stats("x")))

	direct := NewMoments()
	direct.AddAll(a)
	direct.AddAll(b)

	want := direct.Stats("x")
	got := pooled.Stats("x")

	require.Equal(t, want.Count, got.Count)
	assert.InDelta(t, want.Mean, got.Mean, 1e-9)
	assert.InDelta(t, want.Std, got.Std, 1e-9)
}
