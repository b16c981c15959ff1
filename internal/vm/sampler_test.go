package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedDist draws a constant, recording the shape it was asked for.
type fixedDist struct {
	value float64
	shape *[]int
}

func (d *fixedDist) Draw(_ Key, sampleShape []int) (Value, error) {
	if d.shape != nil {
		*d.shape = sampleShape
	}

	if len(sampleShape) == 0 {
		return Scalar(d.value), nil
	}

	out := Zeros(sampleShape)
	for i := range out.data {
		out.data[i] = d.value
	}

	return out, nil
}

func constCtor(value float64, shape *[]int) Constructor {
	return func([]Value) (Distribution, error) {
		return &fixedDist{value: value, shape: shape}, nil
	}
}

func TestSampler_RunsStepsInOrder(t *testing.T) {
	steps := []Step{
		{Kind: StepSample, Target: "a", Dist: constCtor(2, nil), DistName: "Const", WithShape: true},
		{Kind: StepAssign, Target: "b", Value: func(env Env) (Value, error) {
			return Map(env["a"], func(f float64) float64 { return f * 10 }), nil
		}},
	}

	s := NewSampler("m_sampler", "m", []string{"rng_key", "sample_shape"}, nil, steps)
	require.Equal(t, []string{"a", "b"}, s.Vars)

	ds, err := s.Draw(NewKey(1), nil, nil)
	require.NoError(t, err)
	require.Len(t, ds.Draws, 2)
	assert.Equal(t, "m", ds.Model)

	a, _ := ds.Get("a")
	b, _ := ds.Get("b")

	af, err := a.Float()
	require.NoError(t, err)
	assert.Equal(t, 2.0, af)

	bf, err := b.Float()
	require.NoError(t, err)
	assert.Equal(t, 20.0, bf)
}

func TestSampler_ShapeOnlyReachesLeafSteps(t *testing.T) {
	var leafShape, innerShape []int

	steps := []Step{
		{Kind: StepSample, Target: "a", Dist: constCtor(1, &leafShape), WithShape: true},
		{Kind: StepSample, Target: "b", Dist: constCtor(1, &innerShape), WithShape: false},
	}

	s := NewSampler("m_sampler", "m", nil, nil, steps)

	_, err := s.Draw(NewKey(1), nil, []int{4})
	require.NoError(t, err)

	assert.Equal(t, []int{4}, leafShape)
	assert.Nil(t, innerShape)
}

func TestSampler_ArgCountMismatch(t *testing.T) {
	s := NewSampler("m_sampler", "m", nil, []string{"x"}, nil)

	_, err := s.Draw(NewKey(1), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expects 1 argument")
}

func TestSampler_DiscardStepsLeaveNoDraw(t *testing.T) {
	steps := []Step{
		{Kind: StepDiscard, Value: func(Env) (Value, error) { return Scalar(1), nil }},
		{Kind: StepAssign, Target: "x", Value: func(Env) (Value, error) { return Scalar(2), nil }},
	}

	s := NewSampler("m_sampler", "m", nil, nil, steps)
	require.Equal(t, []string{"x"}, s.Vars)

	ds, err := s.Draw(NewKey(1), nil, nil)
	require.NoError(t, err)
	assert.Len(t, ds.Draws, 1)
}

func TestMemoized_CachesByKeyArgsAndShape(t *testing.T) {
	calls := 0

	fn := Fn(func(key Key, args []Value, sampleShape []int) (*DrawSet, error) {
		calls++
		return &DrawSet{Model: "m", Draws: []Draw{{Name: "x", Value: Scalar(float64(calls))}}}, nil
	})

	cached := Memoized(fn)

	first, err := cached(NewKey(1), nil, nil)
	require.NoError(t, err)

	again, err := cached(NewKey(1), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, first.Draws[0].Value.Equal(again.Draws[0].Value))

	_, err = cached(NewKey(2), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	_, err = cached(NewKey(1), nil, []int{3})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	_, err = cached(NewKey(1), []Value{Scalar(1)}, []int{3})
	require.NoError(t, err)
	assert.Equal(t, 4, calls)
}
