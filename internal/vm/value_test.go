package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		name string
		a    []int
		b    []int
		want []int
	}{
		{name: "scalar scalar", a: nil, b: nil, want: []int{}},
		{name: "scalar vector", a: nil, b: []int{3}, want: []int{3}},
		{name: "equal shapes", a: []int{2, 3}, b: []int{2, 3}, want: []int{2, 3}},
		{name: "ones stretch", a: []int{2, 1}, b: []int{1, 3}, want: []int{2, 3}},
		{name: "rank extension", a: []int{3}, b: []int{2, 3}, want: []int{2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BroadcastShapes(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBroadcastShapes_Incompatible(t *testing.T) {
	_, err := BroadcastShapes([]int{2}, []int{3})
	require.Error(t, err)
}

func TestBroadcastTo(t *testing.T) {
	v, err := NewValue([]int{2, 1}, []float64{1, 2})
	require.NoError(t, err)

	out, err := BroadcastTo(v, []int{2, 3})
	require.NoError(t, err)

	assert.Equal(t, []int{2, 3}, out.Shape())
	assert.Equal(t, []float64{1, 1, 1, 2, 2, 2}, out.Data())
}

func TestBroadcastTo_Scalar(t *testing.T) {
	out, err := BroadcastTo(Scalar(5), []int{2, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 5, 5, 5}, out.Data())
}

func TestMap2_Broadcasting(t *testing.T) {
	row, err := NewValue([]int{3}, []float64{1, 2, 3})
	require.NoError(t, err)

	col, err := NewValue([]int{2, 1}, []float64{10, 20})
	require.NoError(t, err)

	sum, err := Map2(row, col, func(x, y float64) float64 { return x + y })
	require.NoError(t, err)

	assert.Equal(t, []int{2, 3}, sum.Shape())
	assert.Equal(t, []float64{11, 12, 13, 21, 22, 23}, sum.Data())
}

func TestNewValue_SizeMismatch(t *testing.T) {
	_, err := NewValue([]int{2, 2}, []float64{1, 2, 3})
	require.Error(t, err)
}

func TestValueScalarAccessors(t *testing.T) {
	v := Scalar(2.5)

	assert.True(t, v.IsScalar())
	assert.Equal(t, 0, v.Rank())
	assert.Equal(t, 1, v.Size())

	f, err := v.Float()
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)

	vec, err := NewValue([]int{2}, []float64{1, 2})
	require.NoError(t, err)

	_, err = vec.Float()
	require.Error(t, err)
}

func TestValueEqual(t *testing.T) {
	a, err := NewValue([]int{2}, []float64{1, 2})
	require.NoError(t, err)

	b, err := NewValue([]int{2}, []float64{1, 2})
	require.NoError(t, err)

	c, err := NewValue([]int{2}, []float64{1, 3})
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(Scalar(1)))
}
