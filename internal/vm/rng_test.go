package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFold_Deterministic(t *testing.T) {
	key := NewKey(42)

	assert.Equal(t, key.Fold(1), NewKey(42).Fold(1))
	assert.NotEqual(t, key.Fold(1), key.Fold(2))
	assert.NotEqual(t, key, key.Fold(0))
}

func TestKeySplit(t *testing.T) {
	keys := NewKey(7).Split(4)
	require.Len(t, keys, 4)

	seen := make(map[Key]bool)
	for _, k := range keys {
		assert.False(t, seen[k])
		seen[k] = true
	}
}

func TestKeyRand_ReproducibleStream(t *testing.T) {
	a := NewKey(123).Rand()
	b := NewKey(123).Rand()

	for i := 0; i < 10; i++ {
		require.Equal(t, a.Float64(), b.Float64())
	}

	c := NewKey(124).Rand()
	assert.NotEqual(t, NewKey(123).Rand().Float64(), c.Float64())
}

func TestDifferentSeedsDecorrelate(t *testing.T) {
	// Adjacent seeds must not produce adjacent keys.
	assert.NotEqual(t, NewKey(1), NewKey(2))
	assert.NotEqual(t, uint64(NewKey(1))+1, uint64(NewKey(2)))
}
