package vm

import xrand "golang.org/x/exp/rand"

// Key is the randomness source handed to a sampler. Keys are plain values:
// folding or splitting a key derives new independent keys deterministically,
// so repeated draws with the same key reproduce the same samples.
type Key uint64

// NewKey derives a Key from a seed.
func NewKey(seed uint64) Key {
	return Key(splitmix64(seed))
}

// Fold derives the n-th subkey. Distinct n values yield decorrelated keys.
func (k Key) Fold(n uint64) Key {
	return Key(splitmix64(uint64(k) ^ (0x9e3779b97f4a7c15 + n)))
}

// Split derives n subkeys.
func (k Key) Split(n int) []Key {
	keys := make([]Key, n)
	for i := range keys {
		keys[i] = k.Fold(uint64(i))
	}

	return keys
}

// Source adapts the key to a rand.Source for numeric backends.
func (k Key) Source() xrand.Source {
	return xrand.NewSource(uint64(k))
}

// Rand returns a generator seeded by the key.
func (k Key) Rand() *xrand.Rand {
	return xrand.New(k.Source())
}

// splitmix64 is the finalizer of the SplitMix64 generator; it mixes the input
// into a well-distributed 64-bit value.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31

	return x
}
