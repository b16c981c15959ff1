package pkg

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Chain int
	Value float64
}

func TestSpill_AppendAndRange(t *testing.T) {
	spill, err := NewSpill[record](t.TempDir())
	require.NoError(t, err)

	defer func() {
		_ = spill.Remove()
	}()

	items := []record{{Chain: 0, Value: 1.5}, {Chain: 1, Value: -2}, {Chain: 0, Value: 3}}
	for _, item := range items {
		require.NoError(t, spill.Append(item))
	}

	require.Equal(t, uint64(3), spill.Len())

	var got []record

	err = spill.Range(func(index uint64, item record) error {
		require.Equal(t, uint64(len(got)), index)
		got = append(got, item)

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestSpill_RangeStopsOnCallbackError(t *testing.T) {
	spill, err := NewSpill[record](t.TempDir())
	require.NoError(t, err)

	defer func() {
		_ = spill.Remove()
	}()

	require.NoError(t, spill.Append(record{Value: 1}))
	require.NoError(t, spill.Append(record{Value: 2}))

	boom := errors.New("boom")
	seen := 0

	err = spill.Range(func(uint64, record) error {
		seen++
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, seen)
}

func TestSpill_Empty(t *testing.T) {
	spill, err := NewSpill[record](t.TempDir())
	require.NoError(t, err)

	defer func() {
		_ = spill.Remove()
	}()

	require.Equal(t, uint64(0), spill.Len())

	err = spill.Range(func(uint64, record) error {
		t.Fatal("callback must not run for an empty spill")
		return nil
	})
	require.NoError(t, err)
}

func TestSpill_RemoveDeletesBackingFile(t *testing.T) {
	spill, err := NewSpill[record](t.TempDir())
	require.NoError(t, err)

	path := spill.Path()

	_, err = os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, spill.Append(record{Value: 1}))
	require.NoError(t, spill.Remove())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSpill_CloseIsIdempotent(t *testing.T) {
	spill, err := NewSpill[record](t.TempDir())
	require.NoError(t, err)

	require.NoError(t, spill.Close())
	require.NoError(t, spill.Close())
}
