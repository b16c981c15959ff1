package adapter

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "prior.dev/pkg/prior/internal/model"
)

func sampleRun(model string) m.RunSummary {
	return m.RunSummary{
		Model:     model,
		File:      "examples/coin.prior",
		Draws:     100,
		Chains:    2,
		Seed:      42,
		CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Stats: []m.VarStats{
			{Name: "p", Count: 200, Mean: 0.5, Std: 0.28, Min: 0.01, Max: 0.99},
		},
	}
}

func TestRunStore_SaveLoadRoundTrip(t *testing.T) {
	store := NewYAMLRunStore()
	path := m.Path(filepath.Join(t.TempDir(), "runs", "coin.yaml"))

	run := sampleRun("coin")
	require.NoError(t, store.Save(path, run))

	loaded, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, run, loaded)
}

func TestRunStore_LoadMissing(t *testing.T) {
	store := NewYAMLRunStore()

	_, err := store.Load(m.Path(filepath.Join(t.TempDir(), "nope.yaml")))
	require.Error(t, err)
}

func TestRunStore_ListSortedYAMLOnly(t *testing.T) {
	store := NewYAMLRunStore()
	dir := t.TempDir()

	require.NoError(t, store.Save(m.Path(filepath.Join(dir, "b.yaml")), sampleRun("b")))
	require.NoError(t, store.Save(m.Path(filepath.Join(dir, "a.yaml")), sampleRun("a")))
	writeFile(t, dir, "draws.gob", "binary")

	paths, err := store.List(m.Path(dir))
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, "a.yaml", filepath.Base(string(paths[0])))
	assert.Equal(t, "b.yaml", filepath.Base(string(paths[1])))
}
