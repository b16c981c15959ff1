package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	m "prior.dev/pkg/prior/internal/model"
)

// RunStore persists sampling-run summaries.
type RunStore interface {
	Save(path m.Path, run m.RunSummary) error
	Load(path m.Path) (m.RunSummary, error)
	// List returns the summary files inside dir, sorted by name.
	List(dir m.Path) ([]m.Path, error)
}

// YAMLRunStore stores run summaries as YAML files.
type YAMLRunStore struct{}

// NewYAMLRunStore constructs a YAMLRunStore.
func NewYAMLRunStore() *YAMLRunStore {
	return &YAMLRunStore{}
}

// Save implements RunStore.
func (s *YAMLRunStore) Save(path m.Path, run m.RunSummary) error {
	data, err := yaml.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to encode run summary: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		return fmt.Errorf("failed to write run summary: %w", err)
	}

	return nil
}

// Load implements RunStore.
func (s *YAMLRunStore) Load(path m.Path) (m.RunSummary, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.RunSummary{}, fmt.Errorf("failed to read run summary: %w", err)
	}

	var run m.RunSummary
	if err := yaml.Unmarshal(data, &run); err != nil {
		return m.RunSummary{}, fmt.Errorf("failed to decode run summary %s: %w", path, err)
	}

	return run, nil
}

// List implements RunStore.
func (s *YAMLRunStore) List(dir m.Path) ([]m.Path, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return nil, err
	}

	var paths []m.Path

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}

		paths = append(paths, m.Path(filepath.Join(string(dir), entry.Name())))
	}

	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })

	return paths, nil
}
