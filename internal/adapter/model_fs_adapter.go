// Package adapter contains infrastructure adapters for the prior CLI.
package adapter

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	m "prior.dev/pkg/prior/internal/model"
)

// ModelFileExt is the extension model files are discovered by.
const ModelFileExt = ".prior"

// ModelFSAdapter abstracts filesystem operations the workflow relies on when
// scanning for model files, so the domain logic can be tested without
// touching the disk layout conventions.
type ModelFSAdapter interface {
	// Find discovers model files under the given paths. A path ending in
	// "/..." is walked recursively; a plain directory is scanned shallowly; a
	// file path is taken as-is. Exclude patterns are regexes matched against
	// the full path.
	Find(ctx context.Context, paths []m.Path, exclude ...string) ([]m.Source, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// HashFile returns a stable fingerprint for the file at path.
	HashFile(ctx context.Context, path m.Path) (string, error)
}

// LocalModelFSAdapter is the concrete ModelFSAdapter backed by the os package.
type LocalModelFSAdapter struct{}

// NewLocalModelFSAdapter constructs a LocalModelFSAdapter.
func NewLocalModelFSAdapter() *LocalModelFSAdapter {
	return &LocalModelFSAdapter{}
}

// Find implements ModelFSAdapter.
func (a *LocalModelFSAdapter) Find(ctx context.Context, paths []m.Path, exclude ...string) ([]m.Source, error) {
	if len(paths) == 0 {
		paths = []m.Path{"./..."}
	}

	excludes, err := compilePatterns(exclude)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)

	var sources []m.Source

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		found, err := a.findOne(string(path), excludes)
		if err != nil {
			return nil, err
		}

		for _, src := range found {
			if seen[string(src.Origin)] {
				continue
			}

			seen[string(src.Origin)] = true
			sources = append(sources, src)
		}
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].Origin < sources[j].Origin })

	return sources, nil
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		out = append(out, re)
	}

	return out, nil
}

func (a *LocalModelFSAdapter) findOne(path string, excludes []*regexp.Regexp) ([]m.Source, error) {
	recursive := false
	if strings.HasSuffix(path, "/...") {
		recursive = true
		path = strings.TrimSuffix(path, "/...")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("path error: %w", err)
	}

	if !info.IsDir() {
		return a.collect(path, excludes)
	}

	var sources []m.Source

	err = filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if fi.IsDir() {
			if !recursive && p != path {
				return filepath.SkipDir
			}

			return nil
		}

		if filepath.Ext(p) != ModelFileExt {
			return nil
		}

		found, err := a.collect(p, excludes)
		if err != nil {
			return err
		}

		sources = append(sources, found...)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return sources, nil
}

func (a *LocalModelFSAdapter) collect(path string, excludes []*regexp.Regexp) ([]m.Source, error) {
	for _, re := range excludes {
		if re.MatchString(path) {
			return nil, nil
		}
	}

	hash, err := hashFile(path)
	if err != nil {
		return nil, fmt.Errorf("hash error for %s: %w", path, err)
	}

	return []m.Source{{Origin: m.Path(path), Hash: hash}}, nil
}

// ReadFile implements ModelFSAdapter.
func (a *LocalModelFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.ReadFile(string(path))
}

// HashFile implements ModelFSAdapter.
func (a *LocalModelFSAdapter) HashFile(ctx context.Context, path m.Path) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	return hashFile(string(path))
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
