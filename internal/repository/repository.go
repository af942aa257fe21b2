// Package repository resolves model names against an on-disk model repository.
package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"autotune/internal/common/fsutil"
)

// Entry points at one model in the repository.
type Entry struct {
	Name       string
	Dir        string
	ConfigPath string
}

// Repository is a scanned model repository. Lookup is the only operation the
// search core needs; the config file format itself stays opaque here.
type Repository struct {
	dir     string
	entries map[string]Entry
}

// modelNotFoundError signals a model name with no repository entry.
type modelNotFoundError struct{ name string }

func (e modelNotFoundError) Error() string { return "model not found in repository: " + e.name }

// IsModelNotFound reports whether the error indicates a missing repository entry.
func IsModelNotFound(err error) bool {
	_, ok := err.(modelNotFoundError)
	return ok
}

// Open scans dir for model subdirectories. A subdirectory containing a
// config.pbtxt is an entry; other files are ignored.
func Open(dir string) (*Repository, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	dirents, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read repository: %w", err)
	}
	entries := make(map[string]Entry)
	for _, e := range dirents {
		if !e.IsDir() {
			continue
		}
		cfg := filepath.Join(abs, e.Name(), "config.pbtxt")
		if !fsutil.PathExists(cfg) {
			continue
		}
		entries[e.Name()] = Entry{
			Name:       e.Name(),
			Dir:        filepath.Join(abs, e.Name()),
			ConfigPath: cfg,
		}
	}
	return &Repository{dir: abs, entries: entries}, nil
}

// Dir returns the absolute repository root.
func (r *Repository) Dir() string { return r.dir }

// Lookup resolves a model name to its entry.
func (r *Repository) Lookup(name string) (Entry, error) {
	e, ok := r.entries[name]
	if !ok {
		return Entry{}, modelNotFoundError{name: name}
	}
	return e, nil
}

// Names returns all entry names; order is unspecified.
func (r *Repository) Names() []string {
	out := make([]string, 0, len(r.entries))
	for n := range r.entries {
		out = append(out, n)
	}
	return out
}
