// Package assets resolves asset paths against an ordered list of search roots.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned when no root holds the requested file.
var ErrNotFound = errors.New("asset not found")

// root is one place assets are read from.
type root struct {
	name string
	fsys fs.FS
}

// Manager reads asset files from its roots. Roots are searched in the order
// they were added; the first hit wins. Nothing is cached.
type Manager struct {
	roots []root
	mu    sync.RWMutex
}

// NewManager creates a manager with no roots.
func NewManager() *Manager {
	return &Manager{}
}

// AddDir adds a directory root. It fails if dir is not an existing directory.
func (m *Manager) AddDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("adding asset root %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding asset root %s: not a directory", dir)
	}
	m.AddFS(dir, os.DirFS(dir))
	return nil
}

// AddFS adds an arbitrary file system as a root.
func (m *Manager) AddFS(name string, fsys fs.FS) {
	m.mu.Lock()
	m.roots = append(m.roots, root{name: name, fsys: fsys})
	m.mu.Unlock()
}

// Roots returns the root names in search order.
func (m *Manager) Roots() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, len(m.roots))
	for i, r := range m.roots {
		names[i] = r.name
	}
	return names
}

// Load reads the file at p. Absolute paths are read directly; relative ones
// are tried against each root in order.
func (m *Manager) Load(p string) ([]byte, error) {
	if filepath.IsAbs(p) {
		data, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		return data, err
	}

	name := path.Clean(filepath.ToSlash(p))
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: %s escapes the asset roots", ErrNotFound, p)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.roots {
		data, err := fs.ReadFile(r.fsys, name)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s from %s: %w", name, r.name, err)
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
}
