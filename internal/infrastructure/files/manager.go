// Package files owns the plugins directory: placing, removing, and toggling
// plugin files. No other component writes there.
package files

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mre31/ppm/internal/core/domain"
	"github.com/mre31/ppm/internal/logging"
)

// DisabledSuffix marks a plugin file the host application must not load.
// Enable and disable are a single rename between the two names.
const DisabledSuffix = ".disabled"

// Manager implements plugin file placement inside one directory.
type Manager struct {
	dir string
	log *logging.Logger
}

// NewManager creates a file manager rooted at dir. The directory is created
// lazily on first placement.
func NewManager(dir string, log *logging.Logger) *Manager {
	return &Manager{dir: dir, log: log.Sub("files")}
}

// Dir returns the plugins directory.
func (m *Manager) Dir() string { return m.dir }

// Place writes plugin bytes to a temp file and renames it into its final
// location, enabled or disabled. An existing file at the destination is
// replaced, which is how updates overwrite the previous version.
func (m *Manager) Place(filename string, data []byte, enabled bool) (string, error) {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", &domain.IOError{Op: "mkdir", Path: m.dir, Err: err}
	}

	final := filepath.Join(m.dir, filepath.Base(filename))
	if !enabled {
		final += DisabledSuffix
	}

	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", &domain.IOError{Op: "write", Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return "", &domain.IOError{Op: "rename", Path: final, Err: err}
	}

	m.log.Debug().Str("path", final).Int("bytes", len(data)).Msg("plugin file placed")
	return final, nil
}

// Remove deletes a plugin file. A file that is already gone is not an error.
func (m *Manager) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return &domain.IOError{Op: "remove", Path: path, Err: err}
	}
	return nil
}

// SetEnabled renames a plugin file between its enabled and disabled names
// and returns the resulting path. Calling it with the state the file is
// already in returns the path unchanged.
func (m *Manager) SetEnabled(path string, enabled bool) (string, error) {
	target := enabledPath(path)
	if !enabled {
		target += DisabledSuffix
	}
	if target == path {
		return path, nil
	}

	if err := os.Rename(path, target); err != nil {
		return "", &domain.IOError{Op: "rename", Path: path, Err: err}
	}

	m.log.Debug().Str("from", path).Str("to", target).Msg("plugin file toggled")
	return target, nil
}

// Read returns the current content of a plugin file.
func (m *Manager) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.IOError{Op: "read", Path: path, Err: err}
	}
	return data, nil
}

// enabledPath strips the disabled marker, if present.
func enabledPath(path string) string {
	return strings.TrimSuffix(path, DisabledSuffix)
}
