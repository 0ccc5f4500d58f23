// Package registry persists the local record of installed plugins as a JSON
// file.
package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/mre31/ppm/internal/core/domain"
	"github.com/mre31/ppm/internal/logging"
)

// Store reads and writes the registry file. Save replaces the file via a
// temp file and rename so a crash mid-write never leaves a truncated
// registry behind.
type Store struct {
	path string
	log  *logging.Logger
}

// NewStore creates a registry store backed by the file at path.
func NewStore(path string, log *logging.Logger) *Store {
	return &Store{path: path, log: log.Sub("registry")}
}

// registryFile is the on-disk format.
type registryFile struct {
	Version     string               `json:"version"`
	LastUpdated time.Time            `json:"last_updated"`
	Plugins     domain.LocalRegistry `json:"plugins"`
}

// Load reads the registry. A missing file is a valid initial state and
// yields an empty registry.
func (s *Store) Load() (domain.LocalRegistry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(domain.LocalRegistry), nil
		}
		return nil, &domain.IOError{Op: "read", Path: s.path, Err: err}
	}

	var file registryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &domain.IOError{Op: "parse", Path: s.path, Err: err}
	}
	if file.Plugins == nil {
		file.Plugins = make(domain.LocalRegistry)
	}
	return file.Plugins, nil
}

// Save atomically replaces the registry file with the given registry.
func (s *Store) Save(reg domain.LocalRegistry) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &domain.IOError{Op: "mkdir", Path: dir, Err: err}
	}

	file := registryFile{
		Version:     "1",
		LastUpdated: time.Now().UTC(),
		Plugins:     reg,
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return &domain.IOError{Op: "encode", Path: s.path, Err: err}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return &domain.IOError{Op: "write", Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return &domain.IOError{Op: "rename", Path: s.path, Err: err}
	}

	s.log.Debug().Int("plugins", len(reg)).Msg("registry saved")
	return nil
}
