// Package ports defines the interfaces the reconciliation engine depends on.
package ports

import (
	"context"

	"github.com/mre31/ppm/internal/core/domain"
)

// ManifestClient fetches the remote manifest and plugin artifacts.
type ManifestClient interface {
	// FetchManifest retrieves and validates the plugin manifest.
	FetchManifest(ctx context.Context) (domain.RemoteManifest, error)

	// FetchPlugin downloads the raw bytes of the plugin the descriptor
	// points at. Integrity checking is the caller's job.
	FetchPlugin(ctx context.Context, desc domain.PluginDescriptor) ([]byte, error)
}

// RegistryStore persists the local registry.
type RegistryStore interface {
	// Load reads the registry. A missing file is an empty registry.
	Load() (domain.LocalRegistry, error)

	// Save atomically replaces the persisted registry.
	Save(registry domain.LocalRegistry) error
}

// FileManager owns the plugins directory. Nothing else writes to it.
type FileManager interface {
	// Place writes plugin bytes under the given file name, enabled or
	// disabled, and returns the final path.
	Place(filename string, data []byte, enabled bool) (string, error)

	// Remove deletes a plugin file. Removing a missing file is a no-op.
	Remove(path string) error

	// SetEnabled moves a plugin file to its enabled or disabled location
	// and returns the new path. Already in the target state is a no-op.
	SetEnabled(path string, enabled bool) (string, error)

	// Read returns the current content of a plugin file.
	Read(path string) ([]byte, error)
}
