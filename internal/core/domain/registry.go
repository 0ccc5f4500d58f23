package domain

import "sort"

// InstalledRecord is the persisted state of one installed plugin. SHA256 is
// the digest of the bytes written at install time; the file at Path must
// still hash to it, anything else means corruption or tampering.
type InstalledRecord struct {
	Version string `json:"version"`
	SHA256  string `json:"sha256"`
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// LocalRegistry maps plugin name to its installed record. It is the local
// source of truth for what is installed; callers load it, mutate the
// in-memory value, and persist the whole registry back.
type LocalRegistry map[string]InstalledRecord

// Names returns the installed plugin names in sorted order.
func (r LocalRegistry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
