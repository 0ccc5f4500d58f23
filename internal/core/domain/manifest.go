package domain

import (
	"sort"
	"strings"
)

// PluginDescriptor is one entry of the remote manifest: where to fetch the
// plugin from and the digest the fetched bytes must match.
type PluginDescriptor struct {
	File        string `json:"file"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Version     string `json:"version"`
	SHA256      string `json:"sha256"`
}

// RemoteManifest is the full set of installable plugins published by the
// repository. It is fetched fresh for every operation and never cached.
type RemoteManifest struct {
	Plugins map[string]PluginDescriptor `json:"plugins"`
}

// Lookup returns the descriptor for a plugin name.
func (m RemoteManifest) Lookup(name string) (PluginDescriptor, bool) {
	d, ok := m.Plugins[name]
	return d, ok
}

// Names returns all plugin names in sorted order.
func (m RemoteManifest) Names() []string {
	names := make([]string, 0, len(m.Plugins))
	for name := range m.Plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Search returns the subset of plugins whose name or description contains
// the keyword, case-insensitively.
func (m RemoteManifest) Search(keyword string) map[string]PluginDescriptor {
	keyword = strings.ToLower(keyword)
	matches := make(map[string]PluginDescriptor)
	for name, desc := range m.Plugins {
		if strings.Contains(strings.ToLower(name), keyword) ||
			strings.Contains(strings.ToLower(desc.Description), keyword) {
			matches[name] = desc
		}
	}
	return matches
}

// Validate checks every manifest entry for the fields the install path
// depends on. A bad entry is a problem with the remote source, so failures
// are reported as a ParseError.
func (m RemoteManifest) Validate() error {
	for name, desc := range m.Plugins {
		if strings.TrimSpace(name) == "" {
			return &ParseError{Reason: "manifest contains a plugin with an empty name"}
		}
		if desc.File == "" {
			return &ParseError{Reason: "plugin " + name + " is missing 'file'"}
		}
		if desc.Version == "" {
			return &ParseError{Reason: "plugin " + name + " is missing 'version'"}
		}
		if !IsDigest(desc.SHA256) {
			return &ParseError{Reason: "plugin " + name + " has an invalid 'sha256' digest"}
		}
	}
	return nil
}

// IsDigest reports whether s looks like a SHA-256 digest: exactly 64
// lowercase hex characters.
func IsDigest(s string) bool {
	if len(s) != 64 {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
