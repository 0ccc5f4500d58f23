package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the no-op and not-found conditions. The CLI layer maps
// these to exit codes and informational messages; none of them indicate a
// partial mutation.
var (
	// ErrNotFound means the plugin name is absent from the remote manifest.
	ErrNotFound = errors.New("plugin not found in repository")

	// ErrNotInstalled means the plugin has no record in the local registry.
	ErrNotInstalled = errors.New("plugin is not installed")

	// ErrAlreadyInstalled means install was requested for a plugin that
	// already has a registry entry.
	ErrAlreadyInstalled = errors.New("plugin is already installed")

	// ErrAlreadyInState means enable/disable was requested for a plugin
	// already in the target state.
	ErrAlreadyInState = errors.New("plugin is already in the requested state")
)

// NetworkError wraps a transport-level failure or an unexpected HTTP status
// while talking to the remote repository. It is distinct from ParseError so
// callers can tell connectivity trouble from a broken remote source.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError means the remote manifest is malformed: invalid JSON, unknown
// fields, or an entry failing validation. Retrying will not help.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid manifest: %s: %v", e.Reason, e.Err)
	}
	return "invalid manifest: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// IntegrityError means plugin bytes failed their SHA-256 check, either after
// download or against the registry during doctor. The content must never be
// trusted; both digests are carried so the caller can show them.
type IntegrityError struct {
	Name     string
	Expected string
	Actual   string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("hash mismatch for plugin %s: expected %s, got %s",
		e.Name, e.Expected, e.Actual)
}

// IOError wraps a local filesystem failure (read, write, rename, remove).
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
