// Package services contains the reconciliation engine that keeps the local
// plugin state consistent with the remote manifest.
package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/mre31/ppm/internal/core/domain"
	"github.com/mre31/ppm/internal/core/integrity"
	"github.com/mre31/ppm/internal/core/ports"
	"github.com/mre31/ppm/internal/logging"
)

// Engine composes the manifest client, registry store, and file manager into
// the install/uninstall/update/enable/disable/doctor operations. Every
// operation loads the registry fresh, mutates an in-memory copy, and saves
// the whole registry back only after the filesystem change succeeded, so a
// failure never leaves a registry entry without its file.
type Engine struct {
	manifest ports.ManifestClient
	store    ports.RegistryStore
	files    ports.FileManager
	log      *logging.Logger
}

// NewEngine creates a reconciliation engine.
func NewEngine(manifest ports.ManifestClient, store ports.RegistryStore, files ports.FileManager, log *logging.Logger) *Engine {
	return &Engine{
		manifest: manifest,
		store:    store,
		files:    files,
		log:      log.Sub("engine"),
	}
}

// UpdateResult is the per-plugin outcome of an update run. Plugins are
// independent: one failure never aborts the rest.
type UpdateResult struct {
	Name    string
	Updated bool
	From    string
	To      string
	Err     error
}

// DoctorProblem classifies what doctor found wrong with one registry entry.
type DoctorProblem string

const (
	// ProblemMissingFile means the registry points at a file that no
	// longer exists.
	ProblemMissingFile DoctorProblem = "missing_file"

	// ProblemHashMismatch means the file on disk no longer hashes to the
	// digest recorded at install time.
	ProblemHashMismatch DoctorProblem = "hash_mismatch"

	// ProblemUnreadable means the file exists but could not be read.
	ProblemUnreadable DoctorProblem = "unreadable"
)

// DoctorFinding is one issue doctor discovered, and whether repair fixed it.
type DoctorFinding struct {
	Name     string
	Problem  DoctorProblem
	Path     string
	Repaired bool
	Err      error
}

// Info is the merged remote and local view of a single plugin.
type Info struct {
	Name       string
	Descriptor domain.PluginDescriptor
	Installed  bool
	Record     domain.InstalledRecord
}

// Install fetches, verifies, and places a plugin, then records it in the
// registry as enabled. Installing a plugin that is already installed is a
// no-op reported as ErrAlreadyInstalled.
func (e *Engine) Install(ctx context.Context, name string) (domain.InstalledRecord, error) {
	var rec domain.InstalledRecord

	reg, err := e.store.Load()
	if err != nil {
		return rec, err
	}
	if _, ok := reg[name]; ok {
		return rec, fmt.Errorf("%s: %w", name, domain.ErrAlreadyInstalled)
	}

	manifest, err := e.manifest.FetchManifest(ctx)
	if err != nil {
		return rec, err
	}
	desc, ok := manifest.Lookup(name)
	if !ok {
		return rec, fmt.Errorf("%s: %w", name, domain.ErrNotFound)
	}

	rec, err = e.fetchAndPlace(ctx, name, desc, true)
	if err != nil {
		return rec, err
	}

	reg[name] = rec
	if err := e.store.Save(reg); err != nil {
		return rec, err
	}

	e.log.Info().Str("plugin", name).Str("version", rec.Version).Msg("plugin installed")
	return rec, nil
}

// Uninstall removes a plugin's file and registry entry. The file is removed
// first; a registry entry without a file is repairable by doctor, a file
// without an entry would be invisible forever.
func (e *Engine) Uninstall(name string) error {
	reg, err := e.store.Load()
	if err != nil {
		return err
	}
	rec, ok := reg[name]
	if !ok {
		return fmt.Errorf("%s: %w", name, domain.ErrNotInstalled)
	}

	if err := e.files.Remove(rec.Path); err != nil {
		return err
	}

	delete(reg, name)
	if err := e.store.Save(reg); err != nil {
		return err
	}

	e.log.Info().Str("plugin", name).Msg("plugin uninstalled")
	return nil
}

// Update brings one installed plugin to the manifest version, preserving its
// enabled state. Equal versions mean nothing to do.
func (e *Engine) Update(ctx context.Context, name string) (UpdateResult, error) {
	reg, err := e.store.Load()
	if err != nil {
		return UpdateResult{Name: name}, err
	}
	rec, ok := reg[name]
	if !ok {
		return UpdateResult{Name: name}, fmt.Errorf("%s: %w", name, domain.ErrNotInstalled)
	}

	manifest, err := e.manifest.FetchManifest(ctx)
	if err != nil {
		return UpdateResult{Name: name}, err
	}

	res := e.updateOne(ctx, name, rec, manifest, reg)
	if res.Err != nil {
		return res, res.Err
	}
	if res.Updated {
		if err := e.store.Save(reg); err != nil {
			return res, err
		}
	}
	return res, nil
}

// UpdateAll updates every installed plugin against one manifest snapshot and
// returns a per-plugin report. A failing plugin is recorded and skipped;
// successful updates are kept and persisted regardless.
func (e *Engine) UpdateAll(ctx context.Context) ([]UpdateResult, error) {
	reg, err := e.store.Load()
	if err != nil {
		return nil, err
	}
	if len(reg) == 0 {
		return nil, nil
	}

	manifest, err := e.manifest.FetchManifest(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]UpdateResult, 0, len(reg))
	changed := false
	for _, name := range reg.Names() {
		res := e.updateOne(ctx, name, reg[name], manifest, reg)
		if res.Updated {
			changed = true
		}
		results = append(results, res)
	}

	if changed {
		if err := e.store.Save(reg); err != nil {
			return results, err
		}
	}
	return results, nil
}

// updateOne re-runs the install path over an existing entry. The registry
// map is mutated in place on success; the caller decides when to persist.
func (e *Engine) updateOne(ctx context.Context, name string, rec domain.InstalledRecord, manifest domain.RemoteManifest, reg domain.LocalRegistry) UpdateResult {
	res := UpdateResult{Name: name, From: rec.Version}

	desc, ok := manifest.Lookup(name)
	if !ok {
		res.Err = fmt.Errorf("%s: %w", name, domain.ErrNotFound)
		return res
	}
	res.To = desc.Version

	if desc.Version == rec.Version {
		return res
	}

	fresh, err := e.fetchAndPlace(ctx, name, desc, rec.Enabled)
	if err != nil {
		res.Err = err
		return res
	}

	// The manifest may have renamed the plugin file; drop the old one.
	if rec.Path != fresh.Path {
		if err := e.files.Remove(rec.Path); err != nil {
			e.log.Warn().Str("plugin", name).Str("path", rec.Path).Err(err).
				Msg("failed to remove superseded plugin file")
		}
	}

	reg[name] = fresh
	res.Updated = true
	e.log.Info().Str("plugin", name).Str("from", res.From).Str("to", res.To).Msg("plugin updated")
	return res
}

// Enable moves a plugin to its active location and flips the registry flag.
func (e *Engine) Enable(name string) error {
	return e.setEnabled(name, true)
}

// Disable moves a plugin to its inactive location and flips the registry flag.
func (e *Engine) Disable(name string) error {
	return e.setEnabled(name, false)
}

func (e *Engine) setEnabled(name string, enabled bool) error {
	reg, err := e.store.Load()
	if err != nil {
		return err
	}
	rec, ok := reg[name]
	if !ok {
		return fmt.Errorf("%s: %w", name, domain.ErrNotInstalled)
	}
	if rec.Enabled == enabled {
		return fmt.Errorf("%s: %w", name, domain.ErrAlreadyInState)
	}

	path, err := e.files.SetEnabled(rec.Path, enabled)
	if err != nil {
		return err
	}

	rec.Path = path
	rec.Enabled = enabled
	reg[name] = rec
	if err := e.store.Save(reg); err != nil {
		return err
	}

	e.log.Info().Str("plugin", name).Bool("enabled", enabled).Msg("plugin state changed")
	return nil
}

// Available returns the remote manifest.
func (e *Engine) Available(ctx context.Context) (domain.RemoteManifest, error) {
	return e.manifest.FetchManifest(ctx)
}

// Installed returns the local registry.
func (e *Engine) Installed() (domain.LocalRegistry, error) {
	return e.store.Load()
}

// Search returns the manifest entries matching a keyword by name or
// description, case-insensitively.
func (e *Engine) Search(ctx context.Context, keyword string) (map[string]domain.PluginDescriptor, error) {
	manifest, err := e.manifest.FetchManifest(ctx)
	if err != nil {
		return nil, err
	}
	return manifest.Search(keyword), nil
}

// PluginInfo returns the manifest entry for a plugin merged with its local
// install state.
func (e *Engine) PluginInfo(ctx context.Context, name string) (Info, error) {
	manifest, err := e.manifest.FetchManifest(ctx)
	if err != nil {
		return Info{}, err
	}
	desc, ok := manifest.Lookup(name)
	if !ok {
		return Info{}, fmt.Errorf("%s: %w", name, domain.ErrNotFound)
	}

	info := Info{Name: name, Descriptor: desc}
	reg, err := e.store.Load()
	if err != nil {
		return info, err
	}
	if rec, ok := reg[name]; ok {
		info.Installed = true
		info.Record = rec
	}
	return info, nil
}

// Doctor checks every registry entry against the filesystem: the file must
// exist, be readable, and still hash to the recorded digest. With repair on,
// entries for confirmed-missing files are dropped from the registry and
// corrupted files are re-fetched from the repository. Plugin files are never
// deleted by repair.
func (e *Engine) Doctor(ctx context.Context, repair bool) ([]DoctorFinding, error) {
	reg, err := e.store.Load()
	if err != nil {
		return nil, err
	}

	var findings []DoctorFinding
	var manifest domain.RemoteManifest
	manifestLoaded := false
	changed := false

	for _, name := range reg.Names() {
		rec := reg[name]
		data, err := e.files.Read(rec.Path)
		if err != nil {
			finding := DoctorFinding{Name: name, Path: rec.Path, Err: err}
			if isNotExist(err) {
				finding.Problem = ProblemMissingFile
				finding.Err = nil
				if repair {
					delete(reg, name)
					finding.Repaired = true
					changed = true
				}
			} else {
				finding.Problem = ProblemUnreadable
			}
			findings = append(findings, finding)
			continue
		}

		if integrity.Verify(data, rec.SHA256) {
			continue
		}

		finding := DoctorFinding{Name: name, Path: rec.Path, Problem: ProblemHashMismatch}
		if repair {
			if !manifestLoaded {
				manifest, err = e.manifest.FetchManifest(ctx)
				if err != nil {
					finding.Err = err
					findings = append(findings, finding)
					continue
				}
				manifestLoaded = true
			}
			finding = e.repairCorrupted(ctx, name, rec, manifest, reg, finding)
			if finding.Repaired {
				changed = true
			}
		}
		findings = append(findings, finding)
	}

	if changed {
		if err := e.store.Save(reg); err != nil {
			return findings, err
		}
	}
	return findings, nil
}

func (e *Engine) repairCorrupted(ctx context.Context, name string, rec domain.InstalledRecord, manifest domain.RemoteManifest, reg domain.LocalRegistry, finding DoctorFinding) DoctorFinding {
	desc, ok := manifest.Lookup(name)
	if !ok {
		finding.Err = fmt.Errorf("%s: %w", name, domain.ErrNotFound)
		return finding
	}

	fresh, err := e.fetchAndPlace(ctx, name, desc, rec.Enabled)
	if err != nil {
		finding.Err = err
		return finding
	}
	if rec.Path != fresh.Path {
		if err := e.files.Remove(rec.Path); err != nil {
			e.log.Warn().Str("plugin", name).Err(err).Msg("failed to remove corrupted plugin file")
		}
	}

	reg[name] = fresh
	finding.Repaired = true
	e.log.Info().Str("plugin", name).Msg("corrupted plugin re-fetched")
	return finding
}

// isNotExist unwraps through IOError to the underlying filesystem error.
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// fetchAndPlace downloads plugin bytes, verifies them against the manifest
// digest, and writes them into the plugins directory. Nothing reaches the
// final location unless the digest matched.
func (e *Engine) fetchAndPlace(ctx context.Context, name string, desc domain.PluginDescriptor, enabled bool) (domain.InstalledRecord, error) {
	var rec domain.InstalledRecord

	data, err := e.manifest.FetchPlugin(ctx, desc)
	if err != nil {
		return rec, err
	}

	if !integrity.Verify(data, desc.SHA256) {
		return rec, &domain.IntegrityError{
			Name:     name,
			Expected: desc.SHA256,
			Actual:   integrity.Digest(data),
		}
	}

	path, err := e.files.Place(filepath.Base(desc.File), data, enabled)
	if err != nil {
		return rec, err
	}

	return domain.InstalledRecord{
		Version: desc.Version,
		SHA256:  desc.SHA256,
		Enabled: enabled,
		Path:    path,
	}, nil
}
