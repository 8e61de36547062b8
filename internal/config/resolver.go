package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/bovan/import-sorter/internal/logging"
	"github.com/bovan/import-sorter/pkg/types"
)

// Settings is a point-in-time snapshot of the editor's import-sorter
// settings, keyed by section name ("generalConfiguration",
// "sortConfiguration", "importStringConfiguration"). Values are nested maps
// of option name to value. The snapshot may be a live view owned by the
// host; the resolver only ever reads deep copies of it.
type Settings map[string]any

// Presence is the derived fact about the project configuration file.
type Presence struct {
	Path      string `json:"path"`
	Exists    bool   `json:"exists"`
	IsDefault bool   `json:"isDefault"`
}

// Resolver merges the three configuration sources into one effective
// configuration: built-in defaults, the editor settings snapshot, and the
// optional project configuration file, in ascending precedence. Resolution
// has no side effects besides an optional warning when a non-default file
// path points at nothing.
type Resolver struct {
	// WorkspaceRoot is joined with the configured relative file path. An
	// empty root degrades to a bare relative path rather than failing.
	WorkspaceRoot string

	// Settings is the editor settings snapshot for this trigger.
	Settings Settings

	// OnWarning receives the one-line warning for a missing non-default
	// configuration file. Optional.
	OnWarning func(message string)
}

// NewResolver creates a resolver over a workspace root and a settings
// snapshot.
func NewResolver(root string, settings Settings) *Resolver {
	return &Resolver{WorkspaceRoot: root, Settings: settings}
}

// Resolve produces the effective configuration for one sort action. It is
// called once per trigger; nothing is cached across calls, so every action
// sees the latest on-disk and editor state. Malformed JSON in the project
// file is returned as an error for the trigger boundary to report.
func (r *Resolver) Resolve() (*types.Config, error) {
	fileCfg, err := r.fileFragments()
	if err != nil {
		return nil, err
	}

	defaults := toMap(Default())

	var cfg types.Config
	targets := []struct {
		name string
		out  any
	}{
		{sectionGeneral, &cfg.General},
		{sectionSort, &cfg.Sort},
		{sectionImportString, &cfg.ImportString},
	}

	for _, t := range targets {
		merged := deepCopyMap(section(defaults, t.name))
		merged = deepMerge(merged, deepCopyMap(section(r.Settings, t.name)))
		merged = deepMerge(merged, section(fileCfg, t.name))
		if err := fromMap(merged, t.out); err != nil {
			return nil, fmt.Errorf("decode %s: %w", t.name, err)
		}
	}

	return &cfg, nil
}

// Presence reports where the project configuration file is expected and
// whether it exists. The IMPORT_SORTER_CONFIG environment variable overrides
// the configured path entirely, mirroring how the editor settings override
// only the relative location.
func (r *Resolver) Presence() Presence {
	if override := os.Getenv("IMPORT_SORTER_CONFIG"); override != "" {
		return Presence{Path: override, Exists: fileExists(override)}
	}

	rel := DefaultConfigurationFilePath
	if g, err := r.generalFromSettings(); err == nil && g.ConfigurationFilePath != "" {
		rel = g.ConfigurationFilePath
	}

	path := filepath.Join(r.WorkspaceRoot, rel)
	return Presence{
		Path:      path,
		Exists:    fileExists(path),
		IsDefault: rel == DefaultConfigurationFilePath,
	}
}

// generalFromSettings merges only defaults and editor settings for the
// general section. The file path has to come from here: the file cannot
// point at itself.
func (r *Resolver) generalFromSettings() (types.GeneralConfig, error) {
	merged := deepCopyMap(section(toMap(Default()), sectionGeneral))
	merged = deepMerge(merged, deepCopyMap(section(r.Settings, sectionGeneral)))

	var g types.GeneralConfig
	err := fromMap(merged, &g)
	return g, err
}

// fileFragments loads the project configuration file, tolerating JSONC, and
// unflattens its dotted keys into the three-section shape. A missing file
// yields an empty fragment; only a missing file at a non-default path warns.
func (r *Resolver) fileFragments() (map[string]any, error) {
	pres := r.Presence()

	if !pres.Exists {
		if !pres.IsDefault {
			r.warn(fmt.Sprintf("Import sorter configuration file not found: %s", pres.Path), pres.Path)
		}
		return map[string]any{}, nil
	}

	data, err := os.ReadFile(pres.Path)
	if err != nil {
		return nil, fmt.Errorf("read configuration file %s: %w", pres.Path, err)
	}

	data = jsonc.ToJSON(data)

	var raw map[string]any
	if err := fromBytes(data, &raw); err != nil {
		return nil, fmt.Errorf("parse configuration file %s: %w", pres.Path, err)
	}

	return unflatten(raw, settingsNamespace), nil
}

func (r *Resolver) warn(message, path string) {
	clog := logging.Component("resolver")
	clog.Warn().Str("path", path).Msg(message)
	if r.OnWarning != nil {
		r.OnWarning(message)
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
