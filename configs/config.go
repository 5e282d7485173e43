// Package configs provides tool defaults loaded from embedded YAML files.
// All hardcoded paths, env keys, and naming rules live in defaults.yaml.
package configs

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Defaults holds all tool default values (loaded from defaults.yaml at startup).
var Defaults LibDefaults

func init() {
	if err := yaml.Unmarshal(defaultsYAML, &Defaults); err != nil {
		panic("appsetup: invalid defaults.yaml: " + err.Error())
	}
}

// LibDefaults holds all configurable tool defaults.
type LibDefaults struct {
	Environments []EnvironmentDefaults `yaml:"environments"`
	Files        FileDefaults          `yaml:"files"`
	Keys         KeyDefaults           `yaml:"keys"`
	URL          URLDefaults           `yaml:"url"`
	Database     DatabaseDefaults      `yaml:"database"`
	Manifest     ManifestDefaults      `yaml:"manifest"`
	SelfRemove   SelfRemoveDefaults    `yaml:"selfremove"`
	Guidance     GuidanceDefaults      `yaml:"guidance"`
}

// EnvironmentDefaults describes one deployment environment: the env file
// it owns, the subdomain its origin URL gets, and the suffix appended to
// derived cloud-project identifiers.
type EnvironmentDefaults struct {
	Name            string `yaml:"name"`
	File            string `yaml:"file"`
	SubdomainPrefix string `yaml:"subdomain_prefix"`
	IDSuffix        string `yaml:"id_suffix"`
	// PropagateLocal mirrors this environment's identifiers into the
	// local-development env file.
	PropagateLocal bool `yaml:"propagate_local"`
}

// FileDefaults holds env files not tied to a single environment.
type FileDefaults struct {
	Shared string `yaml:"shared"`
	Local  string `yaml:"local"`
}

// KeyDefaults holds the env keys the wizard rewrites.
type KeyDefaults struct {
	Origin   string `yaml:"origin"`
	AppName  string `yaml:"app_name"`
	Bucket   string `yaml:"bucket"`
	Project  string `yaml:"project"`
	Database string `yaml:"database"`
}

// URLDefaults holds origin URL construction defaults.
type URLDefaults struct {
	Scheme string `yaml:"scheme"`
}

// DatabaseDefaults holds database-name transformation markers.
type DatabaseDefaults struct {
	DevMarker   string `yaml:"dev_marker"`
	LocalMarker string `yaml:"local_marker"`
}

// ManifestDefaults holds project manifest editing defaults.
type ManifestDefaults struct {
	Path        string `yaml:"path"`
	SetupTarget string `yaml:"setup_target"`
}

// SelfRemoveDefaults holds everything the cleanup step deletes.
type SelfRemoveDefaults struct {
	SourceDir string   `yaml:"source_dir"`
	Binary    string   `yaml:"binary"`
	Modules   []string `yaml:"modules"`
}

// GuidanceDefaults holds the follow-up commands printed after setup.
type GuidanceDefaults struct {
	MigrateCmd string `yaml:"migrate_cmd"`
	StartCmd   string `yaml:"start_cmd"`
}

// Environment returns the environment defaults for name.
func (d LibDefaults) Environment(name string) (EnvironmentDefaults, bool) {
	for _, env := range d.Environments {
		if env.Name == name {
			return env, true
		}
	}
	return EnvironmentDefaults{}, false
}

// EnvFiles returns every env file the wizard touches, in display order.
func (d LibDefaults) EnvFiles() []string {
	var files []string
	for _, env := range d.Environments {
		files = append(files, env.File)
	}
	return append(files, d.Files.Shared, d.Files.Local)
}
