// Package result defines the machine-readable output contract of a
// completed setup run, consumed by follow-up provisioning scripts.
package result

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment holds the identifiers chosen for one deployment environment.
type Environment struct {
	Project  string `json:"project" yaml:"project"`
	Database string `json:"database" yaml:"database"`
}

// SetupResult is the normalized output contract of a completed setup.
type SetupResult struct {
	Domain       string                 `json:"domain" yaml:"domain"`
	AppName      string                 `json:"app_name" yaml:"app_name"`
	Bucket       string                 `json:"bucket" yaml:"bucket"`
	Environments map[string]Environment `json:"environments" yaml:"environments"`
	CleanedUp    bool                   `json:"cleaned_up,omitempty" yaml:"cleaned_up,omitempty"`
}

// Validate checks the minimum contract required by downstream scripts.
func (r SetupResult) Validate() error {
	if strings.TrimSpace(r.Domain) == "" {
		return fmt.Errorf("setup result domain is required")
	}
	if strings.TrimSpace(r.AppName) == "" {
		return fmt.Errorf("setup result app_name is required")
	}
	if strings.TrimSpace(r.Bucket) == "" {
		return fmt.Errorf("setup result bucket is required")
	}
	if len(r.Environments) == 0 {
		return fmt.Errorf("setup result has no environments")
	}
	for name, env := range r.Environments {
		if strings.TrimSpace(env.Project) == "" {
			return fmt.Errorf("setup result %s project is required", name)
		}
		if strings.TrimSpace(env.Database) == "" {
			return fmt.Errorf("setup result %s database is required", name)
		}
	}
	return nil
}

// LoadSetupResult reads a SetupResult from YAML or JSON.
func LoadSetupResult(path string) (SetupResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return SetupResult{}, fmt.Errorf("read setup result %s: %w", path, err)
	}

	var out SetupResult
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(content, &out); err != nil {
			return SetupResult{}, fmt.Errorf("parse setup result %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(content, &out); err != nil {
			return SetupResult{}, fmt.Errorf("parse setup result %s: %w", path, err)
		}
	}

	if err := out.Validate(); err != nil {
		return SetupResult{}, err
	}
	return out, nil
}

// SaveSetupResult writes a SetupResult to YAML or JSON based on file
// extension.
func SaveSetupResult(path string, result SetupResult) error {
	if err := result.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}

	var content []byte
	var err error
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		content, err = json.MarshalIndent(result, "", "  ")
	} else {
		content, err = yaml.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("marshal setup result %s: %w", path, err)
	}

	if err := os.WriteFile(path, content, 0o600); err != nil {
		return fmt.Errorf("write setup result %s: %w", path, err)
	}
	return nil
}
