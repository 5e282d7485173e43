// Package setup implements the project setup questions and the env-file
// rewrites their validators perform.
package setup

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/launchbase/appsetup/configs"
	"github.com/launchbase/appsetup/internal/envfile"
	"github.com/launchbase/appsetup/internal/wizard"
)

var (
	// Hostname: starts with a word character, interior word
	// characters/hyphens/dots, a word character before the final dot,
	// ends with a multi-character suffix.
	domainRE = regexp.MustCompile(`^\w[\w.-]*\w\.\w{2,}$`)
	// Bucket: word-character boundaries, interior word
	// characters/hyphens/dots.
	bucketRE = regexp.MustCompile(`^\w[\w.-]*\w$`)
)

// ValidDomain reports whether s looks like a hostname.
func ValidDomain(s string) bool { return domainRE.MatchString(s) }

// ValidBucket reports whether s is a safe storage bucket name.
func ValidBucket(s string) bool { return bucketRE.MatchString(s) }

// ShortName derives the application short name from a domain: the
// top-level suffix is dropped and interior dots become underscores.
// "app.acme.com" -> "app_acme".
func ShortName(domain string) string {
	base := domain
	if i := strings.LastIndex(domain, "."); i > 0 {
		base = domain[:i]
	}
	return strings.ReplaceAll(base, ".", "_")
}

// DefaultDomain extracts the host from the origin URL stored in the
// production env file. A malformed stored origin is an unrecoverable
// project state and surfaces as an error.
func DefaultDomain(cfg configs.LibDefaults) (string, error) {
	prod, ok := cfg.Environment("production")
	if !ok {
		return "", errors.New("no production environment configured")
	}
	origin, err := envfile.Lookup(prod.File, cfg.Keys.Origin)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(origin)
	if err != nil {
		return "", fmt.Errorf("stored %s in %s is not a valid URL: %w", cfg.Keys.Origin, prod.File, err)
	}
	return u.Host, nil
}

// DefaultProjectID derives the suggested cloud project identifier for
// an environment from the application short name.
func DefaultProjectID(shortName string, env configs.EnvironmentDefaults) string {
	return strings.ToLower(shortName) + "_" + env.IDSuffix
}

// DatabaseName maps a project identifier to a database-safe name.
func DatabaseName(projectID string) string {
	return strings.ReplaceAll(projectID, "-", "_")
}

// LocalDatabaseName maps an environment database name to its
// local-development counterpart: "acme_dev" -> "acme_local".
func LocalDatabaseName(db string, cfg configs.LibDefaults) string {
	if strings.HasSuffix(db, cfg.Database.DevMarker) {
		return strings.TrimSuffix(db, cfg.Database.DevMarker) + cfg.Database.LocalMarker
	}
	return strings.Replace(db, cfg.Database.DevMarker, cfg.Database.LocalMarker, 1)
}

// Origin builds the full origin URL an environment gets for a domain.
func Origin(cfg configs.LibDefaults, env configs.EnvironmentDefaults, domain string) string {
	return cfg.URL.Scheme + "://" + env.SubdomainPrefix + domain
}

// ApplyDomain rewrites the origin key in every environment file and the
// app-name key in the shared file. Rewrites commit one file at a time;
// a missing pattern stops the sequence without rolling back files
// already rewritten in this step.
func ApplyDomain(cfg configs.LibDefaults, domain string) error {
	for _, env := range cfg.Environments {
		if err := setKey(env.File, cfg.Keys.Origin, Origin(cfg, env, domain)); err != nil {
			return err
		}
	}
	return setKey(cfg.Files.Shared, cfg.Keys.AppName, ShortName(domain))
}

// ApplyBucket rewrites the bucket key in the shared file.
func ApplyBucket(cfg configs.LibDefaults, bucket string) error {
	return setKey(cfg.Files.Shared, cfg.Keys.Bucket, bucket)
}

// ApplyProject rewrites the cloud-project and database keys in the
// environment's file. Environments flagged PropagateLocal additionally
// mirror both keys into the local env file, with the database name
// switched to its local variant.
func ApplyProject(cfg configs.LibDefaults, env configs.EnvironmentDefaults, projectID string) error {
	db := DatabaseName(projectID)
	if err := setKey(env.File, cfg.Keys.Project, projectID); err != nil {
		return err
	}
	if err := setKey(env.File, cfg.Keys.Database, db); err != nil {
		return err
	}
	if !env.PropagateLocal {
		return nil
	}
	if err := setKey(cfg.Files.Local, cfg.Keys.Project, projectID); err != nil {
		return err
	}
	return setKey(cfg.Files.Local, cfg.Keys.Database, LocalDatabaseName(db, cfg))
}

// setKey performs one substitution, converting a missing pattern into a
// wizard rejection so the operator gets re-prompted instead of a crash.
// Filesystem errors stay fatal.
func setKey(path, key, value string) error {
	err := envfile.SetKey(path, key, value)
	var nf *envfile.KeyNotFoundError
	if errors.As(err, &nf) {
		return &wizard.Rejection{Reason: nf.Error()}
	}
	return err
}
