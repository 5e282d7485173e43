// Package cleanup removes the setup tool from the project once setup
// has completed: its source, its binary, its manifest entry, and the
// two prompt modules only it depends on.
package cleanup

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/launchbase/appsetup/configs"
)

// Run performs the full self-removal sequence. Steps commit in order;
// a failing step stops the sequence with the prior steps applied.
// The source must go before the modules: while cmd files importing the
// prompt libraries still exist, `go mod tidy` re-adds the dropped
// requires.
func Run(cfg configs.LibDefaults, log *slog.Logger) error {
	if err := StripManifestTarget(cfg.Manifest.Path, cfg.Manifest.SetupTarget); err != nil {
		return err
	}
	log.Info("removed setup target", "manifest", cfg.Manifest.Path)

	if err := RemoveSource(cfg.SelfRemove.SourceDir, cfg.SelfRemove.Binary); err != nil {
		return err
	}
	log.Info("removed setup tool", "path", cfg.SelfRemove.SourceDir)

	if err := DropModules(cfg.SelfRemove.Modules); err != nil {
		return err
	}
	for _, m := range cfg.SelfRemove.Modules {
		log.Info("dropped module", "module", m)
	}
	return nil
}

// StripManifestTarget deletes the named target block (an optional
// .PHONY line, the target line, and its indented recipe) from a
// Makefile. The manifest is edited as raw text and left untouched when
// the target is absent.
func StripManifestTarget(path, target string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	re := regexp.MustCompile(
		`(?m)^(?:\.PHONY: ` + regexp.QuoteMeta(target) + `\n)?` +
			regexp.QuoteMeta(target) + `:.*\n(?:\t.*\n?)*\n?`,
	)
	loc := re.FindIndex(data)
	if loc == nil {
		return fmt.Errorf("target %q not found in %s", target, path)
	}

	out := append([]byte{}, data[:loc[0]]...)
	out = append(out, data[loc[1]:]...)

	mode := os.FileMode(0o644)
	if fi, statErr := os.Stat(path); statErr == nil {
		mode = fi.Mode()
	}
	if err := os.WriteFile(path, out, mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// DropModules removes module requirements from go.mod and prunes
// go.sum through the Go toolchain, synchronously.
func DropModules(modules []string) error {
	if _, err := exec.LookPath("go"); err != nil {
		return fmt.Errorf("'go' not found in PATH — remove %s manually", strings.Join(modules, ", "))
	}
	for _, m := range modules {
		if out, err := exec.Command("go", "mod", "edit", "-droprequire="+m).CombinedOutput(); err != nil {
			return fmt.Errorf("go mod edit -droprequire=%s: %s", m, strings.TrimSpace(string(out)))
		}
	}
	if out, err := exec.Command("go", "mod", "tidy").CombinedOutput(); err != nil {
		return fmt.Errorf("go mod tidy: %s", strings.TrimSpace(string(out)))
	}
	return nil
}

// RemoveSource deletes the tool's source directory and built binary.
// A missing binary is fine — the tool may have been run via `go run`.
func RemoveSource(sourceDir, binary string) error {
	if err := os.RemoveAll(sourceDir); err != nil {
		return fmt.Errorf("remove %s: %w", sourceDir, err)
	}
	if err := os.Remove(binary); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", binary, err)
	}
	return nil
}
