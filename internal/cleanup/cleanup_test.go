package cleanup

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchbase/appsetup/configs"
)

const sampleMakefile = `.PHONY: build
build:
	go build -o bin/app ./cmd/app

.PHONY: setup
setup: build
	./bin/appsetup

.PHONY: test
test:
	go test ./...
`

func writeMakefile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Makefile")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStripManifestTarget(t *testing.T) {
	path := writeMakefile(t, sampleMakefile)

	require.NoError(t, StripManifestTarget(path, "setup"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := `.PHONY: build
build:
	go build -o bin/app ./cmd/app

.PHONY: test
test:
	go test ./...
`
	assert.Equal(t, want, string(data))
}

func TestStripManifestTargetWithoutPhonyLine(t *testing.T) {
	path := writeMakefile(t, "setup:\n\t./bin/appsetup\n\ndev:\n\tdocker compose up\n")

	require.NoError(t, StripManifestTarget(path, "setup"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "dev:\n\tdocker compose up\n", string(data))
}

func TestStripManifestTargetAbsent(t *testing.T) {
	content := "build:\n\tgo build ./...\n"
	path := writeMakefile(t, content)

	err := StripManifestTarget(path, "setup")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `"setup"`)
	assert.Contains(t, err.Error(), path)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, content, string(data), "absent target must leave the manifest untouched")
}

func TestStripManifestTargetDoesNotMatchPrefix(t *testing.T) {
	content := "setup-ci:\n\techo ci\n\nsetup:\n\techo setup\n"
	path := writeMakefile(t, content)

	require.NoError(t, StripManifestTarget(path, "setup"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "setup-ci:\n\techo ci\n\n", string(data))
}

// installFakeGo puts a stand-in `go` binary first on PATH. Its
// `mod edit -droprequire` deletes the matching require line; its
// `mod tidy` re-adds a require for any listed module still imported by
// a source file under the tree, which is what the real tool does.
func installFakeGo(t *testing.T, modules []string) {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "bin")
	require.NoError(t, os.MkdirAll(bin, 0o755))
	script := fmt.Sprintf(`#!/bin/sh
case "$1:$2" in
mod:edit)
	mod="${3#-droprequire=}"
	grep -Fv "$mod" go.mod > go.mod.tmp
	mv go.mod.tmp go.mod
	;;
mod:tidy)
	for mod in %s; do
		if grep -Frq "\"$mod\"" --include='*.go' . && ! grep -Fq "$mod" go.mod; then
			printf 'require %%s v0.0.0\n' "$mod" >> go.mod
		fi
	done
	;;
esac
`, strings.Join(modules, " "))
	require.NoError(t, os.WriteFile(filepath.Join(bin, "go"), []byte(script), 0o755))
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestRunDropsModulesAfterSourceRemoval(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake go binary is a shell script")
	}
	oldwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(oldwd) })
	cfg := configs.Defaults

	require.NoError(t, os.WriteFile("Makefile", []byte(sampleMakefile), 0o644))
	require.NoError(t, os.MkdirAll(cfg.SelfRemove.SourceDir, 0o755))
	src := "package main\n\nimport (\n\t_ \"" + cfg.SelfRemove.Modules[0] +
		"\"\n\t_ \"" + cfg.SelfRemove.Modules[1] + "\"\n)\n"
	require.NoError(t, os.WriteFile(filepath.Join(cfg.SelfRemove.SourceDir, "main.go"), []byte(src), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.SelfRemove.Binary), 0o755))
	require.NoError(t, os.WriteFile(cfg.SelfRemove.Binary, []byte("elf"), 0o755))

	gomod := "module example.com/app\n\ngo 1.26.0\n\n" +
		"require " + cfg.SelfRemove.Modules[0] + " v2.3.7\n" +
		"require " + cfg.SelfRemove.Modules[1] + " v1.5.1\n"
	require.NoError(t, os.WriteFile("go.mod", []byte(gomod), 0o644))

	installFakeGo(t, cfg.SelfRemove.Modules)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	require.NoError(t, Run(cfg, log))

	// Source gone, and the prompt modules stayed dropped: had the
	// source still existed when tidy ran, both requires would be back.
	_, err = os.Stat(cfg.SelfRemove.SourceDir)
	assert.True(t, os.IsNotExist(err))
	data, err := os.ReadFile("go.mod")
	require.NoError(t, err)
	for _, m := range cfg.SelfRemove.Modules {
		assert.NotContains(t, string(data), m)
	}
}

func TestRemoveSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "cmd", "appsetup")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "main.go"), []byte("package main\n"), 0o644))
	bin := filepath.Join(dir, "bin", "appsetup")
	require.NoError(t, os.MkdirAll(filepath.Dir(bin), 0o755))
	require.NoError(t, os.WriteFile(bin, []byte("elf"), 0o755))

	require.NoError(t, RemoveSource(src, bin))

	_, err := os.Stat(src)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(bin)
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveSourceMissingBinary(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, RemoveSource(filepath.Join(dir, "gone"), filepath.Join(dir, "bin", "gone")))
}
