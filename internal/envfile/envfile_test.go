package envfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func readBack(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestSetKeyRewritesLine(t *testing.T) {
	path := writeEnv(t, "# origins\nAPP_ORIGIN=https://example.com\nOTHER=1\n")

	require.NoError(t, SetKey(path, "APP_ORIGIN", "https://acme.io"))

	assert.Equal(t, "# origins\nAPP_ORIGIN=https://acme.io\nOTHER=1\n", readBack(t, path))
}

func TestSetKeyFirstMatchOnly(t *testing.T) {
	path := writeEnv(t, "KEY=a\nKEY=b\n")

	require.NoError(t, SetKey(path, "KEY", "c"))

	assert.Equal(t, "KEY=c\nKEY=b\n", readBack(t, path))
}

func TestSetKeyIdempotentNoop(t *testing.T) {
	content := "APP_ORIGIN=https://example.com\n"
	path := writeEnv(t, content)

	require.NoError(t, SetKey(path, "APP_ORIGIN", "https://example.com"))

	assert.Equal(t, content, readBack(t, path))
}

func TestSetKeyDoesNotMatchPrefixes(t *testing.T) {
	path := writeEnv(t, "APP_ORIGIN_BACKUP=x\nAPP_ORIGIN=y\n")

	require.NoError(t, SetKey(path, "APP_ORIGIN", "z"))

	assert.Equal(t, "APP_ORIGIN_BACKUP=x\nAPP_ORIGIN=z\n", readBack(t, path))
}

func TestSetKeyMissingPattern(t *testing.T) {
	content := "OTHER=1\n"
	path := writeEnv(t, content)

	err := SetKey(path, "APP_ORIGIN", "v")

	var nf *KeyNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "APP_ORIGIN", nf.Key)
	assert.Equal(t, path, nf.Path)
	assert.Contains(t, err.Error(), "^APP_ORIGIN=")
	assert.Contains(t, err.Error(), path)
	assert.Equal(t, content, readBack(t, path), "file must not be altered on a failed match")
}

func TestSetKeyMissingFile(t *testing.T) {
	err := SetKey(filepath.Join(t.TempDir(), "nope"), "KEY", "v")
	require.Error(t, err)

	var nf *KeyNotFoundError
	assert.False(t, errors.As(err, &nf), "filesystem errors are not substitution failures")
}

func TestLookup(t *testing.T) {
	path := writeEnv(t, "APP_ORIGIN=https://example.com\nAPP_NAME=example\n")

	v, err := Lookup(path, "APP_ORIGIN")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", v)

	v, err = Lookup(path, "MISSING")
	require.NoError(t, err)
	assert.Empty(t, v)
}
