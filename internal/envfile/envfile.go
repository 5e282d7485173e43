// Package envfile rewrites line-oriented KEY=VALUE environment files.
//
// The write path is purely textual: the target line is located with a
// multiline regular expression and replaced in the raw bytes. Files are
// never round-tripped through a parsed map, so comments, ordering, and
// unknown entries survive every rewrite untouched.
package envfile

import (
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"github.com/joho/godotenv"
)

// KeyNotFoundError reports that a key pattern had no match in a file.
type KeyNotFoundError struct {
	Key  string
	Path string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("pattern ^%s= not found in %s", e.Key, e.Path)
}

// SetKey rewrites the first `KEY=...` line in the file at path to
// `KEY=value`. The key token is preserved as matched, the rest of the
// file is untouched. Returns *KeyNotFoundError when no line matches;
// the file is not modified in that case.
func SetKey(path, key, value string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	re := regexp.MustCompile(`(?m)^(` + regexp.QuoteMeta(key) + `)=.*$`)
	m := re.FindSubmatchIndex(data)
	if m == nil {
		return &KeyNotFoundError{Key: key, Path: path}
	}

	// m[2]:m[3] is the captured key token — keep it, replace the rest
	// of the line.
	out := make([]byte, 0, len(data)+len(value))
	out = append(out, data[:m[3]]...)
	out = append(out, '=')
	out = append(out, value...)
	out = append(out, data[m[1]:]...)

	mode := fs.FileMode(0o600)
	if fi, statErr := os.Stat(path); statErr == nil {
		mode = fi.Mode()
	}
	if err := os.WriteFile(path, out, mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Lookup reads a single key from an env file. Used for computing prompt
// defaults and for inspection; never on the write path.
func Lookup(path, key string) (string, error) {
	vars, err := Read(path)
	if err != nil {
		return "", err
	}
	return vars[key], nil
}

// Read returns all entries of an env file.
func Read(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return vars, nil
}
