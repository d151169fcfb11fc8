package utils

import (
	"os"
	"path/filepath"
)

// WriteFile writes the given file contents to the given path, creating any
// missing parent directories first.
func WriteFile(path string, contents []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, contents, 0o666)
}
