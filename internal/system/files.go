package system

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// WriteFile replaces filename with data through a temporary file and rename,
// so readers never see a partial file. An existing file keeps its mode; a new
// file gets perm.
func WriteFile(filename string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}

	_, statErr := os.Stat(filename)
	isNew := errors.Is(statErr, fs.ErrNotExist)

	if err := atomic.WriteFile(filename, bytes.NewReader(data)); err != nil {
		return err
	}
	if isNew {
		return os.Chmod(filename, perm)
	}
	return nil
}
