package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// TempFilePrefix is the prefix used for temporary write files.
	TempFilePrefix = "dedma-tmp-"
)

// errExists reports that the target of an exclusive write already exists.
var errExists = errors.New("file already exists")

// writeFileExclusive writes data to a temp file and publishes it under
// filename with a hard link. The link fails if filename exists, so two
// writers racing on the same name cannot both succeed, and readers never
// observe a partially written file.
func writeFileExclusive(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmpFile, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if err := os.Link(tmpFile.Name(), filename); err != nil {
		if errors.Is(err, os.ErrExist) {
			return errExists
		}
		return fmt.Errorf("failed to publish %s: %w", filename, err)
	}

	return nil
}
