package bootstrap

import (
	"errors"
	"fmt"
	"os"
)

// EnsureDir creates path and any missing parents. It is idempotent: an
// existing directory is success. A path that exists as anything other
// than a directory is an explicit error rather than whatever MkdirAll
// would report, since shadowing a deployed file would corrupt the app.
func EnsureDir(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return nil
		}
		return fmt.Errorf("path %s exists and is not a directory", path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}
