package uploads

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

const dirPerm = 0o755

// EnsureDir creates dir and any missing parents if it does not exist yet.
// A concurrent caller creating the same directory is not an error.
func EnsureDir(fs afero.Fs, dir string) error {
	exists, err := afero.DirExists(fs, dir)
	if err != nil {
		return fmt.Errorf("%w: stat %s: %v", ErrStorageUnavailable, dir, err)
	}
	if exists {
		return nil
	}

	if err := fs.MkdirAll(dir, dirPerm); err != nil {
		if os.IsExist(err) {
			if ok, _ := afero.DirExists(fs, dir); ok {
				return nil
			}
		}
		return fmt.Errorf("%w: create %s: %v", ErrStorageUnavailable, dir, err)
	}
	return nil
}
