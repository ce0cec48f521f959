package uploads

import (
	"path"
	"strings"

	domain "github.com/example/portfolio-uploads/domain/upload"
	"github.com/spf13/afero"
)

// Deleter removes previously stored files. It never fails as a whole: each reference
// ends up either deleted or failed.
type Deleter struct {
	fs afero.Fs
}

// NewDeleter creates a deleter over fs, which must be rooted at the storage root.
func NewDeleter(fs afero.Fs) *Deleter {
	return &Deleter{fs: fs}
}

// Delete resolves every reference to its basename under uploadRoot and removes it.
// Missing files and malformed references are reported as failed.
func (d *Deleter) Delete(refs []domain.StoredReference, uploadRoot string) domain.DeleteOutcome {
	outcome := domain.DeleteOutcome{
		Deleted: []domain.StoredReference{},
		Failed:  []domain.StoredReference{},
	}
	root := strings.Trim(uploadRoot, "/")

	for _, ref := range refs {
		name, ok := referenceBasename(ref.Value)
		if !ok || root == "" {
			outcome.Failed = append(outcome.Failed, ref)
			continue
		}
		target := path.Join(root, name)
		if info, err := d.fs.Stat(target); err != nil || info.IsDir() {
			outcome.Failed = append(outcome.Failed, ref)
			continue
		}
		if err := d.fs.Remove(target); err != nil {
			outcome.Failed = append(outcome.Failed, ref)
			continue
		}
		outcome.Deleted = append(outcome.Deleted, ref)
	}

	return outcome
}

// referenceBasename reduces a bare filename or a "/folder/name" path to its last segment.
func referenceBasename(value string) (string, bool) {
	value = strings.TrimSpace(strings.ReplaceAll(value, "\\", "/"))
	if value == "" {
		return "", false
	}
	name := path.Base(value)
	if name == "." || name == ".." || name == "/" {
		return "", false
	}
	return name, true
}
