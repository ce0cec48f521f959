package uploads

import (
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	domain "github.com/example/portfolio-uploads/domain/upload"
	"github.com/spf13/afero"
)

const filePerm = 0o644

// Writer persists validated files under their profile's upload root.
type Writer struct {
	fs           afero.Fs
	generateName func(ext string) string
}

// NewWriter creates a writer over fs, which must be rooted at the storage root.
func NewWriter(fs afero.Fs) *Writer {
	return &Writer{fs: fs, generateName: GenerateStorageName}
}

// Write stores one file under a freshly generated name and returns its reference.
// The whole content is buffered; profiles cap the size before this point.
func (w *Writer) Write(f domain.IncomingFile, cfg domain.Config) (domain.StoredReference, error) {
	root := uploadDir(cfg)
	if err := EnsureDir(w.fs, root); err != nil {
		return domain.StoredReference{}, &domain.WriteError{FileName: f.Name, Err: err}
	}

	name := w.generateName(DeriveExtension(f, cfg))

	if f.Content == nil {
		return domain.StoredReference{}, &domain.WriteError{FileName: f.Name, Err: ErrEmptyContent}
	}
	data, err := io.ReadAll(f.Content)
	if err != nil {
		return domain.StoredReference{}, &domain.WriteError{FileName: f.Name, Err: fmt.Errorf("read content: %w", err)}
	}

	if err := w.writeFile(path.Join(root, name), data); err != nil {
		return domain.StoredReference{}, &domain.WriteError{FileName: f.Name, Err: err}
	}

	return referenceFor(cfg, name), nil
}

// writeFile creates target exclusively so an existing file is never overwritten.
func (w *Writer) writeFile(target string, data []byte) error {
	out, err := w.fs.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		_ = w.fs.Remove(target)
		return fmt.Errorf("write %s: %w", target, err)
	}
	if err := out.Close(); err != nil {
		_ = w.fs.Remove(target)
		return fmt.Errorf("close %s: %w", target, err)
	}
	return nil
}

// uploadDir returns the profile root relative to the storage root.
func uploadDir(cfg domain.Config) string {
	return strings.Trim(cfg.UploadRoot, "/")
}

// referenceFor formats a generated name the way the profile's records expect it.
func referenceFor(cfg domain.Config, name string) domain.StoredReference {
	if cfg.ReferenceStyle == domain.ReferencePath {
		return domain.StoredReference{Value: "/" + uploadDir(cfg) + "/" + name}
	}
	return domain.StoredReference{Value: name}
}
