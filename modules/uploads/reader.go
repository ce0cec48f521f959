package uploads

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// contentTypeByExt maps servable file extensions to MIME types. It lists exactly
// the extensions the upload profiles write.
var contentTypeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// StoredFile is an open stored file ready to be streamed back.
type StoredFile struct {
	File        afero.File
	Size        int64
	ContentType string
}

// Reader resolves logical request paths to files under the storage root.
type Reader struct {
	fs afero.Fs
}

// NewReader creates a reader over fs, which must be rooted at the storage root.
func NewReader(fs afero.Fs) *Reader {
	return &Reader{fs: fs}
}

// Open resolves logicalPath (e.g. "/projects/<uuid>.png") and opens it.
// The caller must close the returned file.
func (r *Reader) Open(logicalPath string) (*StoredFile, error) {
	cleaned, err := cleanLogicalPath(logicalPath)
	if err != nil {
		return nil, err
	}

	contentType, ok := ContentTypeForPath(cleaned)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, path.Ext(cleaned))
	}

	info, err := r.fs.Stat(cleaned)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, cleaned)
		}
		return nil, fmt.Errorf("stat %s: %w", cleaned, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, cleaned)
	}

	f, err := r.fs.Open(cleaned)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cleaned, err)
	}

	return &StoredFile{File: f, Size: info.Size(), ContentType: contentType}, nil
}

// ContentTypeForPath returns the MIME type for a servable extension.
func ContentTypeForPath(p string) (string, bool) {
	ct, ok := contentTypeByExt[strings.ToLower(path.Ext(p))]
	return ct, ok
}

// cleanLogicalPath rejects parent-directory segments and returns a root-relative path.
func cleanLogicalPath(logicalPath string) (string, error) {
	p := strings.ReplaceAll(logicalPath, "\\", "/")
	for _, segment := range strings.Split(p, "/") {
		if segment == ".." {
			return "", fmt.Errorf("%w: %s", ErrForbiddenPath, logicalPath)
		}
	}
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	if p == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, logicalPath)
	}
	return p, nil
}
