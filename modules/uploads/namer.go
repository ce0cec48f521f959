package uploads

import (
	"path"
	"strings"

	domain "github.com/example/portfolio-uploads/domain/upload"
	"github.com/google/uuid"
)

const fallbackExtension = ".bin"

// DeriveExtension returns the canonical extension for the file's declared MIME type.
// Types missing from the profile fall back to the declared name's extension, then to ".bin".
func DeriveExtension(f domain.IncomingFile, cfg domain.Config) string {
	if exts := cfg.AllowedTypes[f.MimeType]; len(exts) > 0 {
		if ext := normalizeExtension(exts[0]); ext != "" {
			return ext
		}
	}

	name := path.Base(strings.ReplaceAll(f.Name, "\\", "/"))
	if i := strings.LastIndex(name, "."); i >= 0 && i < len(name)-1 {
		if ext := normalizeExtension(name[i:]); ext != "" {
			return ext
		}
	}

	return fallbackExtension
}

// GenerateStorageName returns a random UUID-based filename ending in ext.
// Uniqueness comes from the identifier alone; the target directory is never consulted.
func GenerateStorageName(ext string) string {
	ext = normalizeExtension(ext)
	if ext == "" {
		ext = fallbackExtension
	}
	return uuid.NewString() + ext
}

// normalizeExtension lowercases ext, adds a leading dot and rejects anything that is
// not a plain alphanumeric suffix.
func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return ""
	}
	for _, c := range ext {
		if !((c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')) {
			return ""
		}
	}
	return "." + ext
}
