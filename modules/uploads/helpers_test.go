package uploads

import (
	"bytes"
	"errors"
	"strings"

	domain "github.com/example/portfolio-uploads/domain/upload"
	"github.com/go-monolith/mono/pkg/types"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(_ string, _ ...any) {}
func (m *mockLogger) Info(_ string, _ ...any)  {}
func (m *mockLogger) Warn(_ string, _ ...any)  {}
func (m *mockLogger) Error(_ string, _ ...any) {}
func (m *mockLogger) With(_ ...any) types.Logger {
	return m
}
func (m *mockLogger) WithModule(_ string) types.Logger {
	return m
}
func (m *mockLogger) WithError(_ error) types.Logger {
	return m
}

// testimonialConfig is the profile used by the concrete scenarios.
func testimonialConfig() domain.Config {
	return domain.Config{
		Name:         "testimonials",
		MaxFileSize:  5_242_880,
		AllowedTypes: map[string][]string{"image/png": {".png"}},
		UploadRoot:   "testimonials",
		MaxFiles:     1,
	}
}

// newFile builds an incoming file whose declared size matches its content.
func newFile(name, mimeType, content string) domain.IncomingFile {
	return domain.IncomingFile{
		Name:     name,
		MimeType: mimeType,
		Size:     int64(len(content)),
		Content:  strings.NewReader(content),
	}
}

// sizedFile builds an incoming file declaring size bytes of content.
func sizedFile(name, mimeType string, size int) domain.IncomingFile {
	return domain.IncomingFile{
		Name:     name,
		MimeType: mimeType,
		Size:     int64(size),
		Content:  bytes.NewReader(make([]byte, size)),
	}
}

// failingReader returns an error on every read.
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}
