package uploads

import (
	"errors"
	"strings"
	"testing"

	domain "github.com/example/portfolio-uploads/domain/upload"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_WriteBareFilename(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs)

	ref, err := w.Write(newFile("photo.png", "image/png", "png-bytes"), testimonialConfig())
	require.NoError(t, err)

	assert.NotContains(t, ref.Value, "/")
	assert.True(t, strings.HasSuffix(ref.Value, ".png"))

	data, err := afero.ReadFile(fs, "testimonials/"+ref.Value)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestWriter_WriteURLPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs)
	cfg := domain.ProjectAttachments()

	ref, err := w.Write(newFile("brief.pdf", "application/pdf", "%PDF-1.7"), cfg)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(ref.Value, "/projects/"))
	assert.True(t, strings.HasSuffix(ref.Value, ".pdf"))

	exists, err := afero.Exists(fs, strings.TrimPrefix(ref.Value, "/"))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestWriter_NameIgnoresUserFilename(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs)

	ref, err := w.Write(newFile("../../etc/passwd.png", "image/png", "x"), testimonialConfig())
	require.NoError(t, err)

	assert.NotContains(t, ref.Value, "passwd")
	assert.NotContains(t, ref.Value, "..")
}

func TestWriter_Failures(t *testing.T) {
	tests := []struct {
		name    string
		fs      afero.Fs
		file    domain.IncomingFile
		wantErr error
	}{
		{
			name:    "missing content",
			fs:      afero.NewMemMapFs(),
			file:    domain.IncomingFile{Name: "photo.png", MimeType: "image/png", Size: 1},
			wantErr: ErrEmptyContent,
		},
		{
			name: "read failure",
			fs:   afero.NewMemMapFs(),
			file: domain.IncomingFile{Name: "photo.png", MimeType: "image/png", Size: 1, Content: failingReader{}},
		},
		{
			name:    "read-only storage",
			fs:      afero.NewReadOnlyFs(afero.NewMemMapFs()),
			file:    newFile("photo.png", "image/png", "x"),
			wantErr: ErrStorageUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWriter(tt.fs).Write(tt.file, testimonialConfig())
			require.Error(t, err)

			var writeErr *domain.WriteError
			require.True(t, errors.As(err, &writeErr))
			assert.Equal(t, "photo.png", writeErr.FileName)
			assert.Contains(t, err.Error(), "photo.png")
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
			}
		})
	}
}

func TestWriter_NeverOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "testimonials/fixed.png", []byte("original"), filePerm))

	w := NewWriter(fs)
	w.generateName = func(string) string { return "fixed.png" }

	_, err := w.Write(newFile("photo.png", "image/png", "new"), testimonialConfig())
	require.Error(t, err)

	data, err := afero.ReadFile(fs, "testimonials/fixed.png")
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}
