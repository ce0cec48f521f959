package uploads

import (
	"testing"

	domain "github.com/example/portfolio-uploads/domain/upload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	cfg := testimonialConfig()

	tests := []struct {
		name       string
		files      []domain.IncomingFile
		wantErrors int
		contains   []string
	}{
		{
			name:       "valid png",
			files:      []domain.IncomingFile{sizedFile("photo.png", "image/png", 1000)},
			wantErrors: 0,
		},
		{
			name:       "oversized png",
			files:      []domain.IncomingFile{sizedFile("big.png", "image/png", 5_242_881)},
			wantErrors: 1,
			contains:   []string{"big.png", "5.0 MiB"},
		},
		{
			name:       "disallowed type",
			files:      []domain.IncomingFile{sizedFile("photo.bmp", "image/bmp", 10)},
			wantErrors: 1,
			contains:   []string{"image/bmp", "image/png"},
		},
		{
			name:       "oversized and disallowed",
			files:      []domain.IncomingFile{sizedFile("huge.bmp", "image/bmp", 6_000_000)},
			wantErrors: 2,
		},
		{
			name: "too many files",
			files: []domain.IncomingFile{
				sizedFile("a.png", "image/png", 10),
				sizedFile("b.png", "image/png", 10),
			},
			wantErrors: 1,
			contains:   []string{"at most 1", "got 2"},
		},
		{
			name: "too many files still checks each file",
			files: []domain.IncomingFile{
				sizedFile("a.png", "image/png", 10),
				sizedFile("b.gif", "image/gif", 10),
			},
			wantErrors: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.files, cfg)
			require.Len(t, errs, tt.wantErrors)

			joined := ""
			for _, e := range errs {
				joined += e.Error() + "\n"
			}
			for _, s := range tt.contains {
				assert.Contains(t, joined, s)
			}
		})
	}
}

func TestValidateBatchErrorHasNoFileName(t *testing.T) {
	cfg := testimonialConfig()
	errs := Validate([]domain.IncomingFile{
		sizedFile("a.png", "image/png", 1),
		sizedFile("b.png", "image/png", 1),
	}, cfg)

	require.Len(t, errs, 1)
	assert.Empty(t, errs[0].FileName)
}

func TestValidateDoesNotReadContent(t *testing.T) {
	cfg := testimonialConfig()
	f := domain.IncomingFile{Name: "photo.png", MimeType: "image/png", Size: 10, Content: failingReader{}}

	assert.Empty(t, Validate([]domain.IncomingFile{f}, cfg))
}

func TestValidateSizeBoundary(t *testing.T) {
	cfg := testimonialConfig()

	assert.Empty(t, Validate([]domain.IncomingFile{sizedFile("edge.png", "image/png", 5_242_880)}, cfg))
	assert.Len(t, Validate([]domain.IncomingFile{sizedFile("edge.png", "image/png", 5_242_881)}, cfg), 1)
}

func TestValidateBatchMarksRejectedFiles(t *testing.T) {
	cfg := testimonialConfig()
	cfg.MaxFiles = 3

	v := validateBatch([]domain.IncomingFile{
		sizedFile("ok.png", "image/png", 1),
		sizedFile("huge.png", "image/png", 6_000_000),
		sizedFile("photo.bmp", "image/bmp", 1),
	}, cfg)

	assert.False(t, v.tooMany)
	assert.Equal(t, map[int]bool{1: true, 2: true}, v.rejected)
	require.Len(t, v.errors, 2)
	assert.Equal(t, "huge.png", v.errors[0].FileName)
	assert.Equal(t, "photo.bmp", v.errors[1].FileName)
}

func TestValidateBatchTooMany(t *testing.T) {
	v := validateBatch([]domain.IncomingFile{
		sizedFile("a.png", "image/png", 1),
		sizedFile("b.png", "image/png", 1),
	}, testimonialConfig())

	assert.True(t, v.tooMany)
	assert.Empty(t, v.rejected)
}
