package uploads

import (
	"testing"

	domain "github.com/example/portfolio-uploads/domain/upload"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleter_MissingFileIsReportedNotRaised(t *testing.T) {
	d := NewDeleter(afero.NewBasePathFs(afero.NewOsFs(), t.TempDir()))

	outcome := d.Delete(domain.References("/testimonials/abc.png"), "testimonials")

	assert.Empty(t, outcome.Deleted)
	assert.Equal(t, domain.References("/testimonials/abc.png"), outcome.Failed)
}

func TestDeleter_ResolvesBareAndPathReferences(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "projects/a.png", []byte("a"), filePerm))
	require.NoError(t, afero.WriteFile(fs, "projects/b.pdf", []byte("b"), filePerm))

	refs := domain.References("a.png", "/projects/b.pdf")
	outcome := NewDeleter(fs).Delete(refs, "/projects/")

	assert.Equal(t, refs, outcome.Deleted)
	assert.Empty(t, outcome.Failed)

	for _, p := range []string{"projects/a.png", "projects/b.pdf"} {
		exists, err := afero.Exists(fs, p)
		require.NoError(t, err)
		assert.False(t, exists, p)
	}
}

func TestDeleter_StripsForeignDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "team/x.png", []byte("x"), filePerm))
	require.NoError(t, afero.WriteFile(fs, "secret.png", []byte("s"), filePerm))

	outcome := NewDeleter(fs).Delete(domain.References("/other/folder/x.png", "../secret.png"), "team")

	assert.Equal(t, domain.References("/other/folder/x.png"), outcome.Deleted)
	assert.Equal(t, domain.References("../secret.png"), outcome.Failed)

	exists, err := afero.Exists(fs, "secret.png")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDeleter_Idempotent(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "team/m.png", []byte("m"), filePerm))
	d := NewDeleter(fs)
	refs := domain.References("m.png")

	first := d.Delete(refs, "team")
	second := d.Delete(refs, "team")

	assert.Len(t, append(first.Deleted, second.Deleted...), 1)
	assert.Equal(t, refs, second.Failed)
}

func TestDeleter_MalformedReferences(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, EnsureDir(fs, "team/sub"))

	refs := domain.References("", "  ", "/", ".", "..", "sub")
	outcome := NewDeleter(fs).Delete(refs, "team")

	assert.Empty(t, outcome.Deleted)
	assert.Equal(t, refs, outcome.Failed)

	ok, err := afero.DirExists(fs, "team/sub")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDeleter_EmptyRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "a.png", []byte("a"), filePerm))

	outcome := NewDeleter(fs).Delete(domain.References("a.png"), "")

	assert.Empty(t, outcome.Deleted)
	assert.Len(t, outcome.Failed, 1)
}
