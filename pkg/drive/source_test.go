package drive

import (
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileSource(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/docs/readme.pdf", []byte("# hello"), 0o644))

	source, err := NewFileSource(fs, "/docs/readme.pdf")
	require.NoError(t, err)

	assert.Equal(t, "readme.pdf", source.Name())
	assert.Equal(t, int64(7), source.Size())
	assert.Contains(t, source.MimeType(), "application/pdf")

	r, err := source.Open()
	require.NoError(t, err)
	defer r.Close()
	content, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "# hello", string(content))
}

func TestNewFileSource_UnknownExtension(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/blob.xyzdata", []byte("x"), 0o644))

	source, err := NewFileSource(fs, "/blob.xyzdata")
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", source.MimeType())
}

func TestNewFileSource_Missing(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := NewFileSource(fs, "/nope.txt")
	assert.Error(t, err)
}

func TestNewFileSource_Directory(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/docs", 0o755))

	_, err := NewFileSource(fs, "/docs")
	assert.Error(t, err)
}

func TestBytesSource(t *testing.T) {
	s := &BytesSource{FileName: "a.txt", Data: []byte("abc")}
	assert.Equal(t, int64(3), s.Size())
	assert.Equal(t, "application/octet-stream", s.MimeType())

	r, err := s.Open()
	require.NoError(t, err)
	content, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(content))
}
