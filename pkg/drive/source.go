package drive

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileSource is one candidate file in an upload batch. Size must report the
// real byte count; sources with a non-positive size are excluded from the
// batch before any network call.
type FileSource interface {
	Name() string
	Size() int64
	MimeType() string
	Open() (io.ReadCloser, error)
}

// fsSource reads a file from an afero filesystem.
type fsSource struct {
	fs       afero.Fs
	path     string
	name     string
	size     int64
	mimeType string
}

// NewFileSource builds a FileSource backed by a file on fs. The MIME type is
// derived from the file extension, defaulting to application/octet-stream.
func NewFileSource(fs afero.Fs, path string) (FileSource, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%q is a directory, not a file", path)
	}
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return &fsSource{
		fs:       fs,
		path:     path,
		name:     filepath.Base(path),
		size:     info.Size(),
		mimeType: mimeType,
	}, nil
}

func (s *fsSource) Name() string     { return s.name }
func (s *fsSource) Size() int64      { return s.size }
func (s *fsSource) MimeType() string { return s.mimeType }

func (s *fsSource) Open() (io.ReadCloser, error) {
	return s.fs.Open(s.path)
}

// BytesSource is an in-memory FileSource.
type BytesSource struct {
	FileName    string
	ContentType string
	Data        []byte
}

func (s *BytesSource) Name() string { return s.FileName }
func (s *BytesSource) Size() int64  { return int64(len(s.Data)) }

func (s *BytesSource) MimeType() string {
	if s.ContentType == "" {
		return "application/octet-stream"
	}
	return s.ContentType
}

func (s *BytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.Data)), nil
}

// progressReader invokes a callback with percent-complete as the wrapped
// reader is consumed during the direct storage upload.
type progressReader struct {
	r        io.Reader
	total    int64
	read     int64
	lastPct  float64
	callback func(pct float64)
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 && p.total > 0 && p.callback != nil {
		p.read += int64(n)
		pct := float64(p.read) / float64(p.total) * 100
		if pct > 100 {
			pct = 100
		}
		// Suppress callbacks that would report no forward progress.
		if pct > p.lastPct {
			p.lastPct = pct
			p.callback(pct)
		}
	}
	return n, err
}
