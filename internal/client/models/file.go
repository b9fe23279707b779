package models

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// File is a readable payload with a known size. Open may be called any number
// of times; every call returns a fresh reader positioned at the start.
type File interface {
	Name() string
	Size() int64
	Open() (io.ReadSeekCloser, error)
}

// LocalFile is a file on disk. Size is captured when the file is opened with
// OpenLocalFile so the record's original size stays fixed.
type LocalFile struct {
	path string
	size int64
}

func OpenLocalFile(path string) (*LocalFile, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return &LocalFile{path: path, size: st.Size()}, nil
}

func (f *LocalFile) Name() string { return filepath.Base(f.path) }
func (f *LocalFile) Path() string { return f.path }
func (f *LocalFile) Size() int64  { return f.size }

func (f *LocalFile) Open() (io.ReadSeekCloser, error) {
	fh, err := os.Open(f.path)
	if err != nil {
		return nil, err
	}
	return fh, nil
}

// MemFile is an in-memory payload, produced by compression.
type MemFile struct {
	name        string
	data        []byte
	contentType string
}

func NewMemFile(name string, data []byte, contentType string) *MemFile {
	return &MemFile{name: name, data: data, contentType: contentType}
}

func (f *MemFile) Name() string        { return f.name }
func (f *MemFile) Size() int64         { return int64(len(f.data)) }
func (f *MemFile) ContentType() string { return f.contentType }
func (f *MemFile) Bytes() []byte       { return f.data }

func (f *MemFile) Open() (io.ReadSeekCloser, error) {
	return nopCloser{bytes.NewReader(f.data)}, nil
}

type nopCloser struct {
	io.ReadSeeker
}

func (nopCloser) Close() error { return nil }

// ContentTyper is implemented by files that know their MIME type.
type ContentTyper interface {
	ContentType() string
}
