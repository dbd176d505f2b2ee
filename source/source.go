// Package source provides the raw text of a Java compilation unit for
// offset scans. Content is read once per pass and treated as immutable.
package source

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/viant/afs"
)

// ErrModified is returned by File.Verify when the stored content changed
// after it was first read.
var ErrModified = errors.New("source modified during resolution")

// Text provides the exact character content of a source file.
type Text interface {
	Content(ctx context.Context) ([]byte, error)
}

// Bytes is an in-memory Text.
type Bytes []byte

// Content returns b.
func (b Bytes) Content(ctx context.Context) ([]byte, error) {
	return b, nil
}

// File is a Text backed by an afs location, downloaded on first use.
type File struct {
	URL         string
	fs          afs.Service
	mux         sync.Mutex
	content     []byte
	fingerprint uint64
	loaded      bool
}

// NewFile creates a lazily loaded File; a nil fs uses afs.New().
func NewFile(fs afs.Service, URL string) *File {
	if fs == nil {
		fs = afs.New()
	}
	return &File{URL: URL, fs: fs}
}

// Load creates a File and reads its content eagerly.
func Load(ctx context.Context, fs afs.Service, URL string) (*File, error) {
	file := NewFile(fs, URL)
	if _, err := file.Content(ctx); err != nil {
		return nil, err
	}
	return file, nil
}

// Content returns the file content, downloading it on the first call.
func (f *File) Content(ctx context.Context) ([]byte, error) {
	f.mux.Lock()
	defer f.mux.Unlock()
	if f.loaded {
		return f.content, nil
	}
	content, fingerprint, err := f.download(ctx)
	if err != nil {
		return nil, err
	}
	f.content = content
	f.fingerprint = fingerprint
	f.loaded = true
	return f.content, nil
}

// Fingerprint returns the hash of the loaded content, 0 before the first read.
func (f *File) Fingerprint() uint64 {
	f.mux.Lock()
	defer f.mux.Unlock()
	return f.fingerprint
}

// Verify re-reads the location and fails with ErrModified when its content
// no longer matches what offsets were computed against.
func (f *File) Verify(ctx context.Context) error {
	f.mux.Lock()
	loaded, expected := f.loaded, f.fingerprint
	f.mux.Unlock()
	if !loaded {
		return nil
	}
	_, actual, err := f.download(ctx)
	if err != nil {
		return err
	}
	if actual != expected {
		return fmt.Errorf("%w: %s", ErrModified, f.URL)
	}
	return nil
}

func (f *File) download(ctx context.Context) ([]byte, uint64, error) {
	content, err := f.fs.DownloadWithURL(ctx, f.URL)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read source %s: %w", f.URL, err)
	}
	return content, Fingerprint(f.URL, content), nil
}
