// Package storage abstracts the object store that holds product images.
//
// Two drivers are available:
//   - "local"  — local filesystem (default, for development)
//   - "s3"     — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Boot once (in internal/server), then:
//
//	storage.Put("products/abc123.jpg", data)
//	url := storage.URL("products/abc123.jpg")
//	storage.Delete("products/abc123.jpg")
package storage

import "io"

// Disk is the object-store driver interface.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the object at path.
	Get(path string) ([]byte, error)

	// GetStream returns a ReadCloser for the object. Caller must close it.
	GetStream(path string) (io.ReadCloser, error)

	// Exists reports whether an object exists at path.
	Exists(path string) bool

	// URL returns the public URL for path.
	URL(path string) string

	// Delete removes an object. A missing object is not an error for the
	// local driver; S3 treats deletes of absent keys as success anyway.
	Delete(path string) error
}
