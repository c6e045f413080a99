// Package storage keeps product media. Two drivers are available:
//   - "local"  files under MEDIA_ROOT, served by the front web server at MEDIA_URL
//   - "s3"     S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Boot once, then resolve stored paths to URLs:
//
//	storage.Connect()
//	url := storage.URL("products/whey.jpg")
package storage

import (
	"context"
	"io"
	"strings"
)

// Disk is the media driver interface.
type Disk interface {
	Name() string

	// Put writes r to path, replacing any existing file.
	Put(ctx context.Context, path string, r io.Reader, contentType string) error

	// URL returns the address a browser can load path from.
	URL(path string) string
}

// clean turns a stored path into a disk-relative key.
func clean(path string) string {
	return strings.TrimLeft(strings.ReplaceAll(path, "\\", "/"), "/")
}
