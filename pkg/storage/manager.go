package storage

import (
	"context"
	"io"
	"sync"

	"github.com/xcursi322/prakt/config"
)

var (
	mu      sync.RWMutex
	current = newLocalDiskFromConfig()
)

// Connect selects the media disk from STORAGE_DISK ("local" or "s3"). When
// the S3 disk cannot be configured the local disk stays active and the
// error is returned for the caller to log.
func Connect(ctx context.Context) error {
	if config.Get("STORAGE_DISK", "local") != "s3" {
		Use(newLocalDiskFromConfig())
		return nil
	}

	d, err := newS3Disk(ctx)
	if err != nil {
		return err
	}
	Use(d)
	return nil
}

// Use swaps the active disk.
func Use(d Disk) {
	mu.Lock()
	current = d
	mu.Unlock()
}

// Current returns the active disk.
func Current() Disk {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// URL resolves a stored media path. An empty path has no URL.
func URL(path string) string {
	if path == "" {
		return ""
	}
	return Current().URL(path)
}

// Put writes a media file to the active disk.
func Put(ctx context.Context, path string, r io.Reader, contentType string) error {
	return Current().Put(ctx, path, r, contentType)
}
