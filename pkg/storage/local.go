package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xcursi322/prakt/config"
)

// localDisk is the local-filesystem driver.
type localDisk struct {
	root    string
	baseURL string
}

// NewLocalDisk stores files under root and links them below baseURL.
func NewLocalDisk(root, baseURL string) Disk {
	return &localDisk{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

func newLocalDiskFromConfig() Disk {
	return NewLocalDisk(config.Get("MEDIA_ROOT", "media"), config.Get("MEDIA_URL", "/media/"))
}

func (d *localDisk) Name() string { return "local" }

func (d *localDisk) Put(_ context.Context, path string, r io.Reader, _ string) error {
	key := clean(path)
	full := filepath.Join(d.root, filepath.FromSlash(key))
	if !strings.HasPrefix(full, filepath.Clean(d.root)+string(filepath.Separator)) {
		return fmt.Errorf("storage/local: path %q escapes the media root", path)
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("storage/local: mkdir: %w", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("storage/local: create %s: %w", key, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("storage/local: write %s: %w", key, err)
	}
	return f.Close()
}

func (d *localDisk) URL(path string) string {
	return d.baseURL + "/" + clean(path)
}
