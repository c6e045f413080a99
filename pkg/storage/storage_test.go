package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xcursi322/prakt/pkg/storage"
)

func TestLocalDiskPutAndURL(t *testing.T) {
	root := t.TempDir()
	disk := storage.NewLocalDisk(root, "/media/")

	require.NoError(t, disk.Put(context.Background(), "products/whey.jpg", strings.NewReader("jpeg"), "image/jpeg"))

	got, err := os.ReadFile(filepath.Join(root, "products", "whey.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(got))
	assert.Equal(t, "/media/products/whey.jpg", disk.URL("products/whey.jpg"))
	assert.Equal(t, "/media/products/whey.jpg", disk.URL("/products/whey.jpg"))
}

func TestLocalDiskRejectsEscapingPaths(t *testing.T) {
	disk := storage.NewLocalDisk(t.TempDir(), "/media")
	err := disk.Put(context.Background(), "../outside.txt", strings.NewReader("x"), "")
	assert.Error(t, err)
}

func TestURLOfEmptyPathIsEmpty(t *testing.T) {
	storage.Use(storage.NewLocalDisk(t.TempDir(), "/media/"))
	assert.Empty(t, storage.URL(""))
	assert.Equal(t, "/media/a.png", storage.URL("a.png"))
}
