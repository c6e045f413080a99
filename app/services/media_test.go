package services_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xcursi322/prakt/app/models"
	"github.com/xcursi322/prakt/app/services"
	"github.com/xcursi322/prakt/internal/testdb"
	"github.com/xcursi322/prakt/pkg/storage"
)

func useTempMedia(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	prev := storage.Current()
	storage.Use(storage.NewLocalDisk(root, "/media/"))
	t.Cleanup(func() { storage.Use(prev) })
	return root
}

func TestAttachImageStoresFileAndResolvesURL(t *testing.T) {
	db := testdb.Open(t)
	root := useTempMedia(t)
	p := newProduct(t, db, "Whey", 900, 5)

	stored, err := services.AttachImage(context.Background(), p.ID, "Whey.JPG", strings.NewReader("img"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored, "products/"))
	assert.True(t, strings.HasSuffix(stored, ".jpg"))

	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(stored)))
	require.NoError(t, err)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.Equal(t, stored, reloaded.Image)
	assert.Equal(t, "/media/"+stored, reloaded.ImageURL)
}

func TestAttachImageValidation(t *testing.T) {
	db := testdb.Open(t)
	useTempMedia(t)
	p := newProduct(t, db, "Whey", 900, 5)

	_, err := services.AttachImage(context.Background(), p.ID, "notes.txt", strings.NewReader("x"))
	var fe services.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "image")

	_, err = services.AttachImage(context.Background(), p.ID+100, "a.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestProductWithoutImageHasNoURL(t *testing.T) {
	db := testdb.Open(t)
	useTempMedia(t)
	p := newProduct(t, db, "Creatine", 300, 5)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.Empty(t, reloaded.ImageURL)
}
