package services

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/xcursi322/prakt/app/repositories"
	"github.com/xcursi322/prakt/pkg/storage"
)

const productImageDir = "products"

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true}

// AttachImage uploads an image for the product to the media disk and
// records its path. The stored name is randomised so browsers never see a
// stale cached file. It returns the stored path.
func AttachImage(ctx context.Context, productID uint, filename string, r io.Reader) (string, error) {
	products := repositories.NewProductRepository()
	if _, err := products.FindByID(productID); err != nil {
		return "", err
	}

	ext := strings.ToLower(path.Ext(filename))
	if !imageExts[ext] {
		return "", FieldErrors{"image": fmt.Sprintf("unsupported image type %q", ext)}
	}

	stored := path.Join(productImageDir, uuid.NewString()+ext)
	if err := storage.Put(ctx, stored, r, mime.TypeByExtension(ext)); err != nil {
		return "", err
	}
	if err := products.SetImage(productID, stored); err != nil {
		return "", err
	}
	return stored, nil
}
