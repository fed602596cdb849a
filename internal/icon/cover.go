package icon

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/nfnt/resize"

	"github.com/chenwei791129/gamehub/pkg/catalog"
)

// ImportCover copies a user supplied image into dir as cover art.
// The image is resized to catalog.CoverWidth x catalog.CoverHeight and stored
// as a JPEG with a random name; the new path is returned.
func ImportCover(srcPath, dir string) (string, error) {
	img, err := loadImageFile(srcPath)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", srcPath, err)
	}

	return writeCover(img, dir)
}

func writeCover(img image.Image, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create cover directory: %w", err)
	}

	m := resize.Resize(catalog.CoverWidth, catalog.CoverHeight, img, resize.Lanczos3)

	destPath := filepath.Join(dir, "custom_"+uuid.NewString()+".jpg")
	out, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", destPath, err)
	}

	if err := jpeg.Encode(out, m, nil); err != nil {
		_ = out.Close()
		_ = os.Remove(destPath)
		return "", fmt.Errorf("failed to encode cover: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(destPath)
		return "", err
	}

	return destPath, nil
}
