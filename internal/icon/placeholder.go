package icon

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/chenwei791129/gamehub/pkg/catalog"
)

var (
	placeholderBackground = color.NRGBA{R: 0x2b, G: 0x2f, B: 0x3a, A: 0xff}
	placeholderForeground = color.NRGBA{R: 0x5c, G: 0x67, B: 0x7d, A: 0xff}
)

// EnsurePlaceholder writes the default cover to path unless a file is already there
func EnsurePlaceholder(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to check placeholder: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create placeholder: %w", err)
	}
	if err := png.Encode(f, placeholderImage(catalog.IconRequestSize)); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("failed to encode placeholder: %w", err)
	}
	return f.Close()
}

// placeholderImage draws a framed controller-ish glyph on a dark square
func placeholderImage(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	border := size / 16
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := placeholderBackground
			if x < border || y < border || x >= size-border || y >= size-border {
				c = placeholderForeground
			}
			img.SetNRGBA(x, y, c)
		}
	}

	// Body
	fillRect(img, size/4, size*3/8, size*3/4, size*5/8, placeholderForeground)
	// D-pad
	fillRect(img, size*5/16, size/2-size/64, size*7/16, size/2+size/64, placeholderBackground)
	fillRect(img, size*3/8-size/64, size*7/16, size*3/8+size/64, size*9/16, placeholderBackground)
	// Buttons
	fillRect(img, size*9/16, size*7/16, size*19/32, size*15/32, placeholderBackground)
	fillRect(img, size*5/8, size*17/32, size*21/32, size*9/16, placeholderBackground)

	return img
}

func fillRect(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}
