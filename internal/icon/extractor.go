package icon

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Extractor picks the largest icon of an executable and writes it to the cache directory
type Extractor struct {
	source   Source
	cacheDir string
	logger   *zap.Logger
}

// NewExtractor creates an extractor writing PNG files under cacheDir
func NewExtractor(source Source, cacheDir string, logger *zap.Logger) *Extractor {
	return &Extractor{
		source:   source,
		cacheDir: cacheDir,
		logger:   logger,
	}
}

// Extract caches the best icon of the executable at exePath and returns the PNG path.
//
// ok is false when the path is empty or not an existing file, or when neither the
// candidate icons nor the default icon produced a usable image. Failures are only
// logged; callers substitute their own placeholder.
func (e *Extractor) Extract(exePath string) (cachedPath string, ok bool) {
	if exePath == "" {
		return "", false
	}
	info, err := os.Stat(exePath)
	if err != nil || !info.Mode().IsRegular() {
		e.logger.Debug("Executable not found, skipping icon extraction", zap.String("path", exePath))
		return "", false
	}

	img := e.bestCandidate(exePath)
	if img == nil {
		img = e.defaultIcon(exePath)
	}
	if img == nil {
		return "", false
	}

	cachedPath, err = writePNG(e.cacheDir, img)
	if err != nil {
		e.logger.Debug("Failed to cache icon", zap.String("path", exePath), zap.Error(err))
		return "", false
	}

	e.logger.Debug("Cached icon",
		zap.String("path", exePath),
		zap.String("icon", cachedPath),
		zap.Int("width", img.Bounds().Dx()))
	return cachedPath, true
}

// CoverFor returns the cached icon for exePath, or fallback when extraction fails
func (e *Extractor) CoverFor(exePath, fallback string) string {
	if path, ok := e.Extract(exePath); ok {
		return path
	}
	return fallback
}

// bestCandidate returns the widest candidate icon, or nil
func (e *Extractor) bestCandidate(exePath string) (best image.Image) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Debug("Icon enumeration panicked", zap.String("path", exePath), zap.Any("panic", r))
			best = nil
		}
	}()

	candidates, err := e.source.CandidateIcons(exePath)
	if err != nil {
		e.logger.Debug("Icon enumeration failed", zap.String("path", exePath), zap.Error(err))
		return nil
	}
	if len(candidates) == 0 {
		e.logger.Debug("Executable has no icon resources", zap.String("path", exePath))
		return nil
	}

	return pickLargest(candidates)
}

// defaultIcon asks the source for its single associated icon, or nil
func (e *Extractor) defaultIcon(exePath string) (img image.Image) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Debug("Default icon extraction panicked", zap.String("path", exePath), zap.Any("panic", r))
			img = nil
		}
	}()

	img, err := e.source.DefaultIcon(exePath)
	if err != nil {
		e.logger.Debug("Default icon extraction failed", zap.String("path", exePath), zap.Error(err))
		return nil
	}
	if img == nil || img.Bounds().Empty() {
		return nil
	}
	return img
}

// pickLargest returns the image with the greatest width.
// The first image wins a tie; nil and empty images are skipped.
func pickLargest(images []image.Image) image.Image {
	var best image.Image
	maxWidth := 0
	for _, img := range images {
		if img == nil {
			continue
		}
		if w := img.Bounds().Dx(); w > maxWidth {
			maxWidth = w
			best = img
		}
	}
	return best
}

// writePNG encodes img under dir with a random file name
func writePNG(dir string, img image.Image) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create icon cache: %w", err)
	}

	path := filepath.Join(dir, uuid.NewString()+".png")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}
