// Package icon extracts the best icon embedded in an executable and caches it
// as a PNG cover image.
package icon

import (
	"errors"
	"image"
)

// ErrNoIcon is returned by a Source that found nothing usable
var ErrNoIcon = errors.New("no usable icon")

// Source enumerates icon images for an executable.
// Backends are platform specific; choosing among the candidates is not.
type Source interface {
	// CandidateIcons returns every icon image embedded in the executable,
	// requested at catalog.IconRequestSize where the backend supports it.
	CandidateIcons(path string) ([]image.Image, error)

	// DefaultIcon returns the single icon the platform associates with the file.
	DefaultIcon(path string) (image.Image, error)
}
