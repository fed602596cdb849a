package icon

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/sys/windows"

	"github.com/chenwei791129/gamehub/pkg/catalog"
)

// Win32Source extracts icons through user32 and shell32
type Win32Source struct{}

// NewSystemSource returns the icon source for the running platform
func NewSystemSource() Source {
	return Win32Source{}
}

// CandidateIcons extracts every icon of the file at catalog.IconRequestSize.
// All icon handles are destroyed before returning, whatever happens in between.
func (Win32Source) CandidateIcons(path string) ([]image.Image, error) {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}

	count := privateExtractIcons(pathPtr, 0, nil, nil)
	if count == 0 || count == extractIconsFailed {
		return nil, nil
	}

	handles := make([]windows.Handle, count)
	ids := make([]uint32, count)
	defer func() {
		for _, h := range handles {
			if h != 0 {
				destroyIcon(h)
			}
		}
	}()

	extracted := privateExtractIcons(pathPtr, catalog.IconRequestSize, handles, ids)
	if extracted == 0 || extracted == extractIconsFailed {
		return nil, nil
	}
	if extracted > count {
		extracted = count
	}

	images := make([]image.Image, 0, extracted)
	for _, h := range handles[:extracted] {
		if h == 0 {
			continue
		}
		img, err := iconToImage(h)
		if err != nil {
			continue
		}
		images = append(images, img)
	}

	return images, nil
}

// DefaultIcon returns the icon the shell associates with the file
func (Win32Source) DefaultIcon(path string) (image.Image, error) {
	h, err := extractAssociatedIcon(path)
	if err != nil {
		return nil, fmt.Errorf("ExtractAssociatedIcon failed for %s: %w", path, err)
	}
	defer destroyIcon(h)

	return iconToImage(h)
}

// iconToImage copies the color bitmap behind an icon handle.
// The handle itself stays owned by the caller.
func iconToImage(hIcon windows.Handle) (image.Image, error) {
	info, err := getIconInfo(hIcon)
	if err != nil {
		return nil, fmt.Errorf("GetIconInfo failed: %w", err)
	}
	defer func() {
		deleteObject(info.HbmColor)
		deleteObject(info.HbmMask)
	}()

	// Monochrome icons only have a mask bitmap
	if info.HbmColor == 0 {
		return nil, errors.New("icon has no color bitmap")
	}

	bm, err := getBitmap(info.HbmColor)
	if err != nil {
		return nil, fmt.Errorf("GetObject failed: %w", err)
	}
	if bm.Width <= 0 || bm.Height <= 0 {
		return nil, errors.New("icon bitmap is empty")
	}

	buf := make([]byte, int(bm.Width)*int(bm.Height)*4)
	if err := getDIBits(info.HbmColor, bm.Width, bm.Height, buf); err != nil {
		return nil, fmt.Errorf("GetDIBits failed: %w", err)
	}

	return bgraToImage(buf, int(bm.Width), int(bm.Height)), nil
}

// bgraToImage converts top-down BGRA rows. Bitmaps without any alpha are made opaque.
func bgraToImage(buf []byte, width, height int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	hasAlpha := false
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			if buf[i+3] != 0 {
				hasAlpha = true
			}
			img.SetNRGBA(x, y, color.NRGBA{R: buf[i+2], G: buf[i+1], B: buf[i], A: buf[i+3]})
		}
	}
	if !hasAlpha {
		for i := 3; i < len(img.Pix); i += 4 {
			img.Pix[i] = 0xff
		}
	}
	return img
}
