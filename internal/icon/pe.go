package icon

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	ico "github.com/sergeymakinen/go-ico"
	"github.com/tc-hib/winres"
)

// PESource reads icon group resources straight out of PE executables.
// It works on every platform and is the system source outside Windows.
type PESource struct{}

// CandidateIcons decodes every image of every RT_GROUP_ICON resource in the file.
// Files that are not PE images or carry no resource directory return an error;
// the extractor then falls back to DefaultIcon.
func (PESource) CandidateIcons(path string) ([]image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	rs, err := winres.LoadFromEXE(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read resources of %s: %w", path, err)
	}

	var images []image.Image
	seen := make(map[string]bool)
	rs.WalkType(winres.RT_GROUP_ICON, func(resID winres.Identifier, _ uint16, _ []byte) bool {
		// Groups appear once per language; the images are the same
		key := fmt.Sprintf("%T:%v", resID, resID)
		if seen[key] {
			return true
		}
		seen[key] = true

		icon, err := rs.GetIcon(resID)
		if err != nil {
			return true
		}
		var buf bytes.Buffer
		if err := icon.SaveICO(&buf); err != nil {
			return true
		}
		decoded, err := ico.DecodeAll(&buf)
		if err != nil {
			return true
		}
		images = append(images, decoded...)
		return true
	})

	return images, nil
}

// DefaultIcon looks for an icon file shipped next to the executable:
// <name>.png, <name>.ico, icon.png or icon.ico in the same directory.
func (PESource) DefaultIcon(path string) (image.Image, error) {
	dir := filepath.Dir(path)
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	candidates := []string{
		filepath.Join(dir, base+".png"),
		filepath.Join(dir, base+".ico"),
		filepath.Join(dir, "icon.png"),
		filepath.Join(dir, "icon.ico"),
	}
	for _, candidate := range candidates {
		img, err := loadImageFile(candidate)
		if err == nil {
			return img, nil
		}
	}

	return nil, ErrNoIcon
}

// loadImageFile decodes a PNG, JPEG or ICO file; for ICO the widest image is returned
func loadImageFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".ico") {
		images, err := ico.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		if img := pickLargest(images); img != nil {
			return img, nil
		}
		return nil, ErrNoIcon
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}
