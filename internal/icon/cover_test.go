package icon

import (
	"bytes"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
)

func TestImportCoverResizes(t *testing.T) {
	src := filepath.Join(t.TempDir(), "art.png")
	writePNGFile(t, src, rect(120, 80))
	dir := filepath.Join(t.TempDir(), "Covers")

	path, err := ImportCover(src, dir)
	if err != nil {
		t.Fatalf("ImportCover: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("cover written to %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("cover is not a jpeg: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 600, 900) {
		t.Errorf("bounds = %v", img.Bounds())
	}
}

func TestImportCoverRejectsNonImages(t *testing.T) {
	src := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(src, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportCover(src, t.TempDir()); err == nil {
		t.Error("expected an error")
	}
}

func TestEnsurePlaceholder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "default_cover.png")

	if err := EnsurePlaceholder(path); err != nil {
		t.Fatalf("EnsurePlaceholder: %v", err)
	}
	img, err := loadImageFile(path)
	if err != nil {
		t.Fatalf("placeholder unreadable: %v", err)
	}
	if img.Bounds().Dx() != 256 || img.Bounds().Dy() != 256 {
		t.Errorf("bounds = %v", img.Bounds())
	}

	// An existing file is left alone
	if err := os.WriteFile(path, []byte("custom"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := EnsurePlaceholder(path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "custom" {
		t.Error("existing placeholder was overwritten")
	}
}
