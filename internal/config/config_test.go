package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != dir {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, dir)
	}
	if cfg.DefaultCategory != "Action" {
		t.Errorf("DefaultCategory = %q", cfg.DefaultCategory)
	}
	if cfg.ThumbWidth != 150 || cfg.ThumbHeight != 225 {
		t.Errorf("thumb size = %vx%v", cfg.ThumbWidth, cfg.ThumbHeight)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	cfg := Default(dir)
	cfg.DarkTheme = false
	cfg.ThumbWidth = 200
	cfg.ThumbHeight = 300
	cfg.DefaultCategory = "Puzzle"

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.DarkTheme || loaded.ThumbWidth != 200 || loaded.ThumbHeight != 300 || loaded.DefaultCategory != "Puzzle" {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestLoadSanitizesInvalidValues(t *testing.T) {
	dir := t.TempDir()
	data := "thumb_width: -1\nthumb_height: 10\ndefault_category: Racing\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ThumbWidth != 150 || cfg.ThumbHeight != 225 {
		t.Errorf("thumb size = %vx%v", cfg.ThumbWidth, cfg.ThumbHeight)
	}
	if cfg.DefaultCategory != "Action" {
		t.Errorf("DefaultCategory = %q", cfg.DefaultCategory)
	}
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("dark_theme: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("expected a parse error")
	}
}

func TestDerivedPaths(t *testing.T) {
	cfg := Default(filepath.Join("base"))

	tests := map[string]string{
		cfg.LibraryPath():     filepath.Join("base", "games.json"),
		cfg.IconCacheDir():    filepath.Join("base", "Icons"),
		cfg.CoverDir():        filepath.Join("base", "Covers"),
		cfg.PlaceholderPath(): filepath.Join("base", "default_cover.png"),
		cfg.ConfigPath():      filepath.Join("base", "config.yaml"),
	}
	for got, want := range tests {
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}

func TestEnsureDirectories(t *testing.T) {
	cfg := Default(filepath.Join(t.TempDir(), "data"))
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	for _, dir := range []string{cfg.DataDir, cfg.IconCacheDir(), cfg.CoverDir()} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("%s was not created", dir)
		}
	}
}

func TestDefaultDataDirUsesXDG(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG_DATA_HOME is only consulted on Unix-like systems")
	}
	t.Setenv("XDG_DATA_HOME", "/xdg")

	dir, err := DefaultDataDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/xdg", "gamehub") {
		t.Errorf("DefaultDataDir = %q", dir)
	}
}
