package hub

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/chenwei791129/gamehub/internal/config"
	"github.com/chenwei791129/gamehub/internal/icon"
	"github.com/chenwei791129/gamehub/internal/library"
	"github.com/chenwei791129/gamehub/internal/process"
)

// stubSource serves one icon for executables whose name contains "icon"
type stubSource struct{}

func (stubSource) CandidateIcons(path string) ([]image.Image, error) {
	if strings.Contains(filepath.Base(path), "icon") {
		return []image.Image{image.NewNRGBA(image.Rect(0, 0, 48, 48))}, nil
	}
	return nil, nil
}

func (stubSource) DefaultIcon(string) (image.Image, error) {
	return nil, icon.ErrNoIcon
}

func newTestHub(t *testing.T) (*Hub, *config.Config) {
	t.Helper()
	cfg := config.Default(t.TempDir())
	h, err := New(cfg, stubSource{}, zap.NewNop(), func(err error) {
		t.Errorf("unexpected save error: %v", err)
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return h, cfg
}

func writeExecutable(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("MZ"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewCreatesDataLayout(t *testing.T) {
	_, cfg := newTestHub(t)

	for _, path := range []string{cfg.IconCacheDir(), cfg.CoverDir(), cfg.PlaceholderPath()} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s missing: %v", path, err)
		}
	}
}

func TestAddExecutableWithIcon(t *testing.T) {
	h, cfg := newTestHub(t)
	exe := writeExecutable(t, "icon-game.exe")

	g, err := h.AddExecutable(exe, "", "")
	if err != nil {
		t.Fatalf("AddExecutable: %v", err)
	}
	if g.Title != "icon-game" {
		t.Errorf("Title = %q", g.Title)
	}
	if g.Category != "Action" {
		t.Errorf("Category = %q, want the default", g.Category)
	}
	if filepath.Dir(g.CoverArt) != cfg.IconCacheDir() {
		t.Errorf("CoverArt = %q, want a cached icon", g.CoverArt)
	}
	if h.Store().Len() != 1 {
		t.Errorf("Len = %d", h.Store().Len())
	}
}

func TestAddExecutableWithoutIconUsesPlaceholder(t *testing.T) {
	h, cfg := newTestHub(t)
	exe := writeExecutable(t, "plain.exe")

	g, err := h.AddExecutable(exe, "Plain Game", "Puzzle")
	if err != nil {
		t.Fatal(err)
	}
	if g.CoverArt != cfg.PlaceholderPath() {
		t.Errorf("CoverArt = %q, want placeholder", g.CoverArt)
	}
	if g.Title != "Plain Game" || g.Category != "Puzzle" {
		t.Errorf("game = %+v", *g)
	}
}

func TestAddExecutableRejectsMissingFile(t *testing.T) {
	h, _ := newTestHub(t)

	_, err := h.AddExecutable(filepath.Join(t.TempDir(), "gone.exe"), "", "")
	if !errors.Is(err, process.ErrExecutableNotFound) {
		t.Errorf("err = %v", err)
	}
	if h.Store().Len() != 0 {
		t.Error("no record should be created")
	}
}

func TestAddGameRejectsUnknownCategory(t *testing.T) {
	h, _ := newTestHub(t)
	g := &library.Game{Title: "x", Category: "Racing", ExecutablePath: "/x"}
	if err := h.AddGame(g); err == nil {
		t.Error("expected an error")
	}
}

func TestRepointKeepsCoverWhenExtractionFails(t *testing.T) {
	h, _ := newTestHub(t)
	g, err := h.AddExecutable(writeExecutable(t, "icon-old.exe"), "", "")
	if err != nil {
		t.Fatal(err)
	}
	oldCover := g.CoverArt

	newExe := writeExecutable(t, "plain-new.exe")
	if err := h.Repoint(g, newExe); err != nil {
		t.Fatal(err)
	}
	if g.ExecutablePath != newExe || g.Title != "plain-new" {
		t.Errorf("game = %+v", *g)
	}
	if g.CoverArt != oldCover {
		t.Errorf("cover changed to %q", g.CoverArt)
	}

	iconExe := writeExecutable(t, "icon-newer.exe")
	if err := h.Repoint(g, iconExe); err != nil {
		t.Fatal(err)
	}
	if g.CoverArt == oldCover {
		t.Error("cover should be replaced by the new icon")
	}
}

func TestRepointMissingExecutableLeavesGame(t *testing.T) {
	h, _ := newTestHub(t)
	g, _ := h.AddExecutable(writeExecutable(t, "plain.exe"), "", "")
	before := *g

	if err := h.Repoint(g, filepath.Join(t.TempDir(), "nope.exe")); err == nil {
		t.Fatal("expected an error")
	}
	if *g != before {
		t.Errorf("game changed: %+v", *g)
	}
}

func TestEdit(t *testing.T) {
	h, _ := newTestHub(t)
	g, _ := h.AddExecutable(writeExecutable(t, "plain.exe"), "", "")

	if err := h.Edit(g, " ", "Action"); !errors.Is(err, library.ErrMissingInformation) {
		t.Errorf("blank title err = %v", err)
	}
	if err := h.Edit(g, "New", "Racing"); err == nil {
		t.Error("expected unknown category error")
	}
	if err := h.Edit(g, "New", "RPG"); err != nil {
		t.Fatal(err)
	}
	if g.Title != "New" || g.Category != "RPG" {
		t.Errorf("game = %+v", *g)
	}
}

func TestCloseWritesLibraryAndLoadRestoresIt(t *testing.T) {
	h, cfg := newTestHub(t)
	h.Start()
	a, _ := h.AddExecutable(writeExecutable(t, "icon-a.exe"), "Alpha", "Action")
	b, _ := h.AddExecutable(writeExecutable(t, "plain-b.exe"), "Beta", "Puzzle")
	if err := h.Remove(a); err != nil {
		t.Fatal(err)
	}
	h.Close()

	reopened, err := New(cfg, stubSource{}, zap.NewNop(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	games := reopened.Store().Games()
	if len(games) != 1 || *games[0] != *b {
		t.Errorf("reloaded = %+v", games)
	}
}

func TestLoadCorruptLibraryLeavesStoreEmpty(t *testing.T) {
	h, cfg := newTestHub(t)
	h.Store().Replace([]*library.Game{{Title: "stale", ExecutablePath: "/s"}})
	if err := os.WriteFile(cfg.LibraryPath(), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := h.Load(); err == nil {
		t.Fatal("expected a load error")
	}
	if h.Store().Len() != 0 {
		t.Errorf("store has %d games, want 0", h.Store().Len())
	}
}

func TestCoverPathFallsBackToPlaceholder(t *testing.T) {
	h, cfg := newTestHub(t)
	g := &library.Game{CoverArt: filepath.Join(t.TempDir(), "deleted.png")}
	if got := h.CoverPath(g); got != cfg.PlaceholderPath() {
		t.Errorf("CoverPath = %q", got)
	}
}

func TestLaunchInvalidPath(t *testing.T) {
	h, _ := newTestHub(t)
	g := &library.Game{Title: "ghost", ExecutablePath: filepath.Join(t.TempDir(), "ghost.exe")}
	if err := h.Launch(g); !errors.Is(err, process.ErrExecutableNotFound) {
		t.Errorf("err = %v", err)
	}
	if err := h.Launch(nil); !errors.Is(err, process.ErrExecutableNotFound) {
		t.Errorf("nil game err = %v", err)
	}
}
