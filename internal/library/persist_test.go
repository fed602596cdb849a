package library

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	games, err := Load(filepath.Join(t.TempDir(), "games.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if games == nil || len(games) != 0 {
		t.Errorf("expected empty library, got %v", games)
	}
}

func TestLoadCorruptFileReturnsNoGames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.json")
	if err := os.WriteFile(path, []byte(`[{"Title": "Halo"`), 0644); err != nil {
		t.Fatal(err)
	}

	games, err := Load(path)
	if err == nil {
		t.Fatal("expected an error for a corrupt file")
	}
	if games != nil {
		t.Errorf("expected no games, got %v", games)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "games.json")
	want := []Game{
		{Title: "Halo", Category: "Action", CoverArt: "/icons/a.png", ExecutablePath: "/games/halo.exe"},
		{Title: "Tetris", Category: "Puzzle", CoverArt: "/icons/b.png", ExecutablePath: "/games/tetris.exe"},
		{Title: "Uncategorised", ExecutablePath: "/games/x.exe"},
	}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d games, want %d", len(got), len(want))
	}
	for i := range want {
		if *got[i] != want[i] {
			t.Errorf("game %d: got %+v, want %+v", i, *got[i], want[i])
		}
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should not remain after save")
	}
}

func TestSaveWritesIndentedFieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.json")
	if err := Save(path, []Game{{Title: "Halo", ExecutablePath: `C:\Games\halo.exe`}}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, field := range []string{`"Title"`, `"Category"`, `"CoverArt"`, `"ExecutablePath"`, "\n  "} {
		if !strings.Contains(text, field) {
			t.Errorf("saved file missing %q:\n%s", field, text)
		}
	}
	if strings.Contains(text, "ExecutableFileName") {
		t.Error("derived file name must not be persisted")
	}
}

func TestSaveNilWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.json")
	if err := Save(path, nil); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("got %q, want []", data)
	}
}

func TestRemoveThenReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.json")
	saver := NewSaver(path, nopLogger(), nil)
	store := NewStore(saver)

	halo := &Game{Title: "Halo", Category: "Action", CoverArt: "h.png", ExecutablePath: "/g/halo.exe"}
	tetris := &Game{Title: "Tetris", Category: "Puzzle", CoverArt: "t.png", ExecutablePath: "/g/tetris.exe"}
	doom := &Game{Title: "Doom", Category: "Action", CoverArt: "d.png", ExecutablePath: "/g/doom.exe"}
	store.Replace([]*Game{halo, tetris, doom})

	if err := store.Remove(tetris); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	saver.Stop()

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d games, want 2", len(got))
	}
	if *got[0] != *halo || *got[1] != *doom {
		t.Errorf("other records changed: %+v %+v", *got[0], *got[1])
	}
}

func TestExecutableFileName(t *testing.T) {
	g := &Game{ExecutablePath: filepath.Join("games", "halo", "halo.exe")}
	if got := g.ExecutableFileName(); got != "halo.exe" {
		t.Errorf("got %q", got)
	}
	if got := (&Game{}).ExecutableFileName(); got != "" {
		t.Errorf("empty path should give empty name, got %q", got)
	}
}

func TestNewGameFromExecutable(t *testing.T) {
	g := NewGameFromExecutable(filepath.Join("games", "Half-Life.exe"), "Action")
	if g.Title != "Half-Life" {
		t.Errorf("Title = %q", g.Title)
	}
	if g.Category != "Action" {
		t.Errorf("Category = %q", g.Category)
	}
	if g.CoverArt != "" {
		t.Errorf("CoverArt should be empty, got %q", g.CoverArt)
	}
}

func mkdir(path string) error {
	return os.MkdirAll(filepath.Join(path, "occupied"), 0755)
}
