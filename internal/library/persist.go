package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Load reads the library file at path.
// A missing file is an empty library. A file that cannot be read or parsed
// returns an error and no games, never a partial list.
func Load(path string) ([]*Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []*Game{}, nil
		}
		return nil, fmt.Errorf("failed to read library %s: %w", path, err)
	}

	var games []*Game
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, fmt.Errorf("failed to parse library %s: %w", path, err)
	}

	// A literal null in the file decodes to nil entries
	loaded := make([]*Game, 0, len(games))
	for _, g := range games {
		if g != nil {
			loaded = append(loaded, g)
		}
	}

	return loaded, nil
}

// Save replaces the library file at path with games as an indented JSON array.
// The data goes to a temporary file first, which is then renamed over path.
func Save(path string, games []Game) error {
	if games == nil {
		games = []Game{}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(games, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal library: %w", err)
	}

	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tempFile, path); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Snapshot copies the records so they can be written without holding the store
func Snapshot(games []*Game) []Game {
	out := make([]Game, 0, len(games))
	for _, g := range games {
		out = append(out, *g)
	}
	return out
}
