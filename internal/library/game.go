// Package library holds the game records, the filtered view over them and
// their JSON persistence.
package library

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	// ErrGameNotFound is returned when a game is not part of the store
	ErrGameNotFound = errors.New("game not found in library")

	// ErrMissingInformation is returned when a game lacks a title or executable path
	ErrMissingInformation = errors.New("game needs an executable path and a title")
)

// Game is one registered executable.
// JSON field names match the files written by earlier versions of the launcher.
type Game struct {
	Title          string `json:"Title"`
	Category       string `json:"Category"`
	CoverArt       string `json:"CoverArt"`
	ExecutablePath string `json:"ExecutablePath"`
}

// ExecutableFileName returns the final path component of the executable path
func (g *Game) ExecutableFileName() string {
	if g.ExecutablePath == "" {
		return ""
	}
	return filepath.Base(g.ExecutablePath)
}

// Validate checks the fields required before a game can join the library
func (g *Game) Validate() error {
	if strings.TrimSpace(g.Title) == "" || g.ExecutablePath == "" {
		return ErrMissingInformation
	}
	return nil
}

// TitleFromExecutable returns the default title for an executable: its file name without extension
func TitleFromExecutable(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// NewGameFromExecutable builds a record for the executable with the default title.
// Cover art is left empty for the caller to fill in.
func NewGameFromExecutable(path, category string) *Game {
	return &Game{
		Title:          TitleFromExecutable(path),
		Category:       category,
		ExecutablePath: path,
	}
}
