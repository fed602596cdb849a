// Package hub wires the library store, persistence, icon extraction and the
// process launcher into the operations offered by the CLI and the GUI.
package hub

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/chenwei791129/gamehub/internal/config"
	"github.com/chenwei791129/gamehub/internal/icon"
	"github.com/chenwei791129/gamehub/internal/library"
	"github.com/chenwei791129/gamehub/internal/process"
	"github.com/chenwei791129/gamehub/pkg/catalog"
)

// Hub owns the library for the lifetime of the process
type Hub struct {
	cfg       *config.Config
	store     *library.Store
	saver     *library.Saver
	extractor *icon.Extractor
	logger    *zap.Logger
}

// New prepares the data directory and creates an empty library.
// onSaveError receives background save failures; it may be nil.
func New(cfg *config.Config, source icon.Source, logger *zap.Logger, onSaveError func(error)) (*Hub, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	if err := icon.EnsurePlaceholder(cfg.PlaceholderPath()); err != nil {
		// Covers fall back to the toolkit icon when the placeholder is missing
		logger.Warn("Failed to create placeholder cover", zap.Error(err))
	}

	saver := library.NewSaver(cfg.LibraryPath(), logger, onSaveError)
	return &Hub{
		cfg:       cfg,
		store:     library.NewStore(saver),
		saver:     saver,
		extractor: icon.NewExtractor(source, cfg.IconCacheDir(), logger),
		logger:    logger,
	}, nil
}

// Start begins background saving
func (h *Hub) Start() {
	h.saver.Start()
}

// Close writes any pending changes and stops background saving
func (h *Hub) Close() {
	h.saver.Stop()
}

// Store returns the library store
func (h *Hub) Store() *library.Store {
	return h.store
}

// Config returns the settings the hub was created with
func (h *Hub) Config() *config.Config {
	return h.cfg
}

// Extractor returns the icon extractor
func (h *Hub) Extractor() *icon.Extractor {
	return h.extractor
}

// ReadLibrary reads games.json without touching the store, so it can run off the UI goroutine
func (h *Hub) ReadLibrary() ([]*library.Game, error) {
	return library.Load(h.cfg.LibraryPath())
}

// Load reads games.json into the store. On failure the store is left empty.
func (h *Hub) Load() error {
	games, err := h.ReadLibrary()
	if err != nil {
		h.store.Replace(nil)
		return err
	}
	h.store.Replace(games)
	h.logger.Debug("Loaded games", zap.Int("count", len(games)))
	return nil
}

// DefaultCategory returns the category preselected for new games
func (h *Hub) DefaultCategory() string {
	if h.cfg.DefaultCategory != "" {
		return h.cfg.DefaultCategory
	}
	return catalog.DefaultCategory
}

// PrepareGame builds an unsaved record for the executable with its title and cover art filled in.
// Icon extraction happens here, so callers with a UI run it in the background.
func (h *Hub) PrepareGame(executablePath, category string) (*library.Game, error) {
	if err := checkExecutable(executablePath); err != nil {
		return nil, err
	}
	if category == "" {
		category = h.DefaultCategory()
	}

	g := library.NewGameFromExecutable(executablePath, category)
	g.CoverArt = h.extractor.CoverFor(executablePath, h.cfg.PlaceholderPath())
	return g, nil
}

// AddGame validates and stores a prepared record
func (h *Hub) AddGame(g *library.Game) error {
	if g.Category != "" && !catalog.IsCategory(g.Category) {
		return fmt.Errorf("unknown category %q", g.Category)
	}
	if err := h.store.Add(g); err != nil {
		return err
	}
	h.logger.Info("Added game", zap.String("title", g.Title), zap.String("path", g.ExecutablePath))
	return nil
}

// AddExecutable prepares and stores a game in one step. An empty title keeps the default.
func (h *Hub) AddExecutable(executablePath, title, category string) (*library.Game, error) {
	g, err := h.PrepareGame(executablePath, category)
	if err != nil {
		return nil, err
	}
	if title != "" {
		g.Title = title
	}
	if err := h.AddGame(g); err != nil {
		return nil, err
	}
	return g, nil
}

// ApplyExecutable re-points a game at a new executable. The title is reset from
// the file name; cover replaces the cover art unless it is empty.
func (h *Hub) ApplyExecutable(g *library.Game, executablePath, cover string) error {
	err := h.store.Update(g, func(g *library.Game) {
		g.ExecutablePath = executablePath
		g.Title = library.TitleFromExecutable(executablePath)
		if cover != "" {
			g.CoverArt = cover
		}
	})
	if err != nil {
		return err
	}
	h.logger.Info("Changed executable", zap.String("title", g.Title), zap.String("path", executablePath))
	return nil
}

// Repoint extracts the icon of a new executable and applies it to g.
// The previous cover art is kept when extraction yields nothing.
func (h *Hub) Repoint(g *library.Game, executablePath string) error {
	if err := checkExecutable(executablePath); err != nil {
		return err
	}
	cover, _ := h.extractor.Extract(executablePath)
	return h.ApplyExecutable(g, executablePath, cover)
}

// Edit changes the title and category of a game
func (h *Hub) Edit(g *library.Game, title, category string) error {
	if strings.TrimSpace(title) == "" {
		return library.ErrMissingInformation
	}
	if category != "" && !catalog.IsCategory(category) {
		return fmt.Errorf("unknown category %q", category)
	}
	return h.store.Update(g, func(g *library.Game) {
		g.Title = title
		g.Category = category
	})
}

// SetCover imports an image file as the cover art of g
func (h *Hub) SetCover(g *library.Game, imagePath string) error {
	cover, err := icon.ImportCover(imagePath, h.cfg.CoverDir())
	if err != nil {
		return err
	}
	return h.store.Update(g, func(g *library.Game) {
		g.CoverArt = cover
	})
}

// Remove deletes a game from the library. Its cached icon stays on disk.
func (h *Hub) Remove(g *library.Game) error {
	if err := h.store.Remove(g); err != nil {
		return err
	}
	h.logger.Info("Removed game", zap.String("title", g.Title))
	return nil
}

// Launch starts the game's executable
func (h *Hub) Launch(g *library.Game) error {
	if g == nil {
		return fmt.Errorf("%w: no game selected", process.ErrExecutableNotFound)
	}
	if err := process.LaunchGame(g.ExecutablePath); err != nil {
		h.logger.Warn("Launch failed", zap.String("title", g.Title), zap.Error(err))
		return err
	}
	h.logger.Info("Launched game", zap.String("title", g.Title), zap.String("path", g.ExecutablePath))
	return nil
}

// CoverPath returns the image to show for g: its cover art when the file exists,
// otherwise the placeholder
func (h *Hub) CoverPath(g *library.Game) string {
	if g.CoverArt != "" {
		if _, err := os.Stat(g.CoverArt); err == nil {
			return g.CoverArt
		}
	}
	return h.cfg.PlaceholderPath()
}

// checkExecutable verifies path names an existing regular file
func checkExecutable(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", process.ErrExecutableNotFound)
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", process.ErrExecutableNotFound, path)
	}
	return nil
}
