// Package gui provides the library window of gamehub.
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/chenwei791129/gamehub/internal/config"
	"github.com/chenwei791129/gamehub/internal/hub"
	"github.com/chenwei791129/gamehub/internal/icon"
	"github.com/chenwei791129/gamehub/pkg/catalog"
)

const (
	// AppTitle is the window title
	AppTitle = "Game Hub"
)

// App wraps the Fyne application
type App struct {
	fyneApp fyne.App
	window  *MainWindow
	hub     *hub.Hub
	cfg     *config.Config
	logger  *zap.Logger
}

// NewApp creates a new GUI application backed by the library in cfg's data directory
func NewApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{
		fyneApp: app.NewWithID(catalog.AppID),
		cfg:     cfg,
		logger:  logger,
	}

	h, err := hub.New(cfg, icon.NewSystemSource(), logger, a.onSaveError)
	if err != nil {
		return nil, err
	}
	a.hub = h

	applyTheme(a.fyneApp, cfg.DarkTheme)
	return a, nil
}

// Run starts the application and blocks until the window is closed
func (a *App) Run() {
	a.window = NewMainWindow(a.fyneApp, a.hub, a.logger)
	a.hub.Start()
	a.window.Show()
	a.window.LoadLibrary()
	a.window.StartMonitoringAutomatically()
	a.fyneApp.Run()

	// Flush the last edits before the process exits
	a.hub.Close()
}

// Quit closes the application
func (a *App) Quit() {
	a.fyneApp.Quit()
}

// onSaveError runs on the saver goroutine
func (a *App) onSaveError(err error) {
	fyne.Do(func() {
		if a.window != nil {
			a.window.ShowSaveError(err)
		}
	})
}
