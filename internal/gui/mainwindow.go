package gui

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/chenwei791129/gamehub/internal/hub"
	"github.com/chenwei791129/gamehub/internal/icon"
	"github.com/chenwei791129/gamehub/internal/library"
	"github.com/chenwei791129/gamehub/internal/process"
	"github.com/chenwei791129/gamehub/pkg/catalog"
)

const (
	windowWidth  = 900
	windowHeight = 700
	maxLogLines  = 500
	zoomFactor   = 1.2
	minThumbSize = 60
	maxThumbSize = 600
)

// MainWindow represents the main application window
type MainWindow struct {
	app    fyne.App
	window fyne.Window
	hub    *hub.Hub
	store  *library.Store
	logger *zap.Logger

	// UI Components - toolbar
	categorySelect *widget.Select
	searchEntry    *widget.Entry
	themeBtn       *widget.Button

	// UI Components - library
	grid        *fyne.Container
	emptyLabel  *widget.Label
	loadingBar  *widget.ProgressBarInfinite
	loadingView *fyne.Container

	// UI Components - Log
	logText *widget.RichText

	// State
	loading     bool
	selected    *library.Game
	tiles       map[*library.Game]*coverTile
	statuses    map[*library.Game]process.Status
	logLines    []string
	unsubscribe func()

	// Monitor
	monitor *Monitor
}

// NewMainWindow creates and configures the main window
func NewMainWindow(app fyne.App, h *hub.Hub, logger *zap.Logger) *MainWindow {
	w := &MainWindow{
		app:      app,
		hub:      h,
		store:    h.Store(),
		logger:   logger,
		tiles:    make(map[*library.Game]*coverTile),
		statuses: make(map[*library.Game]process.Status),
		logLines: make([]string, 0, maxLogLines),
	}
	w.window = app.NewWindow(AppTitle)
	w.window.Resize(fyne.NewSize(windowWidth, windowHeight))
	w.window.CenterOnScreen()
	w.window.SetMaster()

	// Handle window close
	w.window.SetCloseIntercept(func() {
		if w.monitor != nil {
			w.monitor.Stop()
		}
		if w.unsubscribe != nil {
			w.unsubscribe()
		}
		w.window.Close()
	})

	w.createUI()
	w.unsubscribe = w.store.Subscribe(w.onStoreChange)
	return w
}

// createUI builds the user interface
func (w *MainWindow) createUI() {
	// Toolbar
	w.categorySelect = widget.NewSelect(catalog.FilterChoices(), func(category string) {
		w.store.SetCategory(category)
	})
	w.categorySelect.SetSelected(catalog.AllCategories)

	w.searchEntry = widget.NewEntry()
	w.searchEntry.SetPlaceHolder("Search by title...")
	w.searchEntry.OnChanged = func(text string) {
		w.store.SetSearch(text)
	}

	addBtn := widget.NewButtonWithIcon("Add Game", theme.ContentAddIcon(), w.onAddClick)
	addBtn.Importance = widget.HighImportance

	w.themeBtn = widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), w.onThemeClick)
	w.updateThemeButton()

	zoomOutBtn := widget.NewButtonWithIcon("", theme.ZoomOutIcon(), func() {
		w.zoom(1 / zoomFactor)
	})
	zoomInBtn := widget.NewButtonWithIcon("", theme.ZoomInIcon(), func() {
		w.zoom(zoomFactor)
	})

	toolbar := container.NewBorder(nil, nil,
		w.categorySelect,
		container.NewHBox(addBtn, w.themeBtn, zoomOutBtn, zoomInBtn),
		w.searchEntry,
	)

	// Library grid with empty and loading placeholders on top
	w.grid = container.NewGridWrap(w.thumbSize())
	w.emptyLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	w.emptyLabel.Wrapping = fyne.TextWrapWord
	w.loadingBar = widget.NewProgressBarInfinite()
	w.loadingView = container.NewVBox(
		layout.NewSpacer(),
		widget.NewLabelWithStyle("Loading library...", fyne.TextAlignCenter, fyne.TextStyle{}),
		w.loadingBar,
		layout.NewSpacer(),
	)
	w.loadingView.Hide()

	body := container.NewStack(
		container.NewVScroll(w.grid),
		container.NewCenter(w.emptyLabel),
		w.loadingView,
	)

	// Log section with scroll
	w.logText = widget.NewRichText()
	w.logText.Wrapping = fyne.TextWrapWord
	logScroll := container.NewScroll(w.logText)
	logScroll.SetMinSize(fyne.NewSize(600, 80))

	clearLogBtn := widget.NewButton("Clear Log", func() {
		w.onClearLogClick()
	})
	logCard := widget.NewCard("Activity Log", "",
		container.NewBorder(nil, container.NewHBox(layout.NewSpacer(), clearLogBtn), nil, nil, logScroll))

	split := container.NewVSplit(body, logCard)
	split.Offset = 0.78

	content := container.NewBorder(
		container.NewVBox(toolbar, widget.NewSeparator()),
		nil, nil, nil,
		split,
	)

	w.window.SetContent(container.NewPadded(content))

	// Initial log message
	w.appendLog("Game Hub started")
	w.refreshGrid()
}

// Show displays the window
func (w *MainWindow) Show() {
	w.window.Show()
}

// LoadLibrary reads games.json in the background and fills the store
func (w *MainWindow) LoadLibrary() {
	w.setLoading(true)

	go func() {
		games, err := w.hub.ReadLibrary()
		fyne.Do(func() {
			w.setLoading(false)
			if err != nil {
				w.logger.Error("Failed to load library", zap.Error(err))
				w.store.Replace(nil)
				w.appendLog("Failed to load library")
				dialog.ShowError(fmt.Errorf("failed to load library: %w", err), w.window)
				return
			}
			w.store.Replace(games)
			w.appendLog(fmt.Sprintf("Loaded %d game(s)", len(games)))
		})
	}()
}

// StartMonitoringAutomatically starts the running-games monitor
func (w *MainWindow) StartMonitoringAutomatically() {
	if w.monitor == nil {
		w.monitor = NewMonitor(w, w.store, w.logger)
	}
	w.monitor.Start()
}

// setLoading toggles the loading indicator
func (w *MainWindow) setLoading(loading bool) {
	w.loading = loading
	if loading {
		w.loadingView.Show()
		w.loadingBar.Start()
	} else {
		w.loadingBar.Stop()
		w.loadingView.Hide()
	}
	w.updateEmptyLabel(len(w.store.View()))
}

// onStoreChange is subscribed to the store; mutations happen on the UI goroutine
func (w *MainWindow) onStoreChange(change library.Change) {
	w.logger.Debug("Library changed", zap.Stringer("change", change))
	if w.selected != nil && !w.store.Contains(w.selected) {
		w.selected = nil
	}
	w.refreshGrid()
}

// refreshGrid rebuilds the cover tiles from the store's current view
func (w *MainWindow) refreshGrid() {
	view := w.store.View()

	w.grid.Objects = nil
	w.tiles = make(map[*library.Game]*coverTile, len(view))
	for _, g := range view {
		tile := newCoverTile(w.coverImage(g), g.Title)
		tile.SetSelected(g == w.selected)
		tile.SetStatus(statusText(w.statuses[g]))
		tile.onTap = func() {
			w.selectGame(g)
		}
		tile.onDoubleTap = func() {
			w.launch(g)
		}
		tile.onSecondary = func(pe *fyne.PointEvent) {
			w.selectGame(g)
			w.showGameMenu(g, pe)
		}

		w.tiles[g] = tile
		w.grid.Add(tile)
	}
	w.grid.Refresh()
	w.updateEmptyLabel(len(view))
}

// updateEmptyLabel shows a hint when there is nothing to display
func (w *MainWindow) updateEmptyLabel(visible int) {
	switch {
	case w.loading || visible > 0:
		w.emptyLabel.Hide()
		return
	case w.store.Len() == 0:
		w.emptyLabel.SetText("Your library is empty.\nClick 'Add Game' to register a game executable.")
	default:
		w.emptyLabel.SetText("No games match the current filter.")
	}
	w.emptyLabel.Show()
}

// coverImage loads the game's cover, falling back to the placeholder and then the application icon
func (w *MainWindow) coverImage(g *library.Game) *canvas.Image {
	path := w.hub.CoverPath(g)
	if _, err := os.Stat(path); err == nil {
		return canvas.NewImageFromFile(path)
	}

	res := w.app.Icon()
	if res == nil {
		res = theme.FileImageIcon()
	}
	return canvas.NewImageFromResource(res)
}

// selectGame moves the selection highlight to g
func (w *MainWindow) selectGame(g *library.Game) {
	if prev, ok := w.tiles[w.selected]; ok {
		prev.SetSelected(false)
	}
	w.selected = g
	if tile, ok := w.tiles[g]; ok {
		tile.SetSelected(true)
	}
}

// showGameMenu shows the context menu of a tile
func (w *MainWindow) showGameMenu(g *library.Game, pe *fyne.PointEvent) {
	menu := fyne.NewMenu("",
		fyne.NewMenuItem("Launch", func() {
			w.launch(g)
		}),
		fyne.NewMenuItem("Change Executable", func() {
			w.onChangeExecutable(g)
		}),
		fyne.NewMenuItem("Change Cover Art", func() {
			w.onChangeCover(g)
		}),
		fyne.NewMenuItem("Edit", func() {
			w.showEditDialog(g)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Remove", func() {
			w.confirmRemove(g)
		}),
	)
	widget.ShowPopUpMenuAtPosition(menu, w.window.Canvas(), pe.AbsolutePosition)
}

// launch starts g and reports failures in a dialog
func (w *MainWindow) launch(g *library.Game) {
	if err := w.hub.Launch(g); err != nil {
		if errors.Is(err, process.ErrExecutableNotFound) {
			dialog.ShowInformation("Executable Not Found",
				fmt.Sprintf("The executable for %s could not be found:\n%s", g.Title, g.ExecutablePath), w.window)
		} else {
			dialog.ShowError(fmt.Errorf("failed to launch %s: %w", g.Title, err), w.window)
		}
		w.appendLog(fmt.Sprintf("Failed to launch %s", g.Title))
		return
	}
	w.appendLog(fmt.Sprintf("Launched %s", g.Title))
}

// onAddClick picks an executable, extracts its icon in the background and opens the add form
func (w *MainWindow) onAddClick() {
	w.pickExecutable(func(path string) {
		w.appendLog(fmt.Sprintf("Reading icon of %s...", path))
		go func() {
			g, err := w.hub.PrepareGame(path, "")
			fyne.Do(func() {
				if err != nil {
					dialog.ShowError(err, w.window)
					return
				}
				w.showAddDialog(g)
			})
		}()
	})
}

// showAddDialog lets the user confirm the title and category of a new game
func (w *MainWindow) showAddDialog(g *library.Game) {
	titleEntry := widget.NewEntry()
	titleEntry.SetText(g.Title)

	categorySelect := widget.NewSelect(catalog.Categories, nil)
	categorySelect.SetSelected(g.Category)

	exeLabel := widget.NewLabel(g.ExecutableFileName())
	exeLabel.Truncation = fyne.TextTruncateEllipsis

	cover := canvas.NewImageFromFile(g.CoverArt)
	cover.FillMode = canvas.ImageFillContain
	cover.SetMinSize(fyne.NewSize(96, 96))

	items := []*widget.FormItem{
		widget.NewFormItem("Cover", cover),
		widget.NewFormItem("Title", titleEntry),
		widget.NewFormItem("Category", categorySelect),
		widget.NewFormItem("Executable", exeLabel),
	}

	d := dialog.NewForm("Add Game", "Add", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		g.Title = strings.TrimSpace(titleEntry.Text)
		g.Category = categorySelect.Selected
		if err := w.hub.AddGame(g); err != nil {
			w.showEditError(err)
			return
		}
		w.appendLog(fmt.Sprintf("Added %s", g.Title))
	}, w.window)
	d.Resize(fyne.NewSize(420, 320))
	d.Show()
}

// showEditDialog edits the title and category of g
func (w *MainWindow) showEditDialog(g *library.Game) {
	titleEntry := widget.NewEntry()
	titleEntry.SetText(g.Title)

	categorySelect := widget.NewSelect(catalog.Categories, nil)
	categorySelect.SetSelected(g.Category)

	items := []*widget.FormItem{
		widget.NewFormItem("Title", titleEntry),
		widget.NewFormItem("Category", categorySelect),
	}

	d := dialog.NewForm("Edit Game", "Save", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		if err := w.hub.Edit(g, strings.TrimSpace(titleEntry.Text), categorySelect.Selected); err != nil {
			w.showEditError(err)
			return
		}
		w.appendLog(fmt.Sprintf("Updated %s", g.Title))
	}, w.window)
	d.Resize(fyne.NewSize(420, 220))
	d.Show()
}

// showEditError reports a rejected add or edit
func (w *MainWindow) showEditError(err error) {
	if errors.Is(err, library.ErrMissingInformation) {
		dialog.ShowInformation("Missing Information", "Please provide a title and an executable.", w.window)
		return
	}
	dialog.ShowError(err, w.window)
}

// onChangeExecutable re-points g at another executable and refreshes its cover art
func (w *MainWindow) onChangeExecutable(g *library.Game) {
	w.pickExecutable(func(path string) {
		go func() {
			cover, _ := w.hub.Extractor().Extract(path)
			fyne.Do(func() {
				if err := w.hub.ApplyExecutable(g, path, cover); err != nil {
					dialog.ShowError(err, w.window)
					return
				}
				w.appendLog(fmt.Sprintf("Changed executable of %s", g.Title))
			})
		}()
	})
}

// onChangeCover imports an image as the cover art of g
func (w *MainWindow) onChangeCover(g *library.Game) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w.window)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()

		coverDir := w.hub.Config().CoverDir()
		go func() {
			cover, err := icon.ImportCover(path, coverDir)
			fyne.Do(func() {
				if err != nil {
					dialog.ShowError(err, w.window)
					return
				}
				err := w.store.Update(g, func(g *library.Game) {
					g.CoverArt = cover
				})
				if err != nil {
					dialog.ShowError(err, w.window)
					return
				}
				w.appendLog(fmt.Sprintf("Changed cover art of %s", g.Title))
			})
		}()
	}, w.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg"}))
	fd.Show()
}

// confirmRemove asks before removing g from the library
func (w *MainWindow) confirmRemove(g *library.Game) {
	dialog.ShowConfirm("Remove Game", fmt.Sprintf("Are you sure you want to remove %s?", g.Title), func(yes bool) {
		if !yes {
			return
		}
		if err := w.hub.Remove(g); err != nil {
			dialog.ShowError(err, w.window)
			return
		}
		w.appendLog(fmt.Sprintf("Removed %s", g.Title))
	}, w.window)
}

// pickExecutable shows a file picker and calls onPicked with the chosen path.
// Cancelling does nothing.
func (w *MainWindow) pickExecutable(onPicked func(path string)) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w.window)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()
		onPicked(path)
	}, w.window)
	if runtime.GOOS == "windows" {
		fd.SetFilter(storage.NewExtensionFileFilter([]string{".exe"}))
	}
	fd.Show()
}

// onThemeClick toggles between the dark and light themes and remembers the choice
func (w *MainWindow) onThemeClick() {
	cfg := w.hub.Config()
	cfg.DarkTheme = !cfg.DarkTheme
	applyTheme(w.app, cfg.DarkTheme)
	w.updateThemeButton()
	w.saveConfig()
}

// updateThemeButton labels the theme button with the theme it switches to
func (w *MainWindow) updateThemeButton() {
	if w.hub.Config().DarkTheme {
		w.themeBtn.SetText("Light")
	} else {
		w.themeBtn.SetText("Dark")
	}
}

// zoom scales the cover tiles and remembers the size
func (w *MainWindow) zoom(factor float32) {
	cfg := w.hub.Config()
	width, height := cfg.ThumbWidth*factor, cfg.ThumbHeight*factor
	if width < minThumbSize || width > maxThumbSize {
		return
	}
	cfg.ThumbWidth, cfg.ThumbHeight = width, height

	w.grid.Layout = layout.NewGridWrapLayout(w.thumbSize())
	w.grid.Refresh()
	w.saveConfig()
}

// thumbSize returns the configured tile size
func (w *MainWindow) thumbSize() fyne.Size {
	cfg := w.hub.Config()
	return fyne.NewSize(cfg.ThumbWidth, cfg.ThumbHeight)
}

// saveConfig writes config.yaml, logging failures
func (w *MainWindow) saveConfig() {
	if err := w.hub.Config().Save(); err != nil {
		w.logger.Warn("Failed to save settings", zap.Error(err))
		w.appendLog("Failed to save settings")
	}
}

// onClearLogClick handles the clear log button click
func (w *MainWindow) onClearLogClick() {
	w.logLines = w.logLines[:0]
	w.logText.Segments = nil
	w.logText.Refresh()
}

// appendLog adds a timestamped message to the log
func (w *MainWindow) appendLog(message string) {
	timestamp := time.Now().Format("15:04:05")
	logLine := fmt.Sprintf("[%s] %s", timestamp, message)

	// Add new line to slice
	w.logLines = append(w.logLines, logLine)

	// Trim log if it exceeds max lines
	if len(w.logLines) > maxLogLines {
		w.trimLog()
	}

	// Update RichText with single TextSegment containing all lines
	w.logText.Segments = []widget.RichTextSegment{
		&widget.TextSegment{
			Text: strings.Join(w.logLines, "\n"),
		},
	}
	w.logText.Refresh()
}

// trimLog removes older log entries to keep the log size manageable
func (w *MainWindow) trimLog() {
	keepLines := maxLogLines / 2
	if len(w.logLines) > keepLines {
		w.logLines = w.logLines[len(w.logLines)-keepLines:]
	}
}

// UpdateGameStatus shows the running state reported by the monitor
func (w *MainWindow) UpdateGameStatus(statuses map[*library.Game]process.Status) {
	w.statuses = statuses
	for g, tile := range w.tiles {
		tile.SetStatus(statusText(statuses[g]))
	}
}

// ShowSaveError tells the user the library could not be written
func (w *MainWindow) ShowSaveError(err error) {
	w.appendLog("Failed to save library")
	dialog.ShowError(fmt.Errorf("failed to save library: %w", err), w.window)
}

// AppendLog exposes the log append function for external use
func (w *MainWindow) AppendLog(message string) {
	w.appendLog(message)
}

// statusText formats a running state for a cover tile
func statusText(status process.Status) string {
	if !status.Running {
		return ""
	}
	return fmt.Sprintf("Running (%s)", status.Uptime.Truncate(time.Second))
}
