package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// coverTile shows one game's cover art, title and running state
type coverTile struct {
	widget.BaseWidget

	image     *canvas.Image
	title     *widget.Label
	status    *widget.Label
	highlight *canvas.Rectangle

	onTap       func()
	onDoubleTap func()
	onSecondary func(*fyne.PointEvent)
}

// newCoverTile creates a tile for the given cover image and title
func newCoverTile(img *canvas.Image, title string) *coverTile {
	img.FillMode = canvas.ImageFillContain

	t := &coverTile{
		image:     img,
		title:     widget.NewLabelWithStyle(title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		status:    widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
		highlight: canvas.NewRectangle(theme.Color(theme.ColorNameSelection)),
	}
	t.title.Truncation = fyne.TextTruncateEllipsis
	t.status.Hide()
	t.highlight.Hide()
	t.ExtendBaseWidget(t)
	return t
}

// CreateRenderer implements fyne.Widget
func (t *coverTile) CreateRenderer() fyne.WidgetRenderer {
	labels := container.NewVBox(t.title, t.status)
	return widget.NewSimpleRenderer(
		container.NewBorder(nil, labels, nil, nil,
			container.NewStack(t.highlight, container.NewPadded(t.image))),
	)
}

// SetSelected shows or hides the selection highlight
func (t *coverTile) SetSelected(selected bool) {
	if selected {
		t.highlight.Show()
	} else {
		t.highlight.Hide()
	}
}

// SetStatus shows a running-state line under the title; empty hides it
func (t *coverTile) SetStatus(text string) {
	t.status.SetText(text)
	if text == "" {
		t.status.Hide()
	} else {
		t.status.Show()
	}
}

// Tapped selects the tile
func (t *coverTile) Tapped(_ *fyne.PointEvent) {
	if t.onTap != nil {
		t.onTap()
	}
}

// TappedSecondary opens the tile's context menu
func (t *coverTile) TappedSecondary(pe *fyne.PointEvent) {
	if t.onSecondary != nil {
		t.onSecondary(pe)
	}
}

// DoubleTapped launches the game
func (t *coverTile) DoubleTapped(_ *fyne.PointEvent) {
	if t.onDoubleTap != nil {
		t.onDoubleTap()
	}
}
