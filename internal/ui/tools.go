package ui

import (
	"context"
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"scrawl/internal/config"
	"scrawl/internal/render"
	"scrawl/internal/tools"
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Token    string
	OnTapped func(token string)
}

func newColorSwatch(token string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Token: token, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(render.ParseColor(s.Token).Color())
	rect.SetMinSize(fyne.NewSize(24, 24))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Token)
	}
}

var toolIcons = map[tools.Kind]fyne.Resource{
	tools.KindDraw:   theme.DocumentCreateIcon(),
	tools.KindErase:  theme.ContentClearIcon(),
	tools.KindSelect: theme.ViewFullScreenIcon(),
	tools.KindLasso:  theme.SearchIcon(),
}

// --- The Main Toolbar ---
func NewToolbar(board *BoardWidget, settings config.Settings, onExport func()) fyne.CanvasObject {
	s := board.Session()
	toolLabel := widget.NewLabel("")
	showTool := func(kind tools.Kind) {
		toolLabel.SetText(fmt.Sprintf("Tool: %s", kind))
	}
	showTool(s.ActiveTool())
	board.OnToolChange = showTool

	tb := widget.NewToolbar()
	for _, kind := range tools.Kinds {
		tb.Append(widget.NewToolbarAction(toolIcons[kind], func() { board.SetTool(kind) }))
	}
	tb.Append(widget.NewToolbarSeparator())
	tb.Append(widget.NewToolbarAction(theme.ContentUndoIcon(), s.Undo))
	tb.Append(widget.NewToolbarAction(theme.ContentRedoIcon(), s.Redo))
	tb.Append(widget.NewToolbarSeparator())
	tb.Append(widget.NewToolbarAction(theme.ContentCopyIcon(), func() {
		board.Do(s.Copy)
	}))
	tb.Append(widget.NewToolbarAction(theme.ContentCutIcon(), func() {
		board.Do(s.Cut)
	}))
	tb.Append(widget.NewToolbarAction(theme.ContentPasteIcon(), func() {
		board.Do(s.Paste)
	}))
	tb.Append(widget.NewToolbarAction(theme.DeleteIcon(), func() {
		board.Do(func(context.Context) error {
			s.DeleteSelection()
			return nil
		})
	}))
	if onExport != nil {
		tb.Append(widget.NewToolbarSeparator())
		tb.Append(widget.NewToolbarAction(theme.DocumentPrintIcon(), onExport))
	}

	// --- Color Palette ---
	colorBox := container.NewHBox()
	for _, token := range settings.Palette {
		colorBox.Add(newColorSwatch(token, board.SetColor))
	}

	// --- Stroke Width Slider ---
	strokeSlider := widget.NewSlider(settings.MinSize, settings.MaxSize)
	strokeSlider.Step = 0.5
	strokeSlider.SetValue(s.Pen().Size)
	strokeSlider.OnChanged = board.SetStroke
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), strokeSlider)

	// --- Assemble everything ---
	return container.NewHBox(
		toolLabel,
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		layout.NewSpacer(),
	)
}
