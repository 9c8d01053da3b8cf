package ui

import (
	"context"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"scrawl/internal/config"
	"scrawl/internal/export"
	"scrawl/internal/store"
)

const appID = "io.github.scrawl"

// RunApp opens the main window and blocks until it is closed. path, when
// not empty, is opened instead of the last document.
func RunApp(settings config.Settings, path string) error {
	myApp := app.NewWithID(appID)
	myWindow := myApp.NewWindow("Scrawl")
	myWindow.Resize(fyne.NewSize(1024, 768))

	root, err := storage.Child(myApp.Storage().RootURI(), "documents")
	if err != nil {
		return fmt.Errorf("storage root: %w", err)
	}
	st, err := store.NewFyneStore(root)
	if err != nil {
		return err
	}

	pen := config.LoadPen(myApp.Preferences(), settings)
	board, err := NewBoardWidget(BoardConfig{
		Store:      st,
		Clipboard:  NewClipboard(myApp.Clipboard()),
		SaveDelay:  settings.SaveDelay(),
		Tools:      settings.ToolOptions(),
		Pen:        pen.Pen,
		Tool:       pen.Tool,
		Background: settings.Background,
	})
	if err != nil {
		return err
	}

	status := widget.NewLabel("Ready")
	board.OnStatus = status.SetText

	explorer, err := NewExplorer(st, myWindow)
	if err != nil {
		return err
	}
	explorer.OnOpen = board.Open
	explorer.Current = board.Session().Path

	opts := export.DefaultOptions()
	opts.Background = settings.Background
	toolbar := NewToolbar(board, settings, func() { ExportPDF(myWindow, board, opts) })

	split := container.NewHSplit(explorer.Container(), board)
	split.Offset = 0.2
	content := container.NewBorder(toolbar, status, nil, nil, split)
	myWindow.SetContent(content)

	if path == "" {
		path = pen.LastPath
	}
	board.Open(path)
	explorer.Select(path)

	myWindow.SetCloseIntercept(func() {
		s := board.Session()
		if err := s.Flush(context.Background()); err != nil {
			log.Printf("[save] flush on close: %v", err)
		}
		config.SavePen(myApp.Preferences(), config.PenState{
			Tool:     s.ActiveTool(),
			Pen:      s.Pen(),
			LastPath: s.Path(),
		})
		myWindow.Close()
	})
	myWindow.Canvas().Focus(board)
	myWindow.ShowAndRun()
	return nil
}
