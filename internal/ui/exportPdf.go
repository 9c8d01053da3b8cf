package ui

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"scrawl/internal/export"
)

// ExportPDF asks for a destination and writes the board's document there.
func ExportPDF(win fyne.Window, board *BoardWidget, opts export.Options) {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if w == nil {
			return
		}
		board.exportTo(w, opts)
	}, win)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
	name := "board"
	if p := board.Session().Path(); p != "" {
		name = p
	}
	d.SetFileName(sanitizeName(name) + ".pdf")
	d.Show()
}

func (b *BoardWidget) exportTo(w fyne.URIWriteCloser, opts export.Options) {
	defer func() {
		if err := w.Close(); err != nil {
			log.Printf("[export] closing %s: %v", w.URI(), err)
		}
	}()
	doc := b.session.Snapshot()
	if err := export.PDF(w, doc, opts); err != nil {
		b.setStatus("Error: " + err.Error())
		return
	}
	b.setStatus(fmt.Sprintf("Exported %d strokes to %s", len(doc), w.URI().Name()))
}

func sanitizeName(p string) string {
	out := []rune(p)
	for i, r := range out {
		switch r {
		case '/', '\\', ':':
			out[i] = '_'
		}
	}
	return string(out)
}
