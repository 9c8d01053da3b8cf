package ui

import (
	"context"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"

	"scrawl/internal/engine"
	"scrawl/internal/tools"
)

// BoardConfig is what the board needs from the app shell.
type BoardConfig struct {
	Store      engine.DocumentStore
	Clipboard  engine.Clipboard
	SaveDelay  time.Duration
	Tools      tools.Options
	Pen        tools.Pen
	Tool       tools.Kind
	Background string
}

// frames runs engine frames on the fyne main goroutine.
type frames struct{}

func (frames) RequestFrame(fn func()) { fyne.Do(fn) }

// Clipboard adapts a fyne clipboard. fyne clipboards hold text only, so the
// rendered PNG of the last copy is kept in process and offered back to
// paste alongside the system text.
type Clipboard struct {
	cb fyne.Clipboard

	mu   sync.Mutex
	png  []byte
	text string
}

func NewClipboard(cb fyne.Clipboard) *Clipboard {
	return &Clipboard{cb: cb}
}

func (c *Clipboard) WriteItems(ctx context.Context, items ...engine.ClipboardItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.png = nil
	for _, it := range items {
		switch it.Type {
		case engine.TypeText:
			c.text = string(it.Data)
			c.cb.SetContent(c.text)
		case engine.TypePNG:
			c.png = it.Data
		default:
			log.Printf("[clipboard] dropping unsupported %s item", it.Type)
		}
	}
	return nil
}

func (c *Clipboard) ReadItems(ctx context.Context) ([]engine.ClipboardItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	text := c.cb.Content()
	var items []engine.ClipboardItem
	if c.png != nil && text == c.text {
		items = append(items, engine.ClipboardItem{Type: engine.TypePNG, Data: c.png})
	}
	if text != "" {
		items = append(items, engine.ClipboardItem{Type: engine.TypeText, Data: []byte(text)})
	}
	return items, nil
}
