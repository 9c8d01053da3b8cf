package ui

import (
	"context"
	"image"
	"image/color"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"scrawl/internal/engine"
	"scrawl/internal/render"
	"scrawl/internal/state"
	"scrawl/internal/tools"
)

// BoardWidget shows a whiteboard session and feeds it fyne input events.
// All methods run on the fyne main goroutine.
type BoardWidget struct {
	widget.BaseWidget

	session    *engine.Session
	surface    *render.Raster
	raster     *canvas.Raster
	background color.Color

	width, height int
	buttons       tools.ButtonMask
	mouseDown     bool
	ctrl, shift   bool
	alt           bool

	OnToolChange func(kind tools.Kind)
	OnStatus     func(text string)
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ fyne.Scrollable = (*BoardWidget)(nil)
var _ fyne.Focusable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)
var _ desktop.Keyable = (*BoardWidget)(nil)
var _ desktop.Cursorable = (*BoardWidget)(nil)

// NewBoardWidget builds the widget and its session. The surface starts
// small and follows the widget size once laid out.
func NewBoardWidget(cfg BoardConfig) (*BoardWidget, error) {
	b := &BoardWidget{
		surface:    render.NewRaster(300, 300),
		background: render.ParseColor(cfg.Background).Color(),
	}
	s, err := engine.New(engine.Config{
		Surface:   b.surface,
		Frames:    frames{},
		Store:     cfg.Store,
		Clipboard: cfg.Clipboard,
		Post:      fyne.Do,
		SaveDelay: cfg.SaveDelay,
		Tools:     cfg.Tools,
		Pen:       cfg.Pen,
		Tool:      cfg.Tool,
	})
	if err != nil {
		return nil, err
	}
	b.session = s
	b.raster = canvas.NewRaster(b.generate)

	s.OnFrame = func() { b.raster.Refresh() }
	s.OnError = func(err error) { b.setStatus("Error: " + err.Error()) }
	s.OnToolChange = func(kind tools.Kind) {
		if b.OnToolChange != nil {
			b.OnToolChange(kind)
		}
	}
	s.OnLoad = func(path string) {
		b.setStatus("Opened " + path)
	}
	s.OnSaved = func(path string, rev uint64) {
		if path == s.Path() {
			b.setStatus("Saved " + path)
		}
	}

	b.ExtendBaseWidget(b)
	return b, nil
}

// Session is the engine behind the widget.
func (b *BoardWidget) Session() *engine.Session { return b.session }

func (b *BoardWidget) setStatus(text string) {
	if b.OnStatus != nil {
		b.OnStatus(text)
	}
}

// Open switches to the document at path, writing pending changes first.
func (b *BoardWidget) Open(path string) {
	if err := b.session.Flush(context.Background()); err != nil {
		b.setStatus("Error: " + err.Error())
	}
	b.session.Open(context.Background(), path)
	if path == "" {
		b.setStatus("No document")
	} else {
		b.setStatus("Loading " + path + "...")
	}
}

func (b *BoardWidget) SetTool(kind tools.Kind) { b.session.SetTool(kind) }

func (b *BoardWidget) SetColor(c string) { b.session.SetPen(tools.Pen{Color: c}) }

func (b *BoardWidget) SetStroke(size float64) { b.session.SetPen(tools.Pen{Size: size}) }

// Do runs a key-equivalent session command, reporting errors in the status bar.
func (b *BoardWidget) Do(fn func(ctx context.Context) error) {
	if err := fn(context.Background()); err != nil {
		b.setStatus("Error: " + err.Error())
	}
}

// generate keeps the surface the widget's size and hands fyne its image.
func (b *BoardWidget) generate(_, _ int) image.Image {
	sz := b.Size()
	w, h := int(sz.Width), int(sz.Height)
	if w > 0 && h > 0 && (w != b.width || h != b.height) {
		if err := b.session.Resize(w, h); err != nil {
			log.Printf("[board] resize to %dx%d: %v", w, h, err)
		} else {
			b.width, b.height = w, h
			b.session.Render()
		}
	}
	return b.surface.Image()
}

func pos(p fyne.Position) state.Point {
	return state.Point{X: float64(p.X), Y: float64(p.Y)}
}

func mouseButton(btn desktop.MouseButton) (tools.Button, tools.ButtonMask) {
	switch btn {
	case desktop.MouseButtonSecondary:
		return tools.ButtonSecondary, tools.MaskSecondary
	case desktop.MouseButtonTertiary:
		return tools.ButtonMiddle, tools.MaskMiddle
	default:
		return tools.ButtonPrimary, tools.MaskPrimary
	}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if c := fyne.CurrentApp().Driver().CanvasForObject(b); c != nil {
		c.Focus(b)
	}
	btn, mask := mouseButton(e.Button)
	b.buttons |= mask
	b.mouseDown = true
	b.session.PointerDown(engine.PointerEvent{
		Position: pos(e.Position),
		Button:   btn,
		Buttons:  b.buttons,
		Kind:     tools.PointerMouse,
	})
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	btn, mask := mouseButton(e.Button)
	b.buttons &^= mask
	b.mouseDown = b.buttons != 0
	b.session.PointerUp(engine.PointerEvent{
		Position: pos(e.Position),
		Button:   btn,
		Buttons:  b.buttons,
		Kind:     tools.PointerMouse,
	})
}

// Dragged carries moves while a button is held. Without a preceding mouse
// down it is a touch gesture, which starts here.
func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	kind := tools.PointerMouse
	if !b.mouseDown {
		kind = tools.PointerTouch
		if _, _, _, down := b.session.Pointer(); !down {
			start := e.Position.Subtract(fyne.NewPos(e.Dragged.DX, e.Dragged.DY))
			b.session.PointerDown(engine.PointerEvent{Position: pos(start), Button: tools.ButtonPrimary, Kind: kind})
		}
	}
	b.session.PointerMove(engine.PointerEvent{
		Position: pos(e.Position),
		Buttons:  b.buttons,
		Kind:     kind,
	})
}

func (b *BoardWidget) DragEnd() {
	if b.mouseDown {
		return
	}
	cur, _, _, down := b.session.Pointer()
	if down {
		b.session.PointerUp(engine.PointerEvent{Position: cur, Button: tools.ButtonPrimary, Kind: tools.PointerTouch})
	}
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	b.session.PointerMove(engine.PointerEvent{
		Position: pos(e.Position),
		Buttons:  b.buttons,
		Kind:     tools.PointerMouse,
	})
}

func (b *BoardWidget) MouseOut() {
	cur, _, _, _ := b.session.Pointer()
	b.session.PointerLeave(engine.PointerEvent{Position: cur})
}

func (b *BoardWidget) Scrolled(e *fyne.ScrollEvent) {
	b.session.Wheel(engine.WheelEvent{
		Position: pos(e.Position),
		DX:       -float64(e.Scrolled.DX),
		DY:       -float64(e.Scrolled.DY),
		Ctrl:     b.ctrl,
		Shift:    b.shift,
	})
}

func (b *BoardWidget) Cursor() desktop.Cursor {
	cur, _, _, _ := b.session.Pointer()
	if b.session.CursorHint(cur) == "move" {
		return desktop.PointerCursor
	}
	return desktop.CrosshairCursor
}

func (b *BoardWidget) FocusGained() {}

func (b *BoardWidget) FocusLost() {
	b.ctrl, b.shift, b.alt = false, false, false
}

func (b *BoardWidget) TypedRune(rune) {}

func (b *BoardWidget) TypedKey(*fyne.KeyEvent) {}

// keyName maps fyne key names onto the names the session's hotkeys use.
func keyName(k fyne.KeyName) string {
	switch k {
	case fyne.KeyDelete:
		return "Delete"
	case fyne.KeyBackspace:
		return "Backspace"
	}
	if len(k) == 1 {
		return strings.ToLower(string(k))
	}
	return string(k)
}

func (b *BoardWidget) modifier(k fyne.KeyName, down bool) bool {
	switch k {
	case desktop.KeyControlLeft, desktop.KeyControlRight, desktop.KeySuperLeft, desktop.KeySuperRight:
		b.ctrl = down
	case desktop.KeyShiftLeft, desktop.KeyShiftRight:
		b.shift = down
	case desktop.KeyAltLeft, desktop.KeyAltRight:
		b.alt = down
	default:
		return false
	}
	return true
}

func (b *BoardWidget) key(k fyne.KeyName) tools.Key {
	return tools.Key{Name: keyName(k), Ctrl: b.ctrl, Shift: b.shift, Alt: b.alt}
}

func (b *BoardWidget) KeyDown(e *fyne.KeyEvent) {
	if b.modifier(e.Name, true) {
		return
	}
	b.session.KeyDown(context.Background(), b.key(e.Name))
}

func (b *BoardWidget) KeyUp(e *fyne.KeyEvent) {
	if b.modifier(e.Name, false) {
		return
	}
	b.session.KeyUp(b.key(e.Name))
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(b.background)
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.board.raster}
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.board.raster.Resize(size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardWidgetRenderer) Refresh() {
	r.background.FillColor = r.board.background
	r.background.Refresh()
	r.board.raster.Refresh()
}

func (r *boardWidgetRenderer) Destroy() {}
