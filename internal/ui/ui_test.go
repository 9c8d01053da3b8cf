package ui

import (
	"context"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrawl/internal/engine"
	"scrawl/internal/state"
	"scrawl/internal/store"
	"scrawl/internal/tools"
)

type textClipboard struct{ content string }

func (c *textClipboard) Content() string           { return c.content }
func (c *textClipboard) SetContent(content string) { c.content = content }

func newTestBoard(t *testing.T) (*BoardWidget, *textClipboard, *store.Store) {
	t.Helper()
	test.NewTempApp(t)
	cb := &textClipboard{}
	st := store.NewMemory()
	b, err := NewBoardWidget(BoardConfig{
		Store:      st,
		Clipboard:  NewClipboard(cb),
		Pen:        tools.Pen{Color: "#FF8080", Size: 4},
		Background: "#1E1E1E",
	})
	require.NoError(t, err)
	b.Resize(fyne.NewSize(300, 300))
	return b, cb, st
}

func mouse(x, y float32, btn desktop.MouseButton) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     btn,
	}
}

func drag(x, y, dx, dy float32) *fyne.DragEvent {
	return &fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Dragged:    fyne.NewDelta(dx, dy),
	}
}

func TestMouseDraws(t *testing.T) {
	b, _, _ := newTestBoard(t)
	b.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	b.Dragged(drag(40, 10, 30, 0))
	b.Dragged(drag(80, 10, 40, 0))
	b.MouseUp(mouse(80, 10, desktop.MouseButtonPrimary))
	b.DragEnd()

	doc := b.Session().Snapshot()
	require.Len(t, doc, 1)
	assert.Equal(t, state.Point{X: 10, Y: 10}, doc[0].Points[0])
	assert.Equal(t, "#FF8080", doc[0].Color)
}

func TestTouchDragPans(t *testing.T) {
	b, _, _ := newTestBoard(t)
	b.Dragged(drag(30, 30, 10, 5))
	b.Dragged(drag(50, 40, 20, 10))
	b.DragEnd()

	assert.Empty(t, b.Session().Snapshot())
	assert.Equal(t, state.Point{X: 30, Y: 15}, b.Session().View().Offset)
	_, _, _, down := b.Session().Pointer()
	assert.False(t, down)
}

func TestScrollZoomsWithCtrl(t *testing.T) {
	b, _, _ := newTestBoard(t)
	b.Scrolled(&fyne.ScrollEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(10, 10)},
		Scrolled:   fyne.NewDelta(0, -40),
	})
	assert.Equal(t, state.Point{X: 0, Y: -40}, b.Session().View().Offset)

	b.KeyDown(&fyne.KeyEvent{Name: desktop.KeyControlLeft})
	b.Scrolled(&fyne.ScrollEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(10, 10)},
		Scrolled:   fyne.NewDelta(0, 100),
	})
	assert.InDelta(t, 1.2, b.Session().View().Zoom, 1e-9)

	b.FocusLost()
	assert.False(t, b.ctrl)
}

func TestKeysSwitchTools(t *testing.T) {
	b, _, _ := newTestBoard(t)
	var got []tools.Kind
	b.OnToolChange = func(k tools.Kind) { got = append(got, k) }
	b.KeyDown(&fyne.KeyEvent{Name: fyne.KeyE})
	b.KeyDown(&fyne.KeyEvent{Name: fyne.KeyS})
	assert.Equal(t, []tools.Kind{tools.KindErase, tools.KindSelect}, got)
}

func TestKeyName(t *testing.T) {
	assert.Equal(t, "z", keyName(fyne.KeyZ))
	assert.Equal(t, "Delete", keyName(fyne.KeyDelete))
	assert.Equal(t, "Backspace", keyName(fyne.KeyBackspace))
	assert.Equal(t, string(fyne.KeyEscape), keyName(fyne.KeyEscape))
}

func TestCopyPasteThroughSystemClipboard(t *testing.T) {
	b, cb, _ := newTestBoard(t)
	s := b.Session()
	b.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	b.Dragged(drag(40, 10, 30, 0))
	b.MouseUp(mouse(40, 10, desktop.MouseButtonPrimary))
	s.SetSelection([]int{0})

	b.KeyDown(&fyne.KeyEvent{Name: desktop.KeyControlLeft})
	b.KeyDown(&fyne.KeyEvent{Name: fyne.KeyC})
	_, ok := engine.DecodePayload([]byte(cb.content))
	require.True(t, ok)

	b.KeyDown(&fyne.KeyEvent{Name: fyne.KeyV})
	b.KeyUp(&fyne.KeyEvent{Name: desktop.KeyControlLeft})
	assert.Len(t, s.Snapshot(), 2)
	assert.Equal(t, []int{1}, s.Selection().Indexes)
}

func TestClipboardAdapter(t *testing.T) {
	cb := &textClipboard{}
	c := NewClipboard(cb)
	ctx := context.Background()

	require.NoError(t, c.WriteItems(ctx,
		engine.ClipboardItem{Type: engine.TypePNG, Data: []byte("png")},
		engine.ClipboardItem{Type: engine.TypeText, Data: []byte("payload")},
	))
	assert.Equal(t, "payload", cb.content)

	items, err := c.ReadItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, engine.TypePNG, items[0].Type)
	assert.Equal(t, "payload", string(items[1].Data))

	// another program replaced the text, so the cached image is stale
	cb.content = "from elsewhere"
	items, err = c.ReadItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, engine.TypeText, items[0].Type)

	cb.content = ""
	items, err = c.ReadItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestOpenSwitchesDocument(t *testing.T) {
	b, _, st := newTestBoard(t)
	ctx := context.Background()
	require.NoError(t, st.Save(ctx, "a", state.Document{
		{Points: []state.Point{{X: 1, Y: 1}}, Color: "#FFFFFF", Size: 3, Action: state.ActionDraw},
	}))
	var status []string
	b.OnStatus = func(s string) { status = append(status, s) }

	b.Open("a")
	require.Eventually(t, func() bool {
		var loading bool
		fyne.DoAndWait(func() { loading = b.Session().Loading() })
		return !loading
	}, time.Second, 10*time.Millisecond)
	assert.Len(t, b.Session().Snapshot(), 1)
	assert.Contains(t, status, "Loading a...")

	b.Open("")
	assert.Equal(t, "", b.Session().Path())
	assert.Contains(t, status, "No document")
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "work_plan", sanitizeName("work/plan"))
	assert.Equal(t, "a_b_c", sanitizeName(`a\b:c`))
}
