package engine

import (
	"math"

	"scrawl/internal/state"
	"scrawl/internal/tools"
)

// PointerEvent is a raw pointer event in surface pixels.
type PointerEvent struct {
	Position state.Point
	Button   tools.Button
	Buttons  tools.ButtonMask
	Kind     tools.PointerKind
}

// WheelEvent is a scroll or pinch event in surface pixels.
type WheelEvent struct {
	Position state.Point
	DX, DY   float64
	Ctrl     bool
	Shift    bool
}

type input struct {
	origin, last, current state.Point
	isDown                bool

	touchPanAllowed bool
	panning         bool
	movingSelection bool
	movedSelection  bool
}

func (s *Session) pointerContext(ev PointerEvent, last state.Point) *tools.Context {
	in := &s.input
	vp := tools.Positions{Current: ev.Position, Last: last, Origin: in.origin}
	return &tools.Context{
		Host: s,
		Pointer: tools.Pointer{
			IsDown:   in.isDown,
			Button:   ev.Button,
			Buttons:  ev.Buttons,
			Kind:     ev.Kind,
			Viewport: vp,
			Document: tools.Positions{
				Current: s.view.ToDocument(vp.Current),
				Last:    s.view.ToDocument(vp.Last),
				Origin:  s.view.ToDocument(vp.Origin),
			},
		},
	}
}

// movesSelection reports whether the active tool drags selections itself.
func (s *Session) movesSelection() bool {
	m, ok := s.tool().(tools.SelectionMover)
	return ok && m.MovesSelection()
}

// PointerDown starts a gesture. Touch and middle-button drags pan the view
// while touch panning is allowed; they never reach the tool.
func (s *Session) PointerDown(ev PointerEvent) {
	in := &s.input
	if in.isDown && ev.Kind == tools.PointerTouch {
		// second finger during a gesture
		return
	}
	pos := ev.Position
	in.origin, in.last, in.current = pos, pos, pos
	in.isDown = true

	if in.touchPanAllowed && (ev.Kind == tools.PointerTouch || ev.Button == tools.ButtonMiddle) {
		in.panning = true
		return
	}

	if !s.movesSelection() {
		if s.sel.Hit(s.view.ToDocument(pos)) {
			in.movingSelection = true
			in.movedSelection = false
			in.touchPanAllowed = false
			return
		}
		if !s.sel.Empty() {
			s.SetSelection(nil)
		}
	}
	s.tool().OnDown(s.pointerContext(ev, pos))
}

// PointerMove forwards a move to the active tool, or pans / drags the
// selection when one of those gestures is in progress.
func (s *Session) PointerMove(ev PointerEvent) {
	in := &s.input
	last := in.last
	in.current = ev.Position
	defer func() { in.last = ev.Position }()

	switch {
	case in.panning:
		s.view.Pan(ev.Position.Sub(last))
		s.RequestRender()
	case in.movingSelection:
		d := s.view.ToDocument(ev.Position).Sub(s.view.ToDocument(last))
		if d == (state.Point{}) {
			return
		}
		if !in.movedSelection {
			s.PushUndo()
			in.movedSelection = true
		}
		s.MoveSelection(d)
	default:
		s.tool().OnMove(s.pointerContext(ev, last))
	}
}

// PointerUp ends the gesture.
func (s *Session) PointerUp(ev PointerEvent) {
	in := &s.input
	if !in.isDown {
		return
	}
	last := in.last
	in.current, in.last = ev.Position, ev.Position
	in.isDown = false

	switch {
	case in.panning:
		in.panning = false
	case in.movingSelection:
		in.movingSelection = false
		in.touchPanAllowed = true
		if in.movedSelection {
			s.MarkDirty()
		}
	default:
		s.tool().OnUp(s.pointerContext(ev, last))
	}
}

// PointerLeave only records the position.
func (s *Session) PointerLeave(ev PointerEvent) {
	s.input.current = ev.Position
	s.input.last = ev.Position
}

// Pointer returns the dispatcher's position history and button state.
func (s *Session) Pointer() (current, last, origin state.Point, isDown bool) {
	in := s.input
	return in.current, in.last, in.origin, in.isDown
}

// Wheel pans the view, or zooms about the pointer when Ctrl is held.
func (s *Session) Wheel(ev WheelEvent) {
	switch {
	case ev.Ctrl:
		s.view.ZoomAt(ev.Position, math.Pow(1.2, -ev.DY/100))
	case ev.Shift:
		s.view.Pan(state.Point{X: -ev.DY, Y: -ev.DX})
	default:
		s.view.Pan(state.Point{X: -ev.DX, Y: -ev.DY})
	}
	s.RequestRender()
}

// SetView replaces the view transform.
func (s *Session) SetView(v state.View) {
	if v.Zoom <= 0 {
		v.Zoom = 1
	}
	s.view = v
	s.RequestRender()
}

// CursorHint is "move" while the pointer hovers the selection box.
func (s *Session) CursorHint(pos state.Point) string {
	if s.sel.Hit(s.view.ToDocument(pos)) {
		return "move"
	}
	return ""
}
