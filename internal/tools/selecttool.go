package tools

import (
	"scrawl/internal/render"
	"scrawl/internal/state"
)

type selectState int

const (
	selectIdle selectState = iota
	selectMarquee
	selectMoving
)

// Select picks strokes with a rectangular marquee and drags the current
// selection around.
type Select struct {
	Base

	state   selectState
	marquee *state.Rect
	moved   bool
}

func (s *Select) MovesSelection() bool { return true }

func (s *Select) OnDown(c *Context) {
	cur := c.Pointer.Document.Current
	sel := c.Selection()
	if sel.Hit(cur) {
		s.state = selectMoving
		s.moved = false
		c.DisallowTouchPan()
		c.MarkDirty()
		return
	}
	if !sel.Empty() {
		c.SetSelection(nil)
	}
	s.state = selectMarquee
	r := state.RectFromCorners(c.Pointer.Document.Origin, cur)
	s.marquee = &r
	c.MarkDirty()
}

func (s *Select) OnMove(c *Context) {
	if !c.Pointer.IsDown {
		return
	}
	dp := c.Pointer.Document
	switch s.state {
	case selectMarquee:
		r := state.RectFromCorners(dp.Origin, dp.Current)
		s.marquee = &r
		c.MarkDirty()
	case selectMoving:
		d := dp.Current.Sub(dp.Last)
		if d == (state.Point{}) {
			return
		}
		// snapshot before the first real move so a click leaves history alone
		if !s.moved {
			c.PushUndo()
			s.moved = true
		}
		c.MoveSelection(d)
	}
}

func (s *Select) OnUp(c *Context) {
	switch s.state {
	case selectMarquee:
		r := state.RectFromCorners(c.Pointer.Document.Origin, c.Pointer.Document.Current)
		s.marquee = nil
		s.state = selectIdle
		c.SetSelection(strokesInside(*c.Document(), func(p state.Point) bool {
			return state.RectContainsPoint(r, p)
		}))
	case selectMoving:
		s.state = selectIdle
		c.AllowTouchPan()
		if s.moved {
			c.MarkDirty()
		}
	}
}

func (s *Select) OnDeselect(c *Context) {
	if s.state == selectMoving {
		c.AllowTouchPan()
	}
	s.state = selectIdle
	s.marquee = nil
	c.MarkDirty()
}

func (s *Select) Render(c *Context, surf render.Surface) {
	if s.marquee != nil {
		surf.StrokeRect(c.View().RectToViewport(*s.marquee), render.OverlayStyle())
	}
}

// Marquee is the rectangle being dragged out, or nil.
func (s *Select) Marquee() *state.Rect { return s.marquee }
