package tools

import (
	"scrawl/internal/render"
	"scrawl/internal/state"
)

// Lasso selects strokes inside a free-form polygon.
type Lasso struct {
	Base
	MinSpacing float64

	path        []state.Point
	start       state.Point
	lastSampled state.Point
	building    bool
}

func (l *Lasso) OnDown(c *Context) {
	c.DisallowTouchPan()
	cur := c.Pointer.Document.Current
	l.path = []state.Point{cur}
	l.start = cur
	l.lastSampled = cur
	l.building = true
}

func (l *Lasso) OnMove(c *Context) {
	if !c.Pointer.IsDown || !l.building {
		return
	}
	cur := c.Pointer.Document.Current
	if state.Distance(cur, l.lastSampled) < l.MinSpacing {
		return
	}
	l.lastSampled = cur
	l.path = append(l.path, cur)
	c.RequestRender()
}

func (l *Lasso) OnUp(c *Context) {
	if !l.building {
		return
	}
	c.AllowTouchPan()
	poly := append(l.path, c.Pointer.Document.Current, l.start)
	l.path = nil
	l.building = false
	c.SetSelection(strokesInside(*c.Document(), func(p state.Point) bool {
		return state.PolygonContainsPoint(poly, p)
	}))
}

func (l *Lasso) OnDeselect(c *Context) {
	if l.building {
		c.AllowTouchPan()
	}
	l.path = nil
	l.building = false
	c.RequestRender()
}

func (l *Lasso) Render(c *Context, s render.Surface) {
	if len(l.path) == 0 {
		return
	}
	drawPath(s, c.View(), l.path, render.OverlayStyle())
}

// Path returns a copy of the polygon being built.
func (l *Lasso) Path() []state.Point {
	return append([]state.Point(nil), l.path...)
}
