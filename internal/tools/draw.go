package tools

import (
	"scrawl/internal/render"
	"scrawl/internal/state"
)

// Draw lays down freehand strokes. A point is only recorded once the pen
// has travelled more than Spacing times the stroke size since the last
// recorded one.
type Draw struct {
	Base
	Erase   *Erase
	Spacing float64

	drawing     bool
	index       int
	erasing     bool
	lastSampled state.Point
}

func (d *Draw) OnDown(c *Context) {
	if c.Pointer.Erasing() {
		d.erasing = true
		d.Erase.OnDown(c)
		return
	}
	if c.Pointer.Button != ButtonPrimary {
		return
	}
	c.PushUndo()
	c.DisallowTouchPan()

	pen := c.Pen()
	p := c.Pointer.Document.Current
	doc := c.Document()
	*doc = append(*doc, state.Stroke{
		Points: []state.Point{p},
		Size:   pen.Size,
		Color:  pen.Color,
		Action: state.ActionDraw,
	})
	d.drawing = true
	d.index = len(*doc) - 1
	d.lastSampled = p
	drawSegment(c, p, p, render.StrokeStyle((*doc)[d.index], c.View().Zoom))
}

func (d *Draw) OnMove(c *Context) {
	if !c.Pointer.IsDown {
		return
	}
	if c.Pointer.Erasing() {
		d.eraseMove(c)
		return
	}
	d.erasing = false
	stroke := d.stroke(c)
	if stroke == nil {
		return
	}
	cur := c.Pointer.Document.Current
	if state.Distance(cur, d.lastSampled) <= stroke.Size*d.Spacing {
		return
	}
	prev := stroke.Points[len(stroke.Points)-1]
	stroke.Points = append(stroke.Points, cur)
	drawSegment(c, prev, cur, render.StrokeStyle(*stroke, c.View().Zoom))
	d.lastSampled = cur
}

// eraseMove sweeps the eraser while the erase signal is held. A sweep that
// starts in the middle of a stroke begins at the previous pointer position,
// and removing the stroke being drawn ends it.
func (d *Draw) eraseMove(c *Context) {
	if !d.erasing {
		d.erasing = true
		d.Erase.begin(c.Pointer.Document.Last)
	}
	hits := d.Erase.sweep(c)
	if !d.drawing || len(hits) == 0 {
		return
	}
	shift := 0
	for _, i := range hits {
		if i == d.index {
			d.drawing = false
			return
		}
		if i < d.index {
			shift++
		}
	}
	d.index -= shift
}

// stroke is the stroke in progress, or nil.
func (d *Draw) stroke(c *Context) *state.Stroke {
	doc := c.Document()
	if !d.drawing || d.index < 0 || d.index >= len(*doc) {
		return nil
	}
	return &(*doc)[d.index]
}

func (d *Draw) OnUp(c *Context) {
	erasing := d.erasing
	d.erasing = false
	stroke := d.stroke(c)
	if stroke == nil {
		d.drawing = false
		if erasing || c.Pointer.Erasing() {
			d.Erase.OnUp(c)
		} else {
			c.AllowTouchPan()
		}
		return
	}
	d.drawing = false
	c.AllowTouchPan()
	stroke.Points = append(stroke.Points, c.Pointer.Document.Current)
	c.MarkDirty()
}

// OnDeselect ends a stroke cut short by a tool switch.
func (d *Draw) OnDeselect(c *Context) {
	d.erasing = false
	if d.drawing {
		d.drawing = false
		c.AllowTouchPan()
		c.MarkDirty()
	}
}

// Drawing reports whether a stroke is in progress.
func (d *Draw) Drawing() bool { return d.drawing }
