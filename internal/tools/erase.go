package tools

import "scrawl/internal/state"

// Erase removes every stroke crossed by the eraser path. The path is
// sampled once it has moved MinTravel document units.
type Erase struct {
	Base
	MinTravel float64

	lastSampled state.Point
	pushedUndo  bool
}

func (e *Erase) OnDown(c *Context) {
	c.DisallowTouchPan()
	e.begin(c.Pointer.Document.Current)
}

// begin starts a sweep at p.
func (e *Erase) begin(p state.Point) {
	e.lastSampled = p
	e.pushedUndo = false
}

func (e *Erase) OnMove(c *Context) {
	if !c.Pointer.IsDown {
		return
	}
	e.sweep(c)
}

// sweep removes the strokes crossed since the last sample and returns
// their former indexes in ascending order.
func (e *Erase) sweep(c *Context) []int {
	doc := c.Document()
	if len(*doc) == 0 {
		return nil
	}
	cur := c.Pointer.Document.Current
	if state.Distance(cur, e.lastSampled) < e.MinTravel {
		return nil
	}

	var hits []int
	for i, s := range *doc {
		if state.StrokeHit(s, e.lastSampled, cur) {
			hits = append(hits, i)
		}
	}
	if len(hits) > 0 {
		// one snapshot per gesture, taken before the first removal
		if !e.pushedUndo {
			c.PushUndo()
			e.pushedUndo = true
		}
		doc.RemoveIndexes(hits)
		c.MarkDirty()
	}
	e.lastSampled = cur
	return hits
}

func (e *Erase) OnUp(c *Context) {
	c.AllowTouchPan()
}
