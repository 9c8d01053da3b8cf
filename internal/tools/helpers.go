package tools

import (
	"scrawl/internal/render"
	"scrawl/internal/state"
)

// drawSegment paints one document-space segment straight onto the surface
// without waiting for a frame.
func drawSegment(c *Context, from, to state.Point, style render.Style) {
	v := c.View()
	c.Surface().StrokePolyline([]state.Point{v.ToViewport(from), v.ToViewport(to)}, style)
}

// drawPath paints a document-space polyline in viewport coordinates.
func drawPath(s render.Surface, v state.View, pts []state.Point, style render.Style) {
	if len(pts) == 0 {
		return
	}
	vp := make([]state.Point, len(pts))
	for i, p := range pts {
		vp[i] = v.ToViewport(p)
	}
	s.StrokePolyline(vp, style)
}

// strokesInside returns the indexes of strokes with more than half of
// their points satisfying contains.
func strokesInside(doc state.Document, contains func(state.Point) bool) []int {
	var out []int
	for i, s := range doc {
		if state.MostlyInside(s, contains) {
			out = append(out, i)
		}
	}
	return out
}
