package render

import (
	"fmt"

	"scrawl/internal/state"
)

const (
	AccentColor  = "#773"
	OverlayColor = "#FFFFFF"
)

// OverlayDash is the dash pattern of marquee, lasso and selection outlines.
var OverlayDash = []float64{3, 3}

// OverlayStyle is the style of transient selection outlines.
func OverlayStyle() Style {
	return Style{Color: OverlayColor, Width: 1, Dash: OverlayDash}
}

// Scene is everything a draw pass reads.
type Scene struct {
	Doc       state.Document
	Selection state.Selection
	View      state.View
}

// StrokeStyle is how a document stroke is drawn at the given zoom.
func StrokeStyle(s state.Stroke, zoom float64) Style {
	return Style{Color: s.Color, Width: s.Size * zoom}
}

func toViewport(pts []state.Point, v state.View) []state.Point {
	out := make([]state.Point, len(pts))
	for i, p := range pts {
		out[i] = v.ToViewport(p)
	}
	return out
}

// DrawStroke draws one document stroke through the view transform.
func DrawStroke(s Surface, st state.Stroke, v state.View, style Style) {
	s.StrokePolyline(toViewport(st.Points, v), style)
}

// Paint runs a full draw pass: clear, accent underlay for the selection,
// every stroke in document order, the selection outline, then extra.
func Paint(s Surface, sc Scene, extra func(Surface)) {
	s.Clear()
	for _, i := range sc.Selection.Indexes {
		if i < 0 || i >= len(sc.Doc) {
			continue
		}
		st := sc.Doc[i]
		DrawStroke(s, st, sc.View, Style{Color: AccentColor, Width: st.Size * 2 * sc.View.Zoom})
	}
	for _, st := range sc.Doc {
		DrawStroke(s, st, sc.View, StrokeStyle(st, sc.View.Zoom))
	}
	if sc.Selection.Rect != nil {
		s.StrokeRect(sc.View.RectToViewport(*sc.Selection.Rect), OverlayStyle())
	}
	if extra != nil {
		extra(s)
	}
}

// RenderStrokes rasterises strokes to a PNG sized to their padded bounds.
func RenderStrokes(strokes []state.Stroke) ([]byte, error) {
	norm := state.NormalizeData(strokes)
	b, ok := state.DataBounds(norm, state.SelectionPadding)
	if !ok {
		return nil, fmt.Errorf("render strokes: nothing to draw")
	}
	r := NewRaster(int(b.Padded.W+1), int(b.Padded.H+1))
	Paint(r, Scene{Doc: norm, View: state.DefaultView()}, nil)
	return r.PNG()
}
