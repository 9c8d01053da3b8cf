package state

const (
	MinZoom = 0.1
	MaxZoom = 10.0
)

// View maps between document space and viewport pixels: vp = doc*Zoom + Offset.
type View struct {
	Offset Point   `json:"offset"`
	Zoom   float64 `json:"zoom"`
}

// DefaultView is the identity transform.
func DefaultView() View { return View{Zoom: 1} }

func (v View) ToViewport(p Point) Point {
	return DocumentToViewport(p, v.Zoom, v.Offset)
}

func (v View) ToDocument(p Point) Point {
	return ViewportToDocument(p, v.Zoom, v.Offset)
}

// RectToViewport maps a document rectangle to viewport pixels.
func (v View) RectToViewport(r Rect) Rect {
	tl := v.ToViewport(Point{X: r.X, Y: r.Y})
	return Rect{X: tl.X, Y: tl.Y, W: r.W * v.Zoom, H: r.H * v.Zoom}
}

// Pan shifts the view by a viewport delta.
func (v *View) Pan(d Point) {
	v.Offset = v.Offset.Add(d)
}

// ZoomAt multiplies the zoom by factor while keeping the document point
// under anchor (viewport pixels) where it is. Zoom is clamped to
// [MinZoom, MaxZoom].
func (v *View) ZoomAt(anchor Point, factor float64) {
	if factor <= 0 {
		return
	}
	before := v.ToDocument(anchor)
	v.Zoom = max(MinZoom, min(MaxZoom, v.Zoom*factor))
	v.Offset = anchor.Sub(before.Scale(v.Zoom))
}

func DocumentToViewport(p Point, zoom float64, offset Point) Point {
	return Point{X: p.X*zoom + offset.X, Y: p.Y*zoom + offset.Y}
}

func ViewportToDocument(p Point, zoom float64, offset Point) Point {
	return Point{X: (p.X - offset.X) / zoom, Y: (p.Y - offset.Y) / zoom}
}
