package render

import (
	"errors"
	"image"

	"scrawl/internal/state"
)

// ErrNoSurface is returned when an engine is built without a drawing surface.
var ErrNoSurface = errors.New("render: no drawing surface")

type LineCap int

const (
	CapRound LineCap = iota
	CapButt
	CapSquare
)

type LineJoin int

const (
	JoinRound LineJoin = iota
	JoinMiter
	JoinBevel
)

// Style describes how a path is stroked. Coordinates and widths are in
// surface pixels.
type Style struct {
	Color string // hex token, "#rgb" or "#rrggbb"
	Width float64
	Dash  []float64
	Cap   LineCap
	Join  LineJoin
}

// Surface is the drawing target of the engine. Points passed to it are
// already in viewport coordinates.
type Surface interface {
	Clear()
	Size() (w, h int)
	Resize(w, h int) error
	StrokePolyline(pts []state.Point, style Style)
	StrokeRect(r state.Rect, style Style)
	Image() image.Image
}
