package render

import (
	"bytes"
	"fmt"
	"image"
	"log"
	"strings"

	"github.com/gogpu/gg"

	"scrawl/internal/state"
)

// named colour tokens accepted besides hex strings
var namedColors = map[string]string{
	"black": "#000000",
	"white": "#FFFFFF",
	"red":   "#FF0000",
	"green": "#00FF00",
	"blue":  "#0000FF",
}

// ParseColor turns a stroke colour token into an RGBA value. Unknown tokens
// render black.
func ParseColor(token string) gg.RGBA {
	token = strings.TrimSpace(token)
	if hex, ok := namedColors[strings.ToLower(token)]; ok {
		token = hex
	}
	if !strings.HasPrefix(token, "#") {
		return gg.Black
	}
	return gg.Hex(token)
}

// Raster is a Surface backed by a gg software context. Its pixel size is
// set independently of whatever size it is displayed at.
type Raster struct {
	dc *gg.Context
}

// NewRaster allocates a w×h pixel surface.
func NewRaster(w, h int) *Raster {
	return &Raster{dc: gg.NewContext(max(w, 1), max(h, 1))}
}

func (r *Raster) Clear() {
	r.dc.Clear()
}

func (r *Raster) Size() (int, int) {
	return r.dc.Width(), r.dc.Height()
}

// Resize changes the pixel dimensions. The contents are discarded; callers
// repaint on the next frame.
func (r *Raster) Resize(w, h int) error {
	if err := r.dc.Resize(w, h); err != nil {
		return fmt.Errorf("resize surface: %w", err)
	}
	return nil
}

func (r *Raster) apply(style Style) {
	r.dc.SetColor(ParseColor(style.Color).Color())
	r.dc.SetLineWidth(style.Width)
	switch style.Cap {
	case CapButt:
		r.dc.SetLineCap(gg.LineCapButt)
	case CapSquare:
		r.dc.SetLineCap(gg.LineCapSquare)
	default:
		r.dc.SetLineCap(gg.LineCapRound)
	}
	switch style.Join {
	case JoinMiter:
		r.dc.SetLineJoin(gg.LineJoinMiter)
	case JoinBevel:
		r.dc.SetLineJoin(gg.LineJoinBevel)
	default:
		r.dc.SetLineJoin(gg.LineJoinRound)
	}
	r.dc.SetDash(style.Dash...)
}

// StrokePolyline strokes pts as one path. A single point is drawn as a dot
// the width of the pen.
func (r *Raster) StrokePolyline(pts []state.Point, style Style) {
	if len(pts) == 0 {
		return
	}
	r.apply(style)
	r.dc.ClearPath()
	if len(pts) == 1 {
		r.dc.DrawCircle(pts[0].X, pts[0].Y, style.Width/2)
		if err := r.dc.Fill(); err != nil {
			log.Printf("[render] fill: %v", err)
		}
		return
	}
	r.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		r.dc.LineTo(p.X, p.Y)
	}
	if err := r.dc.Stroke(); err != nil {
		log.Printf("[render] stroke: %v", err)
	}
}

func (r *Raster) StrokeRect(rect state.Rect, style Style) {
	r.apply(style)
	r.dc.ClearPath()
	r.dc.DrawRectangle(rect.X, rect.Y, rect.W, rect.H)
	if err := r.dc.Stroke(); err != nil {
		log.Printf("[render] stroke: %v", err)
	}
}

func (r *Raster) Image() image.Image {
	return r.dc.Image()
}

// PNG encodes the current contents.
func (r *Raster) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
