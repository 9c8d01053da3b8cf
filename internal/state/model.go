package state

// Point is a document-space coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point { return Point{X: p.X + d.X, Y: p.Y + d.Y} }

// Sub returns p - d.
func (p Point) Sub(d Point) Point { return Point{X: p.X - d.X, Y: p.Y - d.Y} }

// Scale returns p multiplied by k on both axes.
func (p Point) Scale(k float64) Point { return Point{X: p.X * k, Y: p.Y * k} }

// Rect is an axis-aligned rectangle in document space.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// RectFromCorners spans the rectangle between two opposite corners.
func RectFromCorners(a, b Point) Rect {
	return Rect{
		X: min(a.X, b.X),
		Y: min(a.Y, b.Y),
		W: abs(a.X - b.X),
		H: abs(a.Y - b.Y),
	}
}

// Translate returns r moved by d.
func (r Rect) Translate(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Center is the middle of r.
func (r Rect) Center() Point { return Point{X: r.X + r.W/2, Y: r.Y + r.H/2} }

type Action string

const (
	ActionDraw Action = "draw"
)

// Stroke is one continuous freehand mark. Point order is draw order.
type Stroke struct {
	Points []Point `json:"points"`
	Size   float64 `json:"size"`
	Color  string  `json:"color"`
	Action Action  `json:"action"`
}

// Clone returns a copy of s that shares no point storage with it.
func (s Stroke) Clone() Stroke {
	s.Points = append([]Point(nil), s.Points...)
	return s
}

// Translate moves every point of the stroke in place.
func (s *Stroke) Translate(d Point) {
	for i := range s.Points {
		s.Points[i] = s.Points[i].Add(d)
	}
}

// Document is the ordered list of strokes of one note. The index of a
// stroke is its identity for selection and erasing, and the order is the
// paint order.
type Document []Stroke

// Clone deep-copies the document.
func (d Document) Clone() Document {
	if d == nil {
		return Document{}
	}
	out := make(Document, len(d))
	for i, s := range d {
		out[i] = s.Clone()
	}
	return out
}

// Subset returns the strokes at the given indexes, skipping any that are
// out of range. The strokes share storage with d.
func (d Document) Subset(indexes []int) []Stroke {
	out := make([]Stroke, 0, len(indexes))
	for _, i := range indexes {
		if i >= 0 && i < len(d) {
			out = append(out, d[i])
		}
	}
	return out
}

// RemoveIndexes deletes the strokes at the given indexes. Indexes are
// removed from highest to lowest so the remaining ones stay valid.
func (d *Document) RemoveIndexes(indexes []int) int {
	sorted := uniqueSorted(indexes)
	removed := 0
	for i := len(sorted) - 1; i >= 0; i-- {
		idx := sorted[i]
		if idx < 0 || idx >= len(*d) {
			continue
		}
		*d = append((*d)[:idx], (*d)[idx+1:]...)
		removed++
	}
	return removed
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
