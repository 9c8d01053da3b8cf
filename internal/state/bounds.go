package state

import "slices"

// Padding returns the margin to add around a stroke of the given size.
type Padding func(size float64) float64

// ConstPadding pads every stroke by v.
func ConstPadding(v float64) Padding {
	return func(float64) float64 { return v }
}

// SizePadding pads every stroke by k times its size.
func SizePadding(k float64) Padding {
	return func(size float64) float64 { return size * k }
}

// SelectionPadding is used for selection highlight boxes and clipboard
// normalisation.
var SelectionPadding = SizePadding(4)

// Bounds is the union box of a set of strokes, tight and padded.
type Bounds struct {
	Rect   Rect
	Padded Rect
}

type box struct {
	minX, minY, maxX, maxY float64
	set                    bool
}

func (b *box) add(p Point, pad float64) {
	if !b.set {
		b.minX, b.minY = p.X-pad, p.Y-pad
		b.maxX, b.maxY = p.X+pad, p.Y+pad
		b.set = true
		return
	}
	b.minX = min(b.minX, p.X-pad)
	b.minY = min(b.minY, p.Y-pad)
	b.maxX = max(b.maxX, p.X+pad)
	b.maxY = max(b.maxY, p.Y+pad)
}

func (b box) rect() Rect {
	return Rect{X: b.minX, Y: b.minY, W: b.maxX - b.minX, H: b.maxY - b.minY}
}

// DataBounds computes the bounding boxes of strokes. A nil pad means no
// padding. The second result is false when there are no points.
func DataBounds(strokes []Stroke, pad Padding) (Bounds, bool) {
	if pad == nil {
		pad = ConstPadding(0)
	}
	var tight, padded box
	for _, s := range strokes {
		p := pad(s.Size)
		for _, pt := range s.Points {
			tight.add(pt, 0)
			padded.add(pt, p)
		}
	}
	if !tight.set {
		return Bounds{}, false
	}
	return Bounds{Rect: tight.rect(), Padded: padded.rect()}, true
}

// NormalizeData deep-copies strokes translated so that their padded
// bounding box starts at the origin.
func NormalizeData(strokes []Stroke) []Stroke {
	out := make([]Stroke, len(strokes))
	for i, s := range strokes {
		out[i] = s.Clone()
	}
	b, ok := DataBounds(out, SelectionPadding)
	if !ok {
		return out
	}
	d := Point{X: -b.Padded.X, Y: -b.Padded.Y}
	for i := range out {
		out[i].Translate(d)
	}
	return out
}

func uniqueSorted(indexes []int) []int {
	out := slices.Clone(indexes)
	slices.Sort(out)
	return slices.Compact(out)
}
