package state

import "math"

// DotLength is the segment length under which a stroke segment is treated
// as a dot when hit testing.
const DotLength = 3.0

// Distance between two points.
func Distance(a, b Point) float64 {
	return DistanceXY(a.X, a.Y, b.X, b.Y)
}

// DistanceXY is Distance for bare coordinates.
func DistanceXY(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// RectContainsPoint reports whether p lies in r, edges included.
func RectContainsPoint(r Rect, p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W &&
		p.Y >= r.Y && p.Y <= r.Y+r.H
}

// PolygonContainsPoint runs a ray-casting parity test. The polygon is
// treated as closed whether or not its last point repeats the first.
func PolygonContainsPoint(poly []Point, p Point) bool {
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		pi, pj := poly[i], poly[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}

func ccw(a, b, c Point) bool {
	return (c.Y-a.Y)*(b.X-a.X) > (b.Y-a.Y)*(c.X-a.X)
}

// SegmentHitsStroke tests the query segment a→b against the stroke
// segment c→d. Segments shorter than DotLength count as a dot at c, hit
// when the midpoint of a→b is within radius of it.
func SegmentHitsStroke(a, b, c, d Point, radius float64) bool {
	if Distance(c, d) < DotLength {
		mid := Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
		return Distance(mid, c) <= radius
	}
	return ccw(a, c, d) != ccw(b, c, d) && ccw(a, b, c) != ccw(a, b, d)
}

// StrokeHit reports whether the query segment touches any segment of s.
func StrokeHit(s Stroke, a, b Point) bool {
	switch len(s.Points) {
	case 0:
		return false
	case 1:
		return SegmentHitsStroke(a, b, s.Points[0], s.Points[0], s.Size)
	}
	for j := 0; j < len(s.Points)-1; j++ {
		if SegmentHitsStroke(a, b, s.Points[j], s.Points[j+1], s.Size) {
			return true
		}
	}
	return false
}

// MostlyInside reports whether more than half of the stroke's points
// satisfy contains.
func MostlyInside(s Stroke, contains func(Point) bool) bool {
	if len(s.Points) == 0 {
		return false
	}
	n := 0
	for _, p := range s.Points {
		if contains(p) {
			n++
		}
	}
	return float64(n) > float64(len(s.Points))/2
}
