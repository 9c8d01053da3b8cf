package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertPointNear(t *testing.T, want, got Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9)
	assert.InDelta(t, want.Y, got.Y, 1e-9)
}

func TestViewTransform(t *testing.T) {
	v := View{Offset: Point{10, 10}, Zoom: 2}
	assert.Equal(t, Point{10, 20}, v.ToDocument(Point{30, 50}))
	assert.Equal(t, Point{30, 50}, v.ToViewport(Point{10, 20}))

	assert.Equal(t, Point{10, 20}, ViewportToDocument(Point{30, 50}, 2, Point{10, 10}))
	assert.Equal(t, Point{30, 50}, DocumentToViewport(Point{10, 20}, 2, Point{10, 10}))
}

func TestViewRoundTrip(t *testing.T) {
	views := []View{
		DefaultView(),
		{Offset: Point{-120, 33.5}, Zoom: 0.25},
		{Offset: Point{7, -9}, Zoom: 3.7},
	}
	pts := []Point{{0, 0}, {1.5, -2.25}, {1000, 333}, {-50, 80}}
	for _, v := range views {
		for _, p := range pts {
			assertPointNear(t, p, v.ToDocument(v.ToViewport(p)))
			assertPointNear(t, p, v.ToViewport(v.ToDocument(p)))
		}
	}
}

func TestViewRect(t *testing.T) {
	v := View{Offset: Point{5, 5}, Zoom: 2}
	assert.Equal(t, Rect{X: 7, Y: 9, W: 20, H: 10}, v.RectToViewport(Rect{X: 1, Y: 2, W: 10, H: 5}))
}

func TestViewZoomAt(t *testing.T) {
	v := DefaultView()
	anchor := Point{100, 50}
	before := v.ToDocument(anchor)
	v.ZoomAt(anchor, 2)
	assert.Equal(t, 2.0, v.Zoom)
	assertPointNear(t, before, v.ToDocument(anchor))

	v.ZoomAt(anchor, 100)
	assert.Equal(t, MaxZoom, v.Zoom)
	assertPointNear(t, before, v.ToDocument(anchor))

	v.ZoomAt(anchor, 1e-6)
	assert.Equal(t, MinZoom, v.Zoom)

	z := v.Zoom
	v.ZoomAt(anchor, 0)
	assert.Equal(t, z, v.Zoom)
}

func TestViewPan(t *testing.T) {
	v := DefaultView()
	v.Pan(Point{3, -4})
	v.Pan(Point{1, 1})
	assert.Equal(t, Point{4, -3}, v.Offset)
	assert.Equal(t, Point{-4, 3}, v.ToDocument(Point{0, 0}))
}
