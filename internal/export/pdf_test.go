package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrawl/internal/state"
)

func doc() state.Document {
	return state.Document{
		{Points: []state.Point{{X: 0, Y: 0}, {X: 100, Y: 20}, {X: 200, Y: 0}}, Color: "#FF8080", Size: 4, Action: state.ActionDraw},
		{Points: []state.Point{{X: 50, Y: 50}}, Color: "#FFFFFF", Size: 6, Action: state.ActionDraw},
	}
}

func TestPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, doc(), DefaultOptions()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestPDFEmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, nil, Options{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestOrientationFollowsDrawing(t *testing.T) {
	wide, err := build(doc(), DefaultOptions())
	require.NoError(t, err)
	w, h := wide.GetPageSize()
	assert.Greater(t, w, h)

	tall := state.Document{{Points: []state.Point{{X: 0, Y: 0}, {X: 0, Y: 300}}, Color: "#FFFFFF", Size: 2}}
	pdf, err := build(tall, DefaultOptions())
	require.NoError(t, err)
	w, h = pdf.GetPageSize()
	assert.Less(t, w, h)

	opts := DefaultOptions()
	opts.Orientation = "P"
	forced, err := build(doc(), opts)
	require.NoError(t, err)
	w, h = forced.GetPageSize()
	assert.Less(t, w, h)
}

func TestPDFFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.pdf")
	require.NoError(t, PDFFile(path, doc(), DefaultOptions()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestLayoutFitsMargins(t *testing.T) {
	l := layout{origin: state.Point{X: -10, Y: -10}, scale: 2, dx: 5, dy: 7}
	x, y := l.pt(state.Point{X: 0, Y: 0})
	assert.Equal(t, 25.0, x)
	assert.Equal(t, 27.0, y)
}

func TestRGB(t *testing.T) {
	r, g, b := rgb("#FF8080")
	assert.Equal(t, []int{255, 128, 128}, []int{r, g, b})
}
