// Package export writes documents to PDF.
package export

import (
	"fmt"
	"io"
	"log"

	"github.com/jung-kurt/gofpdf"

	"scrawl/internal/render"
	"scrawl/internal/state"
)

// Options controls the page the drawing is laid out on.
type Options struct {
	// Orientation is "P" or "L"; empty picks the one that fits the drawing.
	Orientation string
	PageSize    string
	Margin      float64
	Background  string
}

func DefaultOptions() Options {
	return Options{PageSize: "A4", Margin: 10, Background: "#1E1E1E"}
}

func rgb(token string) (int, int, int) {
	c := render.ParseColor(token)
	return int(c.R*255 + 0.5), int(c.G*255 + 0.5), int(c.B*255 + 0.5)
}

// layout scales the padded drawing to fit inside the page margins.
type layout struct {
	origin state.Point
	scale  float64
	dx, dy float64
}

func (l layout) pt(p state.Point) (float64, float64) {
	return (p.X-l.origin.X)*l.scale + l.dx, (p.Y-l.origin.Y)*l.scale + l.dy
}

func build(doc state.Document, opts Options) (*gofpdf.Fpdf, error) {
	if opts.PageSize == "" {
		opts.PageSize = "A4"
	}
	b, ok := state.DataBounds(doc, state.SelectionPadding)
	orientation := opts.Orientation
	if orientation == "" {
		orientation = "P"
		if ok && b.Padded.W > b.Padded.H {
			orientation = "L"
		}
	}

	pdf := gofpdf.New(orientation, "mm", opts.PageSize, "")
	pdf.AddPage()
	pw, ph := pdf.GetPageSize()
	if opts.Background != "" {
		r, g, bl := rgb(opts.Background)
		pdf.SetFillColor(r, g, bl)
		pdf.Rect(0, 0, pw, ph, "F")
	}
	if !ok {
		return pdf, pdf.Error()
	}

	aw, ah := pw-2*opts.Margin, ph-2*opts.Margin
	scale := min(aw/max(b.Padded.W, 1), ah/max(b.Padded.H, 1))
	l := layout{
		origin: state.Point{X: b.Padded.X, Y: b.Padded.Y},
		scale:  scale,
		dx:     opts.Margin + (aw-b.Padded.W*scale)/2,
		dy:     opts.Margin + (ah-b.Padded.H*scale)/2,
	}

	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")
	for _, st := range doc {
		if len(st.Points) == 0 {
			continue
		}
		r, g, bl := rgb(st.Color)
		width := st.Size * scale
		if len(st.Points) == 1 {
			pdf.SetFillColor(r, g, bl)
			x, y := l.pt(st.Points[0])
			pdf.Circle(x, y, width/2, "F")
			continue
		}
		pdf.SetDrawColor(r, g, bl)
		pdf.SetLineWidth(width)
		x, y := l.pt(st.Points[0])
		pdf.MoveTo(x, y)
		for _, p := range st.Points[1:] {
			x, y := l.pt(p)
			pdf.LineTo(x, y)
		}
		pdf.DrawPath("D")
	}
	return pdf, pdf.Error()
}

// PDF writes doc to w as a single page.
func PDF(w io.Writer, doc state.Document, opts Options) error {
	pdf, err := build(doc, opts)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	log.Printf("[export] wrote %d strokes", len(doc))
	return nil
}

// PDFFile writes doc to a file at path.
func PDFFile(path string, doc state.Document, opts Options) error {
	pdf, err := build(doc, opts)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	log.Printf("[export] wrote %d strokes to %s", len(doc), path)
	return nil
}
