package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"

	"scrawl/internal/render"
	"scrawl/internal/state"
)

// MarkerID tags clipboard payloads written by this app.
const MarkerID = "scrawl"

const (
	TypePNG  = "image/png"
	TypeText = "text/plain"
)

// ClipboardItem is one representation of a clipboard entry.
type ClipboardItem struct {
	Type string
	Data []byte
}

// Clipboard is the system clipboard bridge.
type Clipboard interface {
	WriteItems(ctx context.Context, items ...ClipboardItem) error
	ReadItems(ctx context.Context) ([]ClipboardItem, error)
}

type payload struct {
	ID   string         `json:"__id"`
	Data []state.Stroke `json:"data"`
}

// EncodePayload serialises strokes as a tagged clipboard payload.
func EncodePayload(strokes []state.Stroke) ([]byte, error) {
	return json.Marshal(payload{ID: MarkerID, Data: strokes})
}

// DecodePayload parses a tagged payload. ok is false for anything that is
// not JSON, lacks the marker, holds no points, or has a stroke without a
// colour, with a non-positive size or with a non-finite coordinate.
func DecodePayload(data []byte) (strokes []state.Stroke, ok bool) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, false
	}
	if p.ID != MarkerID || p.Data == nil {
		return nil, false
	}
	for _, st := range p.Data {
		if !validStroke(st) {
			return nil, false
		}
	}
	if _, ok := state.DataBounds(p.Data, nil); !ok {
		return nil, false
	}
	return p.Data, true
}

func validStroke(st state.Stroke) bool {
	if st.Color == "" || !(st.Size > 0) || math.IsInf(st.Size, 0) {
		return false
	}
	for _, p := range st.Points {
		if !finite(p.X) || !finite(p.Y) {
			return false
		}
	}
	return true
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Copy writes the selected strokes to the clipboard as a PNG and as a
// tagged payload of their normalised geometry.
func (s *Session) Copy(ctx context.Context) error {
	if s.sel.Empty() {
		return nil
	}
	if s.clipboard == nil {
		return fmt.Errorf("copy: no clipboard")
	}
	strokes := s.doc.Subset(s.sel.Indexes)
	img, err := render.RenderStrokes(strokes)
	if err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	text, err := EncodePayload(state.NormalizeData(strokes))
	if err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	if err := s.clipboard.WriteItems(ctx,
		ClipboardItem{Type: TypePNG, Data: img},
		ClipboardItem{Type: TypeText, Data: text},
	); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	s.logf("copied %d strokes", len(strokes))
	return nil
}

// Cut copies the selection and then deletes it.
func (s *Session) Cut(ctx context.Context) error {
	if s.sel.Empty() {
		return nil
	}
	if err := s.Copy(ctx); err != nil {
		return err
	}
	s.DeleteSelection()
	return nil
}

// DeleteSelection removes the selected strokes.
func (s *Session) DeleteSelection() {
	if s.sel.Empty() {
		return
	}
	s.PushUndo()
	s.doc.RemoveIndexes(s.sel.Indexes)
	s.SetSelection(nil)
}

// Paste inserts every tagged payload on the clipboard, centred on the
// middle of the viewport, and selects what was inserted. Other items are
// skipped.
func (s *Session) Paste(ctx context.Context) error {
	if s.clipboard == nil {
		return fmt.Errorf("paste: no clipboard")
	}
	items, err := s.clipboard.ReadItems(ctx)
	if err != nil {
		return fmt.Errorf("paste: %w", err)
	}

	pushed := false
	for _, it := range items {
		if it.Type != TypeText {
			continue
		}
		strokes, ok := DecodePayload(it.Data)
		if !ok {
			log.Printf("[clipboard] skipping %d bytes of foreign text", len(it.Data))
			continue
		}
		b, _ := state.DataBounds(strokes, state.SelectionPadding)

		w, h := s.surface.Size()
		center := s.view.ToDocument(state.Point{X: float64(w) / 2, Y: float64(h) / 2})
		d := center.
			Sub(state.Point{X: b.Padded.W / 2, Y: b.Padded.H / 2}).
			Sub(state.Point{X: b.Padded.X, Y: b.Padded.Y})

		if !pushed {
			s.PushUndo()
			pushed = true
		}
		start := len(s.doc)
		for _, st := range strokes {
			st = st.Clone()
			st.Translate(d)
			if st.Action == "" {
				st.Action = state.ActionDraw
			}
			s.doc = append(s.doc, st)
		}
		indexes := make([]int, 0, len(strokes))
		for i := start; i < len(s.doc); i++ {
			indexes = append(indexes, i)
		}
		s.SetSelection(indexes)
		s.logf("pasted %d strokes", len(strokes))
	}
	return nil
}
