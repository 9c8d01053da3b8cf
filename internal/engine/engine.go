// Package engine ties the whiteboard together: it owns the document, the
// view transform, the selection and undo history, routes input to the
// active tool and drives rendering and saving.
package engine

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"scrawl/internal/render"
	"scrawl/internal/state"
	"scrawl/internal/tools"
)

// DocumentStore is the persistence bridge. Load of a missing key yields an
// empty document and no error.
type DocumentStore interface {
	Load(ctx context.Context, path string) (state.Document, error)
	Save(ctx context.Context, path string, doc state.Document) error
}

// Config wires a Session to its collaborators.
type Config struct {
	Surface   render.Surface
	Frames    render.FrameRequester
	Store     DocumentStore
	Clipboard Clipboard

	// Post runs fn on the goroutine that owns the session. Background
	// loads and saves report back through it. When nil, loads run
	// synchronously inside Open.
	Post func(fn func())

	SaveDelay time.Duration
	Tools     tools.Options
	Pen       tools.Pen
	Tool      tools.Kind
}

// Session is the live state of one whiteboard. All methods must be called
// from the same goroutine.
type Session struct {
	id string

	surface   render.Surface
	sched     *render.Scheduler
	store     DocumentStore
	clipboard Clipboard
	saver     *Saver
	post      func(fn func())

	tools  tools.Table
	active tools.Kind
	pen    tools.Pen

	path    string
	doc     state.Document
	sel     state.Selection
	view    state.View
	history state.History
	rev     state.Revision
	loading bool
	loadReq string

	input input

	// OnFrame runs after every draw pass.
	OnFrame func()
	// OnError receives load, save and clipboard failures.
	OnError func(err error)
	// OnToolChange runs after the active tool changed.
	OnToolChange func(kind tools.Kind)
	// OnLoad runs after a document was loaded and applied.
	OnLoad func(path string)
	// OnSaved runs after a document revision was written.
	OnSaved func(path string, rev uint64)
}

// New builds a session. It fails with render.ErrNoSurface when no drawing
// surface is given.
func New(cfg Config) (*Session, error) {
	if cfg.Surface == nil {
		return nil, render.ErrNoSurface
	}
	if cfg.Frames == nil {
		return nil, fmt.Errorf("engine: no frame requester")
	}
	opts := cfg.Tools
	if opts == (tools.Options{}) {
		opts = tools.DefaultOptions()
	}
	pen := cfg.Pen
	if pen.Size <= 0 {
		pen.Size = 4
	}
	if pen.Color == "" {
		pen.Color = "#FFFFFF"
	}
	active := cfg.Tool
	if active == "" {
		active = tools.KindDraw
	}

	s := &Session{
		id:        uuid.NewString()[:8],
		surface:   cfg.Surface,
		store:     cfg.Store,
		clipboard: cfg.Clipboard,
		post:      cfg.Post,
		tools:     tools.NewTable(opts),
		active:    active,
		pen:       pen,
		doc:       state.Document{},
		view:      state.DefaultView(),
		input:     input{touchPanAllowed: true},
	}
	s.sched = render.NewScheduler(cfg.Frames, s.draw)
	if cfg.Store != nil {
		s.saver = NewSaver(cfg.Store, cfg.SaveDelay)
		s.saver.OnError = func(path string, err error) {
			s.fromBackground(func() { s.reportError(fmt.Errorf("save %q: %w", path, err)) })
		}
		s.saver.OnSaved = func(path string, rev uint64) {
			s.fromBackground(func() {
				if s.OnSaved != nil {
					s.OnSaved(path, rev)
				}
			})
		}
	}
	s.logf("session started, tool %s", s.active)
	return s, nil
}

func (s *Session) logf(format string, args ...any) {
	log.Printf("[engine %s] "+format, append([]any{s.id}, args...)...)
}

func (s *Session) reportError(err error) {
	s.logf("%v", err)
	if s.OnError != nil {
		s.OnError(err)
	}
}

func (s *Session) fromBackground(fn func()) {
	if s.post != nil {
		s.post(fn)
		return
	}
	fn()
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// Path is the key of the current document.
func (s *Session) Path() string { return s.path }

// Loading reports whether the current document's load is still in flight.
func (s *Session) Loading() bool { return s.loading }

// Revision is the number of dirty marks so far.
func (s *Session) Revision() uint64 { return s.rev.Current() }

// Snapshot returns a deep copy of the current document.
func (s *Session) Snapshot() state.Document { return s.doc.Clone() }

func (s *Session) ActiveTool() tools.Kind { return s.active }

// Tool returns the implementation behind kind.
func (s *Session) Tool(kind tools.Kind) tools.Tool { return s.tools[kind] }

func (s *Session) tool() tools.Tool { return s.tools[s.active] }

func (s *Session) context() *tools.Context {
	return &tools.Context{Host: s}
}

// SetTool switches the active tool, running the old tool's deselect hook
// and the new tool's select hook.
func (s *Session) SetTool(kind tools.Kind) {
	if kind == s.active {
		return
	}
	if _, ok := s.tools[kind]; !ok {
		s.logf("ignoring unknown tool %q", kind)
		return
	}
	s.tool().OnDeselect(s.context())
	s.active = kind
	s.tool().OnSelect(s.context())
	if s.OnToolChange != nil {
		s.OnToolChange(kind)
	}
	s.RequestRender()
}

func (s *Session) SetPen(p tools.Pen) {
	if p.Size > 0 {
		s.pen.Size = p.Size
	}
	if p.Color != "" {
		s.pen.Color = p.Color
	}
}

// Resize changes the surface's pixel size and repaints.
func (s *Session) Resize(w, h int) error {
	if cw, ch := s.surface.Size(); cw == w && ch == h {
		return nil
	}
	if err := s.surface.Resize(w, h); err != nil {
		return err
	}
	s.RequestRender()
	return nil
}

// Host implementation.

func (s *Session) Document() *state.Document  { return &s.doc }
func (s *Session) View() state.View           { return s.view }
func (s *Session) Surface() render.Surface    { return s.surface }
func (s *Session) Pen() tools.Pen             { return s.pen }
func (s *Session) Selection() state.Selection { return s.sel }

// SetSelection replaces the selection and recomputes its bounds.
func (s *Session) SetSelection(indexes []int) {
	s.sel = state.NewSelection(s.doc, indexes)
	s.MarkDirty()
}

// MoveSelection translates the selected strokes and the selection box.
func (s *Session) MoveSelection(d state.Point) {
	if s.sel.Empty() {
		return
	}
	for _, i := range s.sel.Indexes {
		s.doc[i].Translate(d)
	}
	s.sel.Translate(d)
	s.MarkDirty()
}

// MarkDirty schedules a save of the current document and a repaint.
func (s *Session) MarkDirty() {
	rev := s.rev.Tick()
	// nothing typed before the load lands may overwrite the stored copy
	if s.saver != nil && !s.loading {
		s.saver.Schedule(s.path, s.doc, rev)
	}
	s.RequestRender()
}

func (s *Session) RequestRender() { s.sched.Request() }

func (s *Session) AllowTouchPan()    { s.input.touchPanAllowed = true }
func (s *Session) DisallowTouchPan() { s.input.touchPanAllowed = false }

// TouchPanAllowed reports the current pan toggle.
func (s *Session) TouchPanAllowed() bool { return s.input.touchPanAllowed }

// PushUndo snapshots the document before a discrete action.
func (s *Session) PushUndo() {
	s.history.Push(s.doc)
}

func (s *Session) Undo() {
	doc, ok := s.history.Undo(s.doc)
	if !ok {
		return
	}
	s.doc = doc
	s.sel = state.Selection{}
	s.MarkDirty()
}

func (s *Session) Redo() {
	doc, ok := s.history.Redo(s.doc)
	if !ok {
		return
	}
	s.doc = doc
	s.sel = state.Selection{}
	s.MarkDirty()
}

func (s *Session) CanUndo() bool { return s.history.CanUndo() }
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// Render paints immediately instead of waiting for the next frame.
func (s *Session) Render() { s.draw() }

func (s *Session) draw() {
	render.Paint(s.surface, render.Scene{Doc: s.doc, Selection: s.sel, View: s.view}, func(surf render.Surface) {
		s.tool().Render(s.context(), surf)
	})
	if s.OnFrame != nil {
		s.OnFrame()
	}
}

// Flush writes any pending saves now.
func (s *Session) Flush(ctx context.Context) error {
	if s.saver == nil {
		return nil
	}
	return s.saver.Flush(ctx)
}
