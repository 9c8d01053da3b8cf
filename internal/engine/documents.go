package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"scrawl/internal/state"
)

// Open makes path the current document and loads it. The load result is
// applied only if it answers the newest Open; a load that resolves after a
// later Open, even one of the same path, is dropped.
func (s *Session) Open(ctx context.Context, path string) {
	s.path = path
	s.input = input{touchPanAllowed: true}
	s.doc = state.Document{}
	s.sel = state.Selection{}
	s.history.Reset()
	s.loading = true
	req := uuid.NewString()[:8]
	s.loadReq = req
	s.logf("load %q (request %s)", path, req)

	if path == "" || s.store == nil {
		s.applyLoad(path, req, state.Document{}, nil)
		return
	}
	if s.post == nil {
		doc, err := s.store.Load(ctx, path)
		s.applyLoad(path, req, doc, err)
		return
	}
	go func() {
		doc, err := s.store.Load(ctx, path)
		s.post(func() { s.applyLoad(path, req, doc, err) })
	}()
}

func (s *Session) applyLoad(path, req string, doc state.Document, err error) {
	if path != s.path || req != s.loadReq {
		s.logf("dropping stale load of %q (request %s), current is %q (request %s)", path, req, s.path, s.loadReq)
		return
	}
	if err != nil {
		s.reportError(fmt.Errorf("load %q: %w", path, err))
		doc = nil
	}
	if doc == nil {
		doc = state.Document{}
	}
	s.loading = false
	s.doc = doc
	s.view = state.DefaultView()
	s.sel = state.Selection{}
	s.history.Reset()
	s.RequestRender()
	if s.OnLoad != nil {
		s.OnLoad(path)
	}
}
