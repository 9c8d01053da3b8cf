package engine

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"scrawl/internal/state"
)

// DefaultSaveDelay is how long a save waits for more changes.
const DefaultSaveDelay = time.Second

type stopper interface {
	Stop() bool
}

type pendingSave struct {
	doc   state.Document
	rev   uint64
	timer stopper
}

// Saver debounces document writes. Each path has at most one armed timer;
// changes arriving while it is armed replace the pending document without
// pushing the deadline back, so a continuous stream of edits is still
// written once per delay.
type Saver struct {
	store DocumentStore
	delay time.Duration
	after func(d time.Duration, fn func()) stopper

	mu      sync.Mutex
	pending map[string]*pendingSave
	writeMu sync.Mutex

	OnError func(path string, err error)
	OnSaved func(path string, rev uint64)
}

func NewSaver(store DocumentStore, delay time.Duration) *Saver {
	if delay <= 0 {
		delay = DefaultSaveDelay
	}
	return &Saver{
		store:   store,
		delay:   delay,
		after:   func(d time.Duration, fn func()) stopper { return time.AfterFunc(d, fn) },
		pending: make(map[string]*pendingSave),
	}
}

// Schedule records doc as the latest version of path and arms the timer
// if it is not armed yet. The document is copied.
func (s *Saver) Schedule(path string, doc state.Document, rev uint64) {
	if path == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.pending[path]
	if p == nil {
		p = &pendingSave{}
		s.pending[path] = p
	}
	p.doc = doc.Clone()
	p.rev = rev
	if p.timer != nil {
		return
	}
	p.timer = s.after(s.delay, func() { s.fire(path) })
}

// Pending reports whether a save for path is waiting.
func (s *Saver) Pending(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[path]
	return ok
}

func (s *Saver) take(path string) *pendingSave {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.pending[path]
	delete(s.pending, path)
	return p
}

func (s *Saver) fire(path string) {
	p := s.take(path)
	if p == nil {
		return
	}
	if err := s.write(context.Background(), path, p); err != nil && s.OnError != nil {
		s.OnError(path, err)
	}
}

func (s *Saver) write(ctx context.Context, path string, p *pendingSave) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.store.Save(ctx, path, p.doc); err != nil {
		return err
	}
	log.Printf("[save] wrote %q rev %d (%d strokes)", path, p.rev, len(p.doc))
	if s.OnSaved != nil {
		s.OnSaved(path, p.rev)
	}
	return nil
}

// Flush stops every armed timer and writes the pending documents now.
func (s *Saver) Flush(ctx context.Context) error {
	s.mu.Lock()
	batch := s.pending
	s.pending = make(map[string]*pendingSave)
	s.mu.Unlock()

	var errs []error
	for path, p := range batch {
		if p.timer != nil {
			p.timer.Stop()
		}
		if err := s.write(ctx, path, p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
