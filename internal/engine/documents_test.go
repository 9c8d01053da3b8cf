package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrawl/internal/state"
)

// gatedStore holds every load until the test releases that call.
type gatedStore struct {
	*memStore
	calls chan *loadCall
}

type loadCall struct {
	path    string
	release chan struct{}
}

func newGatedStore() *gatedStore {
	return &gatedStore{memStore: newMemStore(), calls: make(chan *loadCall, 8)}
}

func (g *gatedStore) Load(ctx context.Context, path string) (state.Document, error) {
	c := &loadCall{path: path, release: make(chan struct{})}
	g.calls <- c
	select {
	case <-c.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return g.memStore.Load(ctx, path)
}

// open starts a load of path and waits until it reached the store.
func (g *gatedStore) open(t *testing.T, s *Session, path string) *loadCall {
	t.Helper()
	s.Open(context.Background(), path)
	c := <-g.calls
	require.Equal(t, path, c.path)
	return c
}

type posted chan func()

func (p posted) post(fn func()) { p <- fn }

// next runs the next callback a background load posted.
func (p posted) next(t *testing.T) {
	t.Helper()
	fn := <-p
	fn()
}

func withStore(st DocumentStore, post func(func())) func(*Config) {
	return func(c *Config) {
		c.Store = st
		c.Post = post
	}
}

func TestOpenLoadsDocument(t *testing.T) {
	h := newHarness(t)
	h.store.docs["a"] = state.Document{line(0), line(10)}
	var loaded []string
	h.s.OnLoad = func(path string) { loaded = append(loaded, path) }

	h.s.Open(context.Background(), "a")
	assert.False(t, h.s.Loading())
	assert.Equal(t, "a", h.s.Path())
	assert.Len(t, h.s.Snapshot(), 2)
	assert.Equal(t, []string{"a"}, loaded)
	assert.False(t, h.s.CanUndo())
}

func TestOpenMissingIsEmpty(t *testing.T) {
	h := newHarness(t)
	h.s.Open(context.Background(), "nothing")
	assert.False(t, h.s.Loading())
	assert.Empty(t, h.s.Snapshot())
}

func TestOpenResetsHistoryAndSelection(t *testing.T) {
	h := newHarness(t)
	h.drag(pt(10, 10), pt(50, 10), pt(50, 10))
	h.s.SetSelection([]int{0})
	h.s.Open(context.Background(), "b")
	assert.False(t, h.s.CanUndo())
	assert.True(t, h.s.Selection().Empty())
	assert.Empty(t, h.s.Snapshot())
}

func TestStaleLoadIsDropped(t *testing.T) {
	st := newGatedStore()
	st.docs["a"] = state.Document{line(0)}
	st.docs["b"] = state.Document{line(0), line(10), line(20)}
	p := make(posted, 4)
	h := newHarness(t, withStore(st, p.post))
	var loaded []string
	h.s.OnLoad = func(path string) { loaded = append(loaded, path) }

	a := st.open(t, h.s, "a")
	b := st.open(t, h.s, "b")
	assert.True(t, h.s.Loading())

	close(a.release)
	p.next(t)
	assert.True(t, h.s.Loading(), "the load of a must not finish b's")
	assert.Empty(t, h.s.Snapshot())

	close(b.release)
	p.next(t)
	assert.False(t, h.s.Loading())
	assert.Len(t, h.s.Snapshot(), 3)
	assert.Equal(t, []string{"b"}, loaded)
}

func TestReopenDropsEarlierLoadOfSamePath(t *testing.T) {
	st := newGatedStore()
	st.docs["a"] = state.Document{line(0)}
	p := make(posted, 4)
	h := newHarness(t, withStore(st, p.post))

	first := st.open(t, h.s, "a")
	b := st.open(t, h.s, "b")
	second := st.open(t, h.s, "a")

	// the first load of a answers an Open that has since been superseded
	close(first.release)
	p.next(t)
	assert.True(t, h.s.Loading())
	close(b.release)
	p.next(t)
	assert.True(t, h.s.Loading())

	close(second.release)
	p.next(t)
	require.False(t, h.s.Loading())
	require.Len(t, h.s.Snapshot(), 1)

	h.drag(pt(10, 50), pt(50, 50), pt(50, 50))
	assert.Len(t, h.s.Snapshot(), 2)
	select {
	case fn := <-p:
		t.Fatalf("unexpected background callback %p", fn)
	default:
	}
}

func TestLoadingBlocksSaves(t *testing.T) {
	st := newGatedStore()
	st.docs["a"] = state.Document{line(0)}
	p := make(posted, 4)
	h := newHarness(t, withStore(st, p.post))

	a := st.open(t, h.s, "a")
	h.drag(pt(10, 10), pt(50, 10), pt(50, 10))
	assert.False(t, h.s.saver.Pending("a"))

	close(a.release)
	p.next(t)
	require.NoError(t, h.s.Flush(context.Background()))
	assert.Zero(t, st.saves)
	assert.Len(t, h.s.Snapshot(), 1)

	h.drag(pt(10, 50), pt(50, 50), pt(50, 50))
	assert.True(t, h.s.saver.Pending("a"))
	h.timers.fire()
	p.next(t) // OnSaved callback
	assert.Len(t, st.get("a"), 2)
}

func TestLoadErrorReported(t *testing.T) {
	h := newHarness(t)
	h.store.err = errors.New("unreadable")
	var got error
	h.s.OnError = func(err error) { got = err }

	h.s.Open(context.Background(), "a")
	require.Error(t, got)
	assert.Contains(t, got.Error(), "unreadable")
	assert.False(t, h.s.Loading())
	assert.Empty(t, h.s.Snapshot())
}
