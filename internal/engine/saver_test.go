package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrawl/internal/state"
)

type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeTimers struct {
	mu    sync.Mutex
	armed []*fakeTimer
}

func (f *fakeTimers) after(d time.Duration, fn func()) stopper {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTimer{delay: d, fn: fn}
	f.armed = append(f.armed, t)
	return t
}

func (f *fakeTimers) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.armed)
}

// fire runs every timer that has not run or been stopped.
func (f *fakeTimers) fire() {
	f.mu.Lock()
	var due []*fakeTimer
	for _, t := range f.armed {
		if !t.stopped {
			t.stopped = true
			due = append(due, t)
		}
	}
	f.mu.Unlock()
	for _, t := range due {
		t.fn()
	}
}

func newTestSaver(st DocumentStore) (*Saver, *fakeTimers) {
	s := NewSaver(st, 250*time.Millisecond)
	timers := &fakeTimers{}
	s.after = timers.after
	return s, timers
}

func line(y float64) state.Stroke {
	return state.Stroke{
		Points: []state.Point{{X: 0, Y: y}, {X: 10, Y: y}},
		Color:  "#FFFFFF",
		Size:   3,
		Action: state.ActionDraw,
	}
}

func TestSaverDebounces(t *testing.T) {
	st := newMemStore()
	s, timers := newTestSaver(st)
	var saved []uint64
	s.OnSaved = func(path string, rev uint64) {
		assert.Equal(t, "a", path)
		saved = append(saved, rev)
	}

	doc := state.Document{line(0)}
	s.Schedule("a", doc, 1)
	doc = append(doc, line(10))
	s.Schedule("a", doc, 2)
	doc = append(doc, line(20))
	s.Schedule("a", doc, 3)

	require.Equal(t, 1, timers.count(), "later changes must not re-arm the timer")
	assert.Equal(t, 250*time.Millisecond, timers.armed[0].delay)
	assert.True(t, s.Pending("a"))
	assert.Zero(t, st.saves)

	timers.fire()
	assert.Equal(t, 1, st.saves)
	assert.Len(t, st.get("a"), 3)
	assert.Equal(t, []uint64{3}, saved)
	assert.False(t, s.Pending("a"))

	s.Schedule("a", doc, 4)
	assert.Equal(t, 2, timers.count())
}

func TestSaverCopiesDocument(t *testing.T) {
	st := newMemStore()
	s, timers := newTestSaver(st)
	doc := state.Document{line(0)}
	s.Schedule("a", doc, 1)
	doc[0].Points[0].X = 99

	timers.fire()
	assert.Zero(t, st.get("a")[0].Points[0].X)
}

func TestSaverPathsAreIndependent(t *testing.T) {
	st := newMemStore()
	s, timers := newTestSaver(st)
	s.Schedule("a", state.Document{line(0)}, 1)
	s.Schedule("b", state.Document{line(0), line(5)}, 2)
	s.Schedule("", state.Document{line(0)}, 3)
	assert.Equal(t, 2, timers.count())

	timers.fire()
	assert.Len(t, st.get("a"), 1)
	assert.Len(t, st.get("b"), 2)
	assert.Equal(t, 2, st.saves)
}

func TestSaverFlush(t *testing.T) {
	st := newMemStore()
	s, timers := newTestSaver(st)
	s.Schedule("a", state.Document{line(0)}, 1)
	s.Schedule("b", state.Document{line(0)}, 1)

	require.NoError(t, s.Flush(context.Background()))
	assert.Equal(t, 2, st.saves)
	assert.False(t, s.Pending("a"))
	for _, tm := range timers.armed {
		assert.True(t, tm.stopped)
	}

	// a timer that fires after the flush finds nothing to write
	s.fire("a")
	assert.Equal(t, 2, st.saves)
	require.NoError(t, s.Flush(context.Background()))
}

func TestSaverDefaultDelay(t *testing.T) {
	s := NewSaver(newMemStore(), 0)
	assert.Equal(t, DefaultSaveDelay, s.delay)
}
