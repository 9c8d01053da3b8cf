package render

// FrameRequester runs fn once on the next frame.
type FrameRequester interface {
	RequestFrame(fn func())
}

// FrameFunc adapts a function to FrameRequester.
type FrameFunc func(fn func())

func (f FrameFunc) RequestFrame(fn func()) { f(fn) }

// Scheduler coalesces render requests so that any number of requests made
// before the next frame produce a single draw.
type Scheduler struct {
	frames  FrameRequester
	draw    func()
	pending bool
	drawn   int
}

func NewScheduler(frames FrameRequester, draw func()) *Scheduler {
	return &Scheduler{frames: frames, draw: draw}
}

// Request asks for a redraw on the next frame.
func (s *Scheduler) Request() {
	if s.pending {
		return
	}
	s.pending = true
	s.frames.RequestFrame(s.frame)
}

func (s *Scheduler) frame() {
	s.pending = false
	s.drawn++
	s.draw()
}

// Pending reports whether a frame has been requested but not drawn.
func (s *Scheduler) Pending() bool { return s.pending }

// Frames is the number of draw passes run so far.
func (s *Scheduler) Frames() int { return s.drawn }
