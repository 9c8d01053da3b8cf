package state

import "sync/atomic"

// Revision counts document mutations. It is bumped on the engine goroutine
// and read by the saver, so access is atomic.
type Revision struct {
	n atomic.Uint64
}

// Tick increments the revision and returns the new value.
func (r *Revision) Tick() uint64 {
	return r.n.Add(1)
}

func (r *Revision) Current() uint64 {
	return r.n.Load()
}
