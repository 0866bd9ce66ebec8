package client

import "sync/atomic"

// InFlight guards a screen action against double submission.
type InFlight struct {
	busy atomic.Bool
}

// TryStart reports whether the caller may proceed. Done must follow a
// successful TryStart.
func (f *InFlight) TryStart() bool {
	return f.busy.CompareAndSwap(false, true)
}

func (f *InFlight) Done() {
	f.busy.Store(false)
}

func (f *InFlight) Active() bool {
	return f.busy.Load()
}
