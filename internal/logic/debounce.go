package logic

import (
	"sync/atomic"
	"time"
)

// DefaultDebounce is the minimum spacing between accepted trigger edges.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer turns bouncy button edges into a single pending request.
//
// OnTriggerEdge runs in the edge-event context and TakePending in the station
// loop. The flag and the last accepted timestamp are atomics, so neither side
// can observe a half-written value.
type Debouncer struct {
	window  time.Duration
	pending atomic.Bool
	last    atomic.Int64 // monotonic ns of last accepted edge, -1 = none yet
}

// NewDebouncer creates a Debouncer with the given window.
func NewDebouncer(window time.Duration) *Debouncer {
	d := &Debouncer{window: window}
	d.last.Store(-1)
	return d
}

// OnTriggerEdge records an edge observed at the monotonic time now.
// The edge sets the pending flag only if more than the window has passed
// since the last accepted edge. It reports whether the edge was accepted.
func (d *Debouncer) OnTriggerEdge(now time.Duration) bool {
	last := d.last.Load()
	if last >= 0 && now-time.Duration(last) <= d.window {
		return false
	}
	d.last.Store(int64(now))
	d.pending.Store(true)
	return true
}

// TakePending reads and clears the pending flag, returning its prior value.
func (d *Debouncer) TakePending() bool {
	return d.pending.Swap(false)
}

// Pending reports the flag without clearing it.
func (d *Debouncer) Pending() bool {
	return d.pending.Load()
}
