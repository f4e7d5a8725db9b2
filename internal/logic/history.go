package logic

// DefaultHistorySize is the number of readings kept for forecast prompts.
const DefaultHistorySize = 100

// History is a fixed-capacity FIFO of readings in time order.
// Not safe for concurrent use; only the station loop touches it.
type History struct {
	buf      []Reading
	capacity int
	head     int // next write position
	count    int
}

// NewHistory creates an empty History holding at most capacity readings.
// A capacity below 1 falls back to DefaultHistorySize.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = DefaultHistorySize
	}
	return &History{
		buf:      make([]Reading, capacity),
		capacity: capacity,
	}
}

// Append adds r as the newest entry, evicting the single oldest entry when full.
func (h *History) Append(r Reading) {
	h.buf[h.head] = r
	h.head = (h.head + 1) % h.capacity
	if h.count < h.capacity {
		h.count++
	}
}

// Len returns the number of stored readings.
func (h *History) Len() int {
	return h.count
}

// Cap returns the capacity.
func (h *History) Cap() int {
	return h.capacity
}

// Snapshot returns a copy of the stored readings, oldest first.
func (h *History) Snapshot() []Reading {
	out := make([]Reading, h.count)
	// Oldest item is at (head - count) mod capacity
	start := (h.head - h.count + h.capacity) % h.capacity
	for i := 0; i < h.count; i++ {
		out[i] = h.buf[(start+i)%h.capacity]
	}
	return out
}
