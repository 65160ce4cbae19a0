package monitor

import "github.com/HerbHall/coopsense/pkg/risk"

// History is a fixed-capacity FIFO of scored samples. Appending past
// capacity evicts the oldest entry. Not safe for concurrent use; the
// monitor guards it with its own lock.
type History struct {
	buf  []risk.Sample
	head int
	size int
}

// NewHistory creates an empty history holding at most capacity samples.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{buf: make([]risk.Sample, capacity)}
}

// Append adds a sample, evicting the oldest when full.
func (h *History) Append(s risk.Sample) {
	if h.size < len(h.buf) {
		h.buf[(h.head+h.size)%len(h.buf)] = s
		h.size++
		return
	}
	h.buf[h.head] = s
	h.head = (h.head + 1) % len(h.buf)
}

// Len returns the number of stored samples.
func (h *History) Len() int {
	return h.size
}

// Cap returns the history capacity.
func (h *History) Cap() int {
	return len(h.buf)
}

// Samples returns the stored samples in arrival order, oldest first.
func (h *History) Samples() []risk.Sample {
	out := make([]risk.Sample, 0, h.size)
	for i := 0; i < h.size; i++ {
		out = append(out, h.buf[(h.head+i)%len(h.buf)])
	}
	return out
}
