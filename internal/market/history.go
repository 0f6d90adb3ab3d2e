package market

import (
	"fmt"

	"github.com/profxlabs/fxterm/internal/domain"
)

// History is a fixed-capacity rolling window of computed price points. It is
// append-only with oldest-eviction; timestamps must be strictly increasing.
// History is not safe for concurrent use; the session serializes access.
type History struct {
	points   []domain.PricePoint
	capacity int
}

// NewHistory creates an empty History with the given capacity.
func NewHistory(capacity int) *History {
	return &History{
		points:   make([]domain.PricePoint, 0, capacity),
		capacity: capacity,
	}
}

// Append adds a point, evicting the oldest when at capacity. It rejects
// points whose timestamp does not advance past the current newest point.
func (h *History) Append(p domain.PricePoint) error {
	if n := len(h.points); n > 0 && !p.Timestamp.After(h.points[n-1].Timestamp) {
		return fmt.Errorf("history: timestamp %s does not advance past %s",
			p.Timestamp.Format("15:04:05.000"), h.points[n-1].Timestamp.Format("15:04:05.000"))
	}
	if len(h.points) >= h.capacity {
		// Shift rather than reslice so the backing array does not grow
		// without bound over a long session.
		copy(h.points, h.points[1:])
		h.points = h.points[:len(h.points)-1]
	}
	h.points = append(h.points, p)
	return nil
}

// Points returns a copy of the window, oldest first. Safe to mutate.
func (h *History) Points() []domain.PricePoint {
	out := make([]domain.PricePoint, len(h.points))
	copy(out, h.points)
	return out
}

// Last returns the newest point, or false when the window is empty.
func (h *History) Last() (domain.PricePoint, bool) {
	if len(h.points) == 0 {
		return domain.PricePoint{}, false
	}
	return h.points[len(h.points)-1], true
}

// Len returns the number of points currently held.
func (h *History) Len() int {
	return len(h.points)
}

// Capacity returns the configured maximum window length.
func (h *History) Capacity() int {
	return h.capacity
}
