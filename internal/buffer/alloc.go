package buffer

// LineOverhead is the number of bytes a line slot costs in the line table,
// independent of the line's text.
const LineOverhead = 8

// Allocator accounts for the memory held by a LineStore. The editor runs on
// devices with a fixed heap, so every growth is asked for first and may be
// refused.
type Allocator interface {
	// Reserve claims n bytes. It returns false, claiming nothing, if the
	// request cannot be satisfied.
	Reserve(n int) bool
	// Free returns n bytes previously claimed with Reserve.
	Free(n int)
}

type unbounded struct{}

func (unbounded) Reserve(int) bool { return true }
func (unbounded) Free(int)         {}

// Unbounded returns an Allocator that never refuses.
func Unbounded() Allocator {
	return unbounded{}
}

// Heap is an Allocator with a fixed capacity in bytes.
type Heap struct {
	capacity int
	used     int
}

// NewHeap returns a Heap that refuses reservations beyond capacity bytes.
func NewHeap(capacity int) *Heap {
	return &Heap{capacity: capacity}
}

// Reserve claims n bytes if they fit.
func (h *Heap) Reserve(n int) bool {
	if n < 0 || h.used+n > h.capacity {
		return false
	}
	h.used += n
	return true
}

// Free returns n bytes to the heap.
func (h *Heap) Free(n int) {
	h.used -= n
	if h.used < 0 {
		h.used = 0
	}
}

// Used returns the number of bytes currently claimed.
func (h *Heap) Used() int { return h.used }

// Available returns the number of bytes that can still be claimed.
func (h *Heap) Available() int { return h.capacity - h.used }
