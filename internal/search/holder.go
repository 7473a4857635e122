package search

import (
	"sync/atomic"

	"github.com/hyperjump/kotae/internal/index"
)

// Holder is the process-scoped reference to the serving index. Queries read
// it without locking; a rebuild swaps in a fresh index wholesale, so in-flight
// queries always observe either the fully-old or fully-new index.
type Holder struct {
	ptr atomic.Pointer[index.Index]
}

// NewHolder creates an empty holder. Get returns ErrNotInitialized until the
// first Swap.
func NewHolder() *Holder {
	return &Holder{}
}

// Get returns the current index, or ErrNotInitialized when none is loaded yet.
func (h *Holder) Get() (*index.Index, error) {
	ix := h.ptr.Load()
	if ix == nil {
		return nil, ErrNotInitialized
	}
	return ix, nil
}

// Swap replaces the serving index. The old index is left to in-flight readers.
func (h *Holder) Swap(ix *index.Index) {
	h.ptr.Store(ix)
}

// Ready reports whether an index is loaded.
func (h *Holder) Ready() bool {
	return h.ptr.Load() != nil
}
