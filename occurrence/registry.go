package occurrence

import (
	"slices"
	"sync"
)

// Registry maps a method signature to the raw offsets of every tracked
// construct recorded for it. A Registry is scoped to one resolution run:
// Open starts it empty and Close discards the recorded offsets.
//
// Offsets must be recorded in strictly increasing order per method; the
// registry does not reorder or validate them.
type Registry struct {
	mux     sync.Mutex
	offsets map[string][]int
}

// NewRegistry returns an opened, empty Registry.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Open()
	return r
}

// Open resets the registry for a new run.
func (r *Registry) Open() {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.offsets = make(map[string][]int)
}

// Close discards all recorded offsets; lookups return -1 until Open.
func (r *Registry) Close() {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.offsets = nil
}

// Record appends offset to the list of method.
func (r *Registry) Record(method string, offset int) {
	r.mux.Lock()
	defer r.mux.Unlock()
	if r.offsets == nil {
		r.offsets = make(map[string][]int)
	}
	r.offsets[method] = append(r.offsets[method], offset)
}

// Lookup returns the 0-based position of offset within the offsets recorded
// for method, or -1 when method is unknown or offset was never recorded.
func (r *Registry) Lookup(method string, offset int) int {
	if r == nil {
		return -1
	}
	r.mux.Lock()
	defer r.mux.Unlock()
	list, ok := r.offsets[method]
	if !ok {
		return -1
	}
	return slices.Index(list, offset)
}

// Methods returns the number of methods with recorded offsets.
func (r *Registry) Methods() int {
	r.mux.Lock()
	defer r.mux.Unlock()
	return len(r.offsets)
}
