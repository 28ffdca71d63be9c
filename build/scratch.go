package build

import (
	"sync"

	duckdbvalue "github.com/wippyai/duckdb-value"
)

// scratch collects temporary handles that must be destroyed once a
// list has copied them.
type scratch struct {
	handles []duckdbvalue.ValueHandle
}

var scratchPool = sync.Pool{
	New: func() any {
		return &scratch{handles: make([]duckdbvalue.ValueHandle, 0, 8)}
	},
}

const maxPooledScratchCapacity = 128

func newScratch() *scratch {
	return scratchPool.Get().(*scratch)
}

func (s *scratch) add(h duckdbvalue.ValueHandle) {
	s.handles = append(s.handles, h)
}

// destroyAndRelease destroys every collected handle and returns s to the
// pool. s must not be used afterwards.
func (s *scratch) destroyAndRelease(api duckdbvalue.API) {
	for i := range s.handles {
		api.DestroyValue(&s.handles[i])
	}
	if cap(s.handles) > maxPooledScratchCapacity {
		return
	}
	s.handles = s.handles[:0]
	scratchPool.Put(s)
}
