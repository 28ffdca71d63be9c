package resource

import (
	"errors"
	"sync"
)

var (
	ErrClosed            = errors.New("resource backend closed")
	ErrOutstandingBorrow = errors.New("cannot drop resource with outstanding borrows")
)

// LocalBackend is an in-memory resource backend with borrow tracking.
// Implements both Backend and RepBackend interfaces.
type LocalBackend struct {
	entries  []entry
	freeList []Handle
	byRep    map[uintptr]Handle
	mu       sync.RWMutex
	reuse    bool
	closed   bool
}

type entry struct {
	value       any
	rep         uintptr
	typeID      uint32
	borrowCount uint32
	valid       bool
}

// NewLocalBackend creates a new in-memory backend.
func NewLocalBackend(opts Options) *LocalBackend {
	return &LocalBackend{
		entries:  make([]entry, 0, 64),
		freeList: make([]Handle, 0, 16),
		byRep:    make(map[uintptr]Handle),
		reuse:    opts.ReuseHandles,
	}
}

func (b *LocalBackend) insertLocked(e entry) Handle {
	var handle Handle
	if b.reuse && len(b.freeList) > 0 {
		handle = b.freeList[len(b.freeList)-1]
		b.freeList = b.freeList[:len(b.freeList)-1]
		b.entries[handle-1] = e
	} else {
		b.entries = append(b.entries, e)
		handle = Handle(len(b.entries))
	}
	if e.rep != 0 {
		b.byRep[e.rep] = handle
	}
	return handle
}

// entryLocked returns the live entry for handle, or nil.
func (b *LocalBackend) entryLocked(handle Handle) *entry {
	if handle == 0 {
		return nil
	}
	idx := int(handle - 1)
	if idx >= len(b.entries) {
		return nil
	}
	e := &b.entries[idx]
	if !e.valid {
		return nil
	}
	return e
}

// Create stores a value and returns a handle.
func (b *LocalBackend) Create(typeID uint32, value any) (Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, ErrClosed
	}

	return b.insertLocked(entry{
		typeID: typeID,
		value:  value,
		valid:  true,
	}), nil
}

// Get retrieves a value by handle.
func (b *LocalBackend) Get(handle Handle) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e := b.entryLocked(handle)
	if e == nil {
		return nil, false
	}
	return e.value, true
}

// Drop removes a resource and returns (value, true) if destructor should be called.
func (b *LocalBackend) Drop(handle Handle) (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e := b.entryLocked(handle)
	if e == nil || e.borrowCount > 0 {
		return nil, false
	}

	value := e.value
	if e.rep != 0 && b.byRep[e.rep] == handle {
		delete(b.byRep, e.rep)
	}
	e.valid = false
	e.value = nil
	e.rep = 0
	if b.reuse {
		b.freeList = append(b.freeList, handle)
	}

	return value, true
}

// Close releases all resources.
func (b *LocalBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for i := range b.entries {
		if b.entries[i].valid {
			if d, ok := b.entries[i].value.(Dropper); ok {
				d.Drop()
			}
			b.entries[i].valid = false
			b.entries[i].value = nil
		}
	}

	b.entries = nil
	b.freeList = nil
	b.byRep = nil
	return nil
}

// NewFromRep creates a handle from a representation value.
// A live entry already registered for rep is replaced in the index.
func (b *LocalBackend) NewFromRep(typeID uint32, rep uintptr, value any) Handle {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0
	}

	return b.insertLocked(entry{
		typeID: typeID,
		rep:    rep,
		value:  value,
		valid:  true,
	})
}

// Rep returns the representation value for a handle.
func (b *LocalBackend) Rep(handle Handle) (uintptr, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e := b.entryLocked(handle)
	if e == nil {
		return 0, false
	}
	return e.rep, true
}

// Lookup finds the live handle registered for rep.
func (b *LocalBackend) Lookup(rep uintptr) (Handle, bool) {
	if rep == 0 {
		return 0, false
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	h, ok := b.byRep[rep]
	return h, ok
}

// Borrow increments the borrow count for a handle.
func (b *LocalBackend) Borrow(handle Handle) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	e := b.entryLocked(handle)
	if e == nil {
		return false
	}
	e.borrowCount++
	return true
}

// ReturnBorrow decrements the borrow count for a handle.
func (b *LocalBackend) ReturnBorrow(handle Handle) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	e := b.entryLocked(handle)
	if e == nil || e.borrowCount == 0 {
		return false
	}
	e.borrowCount--
	return true
}

// Borrows returns the outstanding borrow count for a handle.
func (b *LocalBackend) Borrows(handle Handle) uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e := b.entryLocked(handle)
	if e == nil {
		return 0
	}
	return e.borrowCount
}

// TypeID returns the type ID for a handle.
func (b *LocalBackend) TypeID(handle Handle) (uint32, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e := b.entryLocked(handle)
	if e == nil {
		return 0, false
	}
	return e.typeID, true
}

// Len returns the number of active resources.
func (b *LocalBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, e := range b.entries {
		if e.valid {
			count++
		}
	}
	return count
}

// Each iterates over all active resources.
func (b *LocalBackend) Each(fn func(Handle, uint32, any) bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for i, e := range b.entries {
		if e.valid {
			if !fn(Handle(i+1), e.typeID, e.value) {
				break
			}
		}
	}
}
