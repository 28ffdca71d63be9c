package resource

import (
	"sync"
)

// UnifiedTable implements the Table interface using a Backend for storage.
type UnifiedTable struct {
	backend   *LocalBackend
	observers []Observer
	obsMu     sync.RWMutex
	closed    bool
	closeMu   sync.RWMutex
}

// NewTable creates a new unified table with a LocalBackend.
func NewTable(opts Options) *UnifiedTable {
	return &UnifiedTable{
		backend: NewLocalBackend(opts),
	}
}

func (t *UnifiedTable) isClosed() bool {
	t.closeMu.RLock()
	defer t.closeMu.RUnlock()
	return t.closed
}

// Insert adds a value and returns its handle.
func (t *UnifiedTable) Insert(typeID uint32, value any) Handle {
	if t.isClosed() {
		return 0
	}

	handle, err := t.backend.Create(typeID, value)
	if err != nil {
		return 0
	}

	t.notify(Event{
		Type:   EventCreated,
		Handle: handle,
		TypeID: typeID,
		Value:  value,
	})

	return handle
}

// InsertRep adds a value known outside the table by rep.
func (t *UnifiedTable) InsertRep(typeID uint32, rep uintptr, value any) Handle {
	if t.isClosed() {
		return 0
	}

	handle := t.backend.NewFromRep(typeID, rep, value)
	if handle == 0 {
		return 0
	}

	t.notify(Event{
		Type:   EventCreated,
		Handle: handle,
		Rep:    rep,
		TypeID: typeID,
		Value:  value,
	})

	return handle
}

// Get retrieves a value by handle.
func (t *UnifiedTable) Get(handle Handle) (any, bool) {
	return t.backend.Get(handle)
}

// GetTyped retrieves a value only if it matches the expected type.
func (t *UnifiedTable) GetTyped(handle Handle, typeID uint32) (any, bool) {
	actualTypeID, ok := t.backend.TypeID(handle)
	if !ok || actualTypeID != typeID {
		return nil, false
	}
	return t.backend.Get(handle)
}

// Lookup finds the handle registered for rep.
func (t *UnifiedTable) Lookup(rep uintptr) (Handle, bool) {
	return t.backend.Lookup(rep)
}

// Remove drops a resource and returns (value, true) if found.
// Resources with outstanding borrows are not removed.
func (t *UnifiedTable) Remove(handle Handle) (any, bool) {
	typeID, _ := t.backend.TypeID(handle)
	rep, _ := t.backend.Rep(handle)
	value, ok := t.backend.Drop(handle)
	if !ok {
		return nil, false
	}

	if d, ok := value.(Dropper); ok {
		d.Drop()
	}

	t.notify(Event{
		Type:   EventDropped,
		Handle: handle,
		Rep:    rep,
		TypeID: typeID,
		Value:  value,
	})

	return value, true
}

// Borrow marks handle as lent out; it cannot be removed until returned.
func (t *UnifiedTable) Borrow(handle Handle) bool {
	if !t.backend.Borrow(handle) {
		return false
	}
	typeID, _ := t.backend.TypeID(handle)
	t.notify(Event{
		Type:   EventBorrowed,
		Handle: handle,
		TypeID: typeID,
	})
	return true
}

// ReturnBorrow ends one borrow of handle.
func (t *UnifiedTable) ReturnBorrow(handle Handle) bool {
	if !t.backend.ReturnBorrow(handle) {
		return false
	}
	typeID, _ := t.backend.TypeID(handle)
	t.notify(Event{
		Type:   EventBorrowReturned,
		Handle: handle,
		TypeID: typeID,
	})
	return true
}

// Borrowed reports whether handle has outstanding borrows.
func (t *UnifiedTable) Borrowed(handle Handle) bool {
	return t.backend.Borrows(handle) > 0
}

// Subscribe adds an observer for lifecycle events.
func (t *UnifiedTable) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *UnifiedTable) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of active resources.
func (t *UnifiedTable) Len() int {
	return t.backend.Len()
}

// Count returns the number of active resources of typeID.
func (t *UnifiedTable) Count(typeID uint32) int {
	n := 0
	t.backend.Each(func(_ Handle, id uint32, _ any) bool {
		if id == typeID {
			n++
		}
		return true
	})
	return n
}

// Each iterates over all active resources.
func (t *UnifiedTable) Each(fn func(Handle, uint32, any) bool) {
	t.backend.Each(fn)
}

// Clear drops all resources.
func (t *UnifiedTable) Clear() {
	// Collect handles first to avoid holding lock during Remove
	var handles []Handle
	t.backend.Each(func(h Handle, typeID uint32, value any) bool {
		handles = append(handles, h)
		return true
	})
	for _, h := range handles {
		for t.backend.ReturnBorrow(h) {
		}
		t.Remove(h)
	}
}

// Close releases all resources and stops accepting operations.
func (t *UnifiedTable) Close() error {
	t.closeMu.Lock()
	t.closed = true
	t.closeMu.Unlock()

	return t.backend.Close()
}

// Backend returns the underlying backend.
func (t *UnifiedTable) Backend() RepBackend {
	return t.backend
}

func (t *UnifiedTable) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}
