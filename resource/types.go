package resource

// Handle is an opaque reference to a resource in a table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Event types for resource lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
	EventBorrowed
	EventBorrowReturned
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventDropped:
		return "dropped"
	case EventBorrowed:
		return "borrowed"
	case EventBorrowReturned:
		return "borrow_returned"
	}
	return "unknown"
}

// Event represents a resource lifecycle event.
type Event struct {
	Value  any
	Rep    uintptr
	Handle Handle
	TypeID uint32
	Type   EventType
}

// Observer receives notifications about resource lifecycle events.
type Observer interface {
	OnResourceEvent(Event)
}

// Backend provides the underlying storage mechanism for resources.
type Backend interface {
	// Create stores a value and returns a handle.
	Create(typeID uint32, value any) (Handle, error)

	// Get retrieves a value by handle.
	Get(handle Handle) (any, bool)

	// Drop removes a resource and returns (value, true) if destructor should be called.
	// Returns (nil, false) if handle is invalid or has outstanding borrows.
	Drop(handle Handle) (any, bool)

	// Close releases all resources held by the backend.
	Close() error
}

// RepBackend extends Backend with foreign representations. A rep is the
// value a resource is known by outside the table, typically a pointer
// returned by a native library.
type RepBackend interface {
	Backend

	// NewFromRep creates a handle for a representation value.
	NewFromRep(typeID uint32, rep uintptr, value any) Handle

	// Rep returns the representation value for a handle.
	Rep(handle Handle) (uintptr, bool)

	// Lookup finds the live handle registered for rep.
	Lookup(rep uintptr) (Handle, bool)

	// Borrow increments the borrow count for a handle.
	Borrow(handle Handle) bool

	// ReturnBorrow decrements the borrow count for a handle.
	ReturnBorrow(handle Handle) bool

	// Borrows returns the outstanding borrow count for a handle.
	Borrows(handle Handle) uint32
}

// Table manages resources with type information and observer support.
type Table interface {
	// Insert adds a value and returns its handle.
	Insert(typeID uint32, value any) Handle

	// Get retrieves a value by handle.
	Get(handle Handle) (any, bool)

	// GetTyped retrieves a value only if it matches the expected type.
	GetTyped(handle Handle, typeID uint32) (any, bool)

	// Remove drops a resource and returns (value, true) if found.
	Remove(handle Handle) (any, bool)

	// Subscribe adds an observer for lifecycle events.
	Subscribe(Observer)

	// Unsubscribe removes an observer.
	Unsubscribe(Observer)

	// Len returns the number of active resources.
	Len() int

	// Clear drops all resources.
	Clear()

	// Close releases all resources and stops accepting operations.
	Close() error
}

// Dropper is optionally implemented by resource values that need cleanup.
type Dropper interface {
	Drop()
}

// Options configures a table.
type Options struct {
	// ReuseHandles recycles dropped handles. Leave it off when stale
	// handles must be detected, since a recycled handle makes a double
	// release look like a valid one.
	ReuseHandles bool
}
