package resource

// Handle is an opaque reference to a value in a table. The low 32 bits
// select a slot and the high 32 bits hold the slot's generation, so a handle
// kept after its value was removed never matches the slot's next occupant.
// Handle 0 is reserved and always invalid.
type Handle uint64

func makeHandle(slot, gen uint32) Handle {
	return Handle(gen)<<32 | Handle(slot)
}

func (h Handle) slot() uint32 { return uint32(h) }

func (h Handle) gen() uint32 { return uint32(h >> 32) }

// Tag classifies the values held in a table. Its meaning is up to the owner.
type Tag uint8

// EventType identifies a lifecycle notification.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Event represents a lifecycle event.
type Event struct {
	Value  any
	Handle Handle
	Tag    Tag
	Type   EventType
}

// Observer receives notifications about lifecycle events. Observers are
// called synchronously on the goroutine that changed the table and must not
// call back into it.
type Observer interface {
	OnResourceEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// OnResourceEvent calls f(e).
func (f ObserverFunc) OnResourceEvent(e Event) { f(e) }

// Backend provides the underlying storage.
type Backend interface {
	// Create stores a value and returns a handle.
	Create(tag Tag, value any) (Handle, error)

	// Get retrieves a value by handle.
	Get(handle Handle) (any, bool)

	// Tag returns the tag of a live handle.
	Tag(handle Handle) (Tag, bool)

	// Pin marks the handle as in use. A pinned handle cannot be dropped.
	Pin(handle Handle) bool

	// Unpin releases one Pin.
	Unpin(handle Handle) bool

	// Drop removes a value. It fails with ErrInvalidHandle or ErrPinned.
	Drop(handle Handle) (any, error)

	// Each iterates over live values in handle order.
	Each(fn func(Handle, Tag, any) bool)

	// Len and Pinned count live and pinned handles.
	Len() int
	Pinned() int

	// Close releases everything held by the backend.
	Close() error
}

// Table tracks live values with tag information and observer support.
type Table interface {
	Insert(tag Tag, value any) Handle
	Get(handle Handle) (any, bool)
	Pin(handle Handle) bool
	Unpin(handle Handle)
	Remove(handle Handle) (any, error)
	Each(func(Handle, Tag, any) bool)
	Pinned() int
	Subscribe(Observer)
	Len() int
	Close() error
}
