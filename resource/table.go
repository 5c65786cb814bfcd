package resource

import (
	"sync"
)

// UnifiedTable implements Table on a Backend.
type UnifiedTable struct {
	backend   Backend
	observers []Observer
	obsMu     sync.RWMutex
	closed    bool
	closeMu   sync.RWMutex
}

// NewTable creates a new table with a LocalBackend.
func NewTable() *UnifiedTable {
	return &UnifiedTable{backend: NewLocalBackend()}
}

// Insert adds a value and returns its handle, or 0 once the table is closed.
func (t *UnifiedTable) Insert(tag Tag, value any) Handle {
	t.closeMu.RLock()
	if t.closed {
		t.closeMu.RUnlock()
		return 0
	}
	t.closeMu.RUnlock()

	handle, err := t.backend.Create(tag, value)
	if err != nil {
		return 0
	}

	t.notify(Event{
		Type:   EventCreated,
		Handle: handle,
		Tag:    tag,
		Value:  value,
	})

	return handle
}

// Get retrieves a value by handle.
func (t *UnifiedTable) Get(handle Handle) (any, bool) {
	return t.backend.Get(handle)
}

// Pin marks handle as in use until the matching Unpin.
func (t *UnifiedTable) Pin(handle Handle) bool {
	return t.backend.Pin(handle)
}

// Unpin releases one Pin.
func (t *UnifiedTable) Unpin(handle Handle) {
	t.backend.Unpin(handle)
}

// Remove drops a value and returns it. A pinned handle is refused with
// ErrPinned and stays in the table.
func (t *UnifiedTable) Remove(handle Handle) (any, error) {
	tag, _ := t.backend.Tag(handle)
	value, err := t.backend.Drop(handle)
	if err != nil {
		return nil, err
	}

	t.notify(Event{
		Type:   EventDropped,
		Handle: handle,
		Tag:    tag,
		Value:  value,
	})

	return value, nil
}

// Each iterates over live values in handle order. fn must not modify the
// table; collect handles and act on them afterwards.
func (t *UnifiedTable) Each(fn func(Handle, Tag, any) bool) {
	t.backend.Each(fn)
}

// Pinned returns the number of live handles currently pinned.
func (t *UnifiedTable) Pinned() int {
	return t.backend.Pinned()
}

// Subscribe adds an observer for lifecycle events.
func (t *UnifiedTable) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Len returns the number of live values.
func (t *UnifiedTable) Len() int {
	return t.backend.Len()
}

// Close stops accepting inserts and drops whatever is left without
// notifying observers. Owners that need events remove values first.
func (t *UnifiedTable) Close() error {
	t.closeMu.Lock()
	t.closed = true
	t.closeMu.Unlock()

	return t.backend.Close()
}

func (t *UnifiedTable) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}

var _ Table = (*UnifiedTable)(nil)
