package resource

import (
	"errors"
	"sync"
	"sync/atomic"
)

var (
	ErrClosed        = errors.New("resource backend closed")
	ErrInvalidHandle = errors.New("invalid resource handle")
	ErrPinned        = errors.New("resource is in use")
)

// LocalBackend is an in-memory backend with pin tracking. Pin and Unpin
// take only the read lock, so pins on distinct handles do not contend.
type LocalBackend struct {
	entries  []*entry
	freeList []uint32
	mu       sync.RWMutex
	closed   bool
}

type entry struct {
	value any
	pins  atomic.Int32
	gen   uint32
	tag   Tag
	valid bool
}

// NewLocalBackend creates a new in-memory backend.
func NewLocalBackend() *LocalBackend {
	return &LocalBackend{
		entries:  make([]*entry, 0, 16),
		freeList: make([]uint32, 0, 8),
	}
}

// Create stores a value and returns a handle. Freed slots are reused under
// a new generation.
func (b *LocalBackend) Create(tag Tag, value any) (Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, ErrClosed
	}

	if n := len(b.freeList); n > 0 {
		slot := b.freeList[n-1]
		b.freeList = b.freeList[:n-1]
		e := b.entries[slot-1]
		e.value, e.tag, e.valid = value, tag, true
		e.gen++
		e.pins.Store(0)
		return makeHandle(slot, e.gen), nil
	}

	b.entries = append(b.entries, &entry{value: value, tag: tag, valid: true})
	return makeHandle(uint32(len(b.entries)), 0), nil
}

// lookup returns the live entry for handle. Callers hold b.mu.
func (b *LocalBackend) lookup(handle Handle) *entry {
	slot := handle.slot()
	if slot == 0 || int(slot) > len(b.entries) {
		return nil
	}
	e := b.entries[slot-1]
	if !e.valid || e.gen != handle.gen() {
		return nil
	}
	return e
}

// Get retrieves a value by handle.
func (b *LocalBackend) Get(handle Handle) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e := b.lookup(handle)
	if e == nil {
		return nil, false
	}
	return e.value, true
}

// Tag returns the tag of a live handle.
func (b *LocalBackend) Tag(handle Handle) (Tag, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e := b.lookup(handle)
	if e == nil {
		return 0, false
	}
	return e.tag, true
}

// Pin marks the handle as in use.
func (b *LocalBackend) Pin(handle Handle) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e := b.lookup(handle)
	if e == nil {
		return false
	}
	e.pins.Add(1)
	return true
}

// Unpin releases one Pin.
func (b *LocalBackend) Unpin(handle Handle) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e := b.lookup(handle)
	if e == nil {
		return false
	}
	for {
		n := e.pins.Load()
		if n == 0 {
			return false
		}
		if e.pins.CompareAndSwap(n, n-1) {
			return true
		}
	}
}

// Drop removes a value. Pinned handles are refused with ErrPinned and stay
// live.
func (b *LocalBackend) Drop(handle Handle) (any, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e := b.lookup(handle)
	if e == nil {
		return nil, ErrInvalidHandle
	}
	if e.pins.Load() > 0 {
		return nil, ErrPinned
	}

	value := e.value
	e.valid = false
	e.value = nil
	b.freeList = append(b.freeList, handle.slot())
	return value, nil
}

// Close drops every live value.
func (b *LocalBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for _, e := range b.entries {
		e.valid = false
		e.value = nil
	}

	b.entries = nil
	b.freeList = nil
	return nil
}

// Len returns the number of live values.
func (b *LocalBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries) - len(b.freeList)
}

// Pinned returns the number of live handles with at least one pin.
func (b *LocalBackend) Pinned() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, e := range b.entries {
		if e.valid && e.pins.Load() > 0 {
			count++
		}
	}
	return count
}

// Each iterates over live values in handle order. The read lock is held for
// the duration, so fn must not modify the backend.
func (b *LocalBackend) Each(fn func(Handle, Tag, any) bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for i, e := range b.entries {
		if e.valid {
			if !fn(makeHandle(uint32(i+1), e.gen), e.tag, e.value) {
				break
			}
		}
	}
}

var _ Backend = (*LocalBackend)(nil)
