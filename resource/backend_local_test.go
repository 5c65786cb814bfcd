package resource

import (
	"errors"
	"sync"
	"testing"
)

func TestLocalBackend_Basic(t *testing.T) {
	b := NewLocalBackend()

	handle, err := b.Create(1, "register")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if handle == 0 {
		t.Fatal("Expected non-zero handle")
	}

	val, ok := b.Get(handle)
	if !ok || val != "register" {
		t.Fatalf("Get = %v, %v", val, ok)
	}

	tag, ok := b.Tag(handle)
	if !ok || tag != 1 {
		t.Fatalf("Tag = %d, %v", tag, ok)
	}

	val, err = b.Drop(handle)
	if err != nil {
		t.Fatalf("Drop failed: %v", err)
	}
	if val != "register" {
		t.Fatalf("Expected 'register', got %v", val)
	}

	if _, ok := b.Get(handle); ok {
		t.Fatal("Expected Get to fail after Drop")
	}
	if _, err := b.Drop(handle); !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("second Drop: %v, want ErrInvalidHandle", err)
	}
}

func TestLocalBackend_Pin(t *testing.T) {
	b := NewLocalBackend()
	h, _ := b.Create(1, "busy")

	for i := 0; i < 3; i++ {
		if !b.Pin(h) {
			t.Fatalf("Pin %d failed", i)
		}
	}
	if b.Pinned() != 1 {
		t.Fatalf("Pinned = %d, want 1", b.Pinned())
	}

	if _, err := b.Drop(h); !errors.Is(err, ErrPinned) {
		t.Fatalf("Drop while pinned: %v, want ErrPinned", err)
	}
	if _, ok := b.Get(h); !ok {
		t.Fatal("refused Drop must leave the handle live")
	}

	for i := 0; i < 3; i++ {
		if !b.Unpin(h) {
			t.Fatalf("Unpin %d failed", i)
		}
	}
	if b.Unpin(h) {
		t.Fatal("Unpin below zero should fail")
	}

	if _, err := b.Drop(h); err != nil {
		t.Fatalf("Drop after unpin: %v", err)
	}
	if b.Pin(h) {
		t.Fatal("Pin on dropped handle should fail")
	}
}

func TestLocalBackend_HandleReuse(t *testing.T) {
	b := NewLocalBackend()

	h1, _ := b.Create(1, "a")
	h2, _ := b.Create(1, "b")
	h3, _ := b.Create(1, "c")

	b.Drop(h2)
	h4, _ := b.Create(2, "d")
	if h4.slot() != h2.slot() {
		t.Fatalf("expected freed slot %d to be reused, got %d", h2.slot(), h4.slot())
	}
	if h4 == h2 {
		t.Fatal("reused slot must carry a new generation")
	}

	if tag, _ := b.Tag(h4); tag != 2 {
		t.Fatalf("reused handle kept old tag %d", tag)
	}
	for _, h := range []Handle{h1, h3, h4} {
		if _, ok := b.Get(h); !ok {
			t.Fatalf("handle %d should be valid", h)
		}
	}
}

func TestLocalBackend_StaleHandle(t *testing.T) {
	b := NewLocalBackend()

	stale, _ := b.Create(1, "old")
	b.Drop(stale)
	fresh, _ := b.Create(1, "new")

	if _, ok := b.Get(stale); ok {
		t.Fatal("stale handle resolved to the slot's new value")
	}
	if b.Pin(stale) {
		t.Fatal("stale handle pinned the slot's new value")
	}
	if b.Pinned() != 0 {
		t.Fatalf("Pinned = %d after stale Pin", b.Pinned())
	}
	if b.Unpin(stale) {
		t.Fatal("stale handle unpinned")
	}
	if _, err := b.Drop(stale); !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("Drop stale: %v, want ErrInvalidHandle", err)
	}
	if _, err := b.Drop(fresh); err != nil {
		t.Fatalf("Drop fresh: %v", err)
	}
}

func TestLocalBackend_ReusedHandleStartsUnpinned(t *testing.T) {
	b := NewLocalBackend()

	h, _ := b.Create(1, "a")
	b.Pin(h)
	b.Unpin(h)
	b.Drop(h)

	h2, _ := b.Create(1, "b")
	if _, err := b.Drop(h2); err != nil {
		t.Fatalf("fresh handle should drop: %v", err)
	}
}

func TestLocalBackend_Close(t *testing.T) {
	b := NewLocalBackend()

	h, _ := b.Create(1, "a")
	b.Create(1, "b")

	if err := b.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, ok := b.Get(h); ok {
		t.Fatal("Get after Close should fail")
	}
	if b.Len() != 0 {
		t.Fatalf("Len after Close = %d", b.Len())
	}

	if _, err := b.Create(1, "late"); !errors.Is(err, ErrClosed) {
		t.Fatal("Expected ErrClosed after Close")
	}
	if err := b.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestLocalBackend_Concurrent(t *testing.T) {
	b := NewLocalBackend()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			h, err := b.Create(1, id)
			if err != nil {
				t.Errorf("Create: %v", err)
				return
			}
			for j := 0; j < 10; j++ {
				if !b.Pin(h) {
					t.Errorf("Pin %d failed", h)
					return
				}
				b.Unpin(h)
			}
			if _, err := b.Drop(h); err != nil {
				t.Errorf("Drop %d: %v", h, err)
			}
		}(i)
	}

	wg.Wait()
	if b.Len() != 0 {
		t.Fatalf("Len = %d after all drops", b.Len())
	}
}

func TestLocalBackend_Len(t *testing.T) {
	b := NewLocalBackend()

	if b.Len() != 0 {
		t.Fatal("Expected Len() == 0 initially")
	}

	h1, _ := b.Create(1, "a")
	h2, _ := b.Create(1, "b")
	b.Create(1, "c")

	if b.Len() != 3 {
		t.Fatalf("Expected Len() == 3, got %d", b.Len())
	}

	b.Drop(h1)
	b.Drop(h2)
	if b.Len() != 1 {
		t.Fatalf("Expected Len() == 1, got %d", b.Len())
	}
}

func TestLocalBackend_Each(t *testing.T) {
	b := NewLocalBackend()

	b.Create(1, "a")
	h, _ := b.Create(2, "b")
	b.Create(1, "c")
	b.Drop(h)

	var seen []any
	b.Each(func(h Handle, tag Tag, value any) bool {
		seen = append(seen, value)
		return true
	})
	if len(seen) != 2 || seen[0] != "a" || seen[1] != "c" {
		t.Fatalf("Each visited %v", seen)
	}

	count := 0
	b.Each(func(Handle, Tag, any) bool {
		count++
		return false
	})
	if count != 1 {
		t.Fatalf("Expected early termination after 1 item, got %d", count)
	}
}

func TestLocalBackend_InvalidHandle(t *testing.T) {
	b := NewLocalBackend()

	if _, ok := b.Get(0); ok {
		t.Fatal("Handle 0 should be invalid")
	}
	if b.Pin(0) || b.Unpin(0) {
		t.Fatal("Handle 0 should fail Pin/Unpin")
	}
	if _, err := b.Drop(0); !errors.Is(err, ErrInvalidHandle) {
		t.Fatal("Handle 0 should fail Drop")
	}
	if _, ok := b.Get(999); ok {
		t.Fatal("Non-existent handle should be invalid")
	}
}
