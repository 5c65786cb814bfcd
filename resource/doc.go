// Package resource provides handle tables for values owned on behalf of
// callers.
//
// A table maps small integer handles to Go values, tags each value with a
// caller-defined class, and reports lifecycle events to observers. Package
// quest uses one table per environment to track live registers, find the
// ones still outstanding at finalization, and feed logging and metrics.
//
// # Handle Table
//
//	table := resource.NewTable()
//
//	h := table.Insert(tagStateVector, reg)
//	v, ok := table.Get(h)
//	v, err := table.Remove(h)
//
// Handle 0 is never issued. Freed slots are reused under a new generation,
// so a handle kept past Remove stays invalid instead of resolving to the
// slot's next value.
//
// # Pins
//
// A pin marks a handle as in use by an operation:
//
//	if !table.Pin(h) {
//	    // already removed
//	}
//	defer table.Unpin(h)
//
// Remove refuses a pinned handle with ErrPinned and leaves it live, which is
// how a close racing an in-flight operation is detected. Pins on distinct
// handles do not contend with each other.
//
// # Observers
//
//	table.Subscribe(resource.ObserverFunc(func(e resource.Event) {
//	    log.Printf("handle %d %s", e.Handle, e.Type)
//	}))
//
// Observers run synchronously after the change and must not call back into
// the table.
package resource
