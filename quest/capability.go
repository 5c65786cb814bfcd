package quest

import (
	"strings"

	"github.com/wippyai/quest-go/engine"
	"github.com/wippyai/quest-go/fault"
)

// Capability is a concurrency permission granted to handles.
type Capability uint8

const (
	// CapShare: a handle may be referenced from several goroutines at once.
	// Calls on the same Register are not synchronized: overlapping calls
	// race on its amplitudes and their results are undefined unless the
	// caller serializes them. Lifecycle stays safe: Close is refused while
	// any call is in flight.
	CapShare Capability = 1 << iota

	// CapTransfer: a handle may be handed to and used from a goroutine other
	// than the one that created it.
	CapTransfer
)

func (c Capability) Has(other Capability) bool {
	return c&other == other
}

func (c Capability) String() string {
	if c == 0 {
		return "none"
	}
	var parts []string
	if c.Has(CapShare) {
		parts = append(parts, "share")
	}
	if c.Has(CapTransfer) {
		parts = append(parts, "transfer")
	}
	return strings.Join(parts, "|")
}

// capabilities is the single place where concurrency permissions are
// decided. Both are granted only when:
//
//   - the fault interceptor is installed, so a fault unwinds only the
//     goroutine that raised it and its record reaches only that goroutine's
//     guard;
//   - the engine declares that each call touches nothing shared beyond the
//     registers passed to it (engine.PerCallStateIsolated);
//   - handle state is atomic and close is refused while a call is in
//     flight (see Register.Close).
//
// If the engine ever stops declaring isolation, both permissions are
// withdrawn here rather than at each call site.
func capabilities() Capability {
	if !fault.Installed() || !engine.PerCallStateIsolated {
		return 0
	}
	return CapShare | CapTransfer
}
