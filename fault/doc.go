// Package fault turns the engine's abort-on-error callback into per-call,
// recoverable errors.
//
// The engine reports every failure through one process-wide callback and
// offers no error returns. This package supplies the three pieces that make
// that usable from concurrent code:
//
//	Interceptor  - the callback itself, installed once by Install
//	Channel      - a lock-free conduit for fault records
//	Guard        - Call / CallValue, the only sanctioned way into the engine
//
// # Control Flow
//
//	caller -> Call(op, fn) -> engine function
//	                              |
//	                       (input rejected)
//	                              v
//	                     intercept(msg, fn)
//	                       |  Channel.Send -> ticket
//	                       |  panic(unwind{ticket})
//	                       v
//	        Call recovers unwind -> Channel.Receive(ticket) -> *errors.Error
//
// The interceptor runs synchronously on the goroutine that made the failing
// call, so the ticket travels on that goroutine's own stack. A guard can only
// ever drain the record its own call produced; records from other goroutines
// are invisible to it.
//
// # Usage
//
//	fault.MustInstall() // during startup, before any goroutines use the engine
//
//	err := fault.Call("hadamard", func() { engine.Hadamard(q, 5) })
//	// err: [call] engine_fault in hadamard: Invalid target qubit 5. Must be >=0 and <3.
//
//	p, err := fault.CallValue("calcTotalProb", func() engine.Qreal {
//	    return engine.CalcTotalProb(q)
//	})
//
// # Fatal Conditions
//
// Failing to install the interceptor, or a full channel at send time, ends
// the process. Both happen before or instead of a valid call and leave no
// safe way to continue.
//
// # Thread Safety
//
// Install is idempotent and intended for single-threaded startup. After that
// the interceptor is a fixed function pointer and needs no locking. Call,
// CallValue and the Channel are safe for concurrent use; no lock is shared
// between goroutines on either the normal or the fault path.
package fault
