// Package quest is the recoverable, concurrency-safe surface over the
// simulation engine.
//
// The engine reports every failure by calling a process-wide callback that
// is not allowed to return. This package installs the fault interceptor
// (package fault) before the first engine call and routes every call
// through the call guard, so an engine failure becomes an ordinary error on
// the goroutine that made the call and the process keeps running.
//
// # Quick Start
//
//	env, err := quest.NewEnv(quest.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	defer env.Close()
//
//	reg, err := quest.NewRegister(env, 3)
//	if err != nil {
//	    return err
//	}
//	defer reg.Close()
//
//	if err := reg.Hadamard(5); err != nil {
//	    // [call] engine_fault in hadamard: Invalid target qubit 5. Must be >=0 and <3.
//	}
//	reg.Hadamard(0) // reg is still usable
//
// # Errors
//
// Every method returns a *errors.Error on failure:
//
//	errors.KindEngineFault           the engine rejected the call; handles stay valid
//	errors.KindContractViolation     misuse caught before the engine was reached
//	errors.KindInternalInconsistency the bridge itself is miswired
//
// Contract violations include use after Close, a second Close, operands
// from different environments, slices of mismatched length, and closing a
// register while another goroutine is inside a call on it.
//
// # Lifecycle
//
// An Env moves from uninitialized to active to finalized, and at most one is
// active per process. A Register moves from allocated to active to
// deallocated. Every call checks both handles before reaching the engine.
//
// What Env.Close does with registers that are still open is chosen with
// WithOutstandingPolicy. PolicyRelease (the default) deallocates them,
// finalizes, and returns a contract violation naming them. PolicyReject
// returns the violation and leaves everything open.
//
// # Concurrency
//
// Distinct registers may be driven from distinct goroutines at the same
// time; see Capabilities. Calls on one register must be serialized by the
// caller. Close never races a call: a register with a call in flight
// refuses to close.
package quest
