// Package questgo makes an unforgiving quantum simulation engine safe to call
// from ordinary Go code.
//
// The engine reports invalid input through a process-wide fault callback
// that, left alone, prints and exits. This module replaces that callback,
// carries each fault back to the goroutine whose call raised it, and turns
// it into an error value. Handles stay usable after a fault.
//
// # Architecture Overview
//
//	questgo/
//	├── engine/    Pure Go state-vector and density-matrix simulator
//	├── fault/     Fault channel, interceptor and call guards
//	├── quest/     Env and Register handles, one method per engine operation
//	├── resource/  Register table with pins for in-flight calls
//	├── errors/    Structured errors: engine fault, contract violation, internal
//	├── config/    YAML configuration with QUESTGO_* overrides
//	├── metrics/   Prometheus collector for calls, faults and live registers
//	├── circuit/   YAML circuits, a line syntax and Grover search
//	└── cmd/       The questgo command
//
// # Quick Start
//
//	env, err := quest.NewEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer env.Close()
//
//	r, err := quest.NewRegister(env, 2)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	_ = r.Hadamard(0)
//	_ = r.ControlledNot(0, 1)
//
//	err = r.Hadamard(5)
//	// [call] engine_fault in hadamard: Invalid target qubit 5. Must be >=0 and <2.
//
// # Thread Safety
//
// Env and Register are safe for concurrent use. Calls on distinct registers
// run in parallel. Calls on the same register are not serialized by the
// bridge; callers that share a register across goroutines must order their
// operations themselves.
//
// # Lifecycle
//
// Only one Env may be active per process. Closing it with registers still
// open either releases them and reports the leak, or refuses, depending on
// the outstanding policy. A register with a call in flight cannot be closed.
package questgo
