// Package engine is the numerical simulation engine wrapped by this module.
//
// It simulates state-vector and density-matrix quantum registers and exposes
// the flat, C-style surface of the native library it stands in for: free
// functions over *Env and *Qureg values, no error returns, and a single
// process-wide fault callback.
//
// # Failure Model
//
// Every function validates its inputs. On any violation it formats a message
// and calls the installed FaultHandler on the failing goroutine:
//
//	engine.Hadamard(q, 5) // q has 3 qubits
//	// -> handler("Invalid target qubit 5. Must be >=0 and <3.", "hadamard")
//
// The default handler prints the message and exits the process with status 1.
// A handler is not permitted to return; if it does the engine exits anyway.
// Callers that need recoverable errors must install a handler that leaves the
// call by other means (see package fault) and must never call these functions
// directly.
//
// # Lifecycle
//
//	env := engine.CreateEnv()          // one per process
//	q := engine.CreateQureg(3, env)    // many per env
//	engine.Hadamard(q, 0)
//	engine.DestroyQureg(q, env)
//	engine.DestroyEnv(env)
//
// # Storage
//
// A state-vector of n qubits holds 2^n amplitudes. A density matrix of n
// qubits is stored as a state-vector of 2n qubits in column-major order, so
// one-qubit unitaries are applied once to the row half and conjugated to the
// column half.
//
// # Precision
//
// Qreal and Qcomplex are float64/complex128 by default. Build with the
// quest_single tag for float32/complex64. The quest_double tag selects double
// precision explicitly; setting both tags is a compile error.
//
// # Thread Safety
//
// Env is read-only after CreateEnv apart from SeedQuEST. Each operation
// mutates only the Qureg passed to it, and every Qureg carries its own
// measurement generator, so distinct Quregs may be used from distinct
// goroutines concurrently. A single Qureg is not reentrant.
package engine

// PerCallStateIsolated declares that per-call operations touch no shared
// mutable state outside the Qureg arguments. Handle capabilities in package
// quest are gated on it.
const PerCallStateIsolated = true
