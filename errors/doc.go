// Package errors provides structured error types for the quest bridge.
//
// Errors are categorized by Phase (where in the handle lifecycle the error
// occurred) and Kind. Three kinds matter to callers:
//
//   - KindEngineFault: the engine rejected the call. Handles stay usable.
//   - KindContractViolation: the caller misused a handle, e.g. use after
//     Close. The engine was not reached.
//   - KindInternalInconsistency: the bridge is miswired. Treat as a bug.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseCall, errors.KindContractViolation).
//		Op("hadamard").
//		Detail("register %s is %s", id, state).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.EngineFault("hadamard", "hadamard", "Invalid target qubit 5. Must be >=0 and <3.")
//	err := errors.LengthMismatch("setAmps", "imag", 3, 4)
//
// Sentinels match on Kind only:
//
//	if errors.Is(err, errors.ErrEngineFault) { ... }
package errors
