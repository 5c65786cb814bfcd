// Package circuit describes gate sequences and applies them to registers.
//
// Circuits are written in YAML:
//
//	name: bell
//	qubits: 2
//	steps:
//	  - {op: h, qubits: [0]}
//	  - {op: cnot, qubits: [0, 1]}
//	  - {op: measure, qubits: [0]}
//	  - {op: measure, qubits: [1]}
//
// or one step per line, as the interactive shell reads them:
//
//	h 0
//	cnot 0 1
//	rx 0 pi/2
//	measure 0
//
// Every step goes through the register's guarded operation surface, so an
// out-of-range qubit comes back as an engine fault and the circuit stops
// there with the register still usable.
package circuit
