// Command questgo drives the quest bridge from the command line.
//
// Usage:
//
//	# Run a circuit file and print step outputs
//	questgo run circuit.yaml
//
//	# Prepare a Bell pair and sample it
//	questgo bell --shots 100
//
//	# Grover search over 2^n elements
//	questgo grover --qubits 8 --solution 17
//
//	# Fault isolation under concurrency
//	questgo stress --workers 32 --rounds 200
//
//	# Interactive register shell
//	questgo shell --qubits 3
//
// Configuration is read from --config (or QUESTGO_CONFIG), then QUESTGO_*
// environment variables, then flags.
package main

func main() {
	Execute()
}
