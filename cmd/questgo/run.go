package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wippyai/quest-go/circuit"
)

var runFlags struct {
	check bool
	quiet bool
}

var runCmd = &cobra.Command{
	Use:   "run <circuit.yaml>",
	Short: "Run a circuit file",
	Long: `Run every step of a YAML circuit on a fresh register and print the
output of steps that produce one.

Example circuit:

  name: bell
  qubits: 2
  steps:
    - {op: h, qubits: [0]}
    - {op: cnot, qubits: [0, 1]}
    - {op: prob, qubits: [1], params: [1]}`,
	Args: cobra.ExactArgs(1),
	RunE: runCircuit,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runFlags.check, "check", false, "validate the circuit without running it")
	runCmd.Flags().BoolVarP(&runFlags.quiet, "quiet", "q", false, "print only step outputs")
}

func runCircuit(cmd *cobra.Command, args []string) error {
	c, err := circuit.Load(args[0])
	if err != nil {
		return err
	}
	if err := c.Check(); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if runFlags.check {
		fmt.Fprintf(out, "%s: %d steps on %d qubits, ok\n", args[0], len(c.Steps), c.Qubits)
		return nil
	}

	if err := checkQubits(c.Qubits, c.Density); err != nil {
		return err
	}
	return withSession(func(s *session) error {
		r, err := c.NewRegister(s.env)
		if err != nil {
			return err
		}
		defer r.Close()

		results, runErr := c.Run(r)
		for _, res := range results {
			switch {
			case res.Output != "" && runFlags.quiet:
				fmt.Fprintln(out, res.Output)
			case res.Output != "":
				fmt.Fprintf(out, "%-24s %s\n", res.Step, res.Output)
			case !runFlags.quiet:
				fmt.Fprintln(out, res.Step)
			}
		}
		return runErr
	})
}
