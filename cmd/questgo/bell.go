package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wippyai/quest-go/quest"
)

var bellFlags struct {
	shots int
}

var bellCmd = &cobra.Command{
	Use:   "bell",
	Short: "Prepare a Bell pair and sample it",
	Long: `Prepare (|00> + |11>)/sqrt(2) with H and CNOT, print its amplitudes and
measure both qubits --shots times. Only 00 and 11 should ever appear.`,
	Args: cobra.NoArgs,
	RunE: runBell,
}

func init() {
	rootCmd.AddCommand(bellCmd)

	bellCmd.Flags().IntVarP(&bellFlags.shots, "shots", "n", 100, "number of measurements")
}

func runBell(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	return withSession(func(s *session) error {
		r, err := s.newRegister(2, false)
		if err != nil {
			return err
		}
		defer r.Close()

		if err := prepareBell(r); err != nil {
			return err
		}
		for i := int64(0); i < r.NumAmps(); i++ {
			amp, err := r.Amp(i)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "|%02b>  %.6f%+.6fi\n", i, real(amp), imag(amp))
		}

		counts, err := sampleBell(r, bellFlags.shots)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%d shots\n", bellFlags.shots)
		for _, k := range []string{"00", "01", "10", "11"} {
			fmt.Fprintf(out, "  %s  %d\n", k, counts[k])
		}
		return nil
	})
}

func prepareBell(r *quest.Register) error {
	if err := r.InitZeroState(); err != nil {
		return err
	}
	if err := r.Hadamard(0); err != nil {
		return err
	}
	return r.ControlledNot(0, 1)
}

// sampleBell re-prepares the pair before every shot since measurement
// collapses it.
func sampleBell(r *quest.Register, shots int) (map[string]int, error) {
	counts := make(map[string]int, 4)
	for i := 0; i < shots; i++ {
		if err := prepareBell(r); err != nil {
			return counts, err
		}
		a, err := r.Measure(0)
		if err != nil {
			return counts, err
		}
		b, err := r.Measure(1)
		if err != nil {
			return counts, err
		}
		counts[fmt.Sprintf("%d%d", b, a)]++
	}
	return counts, nil
}
