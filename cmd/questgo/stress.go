package main

import (
	stderrors "errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/quest-go/errors"
	"github.com/wippyai/quest-go/quest"
)

const stressQubits = 3

var stressFlags struct {
	workers int
	rounds  int
}

var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Interleave valid calls and engine faults across goroutines",
	Long: `Each worker owns a register and alternates a valid gate with a call that
targets a qubit out of range. Every fault must come back to the worker that
caused it, carrying that worker's own qubit index, and every register must
stay normalised.`,
	Args: cobra.NoArgs,
	RunE: runStress,
}

func init() {
	rootCmd.AddCommand(stressCmd)

	stressCmd.Flags().IntVarP(&stressFlags.workers, "workers", "w", 16, "concurrent goroutines")
	stressCmd.Flags().IntVarP(&stressFlags.rounds, "rounds", "r", 100, "fault rounds per worker")
}

type stressReport struct {
	calls      int64
	faults     int64
	mismatches int64
	elapsed    time.Duration
}

func runStress(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	return withSession(func(s *session) error {
		rep, err := stress(s.env, stressFlags.workers, stressFlags.rounds)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d workers, %d calls, %d faults in %s\n",
			stressFlags.workers, rep.calls, rep.faults, rep.elapsed.Round(time.Millisecond))
		if rep.mismatches > 0 {
			return fmt.Errorf("%d faults were misattributed", rep.mismatches)
		}
		fmt.Fprintln(out, "every fault reached its own caller")
		return nil
	})
}

// stress runs the workers against env. Worker w faults with target qubit
// stressQubits+w, so a fault carrying any other index came from someone else.
func stress(env *quest.Env, workers, rounds int) (stressReport, error) {
	var (
		rep      stressReport
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() { firstErr = err })
	}

	start := time.Now()
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			r, err := quest.NewRegister(env, stressQubits)
			if err != nil {
				fail(err)
				return
			}
			defer r.Close()

			bad := stressQubits + w
			want := fmt.Sprintf("Invalid target qubit %d.", bad)
			for i := 0; i < rounds; i++ {
				if err := r.RotateY(i%stressQubits, quest.Qreal(w+1)*0.01); err != nil {
					fail(err)
					return
				}
				atomic.AddInt64(&rep.calls, 2)

				err := r.Hadamard(bad)
				var qe *errors.Error
				if !stderrors.As(err, &qe) || qe.Kind != errors.KindEngineFault {
					fail(fmt.Errorf("worker %d: expected engine fault, got %v", w, err))
					return
				}
				atomic.AddInt64(&rep.faults, 1)
				if !strings.HasPrefix(qe.Detail, want) {
					atomic.AddInt64(&rep.mismatches, 1)
					logger.Warn("misattributed fault",
						zap.Int("worker", w),
						zap.String("detail", qe.Detail))
				}
			}

			total, err := r.TotalProb()
			if err != nil {
				fail(err)
				return
			}
			if math.Abs(float64(total)-1) > 1e-6 {
				fail(fmt.Errorf("worker %d: register total probability %v", w, total))
			}
		}(w)
	}
	wg.Wait()
	rep.elapsed = time.Since(start)
	return rep, firstErr
}
