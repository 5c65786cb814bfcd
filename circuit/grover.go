package circuit

import (
	"math"

	"github.com/wippyai/quest-go/quest"
)

// GroverIterations is the number of oracle and diffuser rounds that
// maximises the probability of finding one marked element among 2^n.
func GroverIterations(n int) int {
	return int(math.Ceil(math.Pi / 4 * math.Sqrt(float64(int64(1)<<uint(n)))))
}

// Grover searches r, prepared by this function in |+...+>, for solution
// using X, H and multi-controlled Z only. It returns the probability of
// the solution after each round.
func Grover(r *quest.Register, solution int64, rounds int) ([]quest.Qreal, error) {
	n := r.NumQubits()
	qubits := make([]int, n)
	for i := range qubits {
		qubits[i] = i
	}

	// Qubits that are 0 in the solution, flipped so it becomes |1...1>.
	var zeros []int
	for _, q := range qubits {
		if (solution>>uint(q))&1 == 0 {
			zeros = append(zeros, q)
		}
	}

	if err := r.InitPlusState(); err != nil {
		return nil, err
	}

	probs := make([]quest.Qreal, 0, rounds)
	for i := 0; i < rounds; i++ {
		if err := oracle(r, qubits, zeros); err != nil {
			return probs, err
		}
		if err := diffuser(r, qubits); err != nil {
			return probs, err
		}
		p, err := r.ProbAmp(solution)
		if err != nil {
			return probs, err
		}
		probs = append(probs, p)
	}
	return probs, nil
}

func oracle(r *quest.Register, qubits, zeros []int) error {
	if len(zeros) > 0 {
		if err := r.MultiQubitNot(zeros...); err != nil {
			return err
		}
	}
	if err := r.MultiControlledPhaseFlip(qubits...); err != nil {
		return err
	}
	if len(zeros) > 0 {
		return r.MultiQubitNot(zeros...)
	}
	return nil
}

func diffuser(r *quest.Register, qubits []int) error {
	for _, q := range qubits {
		if err := r.Hadamard(q); err != nil {
			return err
		}
	}
	if err := r.MultiQubitNot(qubits...); err != nil {
		return err
	}
	if err := r.MultiControlledPhaseFlip(qubits...); err != nil {
		return err
	}
	if err := r.MultiQubitNot(qubits...); err != nil {
		return err
	}
	for _, q := range qubits {
		if err := r.Hadamard(q); err != nil {
			return err
		}
	}
	return nil
}
