package engine

import (
	"math"
)

// CalcProbOfOutcome returns the probability that measuring qubit yields outcome.
func CalcProbOfOutcome(q *Qureg, qubit, outcome int) Qreal {
	const fn = "calcProbOfOutcome"
	validateQureg(q, fn)
	validateTarget(q, qubit, fn)
	validateOutcome(outcome, fn)
	return probOfOutcome(q, qubit, outcome)
}

// CollapseToOutcome projects qubit onto outcome, renormalises, and returns
// the probability of that outcome before the collapse.
func CollapseToOutcome(q *Qureg, qubit, outcome int) Qreal {
	const fn = "collapseToOutcome"
	validateQureg(q, fn)
	validateTarget(q, qubit, fn)
	validateOutcome(outcome, fn)
	prob := probOfOutcome(q, qubit, outcome)
	validateMeasurementProb(prob, fn)
	collapse(q, qubit, outcome, prob)
	return prob
}

// Measure measures qubit in the computational basis and collapses the state.
func Measure(q *Qureg, qubit int) int {
	outcome, _ := measureWithStats("measure", q, qubit)
	return outcome
}

// MeasureWithStats measures qubit and also returns the outcome's probability.
func MeasureWithStats(q *Qureg, qubit int) (int, Qreal) {
	return measureWithStats("measureWithStats", q, qubit)
}

func measureWithStats(fn string, q *Qureg, qubit int) (int, Qreal) {
	validateQureg(q, fn)
	validateTarget(q, qubit, fn)

	zeroProb := probOfOutcome(q, qubit, 0)
	outcome := 0
	switch {
	case zeroProb < RealEps:
		outcome = 1
	case 1-zeroProb < RealEps:
	case Qreal(q.rng.Float64()) > zeroProb:
		outcome = 1
	}
	prob := zeroProb
	if outcome == 1 {
		prob = 1 - zeroProb
	}
	collapse(q, qubit, outcome, prob)
	q.qasm.measure(qubit)
	return outcome, prob
}

func probOfOutcome(q *Qureg, qubit, outcome int) Qreal {
	bit := int64(1) << uint(qubit)
	want := int64(outcome) << uint(qubit)
	var total float64
	if q.IsDensityMatrix {
		dim := q.dim()
		for i := int64(0); i < dim; i++ {
			if i&bit == want {
				total += float64(real(q.amps[q.diagIndex(i)]))
			}
		}
		return Qreal(total)
	}
	for i, a := range q.amps {
		if int64(i)&bit == want {
			total += float64(cabs2(a))
		}
	}
	return Qreal(total)
}

func collapse(q *Qureg, qubit, outcome int, prob Qreal) {
	bit := uint64(1) << uint(qubit)
	want := uint64(outcome) << uint(qubit)
	if q.IsDensityMatrix {
		colBit := bit << uint(q.NumQubitsRepresented)
		colWant := want << uint(q.NumQubitsRepresented)
		norm := complex(1/prob, 0)
		for i := range q.amps {
			u := uint64(i)
			if u&bit != want || u&colBit != colWant {
				q.amps[i] = 0
			} else {
				q.amps[i] *= norm
			}
		}
		return
	}
	norm := complex(Qreal(1/math.Sqrt(float64(prob))), 0)
	for i := range q.amps {
		if uint64(i)&bit != want {
			q.amps[i] = 0
		} else {
			q.amps[i] *= norm
		}
	}
}
