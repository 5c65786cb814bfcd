package engine

import (
	"math"
)

// MixDephasing applies rho -> (1-p) rho + p Z rho Z on target.
func MixDephasing(q *Qureg, target int, prob Qreal) {
	const fn = "mixDephasing"
	validateQureg(q, fn)
	validateDensityMatrQureg(q, fn)
	validateTarget(q, target, fn)
	validateOneQubitDephaseProb(prob, fn)
	applyKraus1(q, target, []ComplexMatrix2{
		scale(identity2, sqrtq(1-prob)),
		scale(pauliZ, sqrtq(prob)),
	})
	q.qasm.comment("mixDephasing(%g) q[%d]", prob, target)
}

// MixDepolarising applies the uniform Pauli channel with total error prob.
func MixDepolarising(q *Qureg, target int, prob Qreal) {
	const fn = "mixDepolarising"
	validateQureg(q, fn)
	validateDensityMatrQureg(q, fn)
	validateTarget(q, target, fn)
	validateOneQubitDepolProb(prob, fn)
	p3 := sqrtq(prob / 3)
	applyKraus1(q, target, []ComplexMatrix2{
		scale(identity2, sqrtq(1-prob)),
		scale(pauliX, p3),
		scale(pauliY, p3),
		scale(pauliZ, p3),
	})
	q.qasm.comment("mixDepolarising(%g) q[%d]", prob, target)
}

// MixDamping applies amplitude damping towards |0> with probability prob.
func MixDamping(q *Qureg, target int, prob Qreal) {
	const fn = "mixDamping"
	validateQureg(q, fn)
	validateDensityMatrQureg(q, fn)
	validateTarget(q, target, fn)
	validateProb(prob, fn)
	applyKraus1(q, target, []ComplexMatrix2{
		{{1, 0}, {0, complex(sqrtq(1-prob), 0)}},
		{{0, complex(sqrtq(prob), 0)}, {0, 0}},
	})
	q.qasm.comment("mixDamping(%g) q[%d]", prob, target)
}

func sqrtq(v Qreal) Qreal {
	return Qreal(math.Sqrt(float64(v)))
}
