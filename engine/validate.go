package engine

import (
	"math"
)

// MaxStateVecQubits bounds the size of the amplitude array. A density
// register of n qubits uses 2n state-vector qubits.
const MaxStateVecQubits = 24

func validateQureg(q *Qureg, fn string) {
	if q == nil {
		raise(fn, "Invalid Qureg. Register is nil.")
	}
	if q.destroyed {
		raise(fn, "Invalid Qureg. Register has been destroyed.")
	}
}

func validateNumQubitsInQureg(n int, density bool, fn string) {
	if n <= 0 {
		raise(fn, "Invalid number of qubits %d. Must create >0.", n)
	}
	max := MaxStateVecQubits
	if density {
		max = MaxStateVecQubits / 2
	}
	if n > max {
		raise(fn, "Too many qubits (%d) for the available memory. Must be <=%d.", n, max)
	}
}

func validateTarget(q *Qureg, target int, fn string) {
	if target < 0 || target >= q.NumQubitsRepresented {
		raise(fn, "Invalid target qubit %d. Must be >=0 and <%d.", target, q.NumQubitsRepresented)
	}
}

func validateControl(q *Qureg, control int, fn string) {
	if control < 0 || control >= q.NumQubitsRepresented {
		raise(fn, "Invalid control qubit %d. Must be >=0 and <%d.", control, q.NumQubitsRepresented)
	}
}

func validateControlTarget(q *Qureg, control, target int, fn string) {
	validateTarget(q, target, fn)
	validateControl(q, control, fn)
	if control == target {
		raise(fn, "Control qubit %d cannot equal target qubit.", control)
	}
}

func validateUniqueTargets(q *Qureg, a, b int, fn string) {
	validateTarget(q, a, fn)
	validateTarget(q, b, fn)
	if a == b {
		raise(fn, "The target qubits must be unique (qubit %d given twice).", a)
	}
}

func validateMultiQubits(q *Qureg, qubits []int, fn string) {
	if len(qubits) == 0 || len(qubits) > q.NumQubitsRepresented {
		raise(fn, "Invalid number of qubits %d. Must be >0 and <=%d.", len(qubits), q.NumQubitsRepresented)
	}
	var seen uint64
	for _, t := range qubits {
		validateTarget(q, t, fn)
		bit := uint64(1) << uint(t)
		if seen&bit != 0 {
			raise(fn, "The qubits must be unique (qubit %d given twice).", t)
		}
		seen |= bit
	}
}

func validateStateIndex(q *Qureg, index int64, fn string) {
	dim := int64(1) << uint(q.NumQubitsRepresented)
	if index < 0 || index >= dim {
		raise(fn, "Invalid state index %d. Must be >=0 and <%d.", index, dim)
	}
}

func validateAmpIndex(q *Qureg, index int64, fn string) {
	dim := int64(1) << uint(q.NumQubitsRepresented)
	if index < 0 || index >= dim {
		raise(fn, "Invalid amplitude index %d. Must be >=0 and <%d.", index, dim)
	}
}

func validateNumAmps(q *Qureg, start, num int64, fn string) {
	validateAmpIndex(q, start, fn)
	if num < 0 || start+num > q.NumAmpsTotal {
		raise(fn, "Invalid number of amplitudes %d. Must be >=0 and <=%d.", num, q.NumAmpsTotal-start)
	}
}

func validateOutcome(outcome int, fn string) {
	if outcome != 0 && outcome != 1 {
		raise(fn, "Invalid measurement outcome %d -- must be either 0 or 1.", outcome)
	}
}

func validateMeasurementProb(prob Qreal, fn string) {
	if prob < RealEps {
		raise(fn, "Can't collapse to state with zero probability.")
	}
}

func validateStateVecQureg(q *Qureg, fn string) {
	if q.IsDensityMatrix {
		raise(fn, "Operation valid only for state-vectors.")
	}
}

func validateDensityMatrQureg(q *Qureg, fn string) {
	if !q.IsDensityMatrix {
		raise(fn, "Operation valid only for density matrices.")
	}
}

func validateMatchingQuregDims(a, b *Qureg, fn string) {
	if a.NumQubitsRepresented != b.NumQubitsRepresented {
		raise(fn, "Dimensions of the qubit registers don't match (%d vs %d qubits).",
			a.NumQubitsRepresented, b.NumQubitsRepresented)
	}
}

func validateMatchingQuregTypes(a, b *Qureg, fn string) {
	if a.IsDensityMatrix != b.IsDensityMatrix {
		raise(fn, "Registers must both be state-vectors or both be density matrices.")
	}
}

func validateSecondQuregStateVec(q *Qureg, fn string) {
	if q.IsDensityMatrix {
		raise(fn, "Second argument must be a state-vector.")
	}
}

func validateProb(p Qreal, fn string) {
	if p < 0 || p > 1 {
		raise(fn, "Probabilities must be in [0, 1] (got %g).", p)
	}
}

func validateOneQubitDephaseProb(p Qreal, fn string) {
	validateProb(p, fn)
	if p > 0.5 {
		raise(fn, "The probability of a single qubit dephase error cannot exceed 1/2, which maximally mixes (got %g).", p)
	}
}

func validateOneQubitDepolProb(p Qreal, fn string) {
	validateProb(p, fn)
	if p > 0.75 {
		raise(fn, "The probability of a single qubit depolarising error cannot exceed 3/4, which maximally mixes (got %g).", p)
	}
}

func validateUnitaryComplexPair(alpha, beta Qcomplex, fn string) {
	if math.Abs(float64(cabs2(alpha)+cabs2(beta)-1)) > float64(RealEps) {
		raise(fn, "Invalid unitary complex pair: |alpha|^2 + |beta|^2 must equal 1.")
	}
}

func validateOneQubitUnitaryMatrix(m ComplexMatrix2, fn string) {
	if !m.IsUnitary() {
		raise(fn, "Matrix is not unitary.")
	}
}

func validateVector(v Vector, fn string) {
	if v.X == 0 && v.Y == 0 && v.Z == 0 {
		raise(fn, "Invalid axis vector. Must be non-zero.")
	}
}

func validateNumSeeds(n int, fn string) {
	if n == 0 {
		raise(fn, "Invalid number of random seeds. Must be >0.")
	}
}
