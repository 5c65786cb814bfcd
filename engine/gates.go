package engine

import (
	"math"
)

// PauliX applies the NOT gate to target.
func PauliX(q *Qureg, target int) {
	const fn = "pauliX"
	validateQureg(q, fn)
	validateTarget(q, target, fn)
	applyGate(q, target, pauliX)
	q.qasm.gate("x", target)
}

// PauliY applies the Y gate to target.
func PauliY(q *Qureg, target int) {
	const fn = "pauliY"
	validateQureg(q, fn)
	validateTarget(q, target, fn)
	applyGate(q, target, pauliY)
	q.qasm.gate("y", target)
}

// PauliZ applies the Z gate to target.
func PauliZ(q *Qureg, target int) {
	const fn = "pauliZ"
	validateQureg(q, fn)
	validateTarget(q, target, fn)
	applyPhaseOnMask(q, uint64(1)<<uint(target), -1)
	q.qasm.gate("z", target)
}

// Hadamard applies the Hadamard gate to target.
func Hadamard(q *Qureg, target int) {
	const fn = "hadamard"
	validateQureg(q, fn)
	validateTarget(q, target, fn)
	applyGate(q, target, hadamardM)
	q.qasm.gate("h", target)
}

// SGate applies a pi/2 phase to the |1> state of target.
func SGate(q *Qureg, target int) {
	const fn = "sGate"
	validateQureg(q, fn)
	validateTarget(q, target, fn)
	applyPhaseOnMask(q, uint64(1)<<uint(target), 1i)
	q.qasm.gate("s", target)
}

// TGate applies a pi/4 phase to the |1> state of target.
func TGate(q *Qureg, target int) {
	const fn = "tGate"
	validateQureg(q, fn)
	validateTarget(q, target, fn)
	applyPhaseOnMask(q, uint64(1)<<uint(target), expi(math.Pi/4))
	q.qasm.gate("t", target)
}

// PhaseShift multiplies the |1> state of target by exp(i angle).
func PhaseShift(q *Qureg, target int, angle Qreal) {
	const fn = "phaseShift"
	validateQureg(q, fn)
	validateTarget(q, target, fn)
	applyPhaseOnMask(q, uint64(1)<<uint(target), expi(angle))
	q.qasm.paramGate("u1", angle, target)
}

// ControlledPhaseShift applies exp(i angle) to states where both qubits are 1.
func ControlledPhaseShift(q *Qureg, control, target int, angle Qreal) {
	const fn = "controlledPhaseShift"
	validateQureg(q, fn)
	validateControlTarget(q, control, target, fn)
	mask := uint64(1)<<uint(control) | uint64(1)<<uint(target)
	applyPhaseOnMask(q, mask, expi(angle))
	q.qasm.paramGate("cu1", angle, control, target)
}

// ControlledPhaseFlip negates states where both qubits are 1.
func ControlledPhaseFlip(q *Qureg, control, target int) {
	const fn = "controlledPhaseFlip"
	validateQureg(q, fn)
	validateControlTarget(q, control, target, fn)
	mask := uint64(1)<<uint(control) | uint64(1)<<uint(target)
	applyPhaseOnMask(q, mask, -1)
	q.qasm.gate("cz", control, target)
}

// MultiControlledPhaseFlip negates states where every listed qubit is 1.
func MultiControlledPhaseFlip(q *Qureg, qubits []int) {
	const fn = "multiControlledPhaseFlip"
	validateQureg(q, fn)
	validateMultiQubits(q, qubits, fn)
	var mask uint64
	for _, t := range qubits {
		mask |= uint64(1) << uint(t)
	}
	applyPhaseOnMask(q, mask, -1)
	q.qasm.comment("multiControlledPhaseFlip on %d qubits", len(qubits))
}

// ControlledNot flips target where control is 1.
func ControlledNot(q *Qureg, control, target int) {
	const fn = "controlledNot"
	validateQureg(q, fn)
	validateControlTarget(q, control, target, fn)
	applyGate(q, target, pauliX, control)
	q.qasm.gate("cx", control, target)
}

// MultiQubitNot flips every listed qubit.
func MultiQubitNot(q *Qureg, targets []int) {
	const fn = "multiQubitNot"
	validateQureg(q, fn)
	validateMultiQubits(q, targets, fn)
	for _, t := range targets {
		applyGate(q, t, pauliX)
		q.qasm.gate("x", t)
	}
}

// RotateX rotates target around the X axis of the Bloch sphere.
func RotateX(q *Qureg, target int, angle Qreal) {
	const fn = "rotateX"
	validateQureg(q, fn)
	validateTarget(q, target, fn)
	applyGate(q, target, rotationX(angle))
	q.qasm.paramGate("rx", angle, target)
}

// RotateY rotates target around the Y axis of the Bloch sphere.
func RotateY(q *Qureg, target int, angle Qreal) {
	const fn = "rotateY"
	validateQureg(q, fn)
	validateTarget(q, target, fn)
	applyGate(q, target, rotationY(angle))
	q.qasm.paramGate("ry", angle, target)
}

// RotateZ rotates target around the Z axis of the Bloch sphere.
func RotateZ(q *Qureg, target int, angle Qreal) {
	const fn = "rotateZ"
	validateQureg(q, fn)
	validateTarget(q, target, fn)
	applyGate(q, target, rotationZ(angle))
	q.qasm.paramGate("rz", angle, target)
}

// RotateAroundAxis rotates target by angle around axis (normalised here).
func RotateAroundAxis(q *Qureg, target int, angle Qreal, axis Vector) {
	const fn = "rotateAroundAxis"
	validateQureg(q, fn)
	validateTarget(q, target, fn)
	validateVector(axis, fn)

	n := axis.norm()
	x, y, z := axis.X/n, axis.Y/n, axis.Z/n
	s, c := math.Sincos(float64(angle) / 2)
	cs, sn := Qreal(c), Qreal(s)
	// cos(a/2) I - i sin(a/2) (n . sigma)
	m := ComplexMatrix2{
		{complex(cs, -sn*z), complex(-sn*y, -sn*x)},
		{complex(sn*y, -sn*x), complex(cs, sn*z)},
	}
	applyGate(q, target, m)
	q.qasm.comment("rotateAroundAxis(%g) q[%d]", angle, target)
}

// CompactUnitary applies [[alpha, -conj(beta)], [beta, conj(alpha)]].
func CompactUnitary(q *Qureg, target int, alpha, beta Qcomplex) {
	const fn = "compactUnitary"
	validateQureg(q, fn)
	validateTarget(q, target, fn)
	validateUnitaryComplexPair(alpha, beta, fn)
	m := ComplexMatrix2{
		{alpha, -conj(beta)},
		{beta, conj(alpha)},
	}
	applyGate(q, target, m)
	q.qasm.comment("compactUnitary q[%d]", target)
}

// Unitary applies an arbitrary one-qubit unitary.
func Unitary(q *Qureg, target int, m ComplexMatrix2) {
	const fn = "unitary"
	validateQureg(q, fn)
	validateTarget(q, target, fn)
	validateOneQubitUnitaryMatrix(m, fn)
	applyGate(q, target, m)
	q.qasm.comment("unitary q[%d]", target)
}

// ControlledUnitary applies m to target where control is 1.
func ControlledUnitary(q *Qureg, control, target int, m ComplexMatrix2) {
	const fn = "controlledUnitary"
	validateQureg(q, fn)
	validateControlTarget(q, control, target, fn)
	validateOneQubitUnitaryMatrix(m, fn)
	applyGate(q, target, m, control)
	q.qasm.comment("controlledUnitary q[%d],q[%d]", control, target)
}

// SwapGate exchanges the states of two qubits.
func SwapGate(q *Qureg, qubit1, qubit2 int) {
	const fn = "swapGate"
	validateQureg(q, fn)
	validateUniqueTargets(q, qubit1, qubit2, fn)
	swapBits(q.amps, qubit1, qubit2)
	if q.IsDensityMatrix {
		shift := q.NumQubitsRepresented
		swapBits(q.amps, qubit1+shift, qubit2+shift)
	}
	q.qasm.gate("swap", qubit1, qubit2)
}

func rotationX(angle Qreal) ComplexMatrix2 {
	s, c := math.Sincos(float64(angle) / 2)
	return ComplexMatrix2{
		{Qcomplex(complex(c, 0)), Qcomplex(complex(0, -s))},
		{Qcomplex(complex(0, -s)), Qcomplex(complex(c, 0))},
	}
}

func rotationY(angle Qreal) ComplexMatrix2 {
	s, c := math.Sincos(float64(angle) / 2)
	return ComplexMatrix2{
		{Qcomplex(complex(c, 0)), Qcomplex(complex(-s, 0))},
		{Qcomplex(complex(s, 0)), Qcomplex(complex(c, 0))},
	}
}

func rotationZ(angle Qreal) ComplexMatrix2 {
	return ComplexMatrix2{
		{expi(-angle / 2), 0},
		{0, expi(angle / 2)},
	}
}
