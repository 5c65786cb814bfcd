package quest

import (
	"github.com/wippyai/quest-go/engine"
	"github.com/wippyai/quest-go/errors"
)

type (
	Qreal    = engine.Qreal
	Qcomplex = engine.Qcomplex
	Matrix2  = engine.ComplexMatrix2
	Vector   = engine.Vector
)

// State initialisation

func (r *Register) InitBlankState() error {
	return r.do("initBlankState", engine.InitBlankState)
}

func (r *Register) InitZeroState() error {
	return r.do("initZeroState", engine.InitZeroState)
}

func (r *Register) InitPlusState() error {
	return r.do("initPlusState", engine.InitPlusState)
}

func (r *Register) InitClassicalState(index int64) error {
	return r.do("initClassicalState", func(q *engine.Qureg) { engine.InitClassicalState(q, index) })
}

func (r *Register) InitDebugState() error {
	return r.do("initDebugState", engine.InitDebugState)
}

// InitPureState sets r to the pure state held by the state-vector pure.
func (r *Register) InitPureState(pure *Register) error {
	_, err := doPair(r, pure, "initPureState", func(q, p *engine.Qureg) struct{} {
		engine.InitPureState(q, p)
		return struct{}{}
	})
	return err
}

// InitStateFromAmps overwrites every amplitude of a state-vector. reals and
// imags must both have NumAmps entries.
func (r *Register) InitStateFromAmps(reals, imags []Qreal) error {
	const op = "initStateFromAmps"
	if len(reals) != len(imags) {
		return errors.LengthMismatch(op, "imags", len(imags), len(reals))
	}
	if n := r.NumAmps(); !r.density && int64(len(reals)) != n {
		return errors.LengthMismatch(op, "reals", len(reals), int(n))
	}
	return r.do(op, func(q *engine.Qureg) { engine.InitStateFromAmps(q, reals, imags) })
}

// SetAmps overwrites len(reals) amplitudes starting at start.
func (r *Register) SetAmps(start int64, reals, imags []Qreal) error {
	const op = "setAmps"
	if len(reals) != len(imags) {
		return errors.LengthMismatch(op, "imags", len(imags), len(reals))
	}
	return r.do(op, func(q *engine.Qureg) {
		engine.SetAmps(q, start, reals, imags, int64(len(reals)))
	})
}

// Single-qubit gates

func (r *Register) PauliX(target int) error {
	return r.do("pauliX", func(q *engine.Qureg) { engine.PauliX(q, target) })
}

func (r *Register) PauliY(target int) error {
	return r.do("pauliY", func(q *engine.Qureg) { engine.PauliY(q, target) })
}

func (r *Register) PauliZ(target int) error {
	return r.do("pauliZ", func(q *engine.Qureg) { engine.PauliZ(q, target) })
}

func (r *Register) Hadamard(target int) error {
	return r.do("hadamard", func(q *engine.Qureg) { engine.Hadamard(q, target) })
}

func (r *Register) SGate(target int) error {
	return r.do("sGate", func(q *engine.Qureg) { engine.SGate(q, target) })
}

func (r *Register) TGate(target int) error {
	return r.do("tGate", func(q *engine.Qureg) { engine.TGate(q, target) })
}

func (r *Register) PhaseShift(target int, angle Qreal) error {
	return r.do("phaseShift", func(q *engine.Qureg) { engine.PhaseShift(q, target, angle) })
}

func (r *Register) RotateX(target int, angle Qreal) error {
	return r.do("rotateX", func(q *engine.Qureg) { engine.RotateX(q, target, angle) })
}

func (r *Register) RotateY(target int, angle Qreal) error {
	return r.do("rotateY", func(q *engine.Qureg) { engine.RotateY(q, target, angle) })
}

func (r *Register) RotateZ(target int, angle Qreal) error {
	return r.do("rotateZ", func(q *engine.Qureg) { engine.RotateZ(q, target, angle) })
}

func (r *Register) RotateAroundAxis(target int, angle Qreal, axis Vector) error {
	return r.do("rotateAroundAxis", func(q *engine.Qureg) { engine.RotateAroundAxis(q, target, angle, axis) })
}

func (r *Register) CompactUnitary(target int, alpha, beta Qcomplex) error {
	return r.do("compactUnitary", func(q *engine.Qureg) { engine.CompactUnitary(q, target, alpha, beta) })
}

func (r *Register) Unitary(target int, m Matrix2) error {
	return r.do("unitary", func(q *engine.Qureg) { engine.Unitary(q, target, m) })
}

// Multi-qubit gates

func (r *Register) ControlledNot(control, target int) error {
	return r.do("controlledNot", func(q *engine.Qureg) { engine.ControlledNot(q, control, target) })
}

func (r *Register) ControlledPhaseShift(control, target int, angle Qreal) error {
	return r.do("controlledPhaseShift", func(q *engine.Qureg) {
		engine.ControlledPhaseShift(q, control, target, angle)
	})
}

func (r *Register) ControlledPhaseFlip(control, target int) error {
	return r.do("controlledPhaseFlip", func(q *engine.Qureg) { engine.ControlledPhaseFlip(q, control, target) })
}

func (r *Register) MultiControlledPhaseFlip(qubits ...int) error {
	qs := append([]int(nil), qubits...)
	return r.do("multiControlledPhaseFlip", func(q *engine.Qureg) { engine.MultiControlledPhaseFlip(q, qs) })
}

func (r *Register) MultiQubitNot(targets ...int) error {
	ts := append([]int(nil), targets...)
	return r.do("multiQubitNot", func(q *engine.Qureg) { engine.MultiQubitNot(q, ts) })
}

func (r *Register) ControlledUnitary(control, target int, m Matrix2) error {
	return r.do("controlledUnitary", func(q *engine.Qureg) { engine.ControlledUnitary(q, control, target, m) })
}

func (r *Register) Swap(qubit1, qubit2 int) error {
	return r.do("swapGate", func(q *engine.Qureg) { engine.SwapGate(q, qubit1, qubit2) })
}

// Measurement

func (r *Register) CalcProbOfOutcome(qubit, outcome int) (Qreal, error) {
	return doValue(r, "calcProbOfOutcome", func(q *engine.Qureg) Qreal {
		return engine.CalcProbOfOutcome(q, qubit, outcome)
	})
}

// CollapseToOutcome forces qubit into outcome and returns the probability
// the outcome had.
func (r *Register) CollapseToOutcome(qubit, outcome int) (Qreal, error) {
	return doValue(r, "collapseToOutcome", func(q *engine.Qureg) Qreal {
		return engine.CollapseToOutcome(q, qubit, outcome)
	})
}

func (r *Register) Measure(qubit int) (int, error) {
	return doValue(r, "measure", func(q *engine.Qureg) int { return engine.Measure(q, qubit) })
}

type measurement struct {
	outcome int
	prob    Qreal
}

// MeasureWithStats measures qubit and also returns the probability of the
// observed outcome.
func (r *Register) MeasureWithStats(qubit int) (int, Qreal, error) {
	m, err := doValue(r, "measureWithStats", func(q *engine.Qureg) measurement {
		o, p := engine.MeasureWithStats(q, qubit)
		return measurement{outcome: o, prob: p}
	})
	return m.outcome, m.prob, err
}

// Amplitudes and derived quantities

func (r *Register) Amp(index int64) (Qcomplex, error) {
	return doValue(r, "getAmp", func(q *engine.Qureg) Qcomplex { return engine.GetAmp(q, index) })
}

func (r *Register) RealAmp(index int64) (Qreal, error) {
	return doValue(r, "getRealAmp", func(q *engine.Qureg) Qreal { return engine.GetRealAmp(q, index) })
}

func (r *Register) ImagAmp(index int64) (Qreal, error) {
	return doValue(r, "getImagAmp", func(q *engine.Qureg) Qreal { return engine.GetImagAmp(q, index) })
}

func (r *Register) ProbAmp(index int64) (Qreal, error) {
	return doValue(r, "getProbAmp", func(q *engine.Qureg) Qreal { return engine.GetProbAmp(q, index) })
}

func (r *Register) DensityAmp(row, col int64) (Qcomplex, error) {
	return doValue(r, "getDensityAmp", func(q *engine.Qureg) Qcomplex { return engine.GetDensityAmp(q, row, col) })
}

func (r *Register) TotalProb() (Qreal, error) {
	return doValue(r, "calcTotalProb", engine.CalcTotalProb)
}

func (r *Register) Purity() (Qreal, error) {
	return doValue(r, "calcPurity", engine.CalcPurity)
}

// CalcFidelity returns the fidelity of q against the pure state-vector pure.
func CalcFidelity(q, pure *Register) (Qreal, error) {
	return doPair(q, pure, "calcFidelity", engine.CalcFidelity)
}

// CalcInnerProduct returns <bra|ket> for two state-vectors.
func CalcInnerProduct(bra, ket *Register) (Qcomplex, error) {
	return doPair(bra, ket, "calcInnerProduct", engine.CalcInnerProduct)
}

// CloneInto overwrites target with the state of source.
func CloneInto(target, source *Register) error {
	_, err := doPair(target, source, "cloneQureg", func(t, s *engine.Qureg) struct{} {
		engine.CloneQureg(t, s)
		return struct{}{}
	})
	return err
}

// Decoherence (density matrices only)

func (r *Register) MixDephasing(target int, prob Qreal) error {
	return r.do("mixDephasing", func(q *engine.Qureg) { engine.MixDephasing(q, target, prob) })
}

func (r *Register) MixDepolarising(target int, prob Qreal) error {
	return r.do("mixDepolarising", func(q *engine.Qureg) { engine.MixDepolarising(q, target, prob) })
}

func (r *Register) MixDamping(target int, prob Qreal) error {
	return r.do("mixDamping", func(q *engine.Qureg) { engine.MixDamping(q, target, prob) })
}

// QASM recording

func (r *Register) StartRecordingQASM() error {
	return r.do("startRecordingQASM", engine.StartRecordingQASM)
}

func (r *Register) StopRecordingQASM() error {
	return r.do("stopRecordingQASM", engine.StopRecordingQASM)
}

func (r *Register) ClearRecordedQASM() error {
	return r.do("clearRecordedQASM", engine.ClearRecordedQASM)
}

func (r *Register) RecordedQASM() (string, error) {
	return doValue(r, "recordedQASM", engine.RecordedQASM)
}

// WriteRecordedQASMToFile writes the recorded program. An unwritable path is
// reported as an engine fault.
func (r *Register) WriteRecordedQASMToFile(filename string) error {
	return r.do("writeRecordedQASMToFile", func(q *engine.Qureg) { engine.WriteRecordedQASMToFile(q, filename) })
}

// Seeding and reporting

// Seed reseeds this register's measurement generator.
func (r *Register) Seed(seeds ...uint64) error {
	s := append([]uint64(nil), seeds...)
	return r.do("seedQureg", func(q *engine.Qureg) { engine.SeedQureg(q, s) })
}

func (r *Register) Report() (string, error) {
	return doValue(r, "reportQuregParams", engine.ReportQuregParams)
}
