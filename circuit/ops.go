package circuit

import (
	"fmt"
	"strconv"

	"github.com/wippyai/quest-go/quest"
)

// opShape describes the operands of one op: qubits is the exact number of
// qubit arguments, or -1 for one or more. params is the number of numeric
// arguments that follow the qubits.
type opShape struct {
	qubits int
	params int
	apply  func(r *quest.Register, q []int, p []float64) (string, error)
}

func qr(v float64) quest.Qreal { return quest.Qreal(v) }

func gate1(fn func(r *quest.Register, t int) error) opShape {
	return opShape{qubits: 1, apply: func(r *quest.Register, q []int, _ []float64) (string, error) {
		return "", fn(r, q[0])
	}}
}

func rot1(fn func(r *quest.Register, t int, a quest.Qreal) error) opShape {
	return opShape{qubits: 1, params: 1, apply: func(r *quest.Register, q []int, p []float64) (string, error) {
		return "", fn(r, q[0], qr(p[0]))
	}}
}

func gate2(fn func(r *quest.Register, a, b int) error) opShape {
	return opShape{qubits: 2, apply: func(r *quest.Register, q []int, _ []float64) (string, error) {
		return "", fn(r, q[0], q[1])
	}}
}

func whole(fn func(r *quest.Register) error) opShape {
	return opShape{apply: func(r *quest.Register, _ []int, _ []float64) (string, error) {
		return "", fn(r)
	}}
}

func value(fn func(r *quest.Register) (quest.Qreal, error)) opShape {
	return opShape{apply: func(r *quest.Register, _ []int, _ []float64) (string, error) {
		v, err := fn(r)
		return formatReal(v), err
	}}
}

func formatReal(v quest.Qreal) string {
	return strconv.FormatFloat(float64(v), 'f', 8, 64)
}

func formatComplex(c quest.Qcomplex) string {
	return fmt.Sprintf("%.8f%+.8fi", real(c), imag(c))
}

var ops = map[string]opShape{
	"x":     gate1((*quest.Register).PauliX),
	"y":     gate1((*quest.Register).PauliY),
	"z":     gate1((*quest.Register).PauliZ),
	"h":     gate1((*quest.Register).Hadamard),
	"s":     gate1((*quest.Register).SGate),
	"t":     gate1((*quest.Register).TGate),
	"rx":    rot1((*quest.Register).RotateX),
	"ry":    rot1((*quest.Register).RotateY),
	"rz":    rot1((*quest.Register).RotateZ),
	"phase": rot1((*quest.Register).PhaseShift),

	"cnot": gate2((*quest.Register).ControlledNot),
	"cz":   gate2((*quest.Register).ControlledPhaseFlip),
	"swap": gate2((*quest.Register).Swap),
	"cphase": {qubits: 2, params: 1, apply: func(r *quest.Register, q []int, p []float64) (string, error) {
		return "", r.ControlledPhaseShift(q[0], q[1], qr(p[0]))
	}},
	"mcz": {qubits: -1, apply: func(r *quest.Register, q []int, _ []float64) (string, error) {
		return "", r.MultiControlledPhaseFlip(q...)
	}},
	"mnot": {qubits: -1, apply: func(r *quest.Register, q []int, _ []float64) (string, error) {
		return "", r.MultiQubitNot(q...)
	}},
	"axis": {qubits: 1, params: 4, apply: func(r *quest.Register, q []int, p []float64) (string, error) {
		return "", r.RotateAroundAxis(q[0], qr(p[0]), quest.Vector{X: qr(p[1]), Y: qr(p[2]), Z: qr(p[3])})
	}},

	"measure": {qubits: 1, apply: func(r *quest.Register, q []int, _ []float64) (string, error) {
		o, p, err := r.MeasureWithStats(q[0])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d (p=%s)", o, formatReal(p)), nil
	}},
	"prob": {qubits: 1, params: 1, apply: func(r *quest.Register, q []int, p []float64) (string, error) {
		v, err := r.CalcProbOfOutcome(q[0], int(p[0]))
		return formatReal(v), err
	}},
	"collapse": {qubits: 1, params: 1, apply: func(r *quest.Register, q []int, p []float64) (string, error) {
		v, err := r.CollapseToOutcome(q[0], int(p[0]))
		return formatReal(v), err
	}},
	"amp": {params: 1, apply: func(r *quest.Register, _ []int, p []float64) (string, error) {
		if r.IsDensityMatrix() {
			i := int64(p[0])
			c, err := r.DensityAmp(i, i)
			return formatComplex(c), err
		}
		c, err := r.Amp(int64(p[0]))
		return formatComplex(c), err
	}},

	"dephase":    rot1((*quest.Register).MixDephasing),
	"depolarise": rot1((*quest.Register).MixDepolarising),
	"damp":       rot1((*quest.Register).MixDamping),

	"zero":  whole((*quest.Register).InitZeroState),
	"plus":  whole((*quest.Register).InitPlusState),
	"blank": whole((*quest.Register).InitBlankState),
	"debug": whole((*quest.Register).InitDebugState),
	"classical": {params: 1, apply: func(r *quest.Register, _ []int, p []float64) (string, error) {
		return "", r.InitClassicalState(int64(p[0]))
	}},

	"total":  value((*quest.Register).TotalProb),
	"purity": value((*quest.Register).Purity),
	"report": {apply: func(r *quest.Register, _ []int, _ []float64) (string, error) {
		return r.Report()
	}},
}

// Ops returns the names of every supported op.
func Ops() []string {
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	return names
}
