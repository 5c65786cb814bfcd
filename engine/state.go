package engine

import (
	"math"
)

// InitBlankState sets every amplitude to zero (an unphysical state).
func InitBlankState(q *Qureg) {
	const fn = "initBlankState"
	validateQureg(q, fn)
	clear(q.amps)
}

// InitZeroState sets the register to |0...0>.
func InitZeroState(q *Qureg) {
	const fn = "initZeroState"
	validateQureg(q, fn)
	clear(q.amps)
	q.amps[0] = 1
}

// InitPlusState sets the register to the uniform superposition.
func InitPlusState(q *Qureg) {
	const fn = "initPlusState"
	validateQureg(q, fn)
	var v Qreal
	if q.IsDensityMatrix {
		v = 1 / Qreal(q.dim())
	} else {
		v = Qreal(1 / math.Sqrt(float64(q.dim())))
	}
	for i := range q.amps {
		q.amps[i] = complex(v, 0)
	}
}

// InitClassicalState sets the register to the basis state stateIndex.
func InitClassicalState(q *Qureg, stateIndex int64) {
	const fn = "initClassicalState"
	validateQureg(q, fn)
	validateStateIndex(q, stateIndex, fn)
	clear(q.amps)
	if q.IsDensityMatrix {
		q.amps[q.diagIndex(stateIndex)] = 1
	} else {
		q.amps[stateIndex] = 1
	}
}

// InitPureState sets q to the pure state held in the state-vector pure.
func InitPureState(q, pure *Qureg) {
	const fn = "initPureState"
	validateQureg(q, fn)
	validateQureg(pure, fn)
	validateSecondQuregStateVec(pure, fn)
	validateMatchingQuregDims(q, pure, fn)

	if !q.IsDensityMatrix {
		copy(q.amps, pure.amps)
		return
	}
	dim := q.dim()
	for c := int64(0); c < dim; c++ {
		cc := conj(pure.amps[c])
		for r := int64(0); r < dim; r++ {
			q.amps[r+c*dim] = pure.amps[r] * cc
		}
	}
}

// InitDebugState fills amplitude k with (2k + (2k+1)i)/10.
func InitDebugState(q *Qureg) {
	const fn = "initDebugState"
	validateQureg(q, fn)
	for k := range q.amps {
		q.amps[k] = complex(Qreal(2*k)/10, Qreal(2*k+1)/10)
	}
}

// InitStateFromAmps overwrites a state-vector with the given amplitudes.
func InitStateFromAmps(q *Qureg, reals, imags []Qreal) {
	const fn = "initStateFromAmps"
	validateQureg(q, fn)
	validateStateVecQureg(q, fn)
	if int64(len(reals)) != q.NumAmpsTotal || int64(len(imags)) != q.NumAmpsTotal {
		raise(fn, "Invalid number of amplitudes %d. Must be %d.", min(len(reals), len(imags)), q.NumAmpsTotal)
	}
	for i := range q.amps {
		q.amps[i] = complex(reals[i], imags[i])
	}
}

// SetAmps overwrites numAmps amplitudes of a state-vector from startInd.
func SetAmps(q *Qureg, startInd int64, reals, imags []Qreal, numAmps int64) {
	const fn = "setAmps"
	validateQureg(q, fn)
	validateStateVecQureg(q, fn)
	validateNumAmps(q, startInd, numAmps, fn)
	if int64(len(reals)) < numAmps || int64(len(imags)) < numAmps {
		raise(fn, "Invalid number of amplitudes %d. Only %d values supplied.", numAmps, min(len(reals), len(imags)))
	}
	for i := int64(0); i < numAmps; i++ {
		q.amps[startInd+i] = complex(reals[i], imags[i])
	}
}
