package engine

// GetAmp returns amplitude index of a state-vector.
func GetAmp(q *Qureg, index int64) Qcomplex {
	const fn = "getAmp"
	validateQureg(q, fn)
	validateStateVecQureg(q, fn)
	validateAmpIndex(q, index, fn)
	return q.amps[index]
}

// GetRealAmp returns the real part of amplitude index.
func GetRealAmp(q *Qureg, index int64) Qreal {
	const fn = "getRealAmp"
	validateQureg(q, fn)
	validateStateVecQureg(q, fn)
	validateAmpIndex(q, index, fn)
	return real(q.amps[index])
}

// GetImagAmp returns the imaginary part of amplitude index.
func GetImagAmp(q *Qureg, index int64) Qreal {
	const fn = "getImagAmp"
	validateQureg(q, fn)
	validateStateVecQureg(q, fn)
	validateAmpIndex(q, index, fn)
	return imag(q.amps[index])
}

// GetProbAmp returns |amplitude|^2 for index.
func GetProbAmp(q *Qureg, index int64) Qreal {
	const fn = "getProbAmp"
	validateQureg(q, fn)
	validateStateVecQureg(q, fn)
	validateAmpIndex(q, index, fn)
	return cabs2(q.amps[index])
}

// GetDensityAmp returns element (row, col) of a density matrix.
func GetDensityAmp(q *Qureg, row, col int64) Qcomplex {
	const fn = "getDensityAmp"
	validateQureg(q, fn)
	validateDensityMatrQureg(q, fn)
	validateAmpIndex(q, row, fn)
	validateAmpIndex(q, col, fn)
	return q.amps[row+col<<uint(q.NumQubitsRepresented)]
}

// CalcTotalProb returns the norm (state-vector) or trace (density matrix).
func CalcTotalProb(q *Qureg) Qreal {
	const fn = "calcTotalProb"
	validateQureg(q, fn)

	// Kahan summation keeps large registers accurate.
	var sum, comp float64
	add := func(v float64) {
		y := v - comp
		t := sum + y
		comp = (t - sum) - y
		sum = t
	}
	if q.IsDensityMatrix {
		for i := int64(0); i < q.dim(); i++ {
			add(float64(real(q.amps[q.diagIndex(i)])))
		}
	} else {
		for _, a := range q.amps {
			add(float64(cabs2(a)))
		}
	}
	return Qreal(sum)
}

// CalcPurity returns Tr(rho^2) of a density matrix.
func CalcPurity(q *Qureg) Qreal {
	const fn = "calcPurity"
	validateQureg(q, fn)
	validateDensityMatrQureg(q, fn)
	var sum float64
	for _, a := range q.amps {
		sum += float64(cabs2(a))
	}
	return Qreal(sum)
}

// CalcFidelity returns the fidelity of q against the pure state-vector pure.
func CalcFidelity(q, pure *Qureg) Qreal {
	const fn = "calcFidelity"
	validateQureg(q, fn)
	validateQureg(pure, fn)
	validateSecondQuregStateVec(pure, fn)
	validateMatchingQuregDims(q, pure, fn)

	if !q.IsDensityMatrix {
		return cabs2(innerProduct(q.amps, pure.amps))
	}
	// <psi| rho |psi>
	dim := q.dim()
	var f Qcomplex
	for r := int64(0); r < dim; r++ {
		var row Qcomplex
		for c := int64(0); c < dim; c++ {
			row += q.amps[r+c*dim] * pure.amps[c]
		}
		f += conj(pure.amps[r]) * row
	}
	return real(f)
}

// CalcInnerProduct returns <bra|ket> for two state-vectors.
func CalcInnerProduct(bra, ket *Qureg) Qcomplex {
	const fn = "calcInnerProduct"
	validateQureg(bra, fn)
	validateQureg(ket, fn)
	validateStateVecQureg(bra, fn)
	validateStateVecQureg(ket, fn)
	validateMatchingQuregDims(bra, ket, fn)
	return innerProduct(bra.amps, ket.amps)
}

func innerProduct(bra, ket []Qcomplex) Qcomplex {
	var sum Qcomplex
	for i := range bra {
		sum += conj(bra[i]) * ket[i]
	}
	return sum
}
