package engine

// applyMatrix2 applies m to qubit bit of the raw state vector, restricted to
// basis states where every bit of ctrlMask is set.
func applyMatrix2(amps []Qcomplex, bit int, m ComplexMatrix2, ctrlMask uint64) {
	stride := uint64(1) << uint(bit)
	n := uint64(len(amps))
	for i := uint64(0); i < n; i++ {
		if i&stride != 0 || i&ctrlMask != ctrlMask {
			continue
		}
		j := i | stride
		a0, a1 := amps[i], amps[j]
		amps[i] = m[0][0]*a0 + m[0][1]*a1
		amps[j] = m[1][0]*a0 + m[1][1]*a1
	}
}

// applyGate applies a (controlled) one-qubit unitary to q. For density
// matrices the conjugate is applied to the column half, giving U rho U^dagger.
func applyGate(q *Qureg, target int, m ComplexMatrix2, controls ...int) {
	var mask uint64
	for _, c := range controls {
		mask |= uint64(1) << uint(c)
	}
	applyMatrix2(q.amps, target, m, mask)
	if q.IsDensityMatrix {
		shift := uint(q.NumQubitsRepresented)
		conjM := ComplexMatrix2{
			{conj(m[0][0]), conj(m[0][1])},
			{conj(m[1][0]), conj(m[1][1])},
		}
		applyMatrix2(q.amps, target+int(shift), conjM, mask<<shift)
	}
}

// applyPhaseOnMask multiplies every basis state with all mask bits set by
// phase (rows) and its conjugate (columns, density only).
func applyPhaseOnMask(q *Qureg, mask uint64, phase Qcomplex) {
	n := uint64(len(q.amps))
	if !q.IsDensityMatrix {
		for i := uint64(0); i < n; i++ {
			if i&mask == mask {
				q.amps[i] *= phase
			}
		}
		return
	}
	shift := uint(q.NumQubitsRepresented)
	colMask := mask << shift
	cp := conj(phase)
	for i := uint64(0); i < n; i++ {
		if i&mask == mask {
			q.amps[i] *= phase
		}
		if i&colMask == colMask {
			q.amps[i] *= cp
		}
	}
}

// swapBits exchanges the values of qubits a and b in every basis index.
func swapBits(amps []Qcomplex, a, b int) {
	ba, bb := uint64(1)<<uint(a), uint64(1)<<uint(b)
	n := uint64(len(amps))
	for i := uint64(0); i < n; i++ {
		if i&ba != 0 && i&bb == 0 {
			j := (i &^ ba) | bb
			amps[i], amps[j] = amps[j], amps[i]
		}
	}
}

// applyKraus1 maps rho to sum_k K rho K^dagger on one qubit of a density
// register.
func applyKraus1(q *Qureg, target int, ops []ComplexMatrix2) {
	rowBit := uint64(1) << uint(target)
	colBit := uint64(1) << uint(target+q.NumQubitsRepresented)
	n := uint64(len(q.amps))
	for i := uint64(0); i < n; i++ {
		if i&rowBit != 0 || i&colBit != 0 {
			continue
		}
		idx := [2][2]uint64{
			{i, i | colBit},
			{i | rowBit, i | rowBit | colBit},
		}
		var rho, out [2][2]Qcomplex
		for a := 0; a < 2; a++ {
			for b := 0; b < 2; b++ {
				rho[a][b] = q.amps[idx[a][b]]
			}
		}
		for _, k := range ops {
			kr := k.Mul(ComplexMatrix2(rho)).Mul(k.Dagger())
			for a := 0; a < 2; a++ {
				for b := 0; b < 2; b++ {
					out[a][b] += kr[a][b]
				}
			}
		}
		for a := 0; a < 2; a++ {
			for b := 0; b < 2; b++ {
				q.amps[idx[a][b]] = out[a][b]
			}
		}
	}
}

// diagIndex returns the storage index of density element (i, i).
func (q *Qureg) diagIndex(i int64) int64 {
	return i + i<<uint(q.NumQubitsRepresented)
}
