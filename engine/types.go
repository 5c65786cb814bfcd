package engine

import (
	"math"
	"math/cmplx"
)

// ComplexMatrix2 is a 2x2 complex matrix, row-major.
type ComplexMatrix2 [2][2]Qcomplex

// Dagger returns the conjugate transpose.
func (m ComplexMatrix2) Dagger() ComplexMatrix2 {
	return ComplexMatrix2{
		{conj(m[0][0]), conj(m[1][0])},
		{conj(m[0][1]), conj(m[1][1])},
	}
}

// Mul returns m*o.
func (m ComplexMatrix2) Mul(o ComplexMatrix2) ComplexMatrix2 {
	var r ComplexMatrix2
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			r[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j]
		}
	}
	return r
}

// IsUnitary reports whether m*m^dagger is the identity within RealEps.
func (m ComplexMatrix2) IsUnitary() bool {
	p := m.Mul(m.Dagger())
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want := Qcomplex(0)
			if i == j {
				want = 1
			}
			if cmplx.Abs(complex128(p[i][j]-want)) > float64(RealEps)*10 {
				return false
			}
		}
	}
	return true
}

// Vector is a real 3-vector used as a rotation axis.
type Vector struct {
	X, Y, Z Qreal
}

func (v Vector) norm() Qreal {
	return Qreal(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

// Common gate matrices.
var (
	identity2 = ComplexMatrix2{{1, 0}, {0, 1}}
	pauliX    = ComplexMatrix2{{0, 1}, {1, 0}}
	pauliY    = ComplexMatrix2{{0, -1i}, {1i, 0}}
	pauliZ    = ComplexMatrix2{{1, 0}, {0, -1}}
	hadamardM = ComplexMatrix2{
		{Qcomplex(complex(1/math.Sqrt2, 0)), Qcomplex(complex(1/math.Sqrt2, 0))},
		{Qcomplex(complex(1/math.Sqrt2, 0)), Qcomplex(complex(-1/math.Sqrt2, 0))},
	}
)

func conj(c Qcomplex) Qcomplex {
	return complex(real(c), -imag(c))
}

func cabs2(c Qcomplex) Qreal {
	r, i := real(c), imag(c)
	return r*r + i*i
}

func expi(theta Qreal) Qcomplex {
	s, c := math.Sincos(float64(theta))
	return Qcomplex(complex(c, s))
}

func scale(m ComplexMatrix2, f Qreal) ComplexMatrix2 {
	c := Qcomplex(complex(f, 0))
	return ComplexMatrix2{
		{m[0][0] * c, m[0][1] * c},
		{m[1][0] * c, m[1][1] * c},
	}
}
