//go:build !quest_single

package engine

// Double precision. This is the default build and is also selected
// explicitly by the quest_double tag.
type (
	Qreal    = float64
	Qcomplex = complex128
)

const (
	// Precision is the byte-size class of Qreal: 1 single, 2 double.
	Precision = 2

	// RealEps is the tolerance used by unitarity and normalisation checks.
	RealEps = 1e-13
)
