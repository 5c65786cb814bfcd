//go:build quest_single && !quest_double

package engine

// Single precision, selected with the quest_single build tag.
type (
	Qreal    = float32
	Qcomplex = complex64
)

const (
	// Precision is the byte-size class of Qreal: 1 single, 2 double.
	Precision = 1

	// RealEps is the tolerance used by unitarity and normalisation checks.
	RealEps = 1e-5
)
