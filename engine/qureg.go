package engine

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"go.uber.org/zap"
)

// Qureg is one simulated quantum state. A density matrix of n qubits is
// stored column-major as a state vector of 2n qubits: element (r, c) lives
// at index r + c<<n.
type Qureg struct {
	amps []Qcomplex
	rng  *rand.Rand
	env  *Env
	qasm qasmLog

	NumAmpsTotal         int64
	NumQubitsRepresented int
	NumQubitsInStateVec  int
	IsDensityMatrix      bool

	destroyed bool
}

// CreateQureg allocates a state-vector register initialised to |0>.
func CreateQureg(numQubits int, env *Env) *Qureg {
	return createQureg("createQureg", numQubits, false, env)
}

// CreateDensityQureg allocates a density-matrix register initialised to |0><0|.
func CreateDensityQureg(numQubits int, env *Env) *Qureg {
	return createQureg("createDensityQureg", numQubits, true, env)
}

func createQureg(fn string, numQubits int, density bool, env *Env) *Qureg {
	validateEnv(env, fn)
	validateNumQubitsInQureg(numQubits, density, fn)

	vecQubits := numQubits
	if density {
		vecQubits = 2 * numQubits
	}
	s0, s1 := env.nextSeed()
	q := &Qureg{
		amps:                 make([]Qcomplex, 1<<uint(vecQubits)),
		rng:                  rand.New(rand.NewPCG(s0, s1)),
		env:                  env,
		NumAmpsTotal:         int64(1) << uint(vecQubits),
		NumQubitsRepresented: numQubits,
		NumQubitsInStateVec:  vecQubits,
		IsDensityMatrix:      density,
	}
	q.amps[0] = 1
	q.qasm.setup(numQubits)

	Logger().Debug("qureg created",
		zap.String("func", fn),
		zap.Int("qubits", numQubits),
		zap.Bool("density", density))
	return q
}

// DestroyQureg frees the register's amplitudes.
func DestroyQureg(q *Qureg, env *Env) {
	const fn = "destroyQureg"
	validateQureg(q, fn)
	validateEnv(env, fn)
	q.amps = nil
	q.destroyed = true
	debugf("qureg destroyed (%d qubits)", q.NumQubitsRepresented)
}

// CloneQureg overwrites target with the state of source.
func CloneQureg(target, source *Qureg) {
	const fn = "cloneQureg"
	validateQureg(target, fn)
	validateQureg(source, fn)
	validateMatchingQuregTypes(target, source, fn)
	validateMatchingQuregDims(target, source, fn)
	copy(target.amps, source.amps)
}

// SeedQureg reseeds the register's measurement generator.
func SeedQureg(q *Qureg, seeds []uint64) {
	const fn = "seedQureg"
	validateQureg(q, fn)
	validateNumSeeds(len(seeds), fn)
	var s0, s1 uint64
	for i, s := range seeds {
		if i%2 == 0 {
			s0 = s0*31 + s
		} else {
			s1 = s1*31 + s
		}
	}
	q.rng = rand.New(rand.NewPCG(s0, s1))
}

// ReportQuregParams describes the register's size.
func ReportQuregParams(q *Qureg) string {
	const fn = "reportQuregParams"
	validateQureg(q, fn)

	var b strings.Builder
	b.WriteString("QUBITS:\n")
	fmt.Fprintf(&b, "Number of qubits is %d.\n", q.NumQubitsRepresented)
	fmt.Fprintf(&b, "Number of amps is %d.\n", q.NumAmpsTotal)
	fmt.Fprintf(&b, "Number of amps per rank is %d.\n", q.NumAmpsTotal)
	return b.String()
}

// dim is the Hilbert space dimension of the represented qubits.
func (q *Qureg) dim() int64 {
	return int64(1) << uint(q.NumQubitsRepresented)
}
