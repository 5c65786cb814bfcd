package engine

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// envLive enforces the process-wide singleton.
var envLive atomic.Bool

// Env is the engine's process-wide execution context.
type Env struct {
	mu        sync.Mutex
	seeds     []uint64
	stream    atomic.Uint64
	Rank      int
	NumRanks  int
	destroyed atomic.Bool
}

// CreateEnv initialises the engine. Only one Env may exist at a time.
func CreateEnv() *Env {
	const fn = "createQuESTEnv"
	if !envLive.CompareAndSwap(false, true) {
		raise(fn, "QuEST environment already created. Only one may exist per process.")
	}

	env := &Env{
		Rank:     0,
		NumRanks: 1,
	}
	env.seeds = defaultSeeds()
	Logger().Debug("engine environment created", zap.Uint64s("seeds", env.seeds))
	return env
}

// DestroyEnv releases the engine's process-wide state.
func DestroyEnv(env *Env) {
	const fn = "destroyQuESTEnv"
	validateEnv(env, fn)
	env.destroyed.Store(true)
	envLive.Store(false)
	Logger().Debug("engine environment destroyed")
}

// SeedQuEST replaces the seeds used for the measurement generators of
// registers created from now on.
func SeedQuEST(env *Env, seeds []uint64) {
	const fn = "seedQuEST"
	validateEnv(env, fn)
	validateNumSeeds(len(seeds), fn)

	env.mu.Lock()
	env.seeds = append([]uint64(nil), seeds...)
	env.mu.Unlock()
}

// Seeds returns a copy of the current seeds.
func (env *Env) Seeds() []uint64 {
	env.mu.Lock()
	defer env.mu.Unlock()
	return append([]uint64(nil), env.seeds...)
}

// nextSeed derives an independent generator seed for a new register.
func (env *Env) nextSeed() (uint64, uint64) {
	env.mu.Lock()
	seeds := env.seeds
	env.mu.Unlock()

	stream := env.stream.Add(1)
	var s0, s1 uint64 = 0x9e3779b97f4a7c15, stream
	for i, s := range seeds {
		if i%2 == 0 {
			s0 ^= s * 0xbf58476d1ce4e5b9
		} else {
			s1 ^= s * 0x94d049bb133111eb
		}
	}
	return s0 + stream*0x9e3779b97f4a7c15, s1
}

// ReportEnv describes the execution environment.
func ReportEnv(env *Env) string {
	const fn = "reportQuESTEnv"
	validateEnv(env, fn)

	var b strings.Builder
	b.WriteString("EXECUTION ENVIRONMENT:\n")
	b.WriteString("Running locally on one node\n")
	fmt.Fprintf(&b, "Number of ranks is %d\n", env.NumRanks)
	b.WriteString("OpenMP disabled\n")
	fmt.Fprintf(&b, "Precision: size of qreal is %d bytes\n", Precision*4)
	return b.String()
}

func validateEnv(env *Env, fn string) {
	if env == nil {
		raise(fn, "Invalid QuEST environment. Environment is nil.")
	}
	if env.destroyed.Load() {
		raise(fn, "Invalid QuEST environment. Environment has been destroyed.")
	}
}

// defaultSeeds mirrors the engine's default seeding from time and pid.
func defaultSeeds() []uint64 {
	return []uint64{uint64(time.Now().UnixNano()), uint64(os.Getpid())}
}
