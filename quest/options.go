package quest

import (
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/quest-go/resource"
)

// OutstandingPolicy decides what Env.Close does with registers that are
// still open.
type OutstandingPolicy int

const (
	// PolicyRelease deallocates every open register, finalizes the
	// environment, and reports the released registers as a contract
	// violation.
	PolicyRelease OutstandingPolicy = iota

	// PolicyReject refuses to close while registers are open. The
	// environment stays active.
	PolicyReject
)

func (p OutstandingPolicy) String() string {
	switch p {
	case PolicyRelease:
		return "release"
	case PolicyReject:
		return "reject"
	default:
		return "unknown"
	}
}

// ParsePolicy maps "release" or "reject" to a policy.
func ParsePolicy(s string) (OutstandingPolicy, bool) {
	switch s {
	case "release", "":
		return PolicyRelease, true
	case "reject":
		return PolicyReject, true
	default:
		return 0, false
	}
}

// Metrics receives register lifecycle events and the outcome of every
// guarded call.
type Metrics interface {
	resource.Observer
	ObserveCall(op string, elapsed time.Duration, err error)
}

type options struct {
	logger  *zap.Logger
	metrics Metrics
	seeds   []uint64
	policy  OutstandingPolicy
}

// Option configures an Env.
type Option func(*options)

// WithLogger sets the logger for the environment and its registers.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetrics attaches a metrics sink.
func WithMetrics(m Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithSeeds seeds the measurement generators instead of the engine's
// time-based default.
func WithSeeds(seeds ...uint64) Option {
	return func(o *options) {
		o.seeds = append([]uint64(nil), seeds...)
	}
}

// WithOutstandingPolicy selects how Close treats open registers.
func WithOutstandingPolicy(p OutstandingPolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}
