package quest

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wippyai/quest-go/engine"
	"github.com/wippyai/quest-go/errors"
	"github.com/wippyai/quest-go/fault"
	"github.com/wippyai/quest-go/resource"
)

// State is the lifecycle state of an Env.
type State int32

const (
	StateUninitialized State = iota
	StateActive
	StateFinalized

	// stateClosing is held while Close decides whether it may proceed.
	// Reported as StateActive.
	stateClosing
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive, stateClosing:
		return "active"
	case StateFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// Tags of registers in the environment's table, as seen by observers.
const (
	TagStateVector resource.Tag = iota + 1
	TagDensity
)

var (
	currentMu sync.Mutex
	current   *Env
)

// Env is the process-wide engine environment. At most one Env is active per
// process at any time.
type Env struct {
	id      uuid.UUID
	native  *engine.Env
	regs    resource.Table
	logger  *zap.Logger
	metrics Metrics
	policy  OutstandingPolicy
	created time.Time

	// mu orders register creation and register Close against Env.Close.
	// Calls on registers do not take it.
	mu    sync.RWMutex
	state atomic.Int32
}

// NewEnv installs the fault interceptor if needed and creates the engine
// environment. A second NewEnv while one is active is a contract violation.
func NewEnv(opts ...Option) (*Env, error) {
	const op = "createQuESTEnv"

	o := options{policy: PolicyRelease}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = Logger()
	}

	fault.MustInstall()

	currentMu.Lock()
	defer currentMu.Unlock()

	if current != nil {
		return nil, errors.ContractViolation(errors.PhaseInit, op,
			fmt.Sprintf("environment %s is already active in this process", current.id))
	}

	native, err := fault.CallValue(op, engine.CreateEnv)
	if err != nil {
		return nil, err
	}

	e := &Env{
		id:      uuid.New(),
		native:  native,
		regs:    resource.NewTable(),
		logger:  o.logger,
		metrics: o.metrics,
		policy:  o.policy,
		created: time.Now(),
	}
	e.logger = e.logger.With(zap.String("env", e.id.String()))

	if len(o.seeds) > 0 {
		if err := fault.Call("seedQuEST", func() { engine.SeedQuEST(native, o.seeds) }); err != nil {
			_ = fault.Call("destroyQuESTEnv", func() { engine.DestroyEnv(native) })
			return nil, err
		}
	}

	e.regs.Subscribe(resource.ObserverFunc(e.logRegisterEvent))
	if e.metrics != nil {
		e.regs.Subscribe(e.metrics)
	}

	e.state.Store(int32(StateActive))
	current = e

	e.logger.Info("environment created",
		zap.Stringer("policy", e.policy),
		zap.Stringer("capabilities", e.Capabilities()))
	return e, nil
}

// ID identifies the environment in logs and reports.
func (e *Env) ID() uuid.UUID {
	return e.id
}

// State returns the lifecycle state.
func (e *Env) State() State {
	if s := State(e.state.Load()); s != stateClosing {
		return s
	}
	return StateActive
}

// Capabilities returns the concurrency permissions granted to this Env.
func (e *Env) Capabilities() Capability {
	return capabilities()
}

// NumRegisters returns the number of registers not yet closed.
func (e *Env) NumRegisters() int {
	return e.regs.Len()
}

// Registers returns the registers not yet closed, in allocation order of
// their handles.
func (e *Env) Registers() []*Register {
	var out []*Register
	e.regs.Each(func(_ resource.Handle, _ resource.Tag, v any) bool {
		out = append(out, v.(*Register))
		return true
	})
	return out
}

// Seed reseeds the generators of registers created from now on.
func (e *Env) Seed(seeds ...uint64) error {
	const op = "seedQuEST"
	if err := e.checkActive(errors.PhaseCall, op); err != nil {
		return err
	}
	return e.call(op, func() { engine.SeedQuEST(e.native, seeds) })
}

// Seeds returns the seeds currently in effect.
func (e *Env) Seeds() []uint64 {
	return e.native.Seeds()
}

// Report describes the environment.
func (e *Env) Report() (string, error) {
	const op = "reportQuESTEnv"
	if err := e.checkActive(errors.PhaseCall, op); err != nil {
		return "", err
	}
	report, err := callValue(e, op, func() string { return engine.ReportEnv(e.native) })
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(report)
	fmt.Fprintf(&b, "Environment %s, %d open registers, up %s\n",
		e.id, e.regs.Len(), time.Since(e.created).Round(time.Millisecond))
	return b.String(), nil
}

// Close finalizes the environment.
//
// Close fails with a contract violation, leaving the environment active, if
// any register call is in flight or if registers are open under
// PolicyReject. Under PolicyRelease open registers are deallocated first and
// the environment is finalized; the returned contract violation names them.
// Closing a finalized environment is a contract violation.
func (e *Env) Close() error {
	const op = "destroyQuESTEnv"

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.CompareAndSwap(int32(StateActive), int32(stateClosing)) {
		return errors.ContractViolation(errors.PhaseFinalize, op,
			fmt.Sprintf("environment is %s", e.State()))
	}

	if n := e.regs.Pinned(); n > 0 {
		e.state.Store(int32(StateActive))
		return errors.ContractViolation(errors.PhaseFinalize, op,
			fmt.Sprintf("environment busy: %d registers have calls in flight", n))
	}

	open := e.Registers()
	if len(open) > 0 && e.policy == PolicyReject {
		e.state.Store(int32(StateActive))
		return errors.New(errors.PhaseFinalize, errors.KindContractViolation).
			Op(op).
			Value(len(open)).
			Detail("%d registers still open: %s", len(open), registerIDs(open)).
			Build()
	}

	var releaseErr error
	for _, r := range open {
		e.logger.Warn("releasing open register at environment close",
			zap.String("register", r.id.String()),
			zap.Int("qubits", r.numQubits))
		if err := r.release(op); err != nil && releaseErr == nil {
			releaseErr = err
		}
	}
	_ = e.regs.Close()

	err := e.call(op, func() { engine.DestroyEnv(e.native) })

	e.state.Store(int32(StateFinalized))
	currentMu.Lock()
	if current == e {
		current = nil
	}
	currentMu.Unlock()

	if err != nil {
		return err
	}
	if releaseErr != nil {
		return releaseErr
	}
	if len(open) > 0 {
		return errors.New(errors.PhaseFinalize, errors.KindContractViolation).
			Op(op).
			Value(len(open)).
			Detail("released %d open registers: %s", len(open), registerIDs(open)).
			Build()
	}

	e.logger.Info("environment finalized")
	return nil
}

func (e *Env) checkActive(phase errors.Phase, op string) error {
	switch s := State(e.state.Load()); s {
	case StateActive:
		return nil
	case stateClosing:
		return errors.ContractViolation(phase, op, "environment is closing")
	default:
		return errors.ContractViolation(phase, op, fmt.Sprintf("environment is %s", s))
	}
}

// call runs one guarded engine call and reports it to metrics.
func (e *Env) call(op string, fn func()) error {
	_, err := callValue(e, op, func() struct{} {
		fn()
		return struct{}{}
	})
	return err
}

func callValue[T any](e *Env, op string, fn func() T) (T, error) {
	start := time.Now()
	v, err := fault.CallValue(op, fn)
	if e.metrics != nil {
		e.metrics.ObserveCall(op, time.Since(start), err)
	}
	if err != nil {
		e.logger.Debug("engine call failed", zap.String("op", op), zap.Error(err))
	}
	return v, err
}

func (e *Env) logRegisterEvent(ev resource.Event) {
	r, ok := ev.Value.(*Register)
	if !ok {
		return
	}
	e.logger.Debug("register "+ev.Type.String(),
		zap.String("register", r.id.String()),
		zap.Uint64("handle", uint64(ev.Handle)),
		zap.Int("qubits", r.numQubits),
		zap.Bool("density", ev.Tag == TagDensity))
}

func registerIDs(regs []*Register) string {
	ids := make([]string, len(regs))
	for i, r := range regs {
		ids[i] = r.id.String()
	}
	return strings.Join(ids, ", ")
}
