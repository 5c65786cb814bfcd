package quest

import (
	stderrors "errors"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wippyai/quest-go/engine"
	"github.com/wippyai/quest-go/errors"
	"github.com/wippyai/quest-go/resource"
)

// RegisterState is the lifecycle state of a Register.
type RegisterState int32

const (
	RegisterAllocated RegisterState = iota
	RegisterActive
	RegisterDeallocated

	// registerClosing is held while Close checks for in-flight calls.
	// Reported as RegisterActive.
	registerClosing
)

func (s RegisterState) String() string {
	switch s {
	case RegisterAllocated:
		return "allocated"
	case RegisterActive, registerClosing:
		return "active"
	case RegisterDeallocated:
		return "deallocated"
	default:
		return "unknown"
	}
}

// Register owns one engine register. It may be shared between goroutines
// (see Capabilities), but calls on the same Register must be serialized by
// the caller.
type Register struct {
	id        uuid.UUID
	env       *Env
	q         *engine.Qureg
	handle    resource.Handle
	numQubits int
	density   bool
	state     atomic.Int32
}

// NewRegister allocates a state-vector register of n qubits in |0>.
func NewRegister(env *Env, n int) (*Register, error) {
	return newRegister(env, "createQureg", n, false)
}

// NewDensityRegister allocates a density-matrix register of n qubits in |0><0|.
func NewDensityRegister(env *Env, n int) (*Register, error) {
	return newRegister(env, "createDensityQureg", n, true)
}

func newRegister(env *Env, op string, n int, density bool) (*Register, error) {
	if env == nil {
		return nil, errors.ContractViolation(errors.PhaseAlloc, op, "nil environment")
	}

	env.mu.RLock()
	defer env.mu.RUnlock()

	if err := env.checkActive(errors.PhaseAlloc, op); err != nil {
		return nil, err
	}

	create := engine.CreateQureg
	tag := TagStateVector
	if density {
		create = engine.CreateDensityQureg
		tag = TagDensity
	}

	q, err := callValue(env, op, func() *engine.Qureg { return create(n, env.native) })
	if err != nil {
		return nil, err
	}

	r := &Register{
		id:        uuid.New(),
		env:       env,
		q:         q,
		numQubits: n,
		density:   density,
	}
	r.state.Store(int32(RegisterAllocated))

	r.handle = env.regs.Insert(tag, r)
	if r.handle == 0 {
		_ = env.call("destroyQureg", func() { engine.DestroyQureg(q, env.native) })
		return nil, errors.InternalInconsistency(op, "register table refused insert", nil)
	}
	r.state.Store(int32(RegisterActive))
	return r, nil
}

// ID identifies the register in logs and reports.
func (r *Register) ID() uuid.UUID {
	return r.id
}

// Env returns the owning environment.
func (r *Register) Env() *Env {
	return r.env
}

// NumQubits returns the number of represented qubits.
func (r *Register) NumQubits() int {
	return r.numQubits
}

// NumAmps returns the number of stored amplitudes: 2^n for a state-vector,
// 4^n for a density matrix.
func (r *Register) NumAmps() int64 {
	if r.density {
		return int64(1) << uint(2*r.numQubits)
	}
	return int64(1) << uint(r.numQubits)
}

// IsDensityMatrix reports whether the register holds a density matrix.
func (r *Register) IsDensityMatrix() bool {
	return r.density
}

// State returns the lifecycle state.
func (r *Register) State() RegisterState {
	if s := RegisterState(r.state.Load()); s != registerClosing {
		return s
	}
	return RegisterActive
}

// Capabilities returns the concurrency permissions granted to this handle.
func (r *Register) Capabilities() Capability {
	return capabilities()
}

// Close deallocates the register. A second Close, or Close while another
// goroutine is inside a call on this register, is a contract violation; in
// the latter case the register stays usable.
func (r *Register) Close() error {
	const op = "destroyQureg"
	if r == nil {
		return errors.ContractViolation(errors.PhaseFinalize, op, "nil register")
	}

	r.env.mu.RLock()
	defer r.env.mu.RUnlock()

	if !r.state.CompareAndSwap(int32(RegisterActive), int32(registerClosing)) {
		return errors.ContractViolation(errors.PhaseFinalize, op,
			fmt.Sprintf("register %s is %s", r.id, r.State()))
	}

	if _, err := r.env.regs.Remove(r.handle); err != nil {
		r.state.Store(int32(RegisterActive))
		if stderrors.Is(err, resource.ErrPinned) {
			return errors.ContractViolation(errors.PhaseFinalize, op,
				fmt.Sprintf("register %s busy: a call is in flight", r.id))
		}
		return errors.InternalInconsistency(op, "register missing from table", err)
	}

	return r.destroy(op)
}

// release is Close on behalf of Env.Close. The environment is already
// closing, so any call that pins the handle now backs out; wait for it.
func (r *Register) release(op string) error {
	r.state.Store(int32(registerClosing))
	for {
		_, err := r.env.regs.Remove(r.handle)
		if err == nil {
			break
		}
		if !stderrors.Is(err, resource.ErrPinned) {
			return errors.InternalInconsistency(op, "register missing from table", err)
		}
		runtime.Gosched()
	}
	return r.destroy(op)
}

func (r *Register) destroy(op string) error {
	err := r.env.call(op, func() { engine.DestroyQureg(r.q, r.env.native) })
	r.state.Store(int32(RegisterDeallocated))
	if err != nil {
		r.env.logger.Error("register deallocation failed",
			zap.String("register", r.id.String()), zap.Error(err))
	}
	return err
}

// acquire pins the register for one call. The returned func unpins it.
// Handles carry a generation, so a closed register's handle fails to pin
// even after its slot has been reused.
func (r *Register) acquire(op string) (func(), error) {
	if r == nil {
		return nil, errors.ContractViolation(errors.PhaseCall, op, "nil register")
	}
	env := r.env
	if !env.regs.Pin(r.handle) {
		return nil, r.unusable(op)
	}
	unpin := func() { env.regs.Unpin(r.handle) }

	if err := env.checkActive(errors.PhaseCall, op); err != nil {
		unpin()
		return nil, err
	}
	return unpin, nil
}

func (r *Register) unusable(op string) error {
	if err := r.env.checkActive(errors.PhaseCall, op); err != nil {
		return err
	}
	return errors.ContractViolation(errors.PhaseCall, op,
		fmt.Sprintf("register %s is %s", r.id, r.State()))
}

// do runs one guarded engine call against the register.
func (r *Register) do(op string, fn func(q *engine.Qureg)) error {
	_, err := doValue(r, op, func(q *engine.Qureg) struct{} {
		fn(q)
		return struct{}{}
	})
	return err
}

func doValue[T any](r *Register, op string, fn func(q *engine.Qureg) T) (T, error) {
	var zero T
	unpin, err := r.acquire(op)
	if err != nil {
		return zero, err
	}
	defer unpin()
	return callValue(r.env, op, func() T { return fn(r.q) })
}

// doPair runs one guarded engine call that reads or writes two registers.
func doPair[T any](a, b *Register, op string, fn func(qa, qb *engine.Qureg) T) (T, error) {
	var zero T
	if a == nil || b == nil {
		return zero, errors.ContractViolation(errors.PhaseCall, op, "nil register")
	}
	if a.env != b.env {
		return zero, errors.ContractViolation(errors.PhaseCall, op, "registers belong to different environments")
	}
	unpinA, err := a.acquire(op)
	if err != nil {
		return zero, err
	}
	defer unpinA()
	unpinB, err := b.acquire(op)
	if err != nil {
		return zero, err
	}
	defer unpinB()
	return callValue(a.env, op, func() T { return fn(a.q, b.q) })
}
