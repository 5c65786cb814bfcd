package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the handle lifecycle the error occurred
type Phase string

const (
	PhaseInit     Phase = "init"     // environment creation, interceptor install
	PhaseAlloc    Phase = "alloc"    // register allocation
	PhaseCall     Phase = "call"     // guarded engine operations
	PhaseFinalize Phase = "finalize" // register/environment teardown
	PhaseConfig   Phase = "config"   // configuration loading
	PhaseParse    Phase = "parse"    // circuit parsing
)

// Kind categorizes the error
type Kind string

const (
	// KindEngineFault means the engine itself signaled failure through its
	// fault callback. The handles involved remain usable.
	KindEngineFault Kind = "engine_fault"

	// KindContractViolation means the caller misused a handle or passed
	// arguments rejected before the engine was reached.
	KindContractViolation Kind = "contract_violation"

	// KindInternalInconsistency means the bridge itself is miswired, e.g. an
	// unwind arrived with no fault record waiting for it.
	KindInternalInconsistency Kind = "internal_inconsistency"

	KindInvalidInput Kind = "invalid_input"
)

// Sentinels for errors.Is. They match on Kind only.
var (
	ErrEngineFault           = &Error{Kind: KindEngineFault}
	ErrContractViolation     = &Error{Kind: KindContractViolation}
	ErrInternalInconsistency = &Error{Kind: KindInternalInconsistency}
)

// Error is the structured error type returned by every guarded call
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Op     string // bridge operation, e.g. "hadamard"
	Func   string // engine function that raised the fault
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}
	if e.Func != "" && e.Func != e.Op {
		b.WriteString(" (")
		b.WriteString(e.Func)
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// Kind must match; Phase and Op are compared only when set on target.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	if t.Phase != "" && e.Phase != t.Phase {
		return false
	}
	if t.Op != "" && e.Op != t.Op {
		return false
	}
	return true
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Op sets the bridge operation name
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// Func sets the engine function name
func (b *Builder) Func(fn string) *Builder {
	b.err.Func = fn
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for the bridge taxonomy

// EngineFault creates an error from a message captured by the fault interceptor
func EngineFault(op, fn, message string) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindEngineFault,
		Op:     op,
		Func:   fn,
		Detail: message,
	}
}

// ContractViolation creates a caller-misuse error
func ContractViolation(phase Phase, op, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindContractViolation,
		Op:     op,
		Detail: detail,
	}
}

// InternalInconsistency creates a bridge wiring error
func InternalInconsistency(op, detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindInternalInconsistency,
		Op:     op,
		Detail: detail,
		Cause:  cause,
	}
}

// LengthMismatch creates a contract violation for slices that must agree in length
func LengthMismatch(op string, what string, got, want int) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindContractViolation,
		Op:     op,
		Detail: fmt.Sprintf("%s has length %d, want %d", what, got, want),
		Value:  got,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidInput,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// KindOf returns the Kind of err if it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return "", false
		}
		err = u.Unwrap()
	}
	return "", false
}

// IsEngineFault reports whether err is an engine fault
func IsEngineFault(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindEngineFault
}

// IsContractViolation reports whether err is a contract violation
func IsContractViolation(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindContractViolation
}

// IsInternalInconsistency reports whether err is an internal inconsistency
func IsInternalInconsistency(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindInternalInconsistency
}
