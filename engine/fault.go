package engine

import (
	"fmt"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
)

// FaultHandler is invoked synchronously, on the failing goroutine, whenever
// an engine function rejects its input. fn names the engine function that
// detected the problem.
//
// A handler must not return. The engine's internal state is not guaranteed to
// be consistent past the point of failure, so if a handler does return the
// engine terminates the process.
type FaultHandler func(message, fn string)

var faultHandler atomic.Pointer[FaultHandler]

// SetFaultHandler replaces the process-wide fault handler. Passing nil
// restores the default, which prints the error and exits with status 1.
//
// There is exactly one handler per process. Install it during single-threaded
// startup; swapping it while other goroutines are inside the engine is not
// supported.
func SetFaultHandler(h FaultHandler) {
	if h == nil {
		faultHandler.Store(nil)
		return
	}
	faultHandler.Store(&h)
}

// CurrentFaultHandler returns the installed handler, or nil if the default
// is in effect.
func CurrentFaultHandler() FaultHandler {
	if p := faultHandler.Load(); p != nil {
		return *p
	}
	return nil
}

func defaultFaultHandler(message, fn string) {
	fmt.Fprintf(os.Stderr, "!!!\nQuEST Error in function %s: %s\n!!!\nexiting..\n", fn, message)
	os.Exit(1)
}

// raise reports an input error through the installed fault handler.
func raise(fn, format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	h := defaultFaultHandler
	if p := faultHandler.Load(); p != nil {
		h = *p
	}
	h(msg, fn)

	Logger().Error("fault handler returned control to the engine",
		zap.String("func", fn),
		zap.String("message", msg))
	fmt.Fprintf(os.Stderr, "QuEST fault handler returned after error in %s: %s\n", fn, msg)
	os.Exit(1)
}
