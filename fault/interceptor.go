package fault

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/quest-go/engine"
	"github.com/wippyai/quest-go/errors"
)

var (
	installOnce sync.Once
	installErr  error
	installed   atomic.Bool

	// channel is the fixed endpoint pair shared by the interceptor (sender)
	// and every guard (receiver). It is created once by Install.
	channel *Channel
)

// unwind is the panic value raised by the interceptor. Only Call and
// CallValue recover it.
type unwind struct {
	ticket Ticket
}

// Install registers the interceptor as the engine's process-wide fault
// handler. It must run during single-threaded startup, before any guarded
// call. Further calls are no-ops returning the first result.
func Install() error {
	installOnce.Do(func() {
		channel = NewChannel(DefaultCapacity)
		engine.SetFaultHandler(intercept)
		if engine.CurrentFaultHandler() == nil {
			installErr = errors.New(errors.PhaseInit, errors.KindInternalInconsistency).
				Detail("engine fault handler did not take").
				Build()
			return
		}
		installed.Store(true)
		Logger().Debug("fault interceptor installed", zap.Int("capacity", channel.Cap()))
	})
	return installErr
}

// MustInstall is Install for callers that cannot proceed without it. A
// failure terminates the process.
func MustInstall() {
	if err := Install(); err != nil {
		fatal("install fault interceptor", zap.Error(err))
	}
}

// Installed reports whether the interceptor is active.
func Installed() bool {
	return installed.Load()
}

// Pending returns the number of fault records not yet drained by a guard.
// Outside of an in-flight fault this is always zero.
func Pending() int {
	if channel == nil {
		return 0
	}
	return channel.Pending()
}

// intercept is the engine fault handler. It runs on the goroutine that made
// the failing call and never returns: it records the fault and unwinds to
// the nearest guard. It takes no locks.
func intercept(message, fn string) {
	rec := &Record{
		Message: strings.Clone(message),
		Func:    fn,
	}
	ticket, err := channel.Send(rec)
	if err != nil {
		fatal("fault channel send failed",
			zap.Error(err),
			zap.String("func", fn),
			zap.String("message", message),
			zap.Int("pending", channel.Pending()))
	}
	panic(unwind{ticket: ticket})
}

// fatal reports and terminates. There is no safe path back into the engine
// once it has decided to abort. stderr comes first because the logger may be
// a no-op and Fatal exits without returning.
func fatal(msg string, fields ...zap.Field) {
	fmt.Fprintf(os.Stderr, "fault: %s\n", msg)
	Logger().Fatal(msg, fields...)
	os.Exit(1)
}
