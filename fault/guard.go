package fault

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/quest-go/errors"
)

// Call invokes fn, which must wrap exactly one engine call, and converts an
// engine fault raised inside it into an error scoped to this call.
func Call(op string, fn func()) error {
	_, err := CallValue(op, func() struct{} {
		fn()
		return struct{}{}
	})
	return err
}

// CallValue is Call for engine functions that return a value.
//
// On normal return it yields the value and a nil error. If the engine
// faulted, the record is drained from the channel and returned as an
// errors.KindEngineFault error. An unwind with no record yields
// errors.KindInternalInconsistency. Panics that did not come from the
// interceptor are not translated and keep propagating.
func CallValue[T any](op string, fn func() T) (result T, err error) {
	if !installed.Load() {
		return result, errors.InternalInconsistency(op, "fault interceptor not installed", nil)
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		u, ok := r.(unwind)
		if !ok {
			panic(r)
		}
		err = translate(op, u)
	}()

	return fn(), nil
}

func translate(op string, u unwind) error {
	rec, ok := channel.Receive(u.ticket)
	if !ok {
		Logger().Error("unwind without fault record",
			zap.String("op", op),
			zap.Uint64("seq", u.ticket.Seq),
			zap.Int("slot", u.ticket.Slot))
		return errors.InternalInconsistency(op,
			fmt.Sprintf("unwind for fault %d arrived without a fault record", u.ticket.Seq), nil)
	}

	Logger().Debug("engine fault recovered",
		zap.String("op", op),
		zap.String("func", rec.Func),
		zap.String("message", rec.Message))
	return errors.EngineFault(op, rec.Func, rec.Message)
}
