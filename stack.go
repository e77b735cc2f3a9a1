package raygun

import (
	"errors"
	"runtime"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
)

const (
	modulePath     = "github.com/alwyn/logback-raygun"
	maxStackFrames = 64
)

// placeholderFrame is reported when no frame outside of this package and the
// logging framework could be found.
var placeholderFrame = runtime.Frame{
	Function: modulePath + ".(*Hook).Fire",
	File:     "hook.go",
	Line:     1,
}

var stackPCPool = sync.Pool{
	New: func() interface{} {
		buf := make([]uintptr, maxStackFrames)
		return &buf
	},
}

// stackTracer is implemented by errors created or wrapped by
// github.com/pkg/errors.
type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// SkipInternalFrame reports whether a frame belongs to this package, the
// logrus framework or the Go runtime, and so can't be where a log call
// originated.
func SkipInternalFrame(function string) bool {
	for _, prefix := range []string{
		modulePath + ".",
		modulePath + "/",
		"github.com/sirupsen/logrus.",
		"runtime.",
	} {
		if strings.HasPrefix(function, prefix) {
			return true
		}
	}
	return false
}

// locateCallSite returns the first frame of the current goroutine's stack
// that isn't matched by skip.
func locateCallSite(skip func(string) bool) (runtime.Frame, bool) {
	bufPtr := stackPCPool.Get().(*[]uintptr)
	defer stackPCPool.Put(bufPtr)

	pcs := (*bufPtr)[:runtime.Callers(0, *bufPtr)]
	frames := runtime.CallersFrames(pcs)
	for {
		frame, more := frames.Next()
		if frame.Function != "" && !skip(frame.Function) {
			return frame, true
		}
		if !more {
			return runtime.Frame{}, false
		}
	}
}

// errorFrames returns the stack recorded by the first error in err's chain
// that carries one, or nil.
func errorFrames(err error) []runtime.Frame {
	for ; err != nil; err = unwrapCause(err) {
		st, ok := err.(stackTracer)
		if !ok {
			continue
		}
		trace := st.StackTrace()
		if len(trace) == 0 {
			continue
		}
		pcs := make([]uintptr, len(trace))
		for i, f := range trace {
			pcs[i] = uintptr(f)
		}
		return callersFrames(pcs)
	}
	return nil
}

func callersFrames(pcs []uintptr) []runtime.Frame {
	out := make([]runtime.Frame, 0, len(pcs))
	frames := runtime.CallersFrames(pcs)
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			out = append(out, frame)
		}
		if !more {
			return out
		}
	}
}

type causer interface {
	Cause() error
}

// unwrapCause returns the next link of err's causal chain, preferring the
// github.com/pkg/errors Cause method over Unwrap.
func unwrapCause(err error) error {
	if c, ok := err.(causer); ok {
		return c.Cause()
	}
	return errors.Unwrap(err)
}

// significant skips over the stack carrying layer that pkg/errors.Wrap and
// WithStack put around an error. Such a layer implements stackTracer and has
// the same message as its cause.
func significant(err error) error {
	for err != nil {
		if _, ok := err.(stackTracer); !ok {
			return err
		}
		next := unwrapCause(err)
		if next == nil || next.Error() != err.Error() {
			return err
		}
		err = next
	}
	return nil
}
