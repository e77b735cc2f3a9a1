package raygun

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/alwyn/logback-raygun/client"
)

const (
	unknownClass   = "Unknown"
	causedByPrefix = "Caused by"
)

// reportBuilder turns a log message and its error into a Raygun error
// message. It holds no mutable state.
type reportBuilder struct {
	appID     string
	skipFrame func(string) bool
}

// build creates the error message for message and err. callerFrames, when
// given, are used verbatim as the stack trace. Otherwise the stack comes from
// err, or failing that from the location of the log call.
func (b *reportBuilder) build(message string, err error, callerFrames []runtime.Frame) *client.ErrorMessage {
	cause := significant(err)
	trace := b.stackTrace(err, callerFrames)

	className := unknownClass
	if cause != nil {
		className = errorClass(cause)
	} else if len(trace) > 0 {
		className = trace[0].ClassName
	}

	var sb strings.Builder
	if b.appID != "" {
		sb.WriteString(b.appID)
		sb.WriteString(": ")
	}
	sb.WriteString(message)
	if cause != nil {
		sb.WriteString("; ")
		sb.WriteString(causalString(cause))
	}

	em := &client.ErrorMessage{
		ClassName:  className,
		Message:    sb.String(),
		StackTrace: trace,
	}
	if cause != nil {
		if inner := unwrapCause(cause); inner != nil {
			em.InnerError = b.build(causedByPrefix, inner, nil)
		}
	}
	return em
}

func (b *reportBuilder) stackTrace(err error, callerFrames []runtime.Frame) []*client.StackTraceLine {
	frames := callerFrames
	if len(frames) == 0 {
		frames = errorFrames(err)
	}
	if len(frames) == 0 {
		frame, ok := locateCallSite(b.skipFrame)
		if !ok {
			frame = placeholderFrame
		}
		frames = []runtime.Frame{frame}
	}

	trace := make([]*client.StackTraceLine, len(frames))
	for i, f := range frames {
		trace[i] = client.NewStackTraceLine(f)
	}
	return trace
}

// causalString renders err and its causes as
// "Class: message; caused by Class: message".
func causalString(err error) string {
	var sb strings.Builder
	for e, first := err, true; e != nil; e, first = significant(unwrapCause(e)), false {
		if !first {
			sb.WriteString("; caused by ")
		}
		sb.WriteString(errorClass(e))
		if msg := e.Error(); msg != "" {
			sb.WriteString(": ")
			sb.WriteString(msg)
		}
	}
	return sb.String()
}

func errorClass(err error) string {
	return reflect.TypeOf(err).String()
}
