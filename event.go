package raygun

import (
	"encoding/json"
	"fmt"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
)

// Event is a single log event, as reported to Raygun.
type Event struct {
	Message string

	// Err is the error being logged, if any.
	Err error

	// CallerFrames is the location of the log call, if recorded. Used as the
	// stack trace in preference to any stack carried by Err.
	CallerFrames []runtime.Frame

	Thread string
	Logger string

	// Context attributes are reported as "mdc:<key>".
	Context map[string]interface{}

	Time time.Time
}

// eventFromEntry maps a logrus entry to an Event. The diagnostics attached to
// the entry's context are included in the event's context attributes, with
// fields of the entry taking precedence.
func (h *Hook) eventFromEntry(entry *logrus.Entry) Event {
	ev := Event{
		Message: entry.Message,
		Logger:  h.cfg.LoggerName,
		Context: map[string]interface{}{},
		Time:    entry.Time,
	}
	for k, v := range Diagnostics(entry.Context) {
		ev.Context[k] = v
	}
	for k, v := range entry.Data {
		switch k {
		case logrus.ErrorKey:
			if err, ok := v.(error); ok {
				ev.Err = err
				continue
			}
		case h.cfg.ThreadField:
			ev.Thread = fmt.Sprint(v)
			continue
		case h.cfg.LoggerField:
			ev.Logger = fmt.Sprint(v)
			continue
		}
		ev.Context[k] = v
	}
	if entry.Caller != nil {
		ev.CallerFrames = []runtime.Frame{*entry.Caller}
	}
	return ev
}

// contextValue returns v as it should appear in the custom data. Errors and
// values JSON can't encode are reported as their string form.
func contextValue(v interface{}) interface{} {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	if _, err := json.Marshal(v); err != nil {
		return fmt.Sprint(v)
	}
	return v
}
