package client

import (
	"runtime"
	"strings"
	"time"
)

// The types in this file are written against the Raygun Crash Reporting API
// defined here: https://raygun.com/documentation/product-guides/crash-reporting/api/

// Message is the top level payload that's sent to Raygun's servers upon
// reporting an error.
type Message struct {
	// OccurredOn is the time at which the error happened, in ISO8601 (UTC).
	OccurredOn time.Time `json:"occurredOn"`

	Details *MessageDetails `json:"details"`
}

// MessageDetails holds everything Raygun knows about a single occurrence of
// an error.
type MessageDetails struct {
	// MachineName is the host name of the machine that experienced the error.
	MachineName string `json:"machineName,omitempty"`

	// Version of the application which generated the error.
	Version string `json:"version,omitempty"`

	// GroupingKey overrides the grouping on the Raygun dashboard.
	//  **Warning: Do not set unless you're 100% sure of what you're doing.**
	GroupingKey string `json:"groupingKey,omitempty"`

	Error *ErrorMessage `json:"error"`

	Environment *Environment `json:"environment,omitempty"`

	// Client describes the library that sent this report. These properties
	// are used within Raygun to identify the integration.
	Client *ClientDetails `json:"client"`

	// Tags are free-form labels which can be used to filter errors in the
	// dashboard.
	Tags []string `json:"tags,omitempty"`

	// UserCustomData contains any further data you wish to attach to this
	// error. Shown under the "Custom" tab of an error instance.
	UserCustomData map[string]interface{} `json:"userCustomData,omitempty"`
}

// ErrorMessage is the error that occurred. The cause of the error (if any)
// can be attached as InnerError.
type ErrorMessage struct {
	InnerError *ErrorMessage `json:"innerError,omitempty"`

	// ClassName is the type of the error. This is used to group errors
	// together so should not contain any contextual information.
	ClassName string `json:"className"`

	Message string `json:"message"`

	StackTrace []*StackTraceLine `json:"stackTrace"`
}

// StackTraceLine represents one line in the error's stacktrace.
type StackTraceLine struct {
	LineNumber int    `json:"lineNumber"`
	ClassName  string `json:"className"`
	FileName   string `json:"fileName"`
	MethodName string `json:"methodName"`
}

// ClientDetails identifies the library sending the report.
type ClientDetails struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	ClientURL string `json:"clientUrl"`
}

// Environment is information about the machine running the app.
type Environment struct {
	ProcessorCount int    `json:"processorCount"`
	OSVersion      string `json:"osVersion,omitempty"`
	Architecture   string `json:"architecture,omitempty"`

	// UTCOffset is the offset of the local time zone in hours.
	UTCOffset float64 `json:"utcOffset"`

	Locale string `json:"locale,omitempty"`
}

// NewStackTraceLine converts a runtime frame into a stack trace line.
// Go has no classes, so the function name is split at its last '.' (after the
// package path): "pkg/path.(*T).Method" becomes class "pkg/path.(*T)" and
// method "Method".
func NewStackTraceLine(frame runtime.Frame) *StackTraceLine {
	className, methodName := SplitFunctionName(frame.Function)
	return &StackTraceLine{
		LineNumber: frame.Line,
		ClassName:  className,
		FileName:   frame.File,
		MethodName: methodName,
	}
}

// SplitFunctionName splits a fully qualified Go function name into a class
// and method part.
func SplitFunctionName(function string) (className, methodName string) {
	pkgStart := strings.LastIndex(function, "/") + 1
	dot := strings.LastIndex(function[pkgStart:], ".")
	if dot == -1 {
		return function, ""
	}
	dot += pkgStart
	return function[:dot], function[dot+1:]
}
