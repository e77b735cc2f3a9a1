package raygun

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
)

func TestSkipInternalFrame(t *testing.T) {
	for _, tc := range []struct {
		function string
		exp      bool
	}{
		{function: "github.com/alwyn/logback-raygun.(*Hook).Fire", exp: true},
		{function: "github.com/alwyn/logback-raygun/client.(*Client).Send", exp: true},
		{function: "github.com/sirupsen/logrus.(*Entry).Log", exp: true},
		{function: "runtime.Callers", exp: true},
		{function: "github.com/alwyn/logback-raygunner.Do", exp: false},
		{function: "main.main", exp: false},
		{function: "testing.tRunner", exp: false},
	} {
		t.Run(tc.function, func(t *testing.T) {
			if got := SkipInternalFrame(tc.function); got != tc.exp {
				t.Errorf("expected %v but got %v", tc.exp, got)
			}
		})
	}
}

func TestLocateCallSite(t *testing.T) {
	frame, ok := locateCallSite(func(function string) bool {
		return !strings.HasSuffix(function, ".TestLocateCallSite")
	})
	if !ok {
		t.Fatal("expected to locate the call site")
	}
	if exp := modulePath + ".TestLocateCallSite"; frame.Function != exp {
		t.Errorf("expected function '%s' but got '%s'", exp, frame.Function)
	}

	if _, ok := locateCallSite(skipAll); ok {
		t.Error("expected no call site when every frame is skipped")
	}
}

func TestErrorFrames(t *testing.T) {
	if frames := errorFrames(errors.New("no stack")); frames != nil {
		t.Errorf("expected no frames but got %d", len(frames))
	}

	err := fmt.Errorf("wrapped: %w", pkgerrors.New("with stack"))
	frames := errorFrames(err)
	if len(frames) == 0 {
		t.Fatal("expected frames from the wrapped error but got none")
	}
	if exp := modulePath + ".TestErrorFrames"; frames[0].Function != exp {
		t.Errorf("expected top frame '%s' but got '%s'", exp, frames[0].Function)
	}
}

func TestSignificant(t *testing.T) {
	base := &errB{}
	for _, tc := range []struct {
		name string
		err  error
		exp  string
	}{
		{name: "nil", err: nil, exp: "<nil>"},
		{name: "plain", err: base, exp: "*raygun.errB"},
		{name: "with stack", err: pkgerrors.WithStack(base), exp: "*raygun.errB"},
		{name: "wrap", err: pkgerrors.Wrap(base, "ctx"), exp: "*errors.withMessage"},
		{name: "percent-w", err: fmt.Errorf("ctx: %w", base), exp: "*fmt.wrapError"},
		{name: "same message without stack", err: &errSame{cause: base}, exp: "*raygun.errSame"},
		{name: "stack around same message", err: pkgerrors.WithStack(&errSame{cause: base}), exp: "*raygun.errSame"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := fmt.Sprintf("%T", significant(tc.err)); got != tc.exp {
				t.Errorf("expected '%s' but got '%s'", tc.exp, got)
			}
		})
	}
}
