package client_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alwyn/logback-raygun/client"
	"github.com/kinbiko/jsonassert"
)

type request struct {
	header http.Header
	body   string
}

func testServer(status int) (*httptest.Server, chan request) {
	reqs := make(chan request, 10)
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		reqs <- request{header: r.Header, body: string(body)}
		w.WriteHeader(status)
	})), reqs
}

func makeMessage() *client.Message {
	msg := client.NewMessageBuilder().
		SetMachineName("myHost").
		SetClientDetails().
		SetTags([]string{"prod", "api"}).
		SetError(&client.ErrorMessage{
			ClassName: "*errors.errorString",
			Message:   "oh ploppers",
			StackTrace: []*client.StackTraceLine{
				{LineNumber: 12, ClassName: "main", FileName: "/src/main.go", MethodName: "main"},
			},
		}).
		SetUserCustomData(map[string]interface{}{"thread": "t1"}).
		Build()
	msg.OccurredOn = time.Date(2021, 8, 1, 12, 0, 0, 0, time.UTC)
	return msg
}

func TestSend(t *testing.T) {
	ts, reqs := testServer(http.StatusAccepted)
	defer ts.Close()

	c := client.NewFactory("abc123").WithVersion("3.0.0").WithEndpoint(ts.URL).NewClient()
	if err := c.Send(makeMessage()); err != nil {
		t.Fatal(err)
	}

	var got request
	select {
	case got = <-reqs:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("no request received after half a second.")
	}

	if exp, got := "abc123", got.header.Get("X-ApiKey"); got != exp {
		t.Errorf("expected X-ApiKey header '%s' but got '%s'", exp, got)
	}
	if got.header.Get("X-Request-Id") == "" {
		t.Error("expected an X-Request-Id header but got none")
	}
	if exp, got := "application/json", got.header.Get("Content-Type"); got != exp {
		t.Errorf("expected Content-Type header '%s' but got '%s'", exp, got)
	}

	jsonassert.New(t).Assertf(got.body, `{
		"occurredOn": "2021-08-01T12:00:00Z",
		"details": {
			"machineName": "myHost",
			"version": "3.0.0",
			"client": {"name": "raygun4go", "version": "%s", "clientUrl": "https://github.com/alwyn/logback-raygun"},
			"tags": ["prod", "api"],
			"userCustomData": {"thread": "t1"},
			"error": {
				"className": "*errors.errorString",
				"message": "oh ploppers",
				"stackTrace": [
					{"lineNumber": 12, "className": "main", "fileName": "/src/main.go", "methodName": "main"}
				]
			}
		}
	}`, client.Version)
}

func TestSendKeepsMessageVersion(t *testing.T) {
	ts, reqs := testServer(http.StatusAccepted)
	defer ts.Close()

	msg := makeMessage()
	msg.Details.Version = "9.9.9"
	if err := client.NewFactory("abc123").WithVersion("3.0.0").WithEndpoint(ts.URL).NewClient().Send(msg); err != nil {
		t.Fatal(err)
	}
	got := <-reqs
	if !strings.Contains(got.body, `"version":"9.9.9"`) {
		t.Errorf("expected the message's own version to be kept but got %s", got.body)
	}
}

func TestSendFailures(t *testing.T) {
	for _, tc := range []struct {
		name   string
		status int
		expMsg string
	}{
		{name: "bad request", status: http.StatusBadRequest, expMsg: "raygun responded with HTTP 400 (bad message)"},
		{name: "forbidden", status: http.StatusForbidden, expMsg: "raygun responded with HTTP 403 (invalid API key)"},
		{name: "too large", status: http.StatusRequestEntityTooLarge, expMsg: "raygun responded with HTTP 413 (message too large)"},
		{name: "rate limited", status: http.StatusTooManyRequests, expMsg: "raygun responded with HTTP 429 (rate limited)"},
		{name: "other", status: http.StatusInternalServerError, expMsg: "raygun responded with HTTP 500 (Internal Server Error)"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ts, _ := testServer(tc.status)
			defer ts.Close()

			err := client.NewFactory("abc123").WithEndpoint(ts.URL).NewClient().Send(makeMessage())
			if err == nil {
				t.Fatal("expected an error but got none")
			}
			var serr *client.StatusError
			if !errors.As(err, &serr) {
				t.Fatalf("expected a *client.StatusError but got %T", err)
			}
			if serr.StatusCode != tc.status {
				t.Errorf("expected status code %d but got %d", tc.status, serr.StatusCode)
			}
			if got := err.Error(); got != tc.expMsg {
				t.Errorf("expected error message '%s' but got '%s'", tc.expMsg, got)
			}
		})
	}

	t.Run("unreachable endpoint", func(t *testing.T) {
		err := client.NewFactory("abc123").WithEndpoint("http://0.0.0.0:1").NewClient().Send(makeMessage())
		mustContain(t, err, "unable to perform HTTP request")
	})

	t.Run("missing API key", func(t *testing.T) {
		err := client.NewFactory("").NewClient().Send(makeMessage())
		mustContain(t, err, "NewFactory")
	})

	t.Run("missing details", func(t *testing.T) {
		err := client.NewFactory("abc123").NewClient().Send(&client.Message{})
		mustContain(t, err, "NewMessageBuilder")
	})
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestSendWithHTTPClient(t *testing.T) {
	var gotURL string
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		return &http.Response{StatusCode: http.StatusAccepted, Body: io.NopCloser(strings.NewReader(""))}, nil
	})}

	err := client.NewFactory("abc123").WithEndpoint("").WithHTTPClient(hc).NewClient().Send(makeMessage())
	if err != nil {
		t.Fatal(err)
	}
	if gotURL != client.DefaultEndpoint {
		t.Errorf("expected a request to '%s' but got '%s'", client.DefaultEndpoint, gotURL)
	}
}

func mustContain(t *testing.T, err error, subs ...string) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error but got none")
	}
	for _, s := range subs {
		if !strings.Contains(err.Error(), s) {
			t.Errorf("expected error message '%s' to contain '%s'", err.Error(), s)
		}
	}
}
