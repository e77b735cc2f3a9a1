package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	uuid "github.com/gofrs/uuid"
)

// DefaultEndpoint is Raygun's SaaS ingestion endpoint.
const DefaultEndpoint = "https://api.raygun.com/entries"

// Factory creates Clients bound to a single API key.
type Factory struct {
	apiKey     string
	version    string
	endpoint   string
	httpClient *http.Client
}

// NewFactory returns a Factory producing clients for the given API key that
// send to the DefaultEndpoint.
func NewFactory(apiKey string) *Factory {
	return &Factory{apiKey: apiKey, endpoint: DefaultEndpoint}
}

// WithVersion sets the application version stamped on messages that don't
// carry one already.
func (f *Factory) WithVersion(version string) *Factory {
	f.version = version
	return f
}

// WithEndpoint overrides the endpoint messages are sent to. Configure if
// you're testing against a local server or proxy. An empty endpoint is
// ignored.
func (f *Factory) WithEndpoint(endpoint string) *Factory {
	if endpoint != "" {
		f.endpoint = endpoint
	}
	return f
}

// WithHTTPClient sets the HTTP client used for delivery. Defaults to
// http.DefaultClient.
func (f *Factory) WithHTTPClient(c *http.Client) *Factory {
	f.httpClient = c
	return f
}

// NewClient returns a new Client. Clients are safe for concurrent use.
func (f *Factory) NewClient() *Client {
	hc := f.httpClient
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{apiKey: f.apiKey, version: f.version, endpoint: f.endpoint, httpClient: hc}
}

// Client delivers messages to Raygun.
type Client struct {
	apiKey     string
	version    string
	endpoint   string
	httpClient *http.Client
}

// StatusError is returned by Send when Raygun doesn't accept the message.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	reason := map[int]string{
		http.StatusBadRequest:            "bad message",
		http.StatusForbidden:             "invalid API key",
		http.StatusRequestEntityTooLarge: "message too large",
		http.StatusTooManyRequests:       "rate limited",
	}[e.StatusCode]
	if reason == "" {
		reason = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("raygun responded with HTTP %d (%s)", e.StatusCode, reason)
}

// Send synchronously delivers msg. There are no retries: any transport error
// or non-202 response is returned to the caller.
// The client's version is set on msg if msg has none.
func (c *Client) Send(msg *Message) error {
	if c.apiKey == "" {
		return fmt.Errorf("client created without an API key; please use NewFactory with a non-empty key")
	}
	if msg == nil || msg.Details == nil {
		return fmt.Errorf("message details missing; please use NewMessageBuilder to construct messages")
	}
	if msg.Details.Version == "" {
		msg.Details.Version = c.version
	}

	b, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("unable to marshal JSON: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewBuffer(b))
	if err != nil {
		return fmt.Errorf("unable to create new request: %w", err)
	}
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("X-ApiKey", c.apiKey)
	if id, err := uuid.NewV4(); err == nil {
		req.Header.Add("X-Request-Id", id.String())
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("unable to perform HTTP request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return &StatusError{StatusCode: res.StatusCode, Body: string(body)}
	}
	return nil
}
