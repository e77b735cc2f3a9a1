package raygun

import (
	"sync"
	"time"

	"github.com/alwyn/logback-raygun/client"
	"github.com/juju/errors"
	"github.com/sirupsen/logrus"
)

// Identity of this hook, reported in the "client" object of every message.
const (
	Name    = "logback-raygun"
	Version = "3.0.0"
	URL     = "https://github.com/alwyn/logback-raygun"
)

// Hook is a logrus.Hook reporting log entries to Raygun. It is safe for
// concurrent use.
type Hook struct {
	cfg      *Configuration
	keys     KeyMap
	tags     []string
	hostname string

	senderOnce sync.Once
	sender     Sender
}

// New constructs a new Hook with the given configuration. The host name is
// resolved once here and reported as the machine name of every message.
func New(cfg Configuration) (*Hook, error) { //nolint:gocritic // We want to pass by value here as the configuration should be considered immutable
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	keys, err := ParseKeys(cfg.APIKey)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	hostname, err := cfg.Hostname()
	if err != nil {
		return nil, errors.Annotate(err, "unable to resolve host name")
	}

	return &Hook{
		cfg:      &cfg,
		keys:     keys,
		tags:     ParseTags(cfg.Tags),
		hostname: hostname,
	}, nil
}

// Levels returns the levels the hook fires for.
func (h *Hook) Levels() []logrus.Level {
	return h.cfg.Levels
}

// Fire reports the entry to Raygun. Errors from the delivery are returned
// as-is for logrus to print.
func (h *Hook) Fire(entry *logrus.Entry) error {
	return h.OnEvent(h.eventFromEntry(entry))
}

// OnEvent synchronously reports ev to Raygun, using the API key configured for
// the current host. Nothing is reported, and no error returned, when the host
// has no API key.
func (h *Hook) OnEvent(ev Event) error {
	host, err := h.cfg.Hostname()
	if err != nil {
		return errors.Annotate(err, "unable to resolve host name")
	}
	apiKey, ok := h.keys.Lookup(host)
	if !ok {
		return nil
	}
	sender := h.ensureSender(apiKey)
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}

	b := &reportBuilder{skipFrame: h.cfg.SkipFrame}
	appID, ok := applicationID()
	if ok {
		b.appID = appID
	} else {
		appID = defaultApplicationID
	}

	msg := client.NewMessageBuilder().
		SetEnvironmentDetails().
		SetMachineName(h.hostname).
		SetClientDetails().
		SetTags(h.tags).
		SetOccurredOn(ev.Time).
		SetError(b.build(ev.Message, ev.Err, ev.CallerFrames)).
		SetUserCustomData(makeUserCustomData(ev, appID)).
		Build()
	msg.Details.Client = &client.ClientDetails{Name: Name, Version: Version, ClientURL: URL}

	return sender.Send(msg)
}

// ensureSender returns the sender, constructing it on first use. The sender
// is bound to the key of the host resolved in New, or to apiKey if that host
// has none.
func (h *Hook) ensureSender(apiKey string) Sender {
	h.senderOnce.Do(func() {
		if key, ok := h.keys.Lookup(h.hostname); ok {
			apiKey = key
		}
		h.sender = h.cfg.NewSender(apiKey, h.cfg.AppVersion)
	})
	return h.sender
}

func makeUserCustomData(ev Event, appID string) map[string]interface{} {
	data := make(map[string]interface{}, len(ev.Context)+4)
	for k, v := range ev.Context {
		data["mdc:"+k] = contextValue(v)
	}
	data["thread"] = ev.Thread
	data["logger"] = ev.Logger
	data["applicationId"] = appID
	data["datetime"] = ev.Time
	return data
}
