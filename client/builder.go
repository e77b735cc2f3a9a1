package client

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// Identity of this client library, reported in the "client" object unless
// overridden by the caller.
const (
	Name    = "raygun4go"
	Version = "1.0.0"
	URL     = "https://github.com/alwyn/logback-raygun"
)

// MessageBuilder assembles a Message. The zero value is not usable; use
// NewMessageBuilder.
type MessageBuilder struct {
	msg *Message
}

// NewMessageBuilder returns a builder for an empty Message.
func NewMessageBuilder() *MessageBuilder {
	return &MessageBuilder{msg: &Message{Details: &MessageDetails{}}}
}

// SetEnvironmentDetails fills in details about the machine running the app.
func (b *MessageBuilder) SetEnvironmentDetails() *MessageBuilder {
	_, offset := time.Now().Zone()
	b.msg.Details.Environment = &Environment{
		ProcessorCount: runtime.NumCPU(),
		OSVersion:      osVersion(),
		Architecture:   runtime.GOARCH,
		UTCOffset:      float64(offset) / float64(time.Hour/time.Second),
		Locale:         locale(),
	}
	return b
}

// SetMachineName sets the host name reported with the message.
func (b *MessageBuilder) SetMachineName(name string) *MessageBuilder {
	b.msg.Details.MachineName = name
	return b
}

// SetClientDetails sets the client identity to this library's.
func (b *MessageBuilder) SetClientDetails() *MessageBuilder {
	b.msg.Details.Client = &ClientDetails{Name: Name, Version: Version, ClientURL: URL}
	return b
}

// SetTags sets the tags reported with the message.
func (b *MessageBuilder) SetTags(tags []string) *MessageBuilder {
	b.msg.Details.Tags = tags
	return b
}

// SetVersion sets the application version.
func (b *MessageBuilder) SetVersion(version string) *MessageBuilder {
	b.msg.Details.Version = version
	return b
}

// SetError sets the error being reported.
func (b *MessageBuilder) SetError(err *ErrorMessage) *MessageBuilder {
	b.msg.Details.Error = err
	return b
}

// SetOccurredOn sets the time at which the error happened.
func (b *MessageBuilder) SetOccurredOn(t time.Time) *MessageBuilder {
	b.msg.OccurredOn = t.UTC()
	return b
}

// SetUserCustomData sets the custom data shown alongside the error.
func (b *MessageBuilder) SetUserCustomData(data map[string]interface{}) *MessageBuilder {
	b.msg.Details.UserCustomData = data
	return b
}

// Build returns the built message, stamping OccurredOn with the current time
// if it hasn't been set.
func (b *MessageBuilder) Build() *Message {
	if b.msg.OccurredOn.IsZero() {
		b.msg.OccurredOn = time.Now().UTC()
	}
	return b.msg
}

// osVersion is only available on unix-like systems as it depends on the
// 'uname' command.
func osVersion() string {
	if b, err := exec.Command("uname", "-r").Output(); err == nil {
		return strings.TrimSpace(string(b))
	}
	return ""
}

func locale() string {
	lang := os.Getenv("LANG")
	if i := strings.IndexByte(lang, '.'); i != -1 {
		lang = lang[:i]
	}
	return lang
}
