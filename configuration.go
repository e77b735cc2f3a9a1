package raygun

import (
	"os"
	"strings"

	"github.com/alwyn/logback-raygun/client"
	"github.com/juju/errors"
	"github.com/sirupsen/logrus"
)

// ApplicationIDEnv is the environment variable holding an optional
// application identifier. When set, it prefixes every reported message and is
// reported as "applicationId" in the custom data.
const ApplicationIDEnv = "RAYGUN_APPLICATION_ID"

const defaultApplicationID = "unnamed"

// Configuration represents all of the possible configurations for the hook.
type Configuration struct {
	// Required. Either a single Raygun API key used for every host, or a
	// space separated list of "hostname:apikey" pairs. Hosts without a key
	// don't report anything.
	APIKey string

	// Required. Comma separated tags attached to every report.
	Tags string

	// Optional. The application version reported to Raygun. Defaults to the
	// version of this package.
	AppVersion string

	// Optional. The endpoint to send reports to. Defaults to
	// https://api.raygun.com/entries
	Endpoint string

	// Optional. The levels the hook fires for. Defaults to panic, fatal and
	// error.
	Levels []logrus.Level

	// Optional. The entry field holding the name of the reporting
	// thread/goroutine/worker. Defaults to "thread".
	ThreadField string

	// Optional. The entry field holding the logger name. Defaults to
	// "logger"; entries without it are reported with LoggerName.
	LoggerField string
	LoggerName  string

	// Optional. Reports whether a function (as named by runtime.Frame) must
	// be skipped when looking for the location of a log call. Defaults to
	// SkipInternalFrame.
	SkipFrame func(function string) bool

	// Optional. Resolves the name of this host. Defaults to os.Hostname.
	Hostname func() (string, error)

	// Optional. Constructs the client used for delivery. Called at most once.
	NewSender func(apiKey, appVersion string) Sender
}

// Sender delivers a single message to Raygun.
type Sender interface {
	Send(msg *client.Message) error
}

func (cfg *Configuration) validate() error {
	if cfg.APIKey == "" {
		return errors.NewNotValid(nil, "apiKey cannot be empty")
	}
	if cfg.Tags == "" {
		return errors.NewNotValid(nil, "tags cannot be empty")
	}
	return nil
}

func (cfg *Configuration) applyDefaults() {
	if cfg.AppVersion == "" {
		cfg.AppVersion = Version
	}
	if len(cfg.Levels) == 0 {
		cfg.Levels = []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel}
	}
	if cfg.ThreadField == "" {
		cfg.ThreadField = "thread"
	}
	if cfg.LoggerField == "" {
		cfg.LoggerField = "logger"
	}
	if cfg.SkipFrame == nil {
		cfg.SkipFrame = SkipInternalFrame
	}
	if cfg.Hostname == nil {
		cfg.Hostname = os.Hostname
	}
	if cfg.NewSender == nil {
		endpoint := cfg.Endpoint
		cfg.NewSender = func(apiKey, appVersion string) Sender {
			return client.NewFactory(apiKey).WithVersion(appVersion).WithEndpoint(endpoint).NewClient()
		}
	}
}

// ParseTags splits a comma separated list of tags. Empty tags are dropped and
// duplicates are reported once, in the order first seen.
func ParseTags(tags string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, tag := range strings.Split(tags, ",") {
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// applicationID returns the configured application identifier, and whether
// one has been set.
func applicationID() (string, bool) {
	id, ok := os.LookupEnv(ApplicationIDEnv)
	return id, ok && id != ""
}
