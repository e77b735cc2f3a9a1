package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	raygun "github.com/alwyn/logback-raygun"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// These fields represent command line flags and all have to be pointers as
// they will be unset until Parse is called.
type sendFlags struct {
	apiKey   *string
	tags     *string
	endpoint *string
	envFile  *string
	message  *string
	errText  *string
	logger   *string
	thread   *string
	fields   *string
	json     *bool
	debug    *bool
}

func newSendFlags(sendCmd *flag.FlagSet) *sendFlags {
	return &sendFlags{
		apiKey: sendCmd.String(
			"api-key",
			"",
			`Required. A Raygun API key, or space separated "host:key" pairs.
raygun will look for a RAYGUN_API_KEY environment variable if no value is provided.`,
		),

		tags: sendCmd.String(
			"tags",
			"",
			`Required. Comma separated tags attached to the report.
raygun will look for a RAYGUN_TAGS environment variable if no value is provided.`,
		),

		endpoint: sendCmd.String(
			"endpoint",
			"",
			`Optional. Override the Raygun endpoint, e.g. for a proxy. Defaults to RAYGUN_ENDPOINT.`,
		),

		envFile: sendCmd.String("env-file", ".env", `Optional. A dotenv file to load before reading the environment.`),
		message: sendCmd.String("message", "", `Required. The message to report.`),
		errText: sendCmd.String("error", "", `Optional. The text of the error being reported.`),
		logger:  sendCmd.String("logger", "raygun-cli", `Optional. The logger name to report.`),
		thread:  sendCmd.String("thread", "main", `Optional. The thread name to report.`),
		fields:  sendCmd.String("fields", "", `Optional. Format is "KEY1=VALUE1,KEY2=VALUE2"`),
		json:    sendCmd.Bool("json", false, "Log in JSON"),
		debug:   sendCmd.Bool("debug", false, "Turn on for debug logs"),
	}
}

func (app *application) runSend() error {
	flags := app.sendFlags
	if *flags.json {
		app.log.SetFormatter(&logrus.JSONFormatter{})
	}
	if *flags.debug {
		app.log.SetLevel(logrus.DebugLevel)
	}
	if *flags.message == "" {
		return fmt.Errorf("--message is required\nSee 'raygun send --help'")
	}

	cfg, err := loadConfig(*flags.envFile)
	if err != nil {
		return err
	}
	populateFromFlags(cfg, flags)
	if err := cfg.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w\nSee 'raygun send --help'", err)
	}
	app.log.WithFields(logrus.Fields{"endpoint": cfg.Endpoint, "tags": cfg.Tags}).Debug("configuration loaded")

	keys, err := raygun.ParseKeys(cfg.APIKey)
	if err != nil {
		return fmt.Errorf("invalid API key: %w", err)
	}
	host, err := os.Hostname()
	if err != nil {
		return fmt.Errorf("unable to resolve host name: %w", err)
	}
	if _, ok := keys.Lookup(host); !ok {
		app.log.WithField("host", host).Warn("no API key configured for this host; nothing reported")
		return nil
	}

	hook, err := raygun.New(raygun.Configuration{
		APIKey:     cfg.APIKey,
		Tags:       cfg.Tags,
		Endpoint:   cfg.Endpoint,
		AppVersion: cfg.AppVersion,
		LoggerName: *flags.logger,
	})
	if err != nil {
		return fmt.Errorf("unable to create hook: %w", err)
	}

	fields := logrus.Fields{"thread": *flags.thread}
	for k, v := range splitByEquals(strings.Split(*flags.fields, ",")) {
		fields[k] = v
	}
	entry := app.log.WithFields(fields).WithTime(time.Now())
	if *flags.errText != "" {
		entry = entry.WithError(errors.New(*flags.errText))
	}
	entry.Level = logrus.ErrorLevel
	entry.Message = *flags.message

	// Fired directly rather than through app.log, so that delivery failures
	// become the exit status instead of a line on stderr.
	if err := hook.Fire(entry); err != nil {
		return fmt.Errorf("unable to send report: %w", err)
	}
	app.log.WithField("message", *flags.message).Info("report sent")
	return nil
}

func populateFromFlags(cfg *config, flags *sendFlags) {
	if *flags.apiKey != "" {
		cfg.APIKey = *flags.apiKey
	}
	if *flags.tags != "" {
		cfg.Tags = *flags.tags
	}
	if *flags.endpoint != "" {
		cfg.Endpoint = *flags.endpoint
	}
}
