package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "RAYGUN_"

type config struct {
	APIKey     string `koanf:"api_key" validate:"required"`
	Tags       string `koanf:"tags" validate:"required"`
	Endpoint   string `koanf:"endpoint" validate:"omitempty,url"`
	AppVersion string `koanf:"app_version"`
}

// loadConfig reads RAYGUN_* environment variables, after loading envFile (if
// it exists) into the environment. Variables that are already set are not
// overridden by envFile.
func loadConfig(envFile string) (*config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("unable to load %s: %w", envFile, err)
		}
	}

	k := koanf.New(".")
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("unable to load environment variables: %w", err)
	}

	cfg := &config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

func (c *config) validate() error {
	return validator.New().Struct(c)
}
