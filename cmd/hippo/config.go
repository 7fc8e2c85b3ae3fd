package main

import (
	"errors"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/kovetskiy/ko"
	"github.com/reconquest/hippo-go"
	"github.com/reconquest/karma-go"
	"github.com/reconquest/pkg/log"
)

const DEFAULT_CONFIG_PATH = "/etc/hippo/hippo.conf"

var ErrorNotConfigured = errors.New("hippo url or username is not configured")

type Config struct {
	URL      string `yaml:"url"      env:"HIPPO_URL"`
	Username string `yaml:"username" env:"HIPPO_USERNAME"`
	Password string `yaml:"password" env:"HIPPO_PASSWORD"`

	DangerAcceptInvalidCerts bool          `yaml:"danger_accept_invalid_certs" env:"HIPPO_DANGER_ACCEPT_INVALID_CERTS"`
	Timeout                  time.Duration `yaml:"timeout"                     env:"HIPPO_TIMEOUT"                     default:"30s"`

	Log struct {
		Debug bool `yaml:"debug" env:"HIPPO_LOG_DEBUG"`
		Trace bool `yaml:"trace" env:"HIPPO_LOG_TRACE"`
	} `yaml:"log"`
}

func LoadConfig(path string) (*Config, error) {
	log.Debugf(karma.Describe("path", path), "loading configuration")

	var config Config
	err := ko.Load(path, &config, yaml.Unmarshal, ko.RequireFile(false))
	if err != nil {
		return nil, karma.Format(
			err,
			"unable to load configuration: %s", path,
		)
	}

	if config.URL == "" || config.Username == "" {
		return &config, ErrorNotConfigured
	}

	return &config, nil
}

func (config *Config) GetOptions() hippo.Options {
	return hippo.Options{
		DangerAcceptInvalidCerts: config.DangerAcceptInvalidCerts,
		Timeout:                  config.Timeout,
	}
}
