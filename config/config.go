package config

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const MsgFailedToReadConfiguration = "failed to read configuration"

var ErrFailedToReadConfiguration = errors.New(MsgFailedToReadConfiguration)

type Configuration struct {
	PostgresDB struct {
		Host     string `envconfig:"DB_SERVER" required:"true" default:"localhost"`
		Port     uint32 `envconfig:"DB_PORT" required:"true" default:"5432"`
		User     string `envconfig:"DB_USER" required:"true" default:"postgres"`
		Pass     string `envconfig:"DB_PASS" required:"true"`
		Database string `envconfig:"DB_DATABASE" required:"true"`
		SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	}
	DBSchema        string        `envconfig:"DB_SCHEMA" default:"public"`
	LogLevel        zerolog.Level `envconfig:"LOG_LEVEL" default:"1"`
	ApplicationName string        `envconfig:"APPLICATION_NAME" default:"attemptid-migration"`
}

func ReadConfiguration() (Configuration, error) {
	var config Configuration
	err := envconfig.Process("", &config)
	if err != nil {
		err = errors.Wrap(err, MsgFailedToReadConfiguration)
		log.Error().Err(err).Msg(ErrFailedToReadConfiguration.Error())
		return config, err
	}
	return config, nil
}
