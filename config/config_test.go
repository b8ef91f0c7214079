package config_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/examforge/attemptid-migration/config"
)

func TestReadConfigurationDefaults(t *testing.T) {
	t.Setenv("DB_PASS", "postgres")
	t.Setenv("DB_DATABASE", "examforge")

	configuration, err := config.ReadConfiguration()
	assert.Nil(t, err)
	assert.Equal(t, "localhost", configuration.PostgresDB.Host)
	assert.Equal(t, uint32(5432), configuration.PostgresDB.Port)
	assert.Equal(t, "postgres", configuration.PostgresDB.User)
	assert.Equal(t, "disable", configuration.PostgresDB.SSLMode)
	assert.Equal(t, "public", configuration.DBSchema)
	assert.Equal(t, zerolog.InfoLevel, configuration.LogLevel)
	assert.Equal(t, "attemptid-migration", configuration.ApplicationName)
}

func TestReadConfigurationOverrides(t *testing.T) {
	t.Setenv("DB_SERVER", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_PASS", "secret")
	t.Setenv("DB_DATABASE", "examforge")
	t.Setenv("DB_SCHEMA", "assessments")
	t.Setenv("LOG_LEVEL", "0")

	configuration, err := config.ReadConfiguration()
	assert.Nil(t, err)
	assert.Equal(t, "db.internal", configuration.PostgresDB.Host)
	assert.Equal(t, uint32(5433), configuration.PostgresDB.Port)
	assert.Equal(t, "secret", configuration.PostgresDB.Pass)
	assert.Equal(t, "assessments", configuration.DBSchema)
	assert.Equal(t, zerolog.DebugLevel, configuration.LogLevel)
}

func TestReadConfigurationRequiresDatabase(t *testing.T) {
	t.Setenv("DB_PASS", "postgres")

	_, err := config.ReadConfiguration()
	assert.NotNil(t, err)
}
