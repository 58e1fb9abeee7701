// nolint: funlen
package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviecast/pkg/config"
)

func TestLoadConfig(t *testing.T) {
	t.Run("loads config from environment variables", func(t *testing.T) {
		envVars := map[string]string{
			"APP_ENV":          "test",
			"PORT":             "9090",
			"SENTRY_DSN":       "https://test@sentry.io/123",
			"ALLOW_ORIGINS":    "https://a.example, https://b.example",
			"RATE_LIMIT":       "50",
			"REGION":           "eu-west-1",
			"CAST_TABLE_NAME":  "MovieCast",
			"MOVIE_TABLE_NAME": "Movies",
			"DDB_ENDPOINT":     "http://localhost:8000",
		}
		for key, value := range envVars {
			t.Setenv(key, value)
		}

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, "https://test@sentry.io/123", cfg.SentryDSN)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins())
		assert.Equal(t, 50, cfg.RateLimit)
		assert.Equal(t, "eu-west-1", cfg.DynamoDB.Region)
		assert.Equal(t, "MovieCast", cfg.DynamoDB.CastTable)
		assert.Equal(t, "Movies", cfg.DynamoDB.MovieTable)
		assert.Equal(t, "http://localhost:8000", cfg.DynamoDB.Endpoint)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("applies defaults", func(t *testing.T) {
		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, config.DriverDynamoDB, cfg.StoreDriver)
		assert.Equal(t, "roleIx", cfg.DynamoDB.CastRoleIndex)
		assert.Equal(t, []string{"*"}, cfg.Origins())
	})

	t.Run("handles invalid port number", func(t *testing.T) {
		t.Setenv("PORT", "invalid")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})

	t.Run("handles invalid boolean value", func(t *testing.T) {
		t.Setenv("ENABLE_SSL", "not-a-boolean")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})
}

func TestValidate(t *testing.T) {
	t.Run("dynamodb driver requires region and tables", func(t *testing.T) {
		cfg := &config.Config{StoreDriver: config.DriverDynamoDB}
		cfg.DynamoDB.Region = "us-east-1"

		err := cfg.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "CAST_TABLE_NAME")
		assert.Contains(t, err.Error(), "MOVIE_TABLE_NAME")
	})

	t.Run("postgres driver requires host and database", func(t *testing.T) {
		cfg := &config.Config{StoreDriver: config.DriverPostgres}

		err := cfg.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_HOST")
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		cfg := &config.Config{StoreDriver: "mysql"}

		assert.Error(t, cfg.Validate())
	})

	t.Run("accepts complete postgres settings", func(t *testing.T) {
		cfg := &config.Config{StoreDriver: config.DriverPostgres}
		cfg.DB.Host = "localhost"
		cfg.DB.Name = "moviecast"

		assert.NoError(t, cfg.Validate())
	})
}
