package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	originalEnv := map[string]string{
		"GRAFICA_APP_NAME":               os.Getenv("GRAFICA_APP_NAME"),
		"GRAFICA_APP_ENV":                os.Getenv("GRAFICA_APP_ENV"),
		"GRAFICA_APP_PORT":               os.Getenv("GRAFICA_APP_PORT"),
		"GRAFICA_DATABASE_HOST":          os.Getenv("GRAFICA_DATABASE_HOST"),
		"GRAFICA_DATABASE_PORT":          os.Getenv("GRAFICA_DATABASE_PORT"),
		"GRAFICA_DATABASE_PASSWORD":      os.Getenv("GRAFICA_DATABASE_PASSWORD"),
		"GRAFICA_DATABASE_SSLMODE":       os.Getenv("GRAFICA_DATABASE_SSLMODE"),
		"GRAFICA_JWT_SECRET":             os.Getenv("GRAFICA_JWT_SECRET"),
		"GRAFICA_GATEWAY_WEBHOOK_SECRET": os.Getenv("GRAFICA_GATEWAY_WEBHOOK_SECRET"),
		"GRAFICA_BILLING_TRIAL_DAYS":     os.Getenv("GRAFICA_BILLING_TRIAL_DAYS"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "graficaerp-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "graficaerp", cfg.Database.DBName)
		assert.Equal(t, 14, cfg.Billing.TrialDays)
		assert.Equal(t, "gratis", cfg.Billing.DefaultPlanCode)
		assert.Equal(t, 10, cfg.HTTP.AIRateLimitRequests)
	})

	t.Run("loads values from environment variables with GRAFICA prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("GRAFICA_APP_NAME", "test-app")
		os.Setenv("GRAFICA_APP_PORT", "9000")
		os.Setenv("GRAFICA_DATABASE_HOST", "testdb.local")
		os.Setenv("GRAFICA_DATABASE_PORT", "5433")
		os.Setenv("GRAFICA_BILLING_TRIAL_DAYS", "30")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, 30, cfg.Billing.TrialDays)
	})

	t.Run("production requires secrets", func(t *testing.T) {
		clearEnv()
		os.Setenv("GRAFICA_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("production accepts a complete configuration", func(t *testing.T) {
		clearEnv()
		os.Setenv("GRAFICA_APP_ENV", "production")
		os.Setenv("GRAFICA_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		os.Setenv("GRAFICA_DATABASE_PASSWORD", "secret")
		os.Setenv("GRAFICA_DATABASE_SSLMODE", "require")
		os.Setenv("GRAFICA_GATEWAY_WEBHOOK_SECRET", "whsec_test")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.local",
		Port:     5432,
		User:     "grafica",
		Password: "p@ss/word",
		DBName:   "graficaerp",
		SSLMode:  "require",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.local:5432")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss/word", "password must be URL-escaped")
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", r.Addr())
}
