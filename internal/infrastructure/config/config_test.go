package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	originalEnv := map[string]string{
		"NINJA_APP_NAME":          os.Getenv("NINJA_APP_NAME"),
		"NINJA_APP_ENV":           os.Getenv("NINJA_APP_ENV"),
		"NINJA_APP_PORT":          os.Getenv("NINJA_APP_PORT"),
		"NINJA_DATABASE_DRIVER":   os.Getenv("NINJA_DATABASE_DRIVER"),
		"NINJA_DATABASE_HOST":     os.Getenv("NINJA_DATABASE_HOST"),
		"NINJA_DATABASE_PASSWORD": os.Getenv("NINJA_DATABASE_PASSWORD"),
		"NINJA_DATABASE_SSLMODE":  os.Getenv("NINJA_DATABASE_SSLMODE"),
		"NINJA_LOG_LEVEL":         os.Getenv("NINJA_LOG_LEVEL"),
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

		assert.Equal(t, "invoiceninja-render", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "invoiceninja.db", cfg.Database.Path)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, 90, cfg.Render.JobRetentionDays)
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		clearEnv()
		os.Setenv("NINJA_APP_PORT", "9090")
		os.Setenv("NINJA_DATABASE_DRIVER", "postgres")
		os.Setenv("NINJA_LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.App.Port)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("rejects unknown database driver", func(t *testing.T) {
		clearEnv()
		os.Setenv("NINJA_DATABASE_DRIVER", "oracle")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("production requires postgres password", func(t *testing.T) {
		clearEnv()
		os.Setenv("NINJA_APP_ENV", "production")
		os.Setenv("NINJA_DATABASE_DRIVER", "postgres")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("production sqlite needs no credentials", func(t *testing.T) {
		clearEnv()
		os.Setenv("NINJA_APP_ENV", "production")
		os.Setenv("NINJA_DATABASE_DRIVER", "sqlite")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfigDSN(t *testing.T) {
	t.Run("postgres DSN escapes credentials", func(t *testing.T) {
		cfg := DatabaseConfig{
			Driver:   "postgres",
			Host:     "db.internal",
			Port:     5432,
			User:     "ninja",
			Password: "p@ss/word",
			DBName:   "invoices",
			SSLMode:  "require",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "postgres://")
		assert.Contains(t, dsn, "db.internal:5432")
		assert.Contains(t, dsn, "sslmode=require")
		assert.NotContains(t, dsn, "p@ss/word")
	})

	t.Run("sqlite DSN is the file path", func(t *testing.T) {
		cfg := DatabaseConfig{Driver: "sqlite", Path: "render.db"}
		assert.Equal(t, "render.db", cfg.DSN())
	})
}
