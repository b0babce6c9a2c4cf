package config

import (
	"os"
	"path/filepath"
	"taskhub/persistence"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, persistence.DriverSqlite, cfg.DBDriver)
	assert.Equal(t, "file:taskhub.db?_foreign_keys=on&_busy_timeout=5000&_loc=auto", cfg.DBArgs)
	assert.Equal(t, "", cfg.ElasticsearchURL)
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins())
	assert.Equal(t, 20.0, cfg.RateLimitRPS)
	assert.Equal(t, 40, cfg.RateLimitBurst)
	assert.False(t, cfg.TracingEnabled)
	assert.Equal(t, "taskhub", cfg.ServiceName)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	file := filepath.Join(t.TempDir(), "taskhub.yaml")
	require.NoError(t, os.WriteFile(file, []byte("HTTP_ADDR: \":9090\"\nDB_DRIVER: mysql\nDB_ARGS: root@tcp(127.0.0.1:3306)/taskhub\n"), 0o600))

	t.Setenv("DB_ARGS", "root:secret@tcp(db:3306)/taskhub")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.example.com, ,http://b.example.com")
	t.Setenv("TRACING_ENABLED", "true")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := Load(file)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, persistence.DriverMysql, cfg.DBDriver)
	assert.Equal(t, "root:secret@tcp(db:3306)/taskhub", cfg.DBArgs)
	assert.Equal(t, []string{"http://a.example.com", "http://b.example.com"}, cfg.AllowOrigins())
	assert.True(t, cfg.TracingEnabled)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, &persistence.DatabaseConfig{DriverType: "mysql", DriverArgs: "root:secret@tcp(db:3306)/taskhub"},
		cfg.DatabaseConfig())
}

func TestLoadInvalid(t *testing.T) {
	t.Run("missing config file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("unsupported driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "oracle")
		_, err := Load("")
		assert.EqualError(t, err, "unsupported database driver 'oracle'")
	})

	t.Run("negative rate limit", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_BURST", "-1")
		_, err := Load("")
		assert.EqualError(t, err, "rate limit must not be negative")
	})
}
