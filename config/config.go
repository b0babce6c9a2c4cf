package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"taskhub/common"
	"taskhub/persistence"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr string `mapstructure:"HTTP_ADDR"`

	DBDriver string `mapstructure:"DB_DRIVER"`
	DBArgs   string `mapstructure:"DB_ARGS"`

	ElasticsearchURL string `mapstructure:"ELASTICSEARCH_URL"`

	CORSAllowOrigins string  `mapstructure:"CORS_ALLOW_ORIGINS"`
	RateLimitRPS     float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst   int     `mapstructure:"RATE_LIMIT_BURST"`

	TracingEnabled bool   `mapstructure:"TRACING_ENABLED"`
	ServiceName    string `mapstructure:"SERVICE_NAME"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

var defaults = map[string]interface{}{
	"HTTP_ADDR":          ":8080",
	"DB_DRIVER":          persistence.DriverSqlite,
	"DB_ARGS":            "file:taskhub.db?_foreign_keys=on&_busy_timeout=5000&_loc=auto",
	"ELASTICSEARCH_URL":  "",
	"CORS_ALLOW_ORIGINS": "*",
	"RATE_LIMIT_RPS":     20.0,
	"RATE_LIMIT_BURST":   40,
	"TRACING_ENABLED":    false,
	"SERVICE_NAME":       common.DefaultServiceName,
	"LOG_LEVEL":          "info",
	"LOG_FORMAT":         "text",
}

// Load reads .env when present, then the optional config file, environment variables win over both.
func Load(file string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case persistence.DriverSqlite, persistence.DriverMysql, persistence.DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver '%s'", c.DBDriver)
	}
	if c.DBArgs == "" {
		return errors.New("database arguments are required")
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return errors.New("rate limit must not be negative")
	}
	return nil
}

func (c *Config) DatabaseConfig() *persistence.DatabaseConfig {
	return &persistence.DatabaseConfig{DriverType: c.DBDriver, DriverArgs: c.DBArgs}
}

// AllowOrigins splits the comma separated origin list, blank entries are dropped.
func (c *Config) AllowOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
