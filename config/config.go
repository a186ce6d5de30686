// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	configPath       = pflag.String("config", "", "Path to a config.toml file")
	validLogLevels   = []string{"debug", "info", "warn", "error", "fatal"}
	validDBDrivers   = []string{"sqlite", "postgres"}
	ErrMissingSecret = errors.New("jwt.secret is not set")
)

type Config struct {
	LogLevel string
	Port     int
	Origins  []string

	DBDriver string
	DBDSN    string

	JWTSecret string

	RateLimit int
	BodyLimit int64

	TurnstileEnabled bool
	TurnstileSecret  string

	CleanupInterval time.Duration
}

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup parses command line flags and loads the configuration. It
// returns an error if something is critically wrong and the application
// can't run because of that.
func Setup() (*Config, error) {
	pflag.Parse()

	v := viper.New()
	v.BindPFlags(pflag.CommandLine)

	return Load(v, *configPath)
}

// Load reads the configuration from defaults, an optional TOML file and
// the process environment, in that order of precedence.
func Load(v *viper.Viper, path string) (*Config, error) {
	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "APP_LOG_LEVEL")

	v.BindEnv("host.port", "PORT", "HOST_PORT")
	v.BindEnv("host.cors", "HOST_CORS")

	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.dsn", "DATABASE_URL", "DB_URL")

	v.BindEnv("jwt.secret", "JWT_SECRET", "SECRETA")

	v.BindEnv("security.rate_limit", "SECURITY_RATE_LIMIT")
	v.BindEnv("security.body_limit", "SECURITY_BODY_LIMIT")
	v.BindEnv("security.turnstile.enabled", "SECURITY_TURNSTILE_ENABLED")
	v.BindEnv("security.turnstile.secret", "SECURITY_TURNSTILE_SECRET")

	v.BindEnv("cleanup.interval", "CLEANUP_INTERVAL")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 4000)
	v.SetDefault("host.cors", "*")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "database.db")

	v.SetDefault("security.rate_limit", 0)
	v.SetDefault("security.body_limit", 1<<20)
	v.SetDefault("security.turnstile.enabled", false)

	v.SetDefault("cleanup.interval", "24h")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError

		switch {
		case errors.As(err, &notFound):
			// ./config.toml is optional, everything can come from the environment
		case path != "" && errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("config file %s is missing", path)
		default:
			return nil, fmt.Errorf("failed to read config file, %w", err)
		}
	}

	c := &Config{
		LogLevel:         strings.ToLower(v.GetString("app.log_level")),
		Port:             v.GetInt("host.port"),
		DBDriver:         strings.ToLower(v.GetString("database.driver")),
		DBDSN:            v.GetString("database.dsn"),
		JWTSecret:        v.GetString("jwt.secret"),
		RateLimit:        v.GetInt("security.rate_limit"),
		BodyLimit:        v.GetInt64("security.body_limit"),
		TurnstileEnabled: v.GetBool("security.turnstile.enabled"),
		TurnstileSecret:  v.GetString("security.turnstile.secret"),
		CleanupInterval:  v.GetDuration("cleanup.interval"),
	}

	for o := range strings.SplitSeq(v.GetString("host.cors"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			c.Origins = append(c.Origins, o)
		}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) validate() error {
	if !slices.Contains(validLogLevels, c.LogLevel) {
		return errors.New("invalid log level provided")
	}

	if c.Port <= 0 || c.Port > 65535 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDBDrivers, c.DBDriver) {
		return errors.New("invalid database driver provided")
	}

	if c.DBDSN == "" {
		return errors.New("database.dsn can't be empty")
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("%w. Set JWT_SECRET in the environment or jwt.secret in config.toml, for example:\n\n%s", ErrMissingSecret, genSecret())
	}

	if c.RateLimit < 0 {
		return errors.New("security.rate_limit can't be negative")
	}

	if c.BodyLimit <= 0 {
		return errors.New("security.body_limit must be bigger than 0")
	}

	if c.TurnstileEnabled && c.TurnstileSecret == "" {
		return errors.New("turnstile secret token is missing")
	}

	if c.CleanupInterval < 0 {
		return errors.New("cleanup.interval can't be negative")
	}

	return nil
}
