// Package config loads application settings from defaults, an optional YAML
// file, FLASHFLOW_* environment variables and command-line flags, in that
// order of precedence (later wins).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const envPrefix = "FLASHFLOW_"

// Config holds all application configuration.
type Config struct {
	Backend        string        `koanf:"backend" validate:"required,oneof=sqlite redis memory"`
	StateKey       string        `koanf:"state_key" validate:"required"`
	PersistTimeout time.Duration `koanf:"persist_timeout" validate:"gt=0"`
	SQLite         SQLiteConfig  `koanf:"sqlite"`
	Redis          RedisConfig   `koanf:"redis"`
	HTTP           HTTPConfig    `koanf:"http"`
	Log            LogConfig     `koanf:"log"`
	Import         ImportConfig  `koanf:"import"`
}

type SQLiteConfig struct {
	Path string `koanf:"path"`
}

type RedisConfig struct {
	URL string `koanf:"url" validate:"omitempty,url"`
}

type HTTPConfig struct {
	Addr string `koanf:"addr" validate:"required,hostname_port"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"required,oneof=debug info warn error"`
	Format string `koanf:"format" validate:"required,oneof=json text"`
}

type ImportConfig struct {
	// ReposDir is where git sources are cloned to.
	ReposDir string `koanf:"repos_dir" validate:"required"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Backend:        "sqlite",
		StateKey:       "flashflow_state",
		PersistTimeout: 5 * time.Second,
		SQLite:         SQLiteConfig{Path: "flashflow.db"},
		HTTP:           HTTPConfig{Addr: "127.0.0.1:8080"},
		Log:            LogConfig{Level: "info", Format: "text"},
		Import:         ImportConfig{ReposDir: "repos"},
	}
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"backend":         "backend",
	"state-key":       "state_key",
	"persist-timeout": "persist_timeout",
	"db":              "sqlite.path",
	"redis-url":       "redis.url",
	"addr":            "http.addr",
	"log-level":       "log.level",
	"log-format":      "log.format",
	"repos-dir":       "import.repos_dir",
}

// Load parses args (without the program name) and returns the resulting
// configuration along with the remaining positional arguments.
func Load(args []string) (*Config, []string, error) {
	def := Default()

	fs := pflag.NewFlagSet("flashflow", pflag.ContinueOnError)
	configPath := fs.String("config", "", "Path to a YAML config file")
	fs.String("backend", def.Backend, "Storage backend: sqlite, redis or memory")
	fs.String("state-key", def.StateKey, "Key the application state is stored under")
	fs.Duration("persist-timeout", def.PersistTimeout, "Timeout for each storage call")
	fs.String("db", def.SQLite.Path, "Path to the SQLite database file")
	fs.String("redis-url", def.Redis.URL, "Redis URL, e.g. redis://localhost:6379/0")
	fs.String("addr", def.HTTP.Addr, "Address the HTTP API listens on")
	fs.String("log-level", def.Log.Level, "Log level: debug, info, warn or error")
	fs.String("log-format", def.Log.Format, "Log format: json or text")
	fs.String("repos-dir", def.Import.ReposDir, "Directory git sources are cloned into")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	k := koanf.New(".")

	if *configPath != "" {
		if err := k.Load(file.Provider(*configPath), yaml.Parser()); err != nil {
			return nil, nil, fmt.Errorf("failed to load config file %s: %w", *configPath, err)
		}
	}

	envToKey := func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}
	if err := k.Load(env.Provider(envPrefix, ".", envToKey), nil); err != nil {
		return nil, nil, fmt.Errorf("failed to load environment: %w", err)
	}

	flags := posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, interface{}) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return "", nil
		}
		return key, posflag.FlagVal(fs, f)
	})
	if err := k.Load(flags, nil); err != nil {
		return nil, nil, fmt.Errorf("failed to load flags: %w", err)
	}

	cfg := def
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return &cfg, fs.Args(), nil
}

// Validate checks field constraints and the settings the chosen backend needs.
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	switch c.Backend {
	case "sqlite":
		if c.SQLite.Path == "" {
			return errors.New("invalid config: sqlite.path is required for the sqlite backend")
		}
	case "redis":
		if c.Redis.URL == "" {
			return errors.New("invalid config: redis.url is required for the redis backend")
		}
	}
	return nil
}
