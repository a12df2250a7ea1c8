// Package config holds the runtime configuration of the hardship front-end:
// defaults, an optional YAML file, and explicit overrides applied by the CLI.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-hardship/pkg/navstate"
	"github.com/goliatone/go-hardship/pkg/records"
	"github.com/goliatone/go-hardship/pkg/theme"
)

// Navigation state backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config is the complete runtime configuration.
type Config struct {
	Listen   string         `yaml:"listen"`
	Service  ServiceConfig  `yaml:"service"`
	Contract ContractConfig `yaml:"contract"`
	Theme    ThemeConfig    `yaml:"theme"`
	NavState NavStateConfig `yaml:"navstate"`
	Log      LogConfig      `yaml:"log"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ServiceConfig locates the record service.
type ServiceConfig struct {
	BaseURL            string         `yaml:"base_url"`
	Timeout            time.Duration  `yaml:"timeout"`
	InsecureSkipVerify bool           `yaml:"insecure_skip_verify"`
	Routes             records.Routes `yaml:"routes"`
}

// ContractConfig controls outbound payload checks.
type ContractConfig struct {
	Enforce bool `yaml:"enforce"`
	// Path optionally replaces the embedded OpenAPI document.
	Path string `yaml:"path"`
	// Routes derives the client route table from the document's operations.
	Routes bool `yaml:"routes"`
}

type ThemeConfig struct {
	Name    string `yaml:"name"`
	Variant string `yaml:"variant"`
	// Templates optionally points at a directory whose templates shadow the
	// embedded ones.
	Templates string `yaml:"templates"`
}

type NavStateConfig struct {
	Backend string        `yaml:"backend"`
	TTL     time.Duration `yaml:"ttl"`
	Redis   RedisConfig   `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Listen: ":8080",
		Service: ServiceConfig{
			BaseURL: records.DefaultBaseURL,
			Timeout: records.DefaultTimeout,
			Routes:  records.DefaultRoutes(),
		},
		Contract: ContractConfig{Enforce: true},
		Theme:    ThemeConfig{Name: theme.DefaultName},
		NavState: NavStateConfig{
			Backend: BackendMemory,
			TTL:     navstate.DefaultTTL,
			Redis:   RedisConfig{Addr: "localhost:6379"},
		},
		Log:     LogConfig{Level: "info", Format: "text"},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load reads path over the defaults. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	if err := Decode(f, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode merges YAML from r into cfg. Unknown keys are rejected.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode: %w", err)
	}
	return cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Listen) == "" {
		return errors.New("config: listen address is required")
	}
	if strings.TrimSpace(c.Service.BaseURL) == "" {
		return errors.New("config: service.base_url is required")
	}
	if c.Service.Timeout < 0 {
		return errors.New("config: service.timeout must not be negative")
	}
	switch c.NavState.Backend {
	case BackendMemory:
	case BackendRedis:
		if strings.TrimSpace(c.NavState.Redis.Addr) == "" {
			return errors.New("config: navstate.redis.addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("config: unknown navstate backend %q", c.NavState.Backend)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	return nil
}

// NewLogger builds the slog logger described by c.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(raw) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: unknown log level %q", raw)
	}
	return level, nil
}
