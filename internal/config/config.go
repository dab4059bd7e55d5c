// Package config resolves hookslab settings.
//
// Priority order: command-line flags > HOOKSLAB_* environment > hookslab.yaml
// > defaults. A .env file next to the config file is loaded into the
// environment first and never overrides variables that are already set.
package config

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/hookslab/pkg/errors"
	"github.com/go-drift/hookslab/pkg/swapi"
)

// FileName is the default config file, looked up in the working directory.
const FileName = "hookslab.yaml"

// Environment overrides.
const (
	EnvBaseURL   = "HOOKSLAB_BASE_URL"
	EnvTimeout   = "HOOKSLAB_TIMEOUT"
	EnvLogFormat = "HOOKSLAB_LOG_FORMAT"
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = stderrors.New("invalid configuration")

// Config represents the optional hookslab.yaml configuration.
type Config struct {
	MinVersion string     `yaml:"min_version,omitempty"`
	API        APIConfig  `yaml:"api"`
	Log        LogConfig  `yaml:"log"`
	Demo       DemoConfig `yaml:"demo"`
}

// APIConfig points the planet client at a server.
type APIConfig struct {
	BaseURL string `yaml:"base_url,omitempty"`
	Timeout string `yaml:"timeout,omitempty"`
}

// LogConfig selects the log handler.
type LogConfig struct {
	Format string `yaml:"format,omitempty"`
	Level  string `yaml:"level,omitempty"`
}

// DemoConfig tunes the demo trees.
type DemoConfig struct {
	Classic             bool   `yaml:"classic,omitempty"`
	NotificationTimeout string `yaml:"notification_timeout,omitempty"`
}

// Overrides carries command-line flags. Zero fields are ignored.
type Overrides struct {
	BaseURL string
	Timeout time.Duration
	Verbose bool
}

// Resolved contains resolved configuration values.
type Resolved struct {
	// Path is the config file that was read, or empty when none existed.
	Path                string
	BaseURL             string
	Timeout             time.Duration
	LogFormat           string
	LogLevel            slog.Level
	Classic             bool
	NotificationTimeout time.Duration
}

// LoadOptional reads the config file at path if present.
func LoadOptional(path string) (*Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return &Config{}, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, false, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &cfg, true, nil
}

// LoadEnv loads dir/.env into the process environment if it exists.
// Variables that are already set keep their values.
func LoadEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Resolve loads .env and the config file at path (both optional), checks
// min_version against cliVersion and applies the environment and flag
// overrides on top.
func Resolve(path, cliVersion string, flags Overrides) (*Resolved, error) {
	if path == "" {
		path = FileName
	}
	if err := LoadEnv(filepath.Dir(path)); err != nil {
		return nil, invalid(err)
	}

	cfg, found, err := LoadOptional(path)
	if err != nil {
		return nil, invalid(err)
	}
	if err := CheckMinVersion(cfg.MinVersion, cliVersion); err != nil {
		return nil, invalid(err)
	}

	r := &Resolved{
		BaseURL:   swapi.DefaultBaseURL,
		Timeout:   swapi.DefaultTimeout,
		LogFormat: FormatText,
		LogLevel:  slog.LevelInfo,
		Classic:   cfg.Demo.Classic,
	}
	if found {
		r.Path = path
	}

	if err := r.apply(cfg); err != nil {
		return nil, invalid(err)
	}
	if err := r.applyEnv(); err != nil {
		return nil, invalid(err)
	}

	if flags.BaseURL != "" {
		r.BaseURL = flags.BaseURL
	}
	if flags.Timeout > 0 {
		r.Timeout = flags.Timeout
	}
	if flags.Verbose {
		r.LogLevel = slog.LevelDebug
	}

	if err := r.validate(); err != nil {
		return nil, invalid(err)
	}
	return r, nil
}

func (r *Resolved) apply(cfg *Config) error {
	if v := strings.TrimSpace(cfg.API.BaseURL); v != "" {
		r.BaseURL = v
	}
	if v := strings.TrimSpace(cfg.API.Timeout); v != "" {
		d, err := parseDuration("api.timeout", v)
		if err != nil {
			return err
		}
		r.Timeout = d
	}
	if v := strings.TrimSpace(cfg.Log.Format); v != "" {
		r.LogFormat = strings.ToLower(v)
	}
	if v := strings.TrimSpace(cfg.Log.Level); v != "" {
		if err := r.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}
	if v := strings.TrimSpace(cfg.Demo.NotificationTimeout); v != "" {
		d, err := parseDuration("demo.notification_timeout", v)
		if err != nil {
			return err
		}
		r.NotificationTimeout = d
	}
	return nil
}

func (r *Resolved) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		r.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		d, err := parseDuration(EnvTimeout, v)
		if err != nil {
			return err
		}
		r.Timeout = d
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		r.LogFormat = strings.ToLower(v)
	}
	return nil
}

func (r *Resolved) validate() error {
	u, err := url.Parse(r.BaseURL)
	if err != nil {
		return fmt.Errorf("base URL %q: %w", r.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base URL %q must be an absolute http(s) URL", r.BaseURL)
	}
	r.BaseURL = strings.TrimRight(r.BaseURL, "/")
	if r.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive (got %s)", r.Timeout)
	}
	if r.LogFormat != FormatText && r.LogFormat != FormatJSON {
		return fmt.Errorf("log format must be %q or %q (got %q)", FormatText, FormatJSON, r.LogFormat)
	}
	return nil
}

func parseDuration(field, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

func invalid(err error) error {
	return &errors.HookError{
		Op:        "config.Resolve",
		Kind:      errors.KindConfig,
		Err:       fmt.Errorf("%w: %w", ErrInvalid, err),
		Timestamp: time.Now(),
	}
}
