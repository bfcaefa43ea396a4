package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/webkit/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "webkit.json"

	// DefaultAddr is the default listen address.
	DefaultAddr = ":8080"

	// DefaultIdleTimeout is the default server-side session idle timeout.
	DefaultIdleTimeout = "24m"

	// DefaultMetricsPath is where Prometheus metrics are served.
	DefaultMetricsPath = "/metrics"
)

// Config represents the complete webkit.json configuration.
type Config struct {
	// Debug switches the session cookie to its plain debug name.
	Debug bool `json:"debug,omitempty"`

	// NoSession disables session start entirely.
	NoSession bool `json:"noSession,omitempty"`

	// Addr is the listen address of the serve command.
	Addr string `json:"addr,omitempty"`

	// Session contains session configuration.
	Session SessionConfig `json:"session,omitempty"`

	// Metrics contains metrics configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// path is the file path this config was loaded from.
	path string
}

// SessionConfig contains session configuration.
type SessionConfig struct {
	// IdleTimeout is how long an untouched session survives, as a Go
	// duration string.
	IdleTimeout string `json:"idleTimeout,omitempty"`

	// Domain is the cookie domain. Empty means host-only.
	Domain string `json:"domain,omitempty"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled exposes metrics on Path.
	Enabled bool `json:"enabled"`

	// Path is the HTTP path of the metrics endpoint.
	Path string `json:"path,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Addr: DefaultAddr,
		Session: SessionConfig{
			IdleTimeout: DefaultIdleTimeout,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    DefaultMetricsPath,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for webkit.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No webkit.json found in " + filepath.Dir(path)).
				WithSuggestion("Create webkit.json or run without --config to use defaults")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse webkit.json: " + err.Error()).
			WithSuggestion("Check that webkit.json is valid JSON")
	}

	cfg.path = path
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the configuration back to the file it was loaded from.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.Newf(errors.CategoryConfig, "config has no file path")
	}
	return c.SaveTo(c.path)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	c.path = path
	return nil
}

// Path returns the path of the configuration file, if any.
func (c *Config) Path() string {
	return c.path
}

// ApplyEnv overrides fields from environment variables read through lookup
// (usually os.LookupEnv).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("WEBKIT_DEBUG"); ok {
		c.Debug = truthy(v)
	}
	if v, ok := lookup("WEBKIT_NO_SESSION"); ok {
		c.NoSession = truthy(v)
	}
	if v, ok := lookup("WEBKIT_ADDR"); ok && v != "" {
		c.Addr = v
	}
}

// setters maps the dotted webkit.json keys accepted by Set to their fields.
var setters = map[string]func(c *Config, v string) error{
	"debug":     func(c *Config, v string) error { return parseBool(v, &c.Debug) },
	"noSession": func(c *Config, v string) error { return parseBool(v, &c.NoSession) },
	"addr":      func(c *Config, v string) error { c.Addr = v; return nil },
	"session.idleTimeout": func(c *Config, v string) error {
		c.Session.IdleTimeout = v
		return nil
	},
	"session.domain":  func(c *Config, v string) error { c.Session.Domain = v; return nil },
	"metrics.enabled": func(c *Config, v string) error { return parseBool(v, &c.Metrics.Enabled) },
	"metrics.path":    func(c *Config, v string) error { c.Metrics.Path = v; return nil },
}

// Keys returns the keys accepted by Set, sorted.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set assigns value to the field named by key (e.g. "session.idleTimeout")
// and validates the result. On error c is left unchanged.
func (c *Config) Set(key, value string) error {
	set, ok := setters[key]
	if !ok {
		return errors.New("E122").
			WithDetail("unknown key " + strconv.Quote(key)).
			WithSuggestion("Valid keys: " + strings.Join(Keys(), ", "))
	}
	next := *c
	if err := set(&next, value); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

func parseBool(v string, dst *bool) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return errors.New("E122").WithDetail("expected true or false, got " + strconv.Quote(v))
	}
	*dst = b
	return nil
}

// IdleTimeout returns the parsed session idle timeout.
func (c *Config) IdleTimeout() time.Duration {
	d, err := time.ParseDuration(c.Session.IdleTimeout)
	if err != nil {
		return 0
	}
	return d
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.Session.IdleTimeout == "" {
		c.Session.IdleTimeout = DefaultIdleTimeout
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	d, err := time.ParseDuration(c.Session.IdleTimeout)
	if err != nil || d <= 0 {
		return errors.New("E122").
			WithDetail("session.idleTimeout must be a positive duration, got " + c.Session.IdleTimeout)
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("E122").
			WithDetail("metrics.path must start with /")
	}
	if c.Addr == "" {
		return errors.New("E122").
			WithDetail("addr must not be empty")
	}
	return nil
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
