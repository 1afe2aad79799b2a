// Package config loads, validates and persists EcoTrack's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Output formats accepted in output.default_format.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

const outputTypeFile = "file"

// Defaults.
const (
	DefaultPrecision      = 2
	DefaultCoachTimeout   = 15 * time.Second
	DefaultServerAddress  = "127.0.0.1:8787"
	DefaultUpstreamURL    = "https://api.openai.com"
	DefaultModel          = "gpt-4o-mini"
	DefaultServerTimeout  = 30 * time.Second
	DefaultUpstreamMaxTok = 300
)

// ErrUnknownKey is returned by Get and Set for keys outside the schema.
var ErrUnknownKey = errors.New("unknown configuration key")

// Config is the full EcoTrack configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Coach   CoachConfig   `yaml:"coach"`
	Server  ServerConfig  `yaml:"server"`

	configPath string
}

// StoreConfig locates the state file.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig controls CLI rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Precision     int    `yaml:"precision"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// CoachConfig is the client side of the chat coach. It never carries a
// credential; the proxy holds that.
type CoachConfig struct {
	Enabled  bool          `yaml:"enabled"`
	ProxyURL string        `yaml:"proxy_url"`
	Timeout  time.Duration `yaml:"timeout"`
}

// ServerConfig configures `ecotrack serve`, the coach proxy.
type ServerConfig struct {
	Address      string        `yaml:"address"`
	UpstreamURL  string        `yaml:"upstream_url"`
	Model        string        `yaml:"model"`
	MaxTokens    int           `yaml:"max_tokens"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Default returns a Config populated with defaults only; no file or
// environment is read.
func Default() *Config {
	home, err := GetConfigDir()
	if err != nil {
		home = ".ecotrack"
	}
	return &Config{
		Store: StoreConfig{Path: filepath.Join(home, "state.json")},
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			Precision:     DefaultPrecision,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Coach: CoachConfig{
			Enabled:  true,
			ProxyURL: "http://" + DefaultServerAddress + "/v1/coach",
			Timeout:  DefaultCoachTimeout,
		},
		Server: ServerConfig{
			Address:      DefaultServerAddress,
			UpstreamURL:  DefaultUpstreamURL,
			Model:        DefaultModel,
			MaxTokens:    DefaultUpstreamMaxTok,
			ReadTimeout:  DefaultServerTimeout,
			WriteTimeout: DefaultServerTimeout,
		},
		configPath: filepath.Join(home, "config.yaml"),
	}
}

// New returns defaults overlaid with ~/.ecotrack/config.yaml (if present) and
// ECOTRACK_* environment variables. A malformed file is ignored so the CLI
// stays usable; `config validate` reports it.
func New() *Config {
	cfg := Default()
	_ = cfg.Load()
	cfg.ApplyEnv(os.LookupEnv)
	return cfg
}

// ConfigPath returns the file Save writes to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes the file Load and Save use.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Load overlays the YAML file at ConfigPath onto c. A missing file is not an error.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", c.configPath, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", c.configPath, err)
	}
	return nil
}

// Save writes c to ConfigPath, creating the directory if needed.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(c.configPath), 0o700); mkdirErr != nil {
		return fmt.Errorf("creating config directory: %w", mkdirErr)
	}
	if writeErr := os.WriteFile(c.configPath, data, 0o600); writeErr != nil {
		return fmt.Errorf("writing config file: %w", writeErr)
	}
	return nil
}

// Validate checks semantic constraints.
func (c *Config) Validate() error {
	var errs []error

	switch c.Output.DefaultFormat {
	case FormatTable, FormatJSON, FormatNDJSON:
	default:
		errs = append(errs, fmt.Errorf("output.default_format %q must be one of %s, %s, %s",
			c.Output.DefaultFormat, FormatTable, FormatJSON, FormatNDJSON))
	}
	if c.Output.Precision < 0 || c.Output.Precision > 6 {
		errs = append(errs, fmt.Errorf("output.precision %d must be between 0 and 6", c.Output.Precision))
	}

	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q is not a valid level", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q must be console or json", c.Logging.Format))
	}

	if c.Store.Path == "" {
		errs = append(errs, errors.New("store.path must not be empty"))
	}
	if c.Coach.Enabled && c.Coach.ProxyURL == "" {
		errs = append(errs, errors.New("coach.proxy_url is required when coach.enabled is true"))
	}
	if c.Coach.Timeout <= 0 {
		errs = append(errs, errors.New("coach.timeout must be positive"))
	}
	if c.Server.Address == "" {
		errs = append(errs, errors.New("server.address must not be empty"))
	}
	if c.Server.MaxTokens <= 0 {
		errs = append(errs, errors.New("server.max_tokens must be positive"))
	}

	return errors.Join(errs...)
}

// field binds a dotted key to accessors on Config.
type field struct {
	get func(*Config) string
	set func(*Config, string) error
}

//nolint:gochecknoglobals // Read-only key table.
var fields = map[string]field{
	"store.path": {
		get: func(c *Config) string { return c.Store.Path },
		set: func(c *Config, v string) error { c.Store.Path = v; return nil },
	},
	"output.default_format": {
		get: func(c *Config) string { return c.Output.DefaultFormat },
		set: func(c *Config, v string) error { c.Output.DefaultFormat = v; return nil },
	},
	"output.precision": {
		get: func(c *Config) string { return strconv.Itoa(c.Output.Precision) },
		set: func(c *Config, v string) error { return setInt(&c.Output.Precision, v) },
	},
	"logging.level": {
		get: func(c *Config) string { return c.Logging.Level },
		set: func(c *Config, v string) error { c.Logging.Level = v; return nil },
	},
	"logging.format": {
		get: func(c *Config) string { return c.Logging.Format },
		set: func(c *Config, v string) error { c.Logging.Format = v; return nil },
	},
	"logging.file": {
		get: func(c *Config) string { return c.Logging.File },
		set: func(c *Config, v string) error { c.Logging.File = v; return nil },
	},
	"coach.enabled": {
		get: func(c *Config) string { return strconv.FormatBool(c.Coach.Enabled) },
		set: func(c *Config, v string) error { return setBool(&c.Coach.Enabled, v) },
	},
	"coach.proxy_url": {
		get: func(c *Config) string { return c.Coach.ProxyURL },
		set: func(c *Config, v string) error { c.Coach.ProxyURL = v; return nil },
	},
	"coach.timeout": {
		get: func(c *Config) string { return c.Coach.Timeout.String() },
		set: func(c *Config, v string) error { return setDuration(&c.Coach.Timeout, v) },
	},
	"server.address": {
		get: func(c *Config) string { return c.Server.Address },
		set: func(c *Config, v string) error { c.Server.Address = v; return nil },
	},
	"server.upstream_url": {
		get: func(c *Config) string { return c.Server.UpstreamURL },
		set: func(c *Config, v string) error { c.Server.UpstreamURL = v; return nil },
	},
	"server.model": {
		get: func(c *Config) string { return c.Server.Model },
		set: func(c *Config, v string) error { c.Server.Model = v; return nil },
	},
	"server.max_tokens": {
		get: func(c *Config) string { return strconv.Itoa(c.Server.MaxTokens) },
		set: func(c *Config, v string) error { return setInt(&c.Server.MaxTokens, v) },
	},
	"server.read_timeout": {
		get: func(c *Config) string { return c.Server.ReadTimeout.String() },
		set: func(c *Config, v string) error { return setDuration(&c.Server.ReadTimeout, v) },
	},
	"server.write_timeout": {
		get: func(c *Config) string { return c.Server.WriteTimeout.String() },
		set: func(c *Config, v string) error { return setDuration(&c.Server.WriteTimeout, v) },
	},
}

// Keys returns every settable dotted key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value at a dotted key such as "coach.timeout".
func (c *Config) Get(key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return f.get(c), nil
}

// Set parses value into the field at key.
func (c *Config) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err := f.set(c, value); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return nil
}

// ApplyEnv overlays ECOTRACK_<SECTION>_<FIELD> variables, e.g.
// ECOTRACK_COACH_PROXY_URL. Unparseable values are skipped.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	for _, key := range Keys() {
		if v, ok := lookup(EnvName(key)); ok && v != "" {
			_ = c.Set(key, v)
		}
	}
}

// EnvName maps a dotted key to its environment variable name.
func EnvName(key string) string {
	return "ECOTRACK_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func setInt(dst *int, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func setBool(dst *bool, v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}

func setDuration(dst *time.Duration, v string) error {
	d, err := time.ParseDuration(v)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}
