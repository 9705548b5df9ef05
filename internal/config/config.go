// Package config loads the agent configuration once at process start.
//
// Sources, lowest precedence first:
//   - built-in defaults
//   - optional config file (.toml or .yaml/.yml)
//   - environment variables (a .env file may seed them, see LoadDotEnv)
//
// The resulting Config is passed explicitly into every constructor.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

const (
	DefaultProvider  = ProviderOpenAI
	DefaultAddr      = ":8000"
	DefaultMaxTokens = 1024
	DefaultLogLevel  = "info"
)

// ErrMissingAPIKey reports that no provider credential was configured.
var ErrMissingAPIKey = errors.New("api key not configured")

// Config is the complete agent configuration.
type Config struct {
	Provider    string        `toml:"provider" yaml:"provider"`
	APIKey      string        `toml:"api_key" yaml:"api_key"`
	Model       string        `toml:"model" yaml:"model"`
	BaseURL     string        `toml:"base_url" yaml:"base_url"`
	Persona     string        `toml:"persona" yaml:"persona"`
	Temperature *float64      `toml:"temperature" yaml:"temperature"`
	MaxTokens   int64         `toml:"max_tokens" yaml:"max_tokens"`
	Timeout     time.Duration `toml:"timeout" yaml:"timeout"` // 0 = no deadline

	Server ServerConfig `toml:"server" yaml:"server"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// ServerConfig configures the HTTP entry point.
type ServerConfig struct {
	Addr              string        `toml:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `toml:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `toml:"level" yaml:"level"`
	Development bool   `toml:"development" yaml:"development"`
}

// Default returns the built-in configuration. APIKey is left empty.
func Default() Config {
	return Config{
		Provider:  DefaultProvider,
		MaxTokens: DefaultMaxTokens,
		Server: ServerConfig{
			Addr:              DefaultAddr,
			ReadHeaderTimeout: 10 * time.Second,
			ShutdownTimeout:   15 * time.Second,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

// Load builds a Config from defaults, the optional file at path and the
// environment. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("config %s: unsupported extension %q (want .toml, .yaml or .yml)", path, ext)
	}
	return nil
}

// applyEnvOverrides layers AGT_* variables and the provider key on top of cfg.
func (c *Config) applyEnvOverrides() error {
	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	setString(&c.Provider, "AGT_PROVIDER")
	setString(&c.Model, "AGT_MODEL")
	setString(&c.BaseURL, "AGT_BASE_URL")
	setString(&c.Persona, "AGT_PERSONA")
	setString(&c.Server.Addr, "AGT_ADDR")
	setString(&c.Log.Level, "AGT_LOG_LEVEL")

	if v := os.Getenv("AGT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid AGT_TIMEOUT %q: %w", v, err)
		}
		c.Timeout = d
	}
	if v := os.Getenv("AGT_TEMPERATURE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid AGT_TEMPERATURE %q: %w", v, err)
		}
		c.Temperature = &f
	}

	// Provider key wins over a key from the file; AGT_API_KEY wins over both.
	if env := c.APIKeyEnv(); env != "" {
		setString(&c.APIKey, env)
	}
	setString(&c.APIKey, "AGT_API_KEY")
	return nil
}

// APIKeyEnv names the conventional credential variable for the provider.
func (c Config) APIKeyEnv() string {
	switch strings.ToLower(c.Provider) {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}

// Validate reports configuration that prevents serving requests.
// A missing credential wraps ErrMissingAPIKey.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %s", c.Timeout)
	}
	if c.APIKey == "" {
		return fmt.Errorf("%w: set %s (or AGT_API_KEY)", ErrMissingAPIKey, c.APIKeyEnv())
	}
	return nil
}
