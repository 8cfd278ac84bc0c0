package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// network names
const (
	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"
)

// defaults
const (
	DefaultTimeout     = 10 * time.Second
	DefaultFeeCacheTTL = 10 * time.Minute
	DefaultLogLevel    = "warn"
)

// Order lists provider names per operation, highest priority first.
// An empty list means the built-in order for that operation.
type Order struct {
	Balance      []string `yaml:"balance,omitempty"`
	Transactions []string `yaml:"transactions,omitempty"`
	Unspent      []string `yaml:"unspent,omitempty"`
	Broadcast    []string `yaml:"broadcast,omitempty"`
}

type Providers struct {
	Mainnet Order `yaml:"mainnet"`
	Testnet Order `yaml:"testnet"`
}

// Endpoint overrides the base URL of a provider per network
type Endpoint struct {
	Mainnet string `yaml:"mainnet,omitempty"`
	Testnet string `yaml:"testnet,omitempty"`
}

type Config struct {
	Network         string              `yaml:"network"`
	LogLevel        string              `yaml:"log_level"`
	Timeout         time.Duration       `yaml:"timeout"`
	FeeCacheTTL     time.Duration       `yaml:"fee_cache_ttl"`
	StrictProtocol  bool                `yaml:"strict_protocol"`
	FeeSingleFlight bool                `yaml:"fee_single_flight"`
	Providers       Providers           `yaml:"providers"`
	Endpoints       map[string]Endpoint `yaml:"endpoints,omitempty"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// DefaultPath returns ~/.lit/config.yaml
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".lit", "config.yaml"), nil
}

// Load reads the YAML config at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save writes the config to path, creating the directory if needed
func Save(path string, c *Config) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}

	if err := os.WriteFile(path, b, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks values that defaults cannot repair
func (c *Config) Validate() error {
	if c.Network != NetworkMainnet && c.Network != NetworkTestnet {
		return fmt.Errorf("invalid network: %s. Use 'mainnet' or 'testnet'", c.Network)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.FeeCacheTTL <= 0 {
		return fmt.Errorf("fee_cache_ttl must be positive, got %s", c.FeeCacheTTL)
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

// IsTestnet returns true if the config selects the test network
func (c *Config) IsTestnet() bool {
	return c.Network == NetworkTestnet
}

// OrderFor returns the provider order configured for a network
func (c *Config) OrderFor(network string) Order {
	if network == NetworkTestnet {
		return c.Providers.Testnet
	}
	return c.Providers.Mainnet
}

// EndpointFor returns the base URL override for a provider, or "" if none
func (c *Config) EndpointFor(provider, network string) string {
	e, ok := c.Endpoints[provider]
	if !ok {
		return ""
	}
	if network == NetworkTestnet {
		return e.Testnet
	}
	return e.Mainnet
}

func (c *Config) applyDefaults() {
	if c.Network == "" {
		c.Network = NetworkMainnet
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.FeeCacheTTL == 0 {
		c.FeeCacheTTL = DefaultFeeCacheTTL
	}
}
