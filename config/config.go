// Package config provides configuration loading and management for semshape.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete semshape configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Content    ContentConfig    `yaml:"content"`
	Validation ValidationConfig `yaml:"validation"`
	Federation FederationConfig `yaml:"federation"`
	NATS       NATSConfig       `yaml:"nats"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	// Host is the interface to bind (default: all interfaces)
	Host string `yaml:"host"`
	// Port is the HTTP port (default: 8000)
	Port int `yaml:"port"`
}

// ContentConfig configures schema discovery
type ContentConfig struct {
	// Dir is the root directory holding schema files (default: current directory)
	Dir string `yaml:"dir"`
	// RescanInterval forces a full rescan even without file events
	RescanInterval time.Duration `yaml:"rescan_interval"`
	// DebounceDelay is how long to collect file events before rebuilding
	DebounceDelay time.Duration `yaml:"debounce_delay"`
}

// ValidationConfig configures the validation engine
type ValidationConfig struct {
	// IgnoreNamespaces lists namespaces skipped during target inference;
	// well-known public vocabularies carry no validatable constraints
	IgnoreNamespaces []string `yaml:"ignore_namespaces"`
}

// FederationConfig configures outbound calls to other instances
type FederationConfig struct {
	// Timeout bounds each remote fetch or validation call
	Timeout time.Duration `yaml:"timeout"`
	// MaxHops bounds delegation depth across instances
	MaxHops int `yaml:"max_hops"`
}

// NATSConfig configures optional event publishing
type NATSConfig struct {
	// URL is the NATS server URL (empty = events disabled)
	URL string `yaml:"url"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "",
			Port: 8000,
		},
		Content: ContentConfig{
			Dir:            "./",
			RescanInterval: 30 * time.Minute,
			DebounceDelay:  500 * time.Millisecond,
		},
		Validation: ValidationConfig{
			IgnoreNamespaces: []string{"schema.org", "w3.org", "example.org"},
		},
		Federation: FederationConfig{
			Timeout: 10 * time.Second,
			MaxHops: 5,
		},
		NATS: NATSConfig{
			URL: "",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Content.Dir == "" {
		return fmt.Errorf("content.dir is required")
	}
	if c.Federation.Timeout < 0 {
		return fmt.Errorf("federation.timeout must not be negative")
	}
	if c.Federation.MaxHops < 1 {
		return fmt.Errorf("federation.max_hops must be at least 1")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Server
	if other.Server.Host != "" {
		c.Server.Host = other.Server.Host
	}
	if other.Server.Port != 0 {
		c.Server.Port = other.Server.Port
	}

	// Content
	if other.Content.Dir != "" {
		c.Content.Dir = other.Content.Dir
	}
	if other.Content.RescanInterval != 0 {
		c.Content.RescanInterval = other.Content.RescanInterval
	}
	if other.Content.DebounceDelay != 0 {
		c.Content.DebounceDelay = other.Content.DebounceDelay
	}

	// Validation
	if len(other.Validation.IgnoreNamespaces) > 0 {
		c.Validation.IgnoreNamespaces = other.Validation.IgnoreNamespaces
	}

	// Federation
	if other.Federation.Timeout != 0 {
		c.Federation.Timeout = other.Federation.Timeout
	}
	if other.Federation.MaxHops != 0 {
		c.Federation.MaxHops = other.Federation.MaxHops
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
}
