package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level tithe.yaml configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Filter FilterConfig `yaml:"filter"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// FilterConfig holds the default filter settings applied when a request
// does not override them.
type FilterConfig struct {
	DescContains    string  `yaml:"desc_contains"`
	Rate            float64 `yaml:"rate"`
	CaseInsensitive bool    `yaml:"case_insensitive"`
}

// Load reads a tithe.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the stock configuration: payroll deposits, 10% rate,
// case-insensitive matching.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Filter: FilterConfig{
			DescContains:    "MILLWORK DEV PAYROLL",
			Rate:            0.10,
			CaseInsensitive: true,
		},
	}
}
