// Package config loads the tracker configuration: a YAML file for the
// durable settings, with environment variables (optionally from a .env file)
// overriding individual values.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up in the working directory
// when no explicit path is given.
const DefaultFile = "pft.yaml"

// Config is the application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Seed    SeedConfig    `yaml:"seed"`
	Assist  AssistConfig  `yaml:"assist"`
	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`
}

// StorageConfig selects and parameterizes the persistence backend.
type StorageConfig struct {
	// Backend is one of "file", "sqlite", "redis" or "memory".
	Backend string `yaml:"backend"`
	// Path is the data directory (file backend) or database file (sqlite).
	Path string `yaml:"path"`
	// Addr is the redis URL or host:port, redis backend only.
	Addr string `yaml:"addr"`
}

// SeedConfig controls the one-time sample dataset fetch.
type SeedConfig struct {
	// URL of the sample dataset, empty to disable seeding.
	URL string `yaml:"url"`
}

// AssistConfig parameterizes the AI spending advisor.
type AssistConfig struct {
	// Model name; empty selects the advisor's default.
	Model string `yaml:"model"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Storage: StorageConfig{Backend: "file", Path: ".pft"},
	}
}

// Load reads the configuration from path, falling back to defaults when the
// file does not exist. A .env file in the working directory, if any, is
// loaded first, then PFT_* environment variables override file values.
func Load(path string) (Config, error) {
	// a missing .env is the normal case.
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// no file, defaults plus environment.
	case err != nil:
		return Config{}, fmt.Errorf("cannot read config %q: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("cannot parse config %q: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides file values with PFT_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("PFT_STORAGE"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("PFT_DATA"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("PFT_REDIS_ADDR"); v != "" {
		c.Storage.Addr = v
	}
	if v := os.Getenv("PFT_SEED_URL"); v != "" {
		c.Seed.URL = v
	}
	if v := os.Getenv("PFT_ASSIST_MODEL"); v != "" {
		c.Assist.Model = v
	}
	if v := os.Getenv("PFT_VERBOSE"); v == "true" || v == "1" {
		c.Verbose = true
	}
}

func (c Config) validate() error {
	switch c.Storage.Backend {
	case "file", "sqlite", "redis", "memory":
	default:
		return fmt.Errorf("unknown storage backend %q (want file, sqlite, redis or memory)", c.Storage.Backend)
	}
	if c.Storage.Backend == "redis" && c.Storage.Addr == "" {
		return fmt.Errorf("redis storage needs an address (addr in %s or PFT_REDIS_ADDR)", DefaultFile)
	}
	return nil
}
