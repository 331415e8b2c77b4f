package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Import   ImportConfig   `yaml:"import"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Git      GitConfig      `yaml:"git"`
}

// BusinessConfig identifies the business and how amounts are shown.
type BusinessConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"` // symbol, e.g. "$"
}

// ImportConfig controls CSV import.
type ImportConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// ServerConfig controls `tally serve`.
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	Persist bool   `yaml:"persist"` // write ledger changes back to disk
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Environment variables that override tally.yaml.
const (
	EnvAddr       = "TALLY_ADDR"
	EnvLogLevel   = "TALLY_LOG_LEVEL"
	EnvCurrency   = "TALLY_CURRENCY"
	EnvPersist    = "TALLY_PERSIST"
	EnvAutoCommit = "TALLY_AUTO_COMMIT"
)

// Load reads a tally.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
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

// Default returns a Config with sensible defaults for a new workspace.
func Default(businessName string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name:     businessName,
			Currency: "$",
		},
		Import: ImportConfig{
			DefaultFormat: "generic",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		Log: LogConfig{
			Level: "info",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Tally",
			AuthorEmail: "tally@cleared.dev",
		},
	}
}

// ApplyEnv overrides cfg from the process environment and, for variables not
// set there, from the dotenv file at envPath. A missing dotenv file is not an
// error.
func ApplyEnv(cfg *Config, envPath string) error {
	file := map[string]string{}
	if envPath != "" {
		vals, err := godotenv.Read(envPath)
		switch {
		case err == nil:
			file = vals
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("reading %s: %w", envPath, err)
		}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}

	if v, ok := lookup(EnvAddr); ok && v != "" {
		cfg.Server.Addr = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.Log.Level = v
	}
	if v, ok := lookup(EnvCurrency); ok && v != "" {
		cfg.Business.Currency = v
	}
	if v, ok := lookup(EnvPersist); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPersist, v, err)
		}
		cfg.Server.Persist = b
	}
	if v, ok := lookup(EnvAutoCommit); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvAutoCommit, v, err)
		}
		cfg.Git.AutoCommit = b
	}
	return nil
}
