// Package config loads the storyscope configuration from YAML plus the
// environment, applying defaults and structured validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Paths  PathsConfig  `yaml:"paths"`
	Limits Limits       `yaml:"limits" validate:"required"`
	Server ServerConfig `yaml:"server"`
}

type PathsConfig struct {
	OutputDir string `yaml:"output_dir"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" validate:"omitempty,hostname_port"`
}

// Load reads the config file (STORYSCOPE_CONFIG, then the XDG path),
// after best-effort loading a .env file. A missing config file is not
// an error: defaults apply.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	path := configPath()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configPath() string {
	if path := os.Getenv("STORYSCOPE_CONFIG"); path != "" {
		return path
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "storyscope", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "storyscope", "config.yaml")
}

func (c *Config) applyDefaults() {
	if c.Paths.OutputDir == "" {
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			c.Paths.OutputDir = filepath.Join(xdg, "storyscope", "reports")
		} else {
			home, _ := os.UserHomeDir()
			c.Paths.OutputDir = filepath.Join(home, ".local", "share", "storyscope", "reports")
		}
	}
	if c.Server.Addr == "" {
		c.Server.Addr = "localhost:8080"
	}
	if c.Limits.MaxTextChars == 0 {
		c.Limits = DefaultLimits()
	}
}

func (c *Config) validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
