package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the serve configuration file (~/.config/sieve/config.yaml).
// Pointer fields distinguish "not set" from zero values.
type Config struct {
	ServerAddress string         `yaml:"server_address"`
	MaxBound      *int           `yaml:"max_bound"`
	ReadTimeout   *time.Duration `yaml:"read_timeout"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

type serveOptions struct {
	addr        string
	maxBound    int64
	readTimeout time.Duration
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "sieve", "config.yaml")
}

// LoadConfig reads the config file at path. A missing file yields a zero
// Config and no error.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// applyServeConfig applies config file defaults to serve options when the
// corresponding CLI flag was not explicitly set.
func applyServeConfig(c *cli.Command, cfg Config, opts *serveOptions) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		opts.addr = cfg.ServerAddress
	}
	if cfg.MaxBound != nil && !c.IsSet("max-bound") {
		opts.maxBound = int64(*cfg.MaxBound)
	}
	if cfg.ReadTimeout != nil && !c.IsSet("read-timeout") {
		opts.readTimeout = *cfg.ReadTimeout
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") && !c.IsSet("debug") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}
