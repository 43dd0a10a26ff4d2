// Package config resolves runtime settings from defaults, an optional ini
// file and environment variables, in that order of precedence (lowest first).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

const (
	envDB       = "SLPRESULTS_DB"
	envWorkers  = "SLPRESULTS_WORKERS"
	envLogLevel = "SLPRESULTS_LOG_LEVEL"

	defaultLogLevel = "info"
	appDir          = ".slpresults"
)

// Config holds runtime configuration for the CLI.
type Config struct {
	DBPath   string
	Workers  int
	LogLevel string
}

// DefaultDir is the per-user directory holding the database and config file.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, appDir)
}

// DefaultPath is the config file read when no explicit path is given.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.ini")
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		DBPath:   filepath.Join(DefaultDir(), "results.db"),
		Workers:  runtime.NumCPU(),
		LogLevel: defaultLogLevel,
	}
}

// Load builds the configuration. A missing file at path is not an error; a
// malformed one is. Invalid individual values fall back to the layer below.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return cfg, err
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	f, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}

	if v := strings.TrimSpace(f.Section("storage").Key("db").String()); v != "" {
		cfg.DBPath = expandHome(v)
	}
	if n, err := f.Section("parse").Key("workers").Int(); err == nil && n > 0 {
		cfg.Workers = n
	}
	if v := strings.TrimSpace(f.Section("log").Key("level").String()); v != "" {
		cfg.LogLevel = v
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(envDB)); v != "" {
		cfg.DBPath = expandHome(v)
	}
	if v := strings.TrimSpace(os.Getenv(envWorkers)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(envLogLevel)); v != "" {
		cfg.LogLevel = v
	}
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p
}
