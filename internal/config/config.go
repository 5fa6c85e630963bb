// Package config defines the well-known ahoy paths and the optional
// config.yaml settings file.
//
// Everything lives under the state directory (~/.ahoy by default, or
// $AHOY_HOME when set). The settings file is optional; a missing file
// yields defaults so a fresh install works with zero configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "go.yaml.in/yaml/v3"
)

const (
	homeEnv     = "AHOY_HOME"
	dirName     = ".ahoy"
	socketName  = "ahoy.sock"
	logName     = "daemon.log"
	historyName = "history.jsonl"
	configName  = "config.yaml"
)

// HomeDir returns the ahoy state directory.
func HomeDir() string {
	if v := strings.TrimSpace(os.Getenv(homeEnv)); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Degenerate fallback; every caller that writes will surface
		// the real error on the subsequent file operation.
		return dirName
	}
	return filepath.Join(home, dirName)
}

func SocketPath() string  { return filepath.Join(HomeDir(), socketName) }
func LogPath() string     { return filepath.Join(HomeDir(), logName) }
func HistoryPath() string { return filepath.Join(HomeDir(), historyName) }
func ConfigPath() string  { return filepath.Join(HomeDir(), configName) }
func BinDir() string      { return filepath.Join(HomeDir(), "bin") }

// EnsureHome creates the state directory if needed.
func EnsureHome() error {
	return os.MkdirAll(HomeDir(), 0o755)
}

// ---- Settings file ----

type Config struct {
	// Socket overrides the well-known socket path. Rarely needed.
	Socket string `yaml:"socket,omitempty"`

	Logging LoggingConfig `yaml:"logging"`
	History HistoryConfig `yaml:"history"`
	Notify  NotifyConfig  `yaml:"notify"`
}

type LoggingConfig struct {
	Level   string `yaml:"level,omitempty"`
	Console *bool  `yaml:"console,omitempty"`
	File    *bool  `yaml:"file,omitempty"`
	// Path overrides the daemon log file location.
	Path string `yaml:"path,omitempty"`
}

// HistoryConfig controls the display-history store.
//
// Driver values:
//   - "file": append-only JSON Lines (default)
//   - "sqlite": SQLite database file (requires the sqlite build tag)
//   - "none": history disabled
type HistoryConfig struct {
	Driver     string `yaml:"driver,omitempty"`
	Path       string `yaml:"path,omitempty"`
	MaxEntries int    `yaml:"max_entries,omitempty"`
}

type NotifyConfig struct {
	// DefaultTitle is used by `ahoy send` when no title flag is given.
	DefaultTitle string `yaml:"default_title,omitempty"`
	// TerminalNotifier overrides the helper executable path on macOS.
	TerminalNotifier string `yaml:"terminal_notifier,omitempty"`
	Sound            bool   `yaml:"sound,omitempty"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "INFO"},
		History: HistoryConfig{Driver: "file", MaxEntries: 500},
		Notify:  NotifyConfig{DefaultTitle: "Ahoy"},
	}
}

// Load reads the settings file at path, filling unset fields with
// defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(strings.NewReader(string(b)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = "INFO"
	}
	if strings.TrimSpace(c.History.Driver) == "" {
		c.History.Driver = "file"
	}
	if c.History.MaxEntries <= 0 {
		c.History.MaxEntries = 500
	}
	if strings.TrimSpace(c.Notify.DefaultTitle) == "" {
		c.Notify.DefaultTitle = "Ahoy"
	}
}

// SocketPath resolves the effective socket path for these settings.
func (c *Config) SocketPath() string {
	if strings.TrimSpace(c.Socket) != "" {
		return c.Socket
	}
	return SocketPath()
}

// LogFilePath resolves the effective daemon log file.
func (c *Config) LogFilePath() string {
	if strings.TrimSpace(c.Logging.Path) != "" {
		return c.Logging.Path
	}
	return LogPath()
}

// HistoryFilePath resolves the effective history store path.
func (c *Config) HistoryFilePath() string {
	if strings.TrimSpace(c.History.Path) != "" {
		return c.History.Path
	}
	return HistoryPath()
}
