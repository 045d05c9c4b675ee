package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all chronal configuration.
type Config struct {
	Input    string `toml:"input"`
	StateDir string `toml:"state_dir"`

	Detect  DetectConfig  `toml:"detect"`
	History HistoryConfig `toml:"history"`
	Archive ArchiveConfig `toml:"archive"`
	Output  OutputConfig  `toml:"output"`
	Log     LogConfig     `toml:"log"`
	Watch   WatchConfig   `toml:"watch"`
}

type DetectConfig struct {
	MaxSteps int `toml:"max_steps"` // 0 = unbounded
}

type HistoryConfig struct {
	Enabled bool `toml:"enabled"`
}

type ArchiveConfig struct {
	Compress bool `toml:"compress"`
}

type OutputConfig struct {
	Format string `toml:"format"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type WatchConfig struct {
	DebounceMS int `toml:"debounce_ms"`
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Input:    "input.txt",
		StateDir: "~/.local/state/chronal",
		Detect: DetectConfig{
			MaxSteps: 0,
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Archive: ArchiveConfig{
			Compress: true,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Log: LogConfig{
			Level: "info",
		},
		Watch: WatchConfig{
			DebounceMS: 200,
		},
	}
}

// Load reads config from the standard path, falling back to defaults.
func Load() (Config, error) {
	return LoadFile("")
}

// LoadFile reads config from path, or from the standard paths when path is empty.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	paths := configPaths()
	if path != "" {
		paths = []string{path}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			if _, err := toml.DecodeFile(p, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", p, err)
			}
			break
		} else if path != "" {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	// Expand ~ in paths
	cfg.Input = expandHome(cfg.Input)
	cfg.StateDir = expandHome(cfg.StateDir)

	if cfg.Detect.MaxSteps < 0 {
		return cfg, fmt.Errorf("detect.max_steps must be >= 0, got %d", cfg.Detect.MaxSteps)
	}
	if cfg.Watch.DebounceMS < 0 {
		return cfg, fmt.Errorf("watch.debounce_ms must be >= 0, got %d", cfg.Watch.DebounceMS)
	}

	return cfg, nil
}

func configPaths() []string {
	var paths []string

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "chronal", "config.toml"))
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", "chronal", "config.toml"))
	}

	return paths
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// HistoryPath returns the SQLite run history file.
func (c Config) HistoryPath() string {
	return filepath.Join(c.StateDir, "history.db")
}

// ArchiveDir returns the directory holding compressed inputs.
func (c Config) ArchiveDir() string {
	return filepath.Join(c.StateDir, "archive")
}
