package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigDir returns the chronal config directory path.
// Uses $XDG_CONFIG_HOME/chronal if set, otherwise ~/.config/chronal.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "chronal")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "chronal")
}

const defaultContent = `input = "input.txt"
state_dir = "~/.local/state/chronal"

[detect]
# 0 scans until a frequency repeats, however long that takes.
max_steps = 0

[history]
enabled = true

[archive]
compress = true

[output]
format = "text"

[log]
level = "info"

[watch]
debounce_ms = 200
`

// WriteDefault writes a default config.toml.
// Returns the config file path and the action taken: "created" or "exists".
// An existing config.toml is never overwritten.
func WriteDefault() (string, string, error) {
	dir := ConfigDir()
	path := filepath.Join(dir, "config.toml")

	if _, err := os.Stat(path); err == nil {
		return path, "exists", nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create config dir: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultContent), 0o644); err != nil {
		return "", "", fmt.Errorf("write config: %w", err)
	}

	return path, "created", nil
}
