package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

func TestWriteDefault_CreatesConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, action, err := WriteDefault()
	if err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}

	if action != "created" {
		t.Errorf("action = %q, want %q", action, "created")
	}

	want := filepath.Join(dir, "chronal", "config.toml")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}

	content := string(data)
	for _, section := range []string{"[detect]", "[history]", "[archive]", "[output]", "[log]", "[watch]"} {
		if !strings.Contains(content, section) {
			t.Errorf("config missing %s section", section)
		}
	}
}

func TestWriteDefault_MatchesDefaultConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path, _, err := WriteDefault()
	if err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		t.Fatalf("decode written config: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("written config = %+v, want %+v", cfg, DefaultConfig())
	}
}

func TestWriteDefault_KeepsExisting(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	configDir := filepath.Join(dir, "chronal")
	os.MkdirAll(configDir, 0o755)

	existing := filepath.Join(configDir, "config.toml")
	os.WriteFile(existing, []byte("input = \"/mine\"\n"), 0o644)

	path, action, err := WriteDefault()
	if err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}
	if action != "exists" {
		t.Errorf("action = %q, want %q", action, "exists")
	}
	if path != existing {
		t.Errorf("path = %q, want %q", path, existing)
	}

	data, _ := os.ReadFile(existing)
	if string(data) != "input = \"/mine\"\n" {
		t.Errorf("existing config was modified: %q", data)
	}
}
