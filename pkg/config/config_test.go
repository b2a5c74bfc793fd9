package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testConfig struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

// validatedConfig fails validation when Port is zero.
type validatedConfig struct {
	Port int `yaml:"port"`
}

func (c *validatedConfig) Validate() error {
	if c.Port == 0 {
		return errors.New("port must be set")
	}
	return nil
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "name: almanac\nport: 9090\n")
	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Name != "almanac" || cfg.Port != 9090 {
		t.Errorf("cfg = %+v, want {almanac 9090}", cfg)
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("CONFIG_TEST_NAME", "from-env")
	path := writeConfig(t, "name: ${CONFIG_TEST_NAME}\n")
	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Name != "from-env" {
		t.Errorf("Name = %q, want %q", cfg.Name, "from-env")
	}
}

func TestLoad_Validates(t *testing.T) {
	path := writeConfig(t, "port: 0\n")
	var cfg validatedConfig
	err := Load(path, &cfg)
	if err == nil || !strings.Contains(err.Error(), "port must be set") {
		t.Errorf("Load() error = %v, want port validation failure", err)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "name: [unclosed\n")
	var cfg testConfig
	if err := Load(path, &cfg); err == nil {
		t.Error("Load() succeeded on malformed YAML")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	var cfg testConfig
	err := Load(filepath.Join(t.TempDir(), "missing.yaml"), &cfg)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want wrapped fs.ErrNotExist", err)
	}
}

func TestLoadIfPresent(t *testing.T) {
	var cfg testConfig
	loaded, err := LoadIfPresent(filepath.Join(t.TempDir(), "missing.yaml"), &cfg)
	if err != nil {
		t.Fatalf("LoadIfPresent() error = %v", err)
	}
	if loaded {
		t.Error("loaded = true for a missing file")
	}

	path := writeConfig(t, "name: here\n")
	loaded, err = LoadIfPresent(path, &cfg)
	if err != nil {
		t.Fatalf("LoadIfPresent() error = %v", err)
	}
	if !loaded || cfg.Name != "here" {
		t.Errorf("loaded = %v, Name = %q; want true, %q", loaded, cfg.Name, "here")
	}
}
