package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/gridkz/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
	if cfg.Serve.Cache != CacheFile {
		t.Errorf("Serve.Cache = %q, want %q", cfg.Serve.Cache, CacheFile)
	}
	if cfg.Serve.Store != StoreMemory {
		t.Errorf("Serve.Store = %q, want %q", cfg.Serve.Store, StoreMemory)
	}
	if cfg.Serve.Addr == "" {
		t.Error("Serve.Addr should have a default")
	}
}

func TestDefaultPathXDG(t *testing.T) {
	oldXdg := os.Getenv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CONFIG_HOME", oldXdg)
		} else {
			os.Unsetenv("XDG_CONFIG_HOME")
		}
	}()

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error: %v", err)
	}
	expected := filepath.Join("/tmp/custom-config", appName, FileName)
	if path != expected {
		t.Errorf("DefaultPath() = %q, want %q", path, expected)
	}
}

func TestDefaultPathHome(t *testing.T) {
	oldXdg := os.Getenv("XDG_CONFIG_HOME")
	os.Unsetenv("XDG_CONFIG_HOME")
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CONFIG_HOME", oldXdg)
		}
	}()

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if !strings.HasPrefix(path, home) {
		t.Errorf("DefaultPath() = %q, should be under home %q", path, home)
	}
	if !strings.HasSuffix(path, FileName) {
		t.Errorf("DefaultPath() = %q, should end with %q", path, FileName)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	oldXdg := os.Getenv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", t.TempDir())
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CONFIG_HOME", oldXdg)
		} else {
			os.Unsetenv("XDG_CONFIG_HOME")
		}
	}()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with no config file should not fail: %v", err)
	}
	if cfg.Serve.Cache != CacheFile {
		t.Errorf("Serve.Cache = %q, want default %q", cfg.Serve.Cache, CacheFile)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("Explicit missing path should fail")
	}
	if code := errors.GetCode(err); code != errors.ErrCodeFileNotFound {
		t.Errorf("error code = %v, want %v", code, errors.ErrCodeFileNotFound)
	}
}

func TestLoadFile(t *testing.T) {
	content := `
[convert]
out_dir = "/tmp/out"
padding = 4

[variables]
Monitor1Width = 200

[watch]
dir = "/tmp/grids"

[serve]
addr = ":9000"
cache = "off"
`
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Convert.OutDir != "/tmp/out" {
		t.Errorf("Convert.OutDir = %q, want %q", cfg.Convert.OutDir, "/tmp/out")
	}
	if cfg.Convert.Padding != 4 {
		t.Errorf("Convert.Padding = %d, want 4", cfg.Convert.Padding)
	}
	if cfg.Variables["Monitor1Width"] != 200 {
		t.Errorf("Variables[Monitor1Width] = %v, want 200", cfg.Variables["Monitor1Width"])
	}
	if cfg.Watch.Dir != "/tmp/grids" {
		t.Errorf("Watch.Dir = %q, want %q", cfg.Watch.Dir, "/tmp/grids")
	}
	if cfg.Serve.Addr != ":9000" {
		t.Errorf("Serve.Addr = %q, want %q", cfg.Serve.Addr, ":9000")
	}
	if cfg.Serve.Cache != CacheOff {
		t.Errorf("Serve.Cache = %q, want %q", cfg.Serve.Cache, CacheOff)
	}

	// Unset keys keep their defaults.
	if cfg.Serve.Store != StoreMemory {
		t.Errorf("Serve.Store = %q, want default %q", cfg.Serve.Store, StoreMemory)
	}
	if cfg.Serve.RedisAddr != "localhost:6379" {
		t.Errorf("Serve.RedisAddr = %q, want default", cfg.Serve.RedisAddr)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad cache", "[serve]\ncache = \"memcached\"\n"},
		{"bad store", "[serve]\nstore = \"postgres\"\n"},
		{"negative padding", "[convert]\npadding = -1\n"},
		{"bad variable name", "[variables]\n\"no spaces\" = 1\n"},
		{"not toml", "{\"serve\": {}}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("Load(%s) should fail", tt.name)
			}
		})
	}
}

func TestValidateVariableNames(t *testing.T) {
	cfg := Default()
	cfg.Variables = map[string]float64{"Monitor2Width": 100}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Valid variable name should pass: %v", err)
	}

	cfg.Variables = map[string]float64{"2bad": 1}
	if err := cfg.Validate(); err == nil {
		t.Error("Variable name starting with a digit should fail")
	}
}
