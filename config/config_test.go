package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.LLM.Provider != "ollama" || cfg.LLM.Model != "granite3.3:2b" || cfg.Store.Driver != "memory" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.LLM.Timeout().Seconds() != 120 {
		t.Errorf("timeout = %v", cfg.LLM.Timeout())
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"server_addr": ":9000", "llm": {"provider": "openai", "model": "granite-3.3-2b-instruct", "base_url": "http://localhost:8000/v1"}}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("LLM_TIMEOUT_SECONDS", "30")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ServerAddr != ":9000" || cfg.LLM.Provider != "openai" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.LLM.TimeoutSeconds != 30 || cfg.Store.Driver != "sqlite" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	// fields the file left out keep their defaults
	if cfg.Log.Level != "info" || cfg.Store.Path != "./data/hub.db" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("LLM_PROVIDER=mock\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("LLM_PROVIDER") })

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LLM.Provider != "mock" {
		t.Errorf("provider = %q, want mock from .env", cfg.LLM.Provider)
	}
}

func TestLoadConfigBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown provider", func(c *Config) { c.LLM.Provider = "bard" }, "not supported"},
		{"openai without endpoint", func(c *Config) { c.LLM.Provider = "openai"; c.LLM.BaseURL = "" }, "requires api_key"},
		{"missing model", func(c *Config) { c.LLM.Model = "" }, "llm.model"},
		{"zero timeout", func(c *Config) { c.LLM.TimeoutSeconds = 0 }, "timeout"},
		{"sqlite without path", func(c *Config) { c.Store.Driver = "sqlite"; c.Store.Path = "" }, "store.path"},
		{"bad store", func(c *Config) { c.Store.Driver = "redis" }, "store driver"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log format"},
		{"empty addr", func(c *Config) { c.ServerAddr = "" }, "server_addr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.want)
			}
		})
	}
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}
