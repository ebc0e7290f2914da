// Package config loads the hub settings from an optional JSON file, a .env
// file and environment overrides, in that order.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full application configuration.
type Config struct {
	ServerAddr string      `json:"server_addr,omitempty"`
	LLM        LLMConfig   `json:"llm"`
	Store      StoreConfig `json:"store"`
	Log        LogConfig   `json:"log"`
}

// LLMConfig selects the model provider.
type LLMConfig struct {
	Provider       string `json:"provider,omitempty"`
	Model          string `json:"model,omitempty"`
	APIKey         string `json:"api_key,omitempty"`
	BaseURL        string `json:"base_url,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
}

// Timeout bounds a single generation request.
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// StoreConfig selects where interaction records live.
type StoreConfig struct {
	Driver string `json:"driver,omitempty"`
	Path   string `json:"path,omitempty"`
}

// LogConfig controls logrus output.
type LogConfig struct {
	Level  string `json:"level,omitempty"`
	Format string `json:"format,omitempty"`
}

// Default returns the settings used when nothing is configured: a local
// Ollama serving Granite 3.3 2B and in-memory history.
func Default() Config {
	return Config{
		ServerAddr: ":8080",
		LLM: LLMConfig{
			Provider:       "ollama",
			Model:          "granite3.3:2b",
			TimeoutSeconds: 120,
		},
		Store: StoreConfig{Driver: "memory", Path: "./data/hub.db"},
		Log:   LogConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig reads JSON config from disk on top of the defaults. A missing
// file is not an error. Environment variables (and .env) win over the file.
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, err
		default:
			if err := json.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	// .env is optional
	_ = godotenv.Load()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.ServerAddr = getEnv("HUB_ADDR", c.ServerAddr)
	c.LLM.Provider = getEnv("LLM_PROVIDER", c.LLM.Provider)
	c.LLM.Model = getEnv("LLM_MODEL", c.LLM.Model)
	c.LLM.APIKey = getEnv("LLM_API_KEY", c.LLM.APIKey)
	c.LLM.BaseURL = getEnv("LLM_BASE_URL", c.LLM.BaseURL)
	c.LLM.TimeoutSeconds = getEnvInt("LLM_TIMEOUT_SECONDS", c.LLM.TimeoutSeconds)
	c.Store.Driver = getEnv("STORE_DRIVER", c.Store.Driver)
	c.Store.Path = getEnv("STORE_PATH", c.Store.Path)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.ServerAddr == "" {
		return errors.New("server_addr cannot be empty")
	}
	switch c.LLM.Provider {
	case "ollama", "mock":
	case "openai":
		if c.LLM.APIKey == "" && c.LLM.BaseURL == "" {
			return errors.New("llm provider openai requires api_key or an OpenAI-compatible base_url")
		}
	default:
		return fmt.Errorf("llm provider %q not supported", c.LLM.Provider)
	}
	if c.LLM.Provider != "mock" && c.LLM.Model == "" {
		return errors.New("llm.model is required")
	}
	if c.LLM.TimeoutSeconds <= 0 {
		return errors.New("llm.timeout_seconds must be > 0")
	}
	switch c.Store.Driver {
	case "memory":
	case "sqlite":
		if c.Store.Path == "" {
			return errors.New("store.path is required for sqlite")
		}
	default:
		return fmt.Errorf("store driver %q not supported", c.Store.Driver)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log format %q not supported", c.Log.Format)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}
