package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML config file, applies .env and environment overrides, then validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return finish(cfg)
}

// FromEnv builds a config from defaults, .env and the environment only.
func FromEnv() (*Config, error) {
	return finish(Default())
}

func finish(cfg *Config) (*Config, error) {
	_ = godotenv.Load()
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables that are set.
func (c *Config) ApplyEnv() {
	c.Watch.Dir = getEnv("WATCH_DIR", c.Watch.Dir)
	c.Watch.Extension = getEnv("TRIGGER_EXTENSION", c.Watch.Extension)
	c.Watch.Interval = getEnvSeconds("INTERVAL", c.Watch.Interval)
	c.Watch.StableDelay = getEnvSeconds("STABLE_DELAY", c.Watch.StableDelay)

	c.Output.Dir = getEnv("SUMMARY_DIR", c.Output.Dir)

	c.Extractive.MinLength = getEnvInt("MIN_LENGTH", c.Extractive.MinLength)
	c.Extractive.MaxLength = getEnvInt("MAX_LENGTH", c.Extractive.MaxLength)
	c.Extractive.Ratio = getEnvFloat("SUMMARY_RATIO", c.Extractive.Ratio)

	c.Summarizer.Mode = getEnv("SUMMARIZER_MODE", c.Summarizer.Mode)

	c.LLM.Provider = getEnv("LLM_PROVIDER", c.LLM.Provider)
	c.LLM.APIURL = getEnv("LLM_API_URL", c.LLM.APIURL)
	c.LLM.Model = getEnv("LLM_MODEL", c.LLM.Model)
	c.LLM.Temperature = getEnvFloat("LLM_TEMPERATURE", c.LLM.Temperature)
	c.LLM.MaxTokens = getEnvInt("LLM_MAX_TOKENS", c.LLM.MaxTokens)

	c.Gemini.APIKeys = getEnvList("GEMINI_API_KEYS", c.Gemini.APIKeys)

	c.Record.Backend = getEnv("RECORD_BACKEND", c.Record.Backend)
	c.Record.Path = getEnv("RECORD_PATH", c.Record.Path)

	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = getEnv("LOG_FORMAT", c.Logging.Format)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

// getEnvSeconds reads a whole or fractional number of seconds.
func getEnvSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return time.Duration(f * float64(time.Second))
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if t := strings.TrimSpace(p); t != "" {
				result = append(result, t)
			}
		}
		return result
	}
	return def
}
