package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	Watch      WatchConfig      `yaml:"watch"`
	Output     OutputConfig     `yaml:"output"`
	Extractive ExtractiveConfig `yaml:"extractive"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	LLM        LLMConfig        `yaml:"llm"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	Record     RecordConfig     `yaml:"record"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type WatchConfig struct {
	Dir           string        `yaml:"dir"`
	Extension     string        `yaml:"extension"`
	Interval      time.Duration `yaml:"interval"`
	StableDelay   time.Duration `yaml:"stable_delay"`
	MaxConcurrent int           `yaml:"max_concurrent"`
}

type OutputConfig struct {
	Dir     string   `yaml:"dir"`
	Formats []string `yaml:"formats"`
}

type ExtractiveConfig struct {
	MinLength int     `yaml:"min_length"`
	MaxLength int     `yaml:"max_length"`
	Ratio     float64 `yaml:"ratio"`
}

type SummarizerConfig struct {
	Mode string `yaml:"mode"`
}

type LLMConfig struct {
	Provider    string        `yaml:"provider"`
	APIURL      string        `yaml:"api_url"`
	Model       string        `yaml:"model"`
	Temperature float64       `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`
	MaxInput    int           `yaml:"max_input"`
	Format      string        `yaml:"format"`
	Timeout     time.Duration `yaml:"timeout"`
	Retry       RetryConfig   `yaml:"retry"`
}

type RetryConfig struct {
	Attempts int           `yaml:"attempts"`
	Delay    time.Duration `yaml:"delay"`
	MaxDelay time.Duration `yaml:"max_delay"`
	Backoff  string        `yaml:"backoff"`
}

type GeminiConfig struct {
	APIKeys []string `yaml:"api_keys"`
	Model   string   `yaml:"model"`
}

type RecordConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

const (
	ModeExtractive = "extractive"
	ModeLLM        = "llm"

	ProviderOllama = "ollama"
	ProviderGemini = "gemini"

	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

var outputFormats = map[string]bool{"json": true, "md": true, "txt": true, "docx": true}

// Default returns the configuration used when nothing overrides it. Files and the
// environment are applied on top of it, so a value of zero set there is kept.
func Default() *Config {
	return &Config{
		Watch: WatchConfig{
			Dir:           "data/transcripts",
			Extension:     "txt",
			Interval:      60 * time.Second,
			StableDelay:   2 * time.Second,
			MaxConcurrent: 2,
		},
		Output: OutputConfig{
			Dir:     "data/summaries",
			Formats: []string{"json"},
		},
		Extractive: ExtractiveConfig{
			MinLength: 50,
			MaxLength: 200,
			Ratio:     0.3,
		},
		Summarizer: SummarizerConfig{Mode: ModeExtractive},
		LLM: LLMConfig{
			Provider:    ProviderOllama,
			APIURL:      "http://localhost:11434/api/generate",
			Model:       "llama3",
			Temperature: 0.3,
			MaxTokens:   2048,
			MaxInput:    10000,
			Format:      "minutes",
			Timeout:     300 * time.Second,
			Retry: RetryConfig{
				Attempts: 3,
				Delay:    5 * time.Second,
				Backoff:  "fixed",
			},
		},
		Gemini:  GeminiConfig{Model: "gemini-2.5-flash"},
		Record:  RecordConfig{Backend: BackendMemory, Path: "data/record.db"},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Validate fills fields that cannot legally be zero and rejects values the pipeline
// cannot run with. Fields where zero is meaningful (temperature, min_length,
// stable_delay) are taken as given; their defaults come from Default.
func (c *Config) Validate() error {
	if c.Watch.Dir == "" {
		c.Watch.Dir = "data/transcripts"
	}
	c.Watch.Extension = strings.TrimPrefix(strings.TrimSpace(c.Watch.Extension), ".")
	if c.Watch.Extension == "" {
		c.Watch.Extension = "txt"
	}
	if c.Watch.Interval == 0 {
		c.Watch.Interval = 60 * time.Second
	}
	if c.Watch.Interval < 0 {
		return fmt.Errorf("watch.interval must be positive")
	}
	if c.Watch.StableDelay < 0 {
		return fmt.Errorf("watch.stable_delay must not be negative")
	}
	if c.Watch.MaxConcurrent == 0 {
		c.Watch.MaxConcurrent = 2
	}

	if c.Output.Dir == "" {
		c.Output.Dir = "data/summaries"
	}
	if sameDir(c.Watch.Dir, c.Output.Dir) {
		return fmt.Errorf("output.dir must differ from watch.dir (%s), or summaries are picked up as new transcripts", c.Watch.Dir)
	}
	if len(c.Output.Formats) == 0 {
		c.Output.Formats = []string{"json"}
	}
	for _, f := range c.Output.Formats {
		if !outputFormats[f] {
			return fmt.Errorf("output.formats: unknown format %q", f)
		}
	}

	if c.Extractive.MinLength < 0 {
		return fmt.Errorf("extractive.min_length must not be negative")
	}
	if c.Extractive.MaxLength == 0 {
		c.Extractive.MaxLength = 200
	}
	if c.Extractive.Ratio == 0 {
		c.Extractive.Ratio = 0.3
	}
	if c.Extractive.Ratio < 0 || c.Extractive.Ratio > 1 {
		return fmt.Errorf("extractive.ratio must be in (0,1], got %v", c.Extractive.Ratio)
	}

	if c.Summarizer.Mode == "" {
		c.Summarizer.Mode = ModeExtractive
	}
	if c.Summarizer.Mode != ModeExtractive && c.Summarizer.Mode != ModeLLM {
		return fmt.Errorf("summarizer.mode: unknown mode %q", c.Summarizer.Mode)
	}

	if err := c.LLM.validate(); err != nil {
		return err
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Summarizer.Mode == ModeLLM && c.LLM.Provider == ProviderGemini && len(c.Gemini.APIKeys) == 0 {
		return fmt.Errorf("gemini.api_keys is required for the gemini provider")
	}

	if c.Record.Backend == "" {
		c.Record.Backend = BackendMemory
	}
	switch c.Record.Backend {
	case BackendMemory:
	case BackendSQLite:
		if c.Record.Path == "" {
			c.Record.Path = "data/record.db"
		}
	default:
		return fmt.Errorf("record.backend: unknown backend %q", c.Record.Backend)
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	return nil
}

func (l *LLMConfig) validate() error {
	if l.Provider == "" {
		l.Provider = ProviderOllama
	}
	if l.Provider != ProviderOllama && l.Provider != ProviderGemini {
		return fmt.Errorf("llm.provider: unknown provider %q", l.Provider)
	}
	if l.APIURL == "" {
		l.APIURL = "http://localhost:11434/api/generate"
	}
	if l.Model == "" {
		l.Model = "llama3"
	}
	if l.Temperature < 0 {
		return fmt.Errorf("llm.temperature must not be negative, got %v", l.Temperature)
	}
	if l.MaxTokens == 0 {
		l.MaxTokens = 2048
	}
	if l.MaxInput == 0 {
		l.MaxInput = 10000
	}
	if l.Format == "" {
		l.Format = "minutes"
	}
	if l.Timeout == 0 {
		l.Timeout = 300 * time.Second
	}
	if l.Retry.Attempts == 0 {
		l.Retry.Attempts = 3
	}
	if l.Retry.Delay == 0 {
		l.Retry.Delay = 5 * time.Second
	}
	if l.Retry.Backoff == "" {
		l.Retry.Backoff = "fixed"
	}
	return nil
}

// sameDir compares two directory paths after making them absolute.
func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
