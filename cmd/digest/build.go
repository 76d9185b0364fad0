package main

import (
	"errors"
	"io"
	"io/fs"
	"net/http"

	"github.com/nguyentantai21042004/digest-flow/internal/config"
	"github.com/nguyentantai21042004/digest-flow/internal/extractive"
	"github.com/nguyentantai21042004/digest-flow/internal/llm"
	"github.com/nguyentantai21042004/digest-flow/internal/logger"
	"github.com/nguyentantai21042004/digest-flow/internal/resilience"
	"github.com/nguyentantai21042004/digest-flow/internal/summarizer"
)

// loadConfig reads path when it exists and falls back to defaults plus environment.
func loadConfig(path string, required bool) (*config.Config, error) {
	if path == "" {
		return config.FromEnv()
	}
	cfg, err := config.Load(path)
	if err != nil && !required && errors.Is(err, fs.ErrNotExist) {
		return config.FromEnv()
	}
	return cfg, err
}

func newLogger(cfg *config.Config, w io.Writer) logger.Logger {
	return logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format, w)
}

func newScorer(cfg config.ExtractiveConfig) extractive.Scorer {
	return extractive.New(extractive.Options{
		MinLength: cfg.MinLength,
		MaxLength: cfg.MaxLength,
		Ratio:     cfg.Ratio,
	}, nil)
}

func newSummarizer(cfg *config.Config, log logger.Logger) (summarizer.Summarizer, error) {
	if cfg.Summarizer.Mode == config.ModeExtractive {
		return summarizer.NewExtractive(newScorer(cfg.Extractive)), nil
	}
	return newChain(cfg, log)
}

func newChain(cfg *config.Config, log logger.Logger) (summarizer.Summarizer, error) {
	if _, err := summarizer.BuildPrompt(cfg.LLM.Format, ""); err != nil {
		return nil, err
	}

	backoff, err := resilience.ParseBackoff(cfg.LLM.Retry.Backoff, cfg.LLM.Retry.Delay, cfg.LLM.Retry.MaxDelay)
	if err != nil {
		return nil, err
	}

	var (
		gen   llm.Generator
		model string
	)
	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		gen = llm.NewGemini(cfg.Gemini.APIKeys, log)
		model = cfg.Gemini.Model
	default:
		gen = llm.NewOllama(cfg.LLM.APIURL, &http.Client{}, log)
		model = cfg.LLM.Model
	}

	return summarizer.NewChain(summarizer.ChainOptions{
		Model:          model,
		Temperature:    cfg.LLM.Temperature,
		MaxTokens:      cfg.LLM.MaxTokens,
		MaxInput:       cfg.LLM.MaxInput,
		Format:         cfg.LLM.Format,
		AttemptTimeout: cfg.LLM.Timeout,
		Retry: resilience.Policy{
			Attempts: cfg.LLM.Retry.Attempts,
			Backoff:  backoff,
		},
	}, gen, log), nil
}
