package summarizer

import (
	"time"

	"github.com/nguyentantai21042004/digest-flow/internal/extractive"
	"github.com/nguyentantai21042004/digest-flow/internal/llm"
	"github.com/nguyentantai21042004/digest-flow/internal/logger"
	"github.com/nguyentantai21042004/digest-flow/internal/resilience"
)

// ChainOptions configures the LLM rewrite stage.
type ChainOptions struct {
	Model       string
	Temperature float64
	MaxTokens   int
	// MaxInput caps the characters sent to the model.
	MaxInput int
	Format   string
	// AttemptTimeout bounds each generation attempt independently.
	AttemptTimeout time.Duration
	Retry          resilience.Policy
}

type implChain struct {
	opts      ChainOptions
	generator llm.Generator
	logger    logger.Logger
}

// NewChain creates a Summarizer that asks gen for a rewrite and degrades to the
// stride-sampled fallback whenever the rewrite is unavailable or rejected.
func NewChain(opts ChainOptions, gen llm.Generator, log logger.Logger) Summarizer {
	if opts.MaxInput <= 0 {
		opts.MaxInput = 10000
	}
	if opts.AttemptTimeout <= 0 {
		opts.AttemptTimeout = 300 * time.Second
	}
	return &implChain{
		opts:      opts,
		generator: gen,
		logger:    log,
	}
}

type implExtractive struct {
	scorer extractive.Scorer
}

// NewExtractive wraps an extractive Scorer as a Summarizer.
func NewExtractive(scorer extractive.Scorer) Summarizer {
	return &implExtractive{scorer: scorer}
}
