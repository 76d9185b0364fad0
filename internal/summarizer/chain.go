package summarizer

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/digest-flow/internal/llm"
	"github.com/nguyentantai21042004/digest-flow/internal/models"
	"github.com/nguyentantai21042004/digest-flow/internal/resilience"
)

// Summarize runs rewrite -> quality gate -> fallback. Only an empty transcript is an error.
func (c *implChain) Summarize(ctx context.Context, t models.Transcript) (models.SummaryResult, error) {
	if runeLen(t.Text) == 0 {
		return models.SummaryResult{}, &models.MalformedInputError{Reason: "transcript text is empty"}
	}

	input := capInput(t.Text, c.opts.MaxInput)
	if len(input) != len(t.Text) {
		c.logger.Info(ctx, "Text is long, truncating prompt input (original %d chars)", runeLen(t.Text))
	}

	outcome := c.rewrite(ctx, input)
	switch outcome.Kind {
	case Success:
		c.logger.Info(ctx, "LLM rewrite accepted (%d chars)", runeLen(outcome.Summary))
	case QualityRejected:
		c.logger.Warn(ctx, "LLM output failed quality gate, using fallback summary")
	default:
		c.logger.Error(ctx, "LLM rewrite failed (%s): %v; using fallback summary", outcome.Kind, outcome.Err)
	}

	summary := Resolve(outcome, input)
	if summary == t.Text {
		c.logger.Warn(ctx, "Summary is identical to the original text, using fallback summary")
		summary = StrideFallback(t.Text)
	}

	segments := t.Segments
	if segments == nil {
		segments = []models.Segment{}
	}

	return models.SummaryResult{
		Summary:      summary,
		Markdown:     RenderMarkdown(summary, segments),
		OriginalText: t.Text,
		Segments:     segments,
	}, nil
}

// rewrite calls the generator under the retry policy and classifies the result.
func (c *implChain) rewrite(ctx context.Context, input string) Outcome {
	prompt, err := BuildPrompt(c.opts.Format, input)
	if err != nil {
		return Outcome{Kind: FatalFailure, Err: err}
	}

	req := llm.Request{
		Prompt:      prompt,
		Model:       c.opts.Model,
		Temperature: c.opts.Temperature,
		MaxTokens:   c.opts.MaxTokens,
	}

	policy := c.opts.Retry
	policy.IsRetryable = llm.IsTransient
	attempts := policy.Attempts
	policy.OnRetry = func(attempt int, err error, delay time.Duration) {
		c.logger.Warn(ctx, "API attempt %d/%d failed: %v; retrying in %s", attempt+1, attempts, err, delay)
	}

	var out string
	err = resilience.Do(ctx, policy, func(ctx context.Context, attempt int) error {
		actx, cancel := context.WithTimeout(ctx, c.opts.AttemptTimeout)
		defer cancel()

		c.logger.Info(ctx, "API attempt %d (model %s, temperature %.2f)", attempt+1, req.Model, req.Temperature)
		s, err := c.generator.Generate(actx, req)
		if err != nil {
			return err
		}
		out = s
		return nil
	})
	if err != nil {
		if llm.IsTransient(err) {
			return Outcome{Kind: TransientFailure, Err: err}
		}
		return Outcome{Kind: FatalFailure, Err: err}
	}

	if !PassesQualityGate(out, input) {
		return Outcome{Kind: QualityRejected}
	}
	return Outcome{Kind: Success, Summary: out}
}
