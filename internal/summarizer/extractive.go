package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/digest-flow/internal/models"
)

func (e *implExtractive) Summarize(ctx context.Context, t models.Transcript) (models.SummaryResult, error) {
	summary := e.scorer.Summarize(t.Text)

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
