package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/digest-flow/internal/models"
)

// Summarizer turns one transcript into a SummaryResult.
type Summarizer interface {
	Summarize(ctx context.Context, t models.Transcript) (models.SummaryResult, error)
}
