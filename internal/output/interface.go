package output

import (
	"context"

	"github.com/nguyentantai21042004/digest-flow/internal/models"
)

// Writer persists the renditions of a summary next to each other in the output directory.
type Writer interface {
	// Write stores res for the transcript at source and returns the written paths.
	Write(ctx context.Context, source string, res models.SummaryResult) ([]string, error)
}
