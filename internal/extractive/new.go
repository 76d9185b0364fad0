package extractive

import (
	"github.com/nguyentantai21042004/digest-flow/internal/segmenter"
)

// Options controls the short-circuit threshold, the length cap and the selection ratio.
type Options struct {
	MinLength int
	MaxLength int
	Ratio     float64
}

type implScorer struct {
	opts      Options
	segmenter segmenter.Segmenter
}

// New creates a Scorer using seg for sentence boundaries
func New(opts Options, seg segmenter.Segmenter) Scorer {
	if seg == nil {
		seg = segmenter.New()
	}
	return &implScorer{
		opts:      opts,
		segmenter: seg,
	}
}
