package segmenter

import (
	"sync"

	"github.com/neurosnap/sentences"
)

type implSegmenter struct {
	once      sync.Once
	tokenizer *sentences.DefaultSentenceTokenizer
	initErr   error
}

// New creates a Segmenter. The English boundary model is loaded on first non-CJK use.
func New() Segmenter {
	return &implSegmenter{}
}
