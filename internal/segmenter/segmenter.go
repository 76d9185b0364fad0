package segmenter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/neurosnap/sentences/english"
)

var reCJKDelimiter = regexp.MustCompile(`[。．.!?！？]+`)

func (s *implSegmenter) Split(text string) (Result, error) {
	if IsCJK(text) {
		return Result{Sentences: splitCJK(text), CJK: true}, nil
	}

	s.once.Do(func() {
		s.tokenizer, s.initErr = english.NewSentenceTokenizer(nil)
	})
	if s.initErr != nil {
		return Result{}, fmt.Errorf("load sentence tokenizer: %w", s.initErr)
	}

	var out []string
	for _, sent := range s.tokenizer.Tokenize(text) {
		if t := strings.TrimSpace(sent.Text); t != "" {
			out = append(out, t)
		}
	}
	return Result{Sentences: out}, nil
}

// splitCJK cuts on runs of sentence-ending punctuation. The punctuation itself is dropped.
func splitCJK(text string) []string {
	var out []string
	for _, part := range reCJKDelimiter.Split(text, -1) {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
