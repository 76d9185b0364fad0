package extractive

import (
	"strings"
	"unicode/utf8"
)

const ellipsis = "..."

func (s *implScorer) Summarize(text string) string {
	if utf8.RuneCountInString(text) < s.opts.MinLength {
		return text
	}

	seg, err := s.segmenter.Split(text)
	if err != nil {
		return s.degrade(nil, text)
	}
	if len(seg.Sentences) == 0 {
		return s.degrade(nil, text)
	}

	selected, err := s.Select(seg.Sentences, s.opts.Ratio)
	if err != nil {
		return s.degrade(seg.Sentences, text)
	}

	summary := render(selected, seg.CJK)
	if s.opts.MaxLength > 0 {
		summary = truncate(summary, s.opts.MaxLength)
	}
	return summary
}

// degrade is used when segmentation or scoring cannot complete.
func (s *implScorer) degrade(sentences []string, text string) string {
	if len(sentences) > 1 {
		return sentences[0] + ellipsis + sentences[len(sentences)-1]
	}
	return truncate(text, s.opts.MinLength)
}

func render(selected []Sentence, cjk bool) string {
	parts := make([]string, len(selected))
	for i, sent := range selected {
		parts[i] = sent.Text
	}
	if cjk {
		return strings.Join(parts, "。") + "。"
	}
	return strings.Join(parts, " ")
}

// truncate cuts text to limit runes and marks the cut with an ellipsis.
func truncate(text string, limit int) string {
	if limit < 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit]) + ellipsis
}
