package extractive

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

const (
	firstSentenceBias = 1.5
	lastSentenceBias  = 1.2
)

// ErrInvalidRatio is returned for a selection ratio outside (0,1].
var ErrInvalidRatio = errors.New("selection ratio must be in (0,1]")

var reWord = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+`)

func (s *implScorer) Select(sentences []string, ratio float64) ([]Sentence, error) {
	if len(sentences) == 0 {
		return nil, nil
	}
	if ratio <= 0 || ratio > 1 || math.IsNaN(ratio) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRatio, ratio)
	}

	if len(sentences) == 1 {
		return []Sentence{{Text: sentences[0], Index: 0, Score: 1}}, nil
	}

	freq := make(map[string]int)
	for _, w := range tokenize(strings.Join(sentences, " ")) {
		freq[w]++
	}

	scored := make([]Sentence, len(sentences))
	last := len(sentences) - 1
	for i, text := range sentences {
		words := tokenize(text)
		total := 0
		for _, w := range words {
			total += freq[w]
		}
		score := float64(total) / float64(max(1, len(words)))

		switch i {
		case 0:
			score *= firstSentenceBias
		case last:
			score *= lastSentenceBias
		}
		scored[i] = Sentence{Text: text, Index: i, Score: score}
	}

	// Stable sort keeps the earlier sentence on equal scores.
	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Score > scored[b].Score
	})
	selected := scored[:SelectCount(len(sentences), ratio)]
	sort.Slice(selected, func(a, b int) bool {
		return selected[a].Index < selected[b].Index
	})

	return selected, nil
}

// SelectCount returns max(1, ceil(ratio*n)) clamped to n.
// The epsilon keeps products such as 0.1*30 from rounding up past the exact value.
func SelectCount(n int, ratio float64) int {
	if n == 0 {
		return 0
	}
	k := int(math.Ceil(ratio*float64(n) - 1e-9))
	return min(n, max(1, k))
}

func tokenize(text string) []string {
	return reWord.FindAllString(strings.ToLower(text), -1)
}
