package summarizer

import (
	"strings"
	"unicode/utf8"

	"github.com/nguyentantai21042004/digest-flow/internal/segmenter"
)

const (
	maxBulletLen  = 100
	keepAllBelow  = 5
	cjkDelimiter  = "。"
	latnDelimiter = ". "
	ellipsis      = "..."
)

// StrideFallback builds a bulleted summary without any model: short texts keep every
// segment, longer ones keep the first and last segment plus a stride sample of the
// middle half.
func StrideFallback(text string) string {
	segments := splitSegments(text)
	n := len(segments)

	var selected []string
	if n <= keepAllBelow {
		selected = segments
	} else {
		selected = append(selected, segments[0])

		start, end := n/4, 3*n/4
		step := max(1, (end-start)/3)
		for i := start; i < end; i += step {
			selected = append(selected, segments[i])
		}

		selected = append(selected, segments[n-1])
	}

	bullets := make([]string, len(selected))
	for i, s := range selected {
		if utf8.RuneCountInString(s) > maxBulletLen {
			s = string([]rune(s)[:maxBulletLen-len(ellipsis)]) + ellipsis
		}
		bullets[i] = "- " + s
	}
	return strings.Join(bullets, "\n")
}

// splitSegments cuts on the script's period and drops blank pieces.
func splitSegments(text string) []string {
	delim := latnDelimiter
	if segmenter.IsCJK(text) {
		delim = cjkDelimiter
	}

	var out []string
	for _, part := range strings.Split(text, delim) {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func capInput(text string, limit int) string {
	if runeLen(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit]) + ellipsis
}
