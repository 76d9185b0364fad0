package summarizer

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/digest-flow/internal/models"
)

const (
	markdownTitle  = "# Meeting Minutes"
	markdownDetail = "## Transcript Detail"
)

// RenderMarkdown puts summary under a heading and, when segments are present, appends
// a detail section with one MM:SS-stamped line per non-empty segment. A segment without
// a start is stamped with the end of the last rendered segment.
func RenderMarkdown(summary string, segments []models.Segment) string {
	var b strings.Builder
	b.WriteString(markdownTitle)
	b.WriteString("\n\n")
	b.WriteString(summary)

	if len(segments) > 0 {
		b.WriteString("\n\n")
		b.WriteString(markdownDetail)
		b.WriteString("\n\n")
		var current float64
		for _, seg := range segments {
			text := strings.TrimSpace(seg.Text)
			if text == "" {
				continue
			}
			start := current
			if seg.Start != nil {
				start = *seg.Start
			}
			fmt.Fprintf(&b, "**[%s]** %s\n\n", Timestamp(start), text)
			if seg.End != nil {
				current = *seg.End
			}
		}
	}

	return b.String()
}

// Timestamp formats whole seconds as MM:SS. Minutes are not wrapped into hours.
func Timestamp(seconds float64) string {
	secs := int(seconds)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
