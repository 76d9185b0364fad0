package segmenter

// Segmenter splits raw text into ordered, trimmed, non-empty sentences.
type Segmenter interface {
	Split(text string) (Result, error)
}

// Result carries the sentences together with the script decision, which callers
// need to pick join punctuation.
type Result struct {
	Sentences []string
	CJK       bool
}
