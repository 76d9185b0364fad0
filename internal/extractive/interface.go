package extractive

// Sentence is one scored candidate. It only lives for the duration of a call.
type Sentence struct {
	Text  string
	Index int
	Score float64
}

// Scorer produces extractive summaries by selecting the highest scoring sentences.
type Scorer interface {
	// Select returns max(1, ceil(ratio*N)) sentences in their original order.
	Select(sentences []string, ratio float64) ([]Sentence, error)
	// Summarize segments, selects and renders text. It never fails: errors degrade
	// to a first/last sentence summary.
	Summarize(text string) string
}
