package summarizer

// OutcomeKind tags the result of the LLM stage.
type OutcomeKind int

const (
	Success OutcomeKind = iota
	QualityRejected
	TransientFailure
	FatalFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case Success:
		return "success"
	case QualityRejected:
		return "quality_rejected"
	case TransientFailure:
		return "transient_failure"
	case FatalFailure:
		return "fatal_failure"
	default:
		return "unknown"
	}
}

// Outcome is what the LLM stage produced. Summary is set only for Success;
// Err only for the failure kinds.
type Outcome struct {
	Kind    OutcomeKind
	Summary string
	Err     error
}

// Resolve picks the summary for an outcome: the rewrite on Success, the stride-sampled
// fallback of text otherwise.
func Resolve(o Outcome, text string) string {
	if o.Kind == Success {
		return o.Summary
	}
	return StrideFallback(text)
}

// qualityRatio is the share of the input length a rewrite must stay under.
const qualityRatio = 0.8

// PassesQualityGate rejects rewrites that are empty or not clearly shorter than the input.
func PassesQualityGate(summary, input string) bool {
	n := runeLen(summary)
	if n == 0 {
		return false
	}
	return float64(n) < qualityRatio*float64(runeLen(input))
}
