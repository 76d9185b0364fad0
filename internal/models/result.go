package models

// SummaryResult is the success artifact written for one summarized input.
type SummaryResult struct {
	Summary      string    `json:"summary"`
	Markdown     string    `json:"markdown"`
	OriginalText string    `json:"original_text"`
	Segments     []Segment `json:"segments"`
}

// StatusFailed is the status value of a failure artifact.
const StatusFailed = "failed"

// FailureResult is the artifact written when an invocation cannot produce a summary.
type FailureResult struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

// NewFailure builds a failure artifact from err.
func NewFailure(err error) FailureResult {
	return FailureResult{Error: err.Error(), Status: StatusFailed}
}
