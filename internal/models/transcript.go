package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Segment is one timed span of an upstream transcription. It is passed through untouched;
// a missing start or end stays missing.
type Segment struct {
	Start *float64 `json:"start,omitempty"`
	End   *float64 `json:"end,omitempty"`
	Text  string   `json:"text"`
}

// Seconds returns a pointer to v for building Segments.
func Seconds(v float64) *float64 {
	return &v
}

// Transcript is the input artifact produced by the transcription stage.
type Transcript struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
}

// MalformedInputError reports an input artifact that cannot be summarized at all.
type MalformedInputError struct {
	Reason string
}

func (e *MalformedInputError) Error() string {
	return "malformed input: " + e.Reason
}

// ParseTranscript decodes an input artifact and checks that it carries text.
func ParseTranscript(data []byte) (Transcript, error) {
	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return Transcript{}, &MalformedInputError{Reason: fmt.Sprintf("decode json: %v", err)}
	}
	if strings.TrimSpace(t.Text) == "" {
		return Transcript{}, &MalformedInputError{Reason: "transcript text is empty"}
	}
	if t.Segments == nil {
		t.Segments = []Segment{}
	}
	return t, nil
}
