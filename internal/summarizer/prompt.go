package summarizer

import (
	"fmt"
	"sort"
)

const rewritePrompt = `You are an expert editor of speech-to-text transcripts. Rewrite the transcript below into clear, natural meeting minutes in the same language as the transcript.

## Problems in the transcript
- hesitations, filler words and repetitions
- incomplete or interrupted sentences
- grammatically unnatural phrasing
- speech recognition errors

## Instructions
1. Rewrite the transcript into readable, natural prose
2. Do not merely shorten it: make the intent of each statement clear and write complete sentences
3. Remove hesitations, repetitions and meaningless interjections
4. If there are several speakers, identify them where possible and make the flow of the conversation clear
5. Split the text into paragraphs by topic
6. Put important points and conclusions in bold (**like this**)
7. List decisions and action items as bullet points

%s

## Transcript
%s

------------------
Rewrite the transcript above into meeting minutes. Do not return the transcript unchanged: it must be edited and restructured.`

var formatInstructions = map[string]string{
	"minutes": `## Output
Include, where they can be inferred:
1. An overview of the meeting
2. The main participants
3. The main topics and their content, in paragraphs
4. Decisions and action items`,
	"bullet": `## Output
Present the rewritten content as a list of key points, one "- " bullet per point, grouped under short topic headings.`,
	"executive": `## Output
Write an executive summary for decision makers: purpose, conclusions and recommendations, followed by the action items.`,
}

// DefaultFormat is the prompt format used when none is configured.
const DefaultFormat = "minutes"

// Formats lists the supported prompt formats.
func Formats() []string {
	out := make([]string, 0, len(formatInstructions))
	for k := range formatInstructions {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// BuildPrompt returns the rewrite prompt for transcript in the given format.
func BuildPrompt(format, transcript string) (string, error) {
	if format == "" {
		format = DefaultFormat
	}
	instr, ok := formatInstructions[format]
	if !ok {
		return "", fmt.Errorf("unknown prompt format %q", format)
	}
	return fmt.Sprintf(rewritePrompt, instr, transcript), nil
}
