package output

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

// runStyle is the character formatting of one docx run.
type runStyle struct {
	font  string
	size  uint64
	color string
	bold  bool
}

var (
	bodyStyle  = runStyle{font: "Times New Roman", size: 13, color: "000000"}
	stampStyle = runStyle{font: "Consolas", size: 11, color: "595959", bold: true}
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reStamp   = regexp.MustCompile(`^\*\*\[(\d{2,}:\d{2})\]\*\*\s*(.*)$`)
	reBullet  = regexp.MustCompile(`^[-*]\s+(.+)$`)
	reBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)

	markup = strings.NewReplacer("**", "", "__", "", "`", "")
)

// headingStyle grows the body font by one point per level above h4.
func headingStyle(level int) runStyle {
	s := bodyStyle
	s.bold = true
	if level < 4 {
		s.size += uint64(4 - level)
	}
	return s
}

func (s runStyle) add(p *docx.Paragraph, text string) {
	run := p.AddText(text).Font(s.font).Size(s.size).Color(s.color)
	if s.bold {
		run.Bold(true)
	}
}

// span is a piece of inline text with its emphasis.
type span struct {
	text string
	bold bool
}

// spans cuts text on **bold** markers and strips any remaining inline markup.
func spans(text string) []span {
	var out []span
	pos := 0
	for _, m := range reBold.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > pos {
			out = append(out, span{text: markup.Replace(text[pos:m[0]])})
		}
		out = append(out, span{text: markup.Replace(text[m[2]:m[3]]), bold: true})
		pos = m[1]
	}
	if pos < len(text) {
		out = append(out, span{text: markup.Replace(text[pos:])})
	}
	return out
}

func addInline(p *docx.Paragraph, text string) {
	for _, sp := range spans(text) {
		if sp.text == "" {
			continue
		}
		s := bodyStyle
		s.bold = sp.bold
		s.add(p, sp.text)
	}
}

// writeDocx renders the summary markdown as a Word document at path. Transcript detail
// lines get their timestamp in a separate monospace run.
func writeDocx(path, markdown string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == "---" {
			continue
		}

		p := doc.AddParagraph("")
		if m := reHeading.FindStringSubmatch(line); m != nil {
			headingStyle(len(m[1])).add(p, markup.Replace(m[2]))
		} else if m := reStamp.FindStringSubmatch(line); m != nil {
			stampStyle.add(p, "["+m[1]+"] ")
			addInline(p, m[2])
		} else if m := reBullet.FindStringSubmatch(line); m != nil {
			addInline(p, "• "+m[1])
		} else {
			addInline(p, line)
		}
	}

	return writeAtomic(path, doc.SaveTo)
}
