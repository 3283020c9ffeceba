package captions

import (
	"fmt"
	"strings"

	"github.com/janschmiedgen/n8n-video-editing-pipeline/pkg/types"
)

// Word is a word-level sub-span with its own timestamps, used for karaoke
// highlighting.
type Word struct {
	Text  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Token is one timed transcription span. Start and end are seconds;
// start < end and tokens are non-decreasing across a transcript.
type Token struct {
	Text       string  `json:"text"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence,omitempty"`
	Words      []Word  `json:"words,omitempty"`
}

// Transcript is the transcription collaborator's output: a language code,
// its confidence and the ordered token sequence. Immutable once produced.
type Transcript struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
	Tokens     []Token `json:"tokens"`
}

// Cue is one timed, styled caption unit. Text holds the final ASS payload
// including any karaoke timing tags.
type Cue struct {
	Start float64
	End   float64
	Style string
	Text  string
}

// Track is a caption track authored for exactly one output format's target
// resolution. Built once per job, consumed by at most one render.
type Track struct {
	Format types.OutputFormat
	Width  int
	Height int
	Style  string
	Cues   []Cue

	header string
}

// RenderASS serializes the track to a complete ASS document: the template
// header (script info and style definitions) followed by the dialogue
// events.
func (t *Track) RenderASS() string {
	var b strings.Builder
	b.WriteString(t.header)
	b.WriteString("\n[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	for _, c := range t.Cues {
		b.WriteString(fmt.Sprintf("Dialogue: 0,%s,%s,%s,,0,0,0,,%s\n",
			assTimestamp(c.Start), assTimestamp(c.End), c.Style, c.Text))
	}
	return b.String()
}

// assTimestamp formats seconds as the ASS H:MM:SS.cc timestamp.
func assTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	centis := int((seconds - float64(total)) * 100)
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, centis)
}

// sanitizeASS strips characters that would break out of a dialogue line.
func sanitizeASS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "{", "(")
	s = strings.ReplaceAll(s, "}", ")")
	return strings.TrimSpace(s)
}
