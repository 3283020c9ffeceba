package captions

import (
	"fmt"
	"strings"

	"github.com/janschmiedgen/n8n-video-editing-pipeline/internal/layout"
	"github.com/janschmiedgen/n8n-video-editing-pipeline/pkg/types"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// karaokeWordCentis is the per-word highlight duration used when the
// transcriber supplied no word-level timestamps.
const karaokeWordCentis = 50

// karaokePrefix forces the pre-highlight fill colour for karaoke cues.
const karaokePrefix = "{\\1c&H0000FFFF&}"

// Builder turns a transcript into per-format caption tracks.
type Builder struct {
	store *TemplateStore
	log   zerolog.Logger
}

func NewBuilder(store *TemplateStore, log zerolog.Logger) *Builder {
	return &Builder{store: store, log: log}
}

// Build produces one track per requested format, each authored at that
// format's target resolution. A format is absent from the result only when
// its template cannot be resolved at all; that is a degradation, not an
// error.
func (b *Builder) Build(tr Transcript, brand string, style types.CaptionStyle, formats []types.OutputFormat) (map[types.OutputFormat]*Track, error) {
	if len(tr.Tokens) == 0 {
		return nil, errors.New("transcript has no tokens")
	}

	tracks := make(map[types.OutputFormat]*Track, len(formats))
	for _, format := range formats {
		spec, err := layout.Get(format)
		if err != nil {
			return nil, err
		}
		tmpl, err := b.store.Lookup(format, brand, spec.Width, spec.Height)
		if err != nil {
			b.log.Warn().Err(err).
				Str("format", string(format)).
				Str("brand", brand).
				Msg("no caption template available, skipping format")
			continue
		}
		resolved, err := tmpl.ResolveStyle(style, b.log)
		if err != nil {
			b.log.Warn().Err(err).
				Str("format", string(format)).
				Msg("caption template unusable, skipping format")
			continue
		}

		track := &Track{
			Format: format,
			Width:  spec.Width,
			Height: spec.Height,
			Style:  resolved,
			header: tmpl.Header,
		}
		karaoke := resolved == string(types.CaptionStyleKaraoke)
		for _, tok := range tr.Tokens {
			text := cueText(tok, karaoke)
			if text == "" {
				continue
			}
			track.Cues = append(track.Cues, Cue{
				Start: tok.Start,
				End:   tok.End,
				Style: resolved,
				Text:  text,
			})
		}
		tracks[format] = track
	}
	return tracks, nil
}

// cueText renders one token into a dialogue payload: sanitized, wrapped to
// at most two lines, with karaoke timing tags when requested.
func cueText(tok Token, karaoke bool) string {
	if !karaoke {
		words := strings.Fields(sanitizeASS(tok.Text))
		if len(words) == 0 {
			return ""
		}
		return joinWrapped(wrapWords(words))
	}

	timed := timedWords(tok)
	if len(timed) == 0 {
		return ""
	}
	var lines []string
	for _, line := range wrapTimedWords(timed) {
		var sb strings.Builder
		for i, w := range line {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(fmt.Sprintf("{\\k%d}%s", w.centis, w.text))
		}
		lines = append(lines, sb.String())
	}
	return karaokePrefix + strings.Join(lines, "\\N")
}

type timedWord struct {
	text   string
	centis int
}

// timedWords pairs every word with its highlight duration, preferring the
// transcriber's word-level timestamps and falling back to a fixed duration.
func timedWords(tok Token) []timedWord {
	var out []timedWord
	if len(tok.Words) > 0 {
		for _, w := range tok.Words {
			text := sanitizeASS(w.Text)
			if text == "" {
				continue
			}
			cs := int((w.End - w.Start) * 100)
			if cs < 1 {
				cs = 1
			}
			out = append(out, timedWord{text: text, centis: cs})
		}
		return out
	}
	for _, text := range strings.Fields(sanitizeASS(tok.Text)) {
		out = append(out, timedWord{text: text, centis: karaokeWordCentis})
	}
	return out
}

// wrapWords splits a word list into at most two roughly equal lines,
// preferring a break at punctuation near the midpoint. Short spans stay on
// one line.
func wrapWords(words []string) [][]string {
	if len(words) <= 3 {
		return [][]string{words}
	}
	mid := len(words) / 2
	best := mid
	lo := mid - 2
	if lo < 1 {
		lo = 1
	}
	hi := mid + 3
	if hi > len(words) {
		hi = len(words)
	}
	for i := lo; i < hi; i++ {
		if strings.HasSuffix(strings.TrimSpace(words[i-1]), ",") ||
			strings.HasSuffix(strings.TrimSpace(words[i-1]), ".") ||
			strings.HasSuffix(strings.TrimSpace(words[i-1]), "!") ||
			strings.HasSuffix(strings.TrimSpace(words[i-1]), "?") ||
			strings.HasSuffix(strings.TrimSpace(words[i-1]), ";") ||
			strings.HasSuffix(strings.TrimSpace(words[i-1]), ":") {
			best = i
			break
		}
	}
	return [][]string{words[:best], words[best:]}
}

func wrapTimedWords(words []timedWord) [][]timedWord {
	texts := make([]string, len(words))
	for i, w := range words {
		texts[i] = w.text
	}
	lines := wrapWords(texts)
	if len(lines) == 1 {
		return [][]timedWord{words}
	}
	split := len(lines[0])
	return [][]timedWord{words[:split], words[split:]}
}

func joinWrapped(lines [][]string) string {
	parts := make([]string, len(lines))
	for i, line := range lines {
		parts[i] = strings.Join(line, " ")
	}
	return strings.Join(parts, "\\N")
}
