package captions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/janschmiedgen/n8n-video-editing-pipeline/pkg/types"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// DefaultBrand is the brand template used when the requested brand has no
// template assets.
const DefaultBrand = "codify"

// Template is a parsed ASS template for one (format, brand) pair: the
// document header up to (excluding) the [Events] section.
type Template struct {
	Brand  string
	Format types.OutputFormat
	Header string
}

// Styles lists the style names defined in the template, in definition
// order.
func (t *Template) Styles() []string {
	var styles []string
	for _, line := range strings.Split(t.Header, "\n") {
		if !strings.HasPrefix(line, "Style: ") {
			continue
		}
		rest := strings.TrimPrefix(line, "Style: ")
		name, _, _ := strings.Cut(rest, ",")
		if name = strings.TrimSpace(name); name != "" {
			styles = append(styles, name)
		}
	}
	return styles
}

// ResolveStyle validates a requested style against the template, falling
// back to the first defined style when it is unknown.
func (t *Template) ResolveStyle(requested types.CaptionStyle, log zerolog.Logger) (string, error) {
	styles := t.Styles()
	if len(styles) == 0 {
		return "", errors.Errorf("template %s_%s defines no styles", t.Format, t.Brand)
	}
	for _, s := range styles {
		if s == string(requested) {
			return s, nil
		}
	}
	log.Warn().
		Str("requested", string(requested)).
		Str("fallback", styles[0]).
		Str("format", string(t.Format)).
		Msg("caption style not in template, using fallback")
	return styles[0], nil
}

// TemplateStore locates ASS templates by format and brand. Templates live
// as {format}_{brand}.ass files under the template root; a built-in set for
// the default brand backs every lookup so a missing asset degrades instead
// of failing the job.
type TemplateStore struct {
	root string
	log  zerolog.Logger
}

func NewTemplateStore(root string, log zerolog.Logger) *TemplateStore {
	return &TemplateStore{root: root, log: log}
}

// Lookup returns the template for a format and brand, trying the requested
// brand, then the default brand, then the built-in header.
func (s *TemplateStore) Lookup(format types.OutputFormat, brand string, width, height int) (*Template, error) {
	if brand == "" {
		brand = DefaultBrand
	}
	for _, candidate := range []string{brand, DefaultBrand} {
		t, err := s.loadFile(format, candidate, width, height)
		if err == nil {
			return t, nil
		}
		if candidate == brand && brand != DefaultBrand {
			s.log.Warn().
				Str("brand", brand).
				Str("format", string(format)).
				Msg("brand template not found, falling back to default brand")
		}
	}
	return builtinTemplate(format, width, height), nil
}

func (s *TemplateStore) loadFile(format types.OutputFormat, brand string, width, height int) (*Template, error) {
	if s.root == "" {
		return nil, errors.New("no template root configured")
	}
	path := filepath.Join(s.root, fmt.Sprintf("%s_%s.ass", format, brand))
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read template")
	}
	header, _, _ := strings.Cut(string(b), "[Events]")
	header = strings.TrimRight(header, "\n")
	// Tracks must be authored at the format's exact target resolution so
	// fonts and margins render at native scale.
	header = patchPlayRes(header, width, height)
	return &Template{Brand: brand, Format: format, Header: header}, nil
}

func patchPlayRes(header string, width, height int) string {
	lines := strings.Split(header, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "PlayResX:"):
			lines[i] = fmt.Sprintf("PlayResX: %d", width)
		case strings.HasPrefix(line, "PlayResY:"):
			lines[i] = fmt.Sprintf("PlayResY: %d", height)
		}
	}
	return strings.Join(lines, "\n")
}

// builtinTemplate generates a header with the four standard styles sized
// for the target resolution.
func builtinTemplate(format types.OutputFormat, width, height int) *Template {
	base := height / 22
	header := fmt.Sprintf(`[Script Info]
ScriptType: v4.00+
PlayResX: %d
PlayResY: %d
ScaledBorderAndShadow: yes

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: clean, Roboto Medium, %d, &H00FFFFFF, &H00FFFFFF, &H00000000, &H64000000, 0,0,0,0,100,100,0,0,1,3,1,2, 60,60,70,1
Style: social, Roboto Medium, %d, &H00FFFFFF, &H00FFD200, &H00000000, &H96000000, 1,0,0,0,100,100,0,0,1,5,3,2, 60,60,70,1
Style: karaoke, Roboto Medium, %d, &H00FFFFFF, &H0000FFFF, &H00000000, &H96000000, 1,0,0,0,100,100,0,0,1,5,2,2, 60,60,70,1
Style: highlight, Roboto Medium, %d, &H0000FFFF, &H00FFFFFF, &H00000000, &HC8000000, 1,0,0,0,100,100,0,0,3,6,4,2, 60,60,70,1`,
		width, height, base, base+6, base+4, base+8)
	return &Template{Brand: DefaultBrand, Format: format, Header: header}
}
