package layout

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/janschmiedgen/n8n-video-editing-pipeline/pkg/types"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Corner names one of the four anchor corners for an overlay.
type Corner string

const (
	CornerTopLeft     Corner = "top-left"
	CornerTopRight    Corner = "top-right"
	CornerBottomLeft  Corner = "bottom-left"
	CornerBottomRight Corner = "bottom-right"
)

func (c Corner) valid() bool {
	switch c {
	case CornerTopLeft, CornerTopRight, CornerBottomLeft, CornerBottomRight:
		return true
	}
	return false
}

// Placement defines where and how an overlay kind is composited for one
// output format.
type Placement struct {
	Corner  Corner  `json:"corner"`
	MarginX int     `json:"margin_x"`
	MarginY int     `json:"margin_y"`
	// SizeFrac is the overlay width as a fraction of the target width.
	SizeFrac float64 `json:"size_frac"`
	Opacity  float64 `json:"opacity"`
}

// Position returns ffmpeg overlay x/y expressions anchoring the overlay at
// the configured corner. W/w and H/h are the overlay filter's shorthand for
// main and overlay dimensions, so the expressions stay valid for any
// overlay size.
func (p Placement) Position() (x, y string) {
	switch p.Corner {
	case CornerTopRight:
		return fmt.Sprintf("W-w-%d", p.MarginX), fmt.Sprintf("%d", p.MarginY)
	case CornerBottomLeft:
		return fmt.Sprintf("%d", p.MarginX), fmt.Sprintf("H-h-%d", p.MarginY)
	case CornerBottomRight:
		return fmt.Sprintf("W-w-%d", p.MarginX), fmt.Sprintf("H-h-%d", p.MarginY)
	default:
		return fmt.Sprintf("%d", p.MarginX), fmt.Sprintf("%d", p.MarginY)
	}
}

// FormatSpec defines the target resolution and overlay placements for one
// output format. Specs are registered at init time and never mutated.
type FormatSpec struct {
	Format   types.OutputFormat              `json:"format"`
	Width    int                             `json:"width"`
	Height   int                             `json:"height"`
	Overlays map[types.OverlayKind]Placement `json:"overlays"`
}

var specs = make(map[types.OutputFormat]*FormatSpec)

// Register adds a format spec to the registry.
func Register(s *FormatSpec) {
	specs[s.Format] = s
}

// Get returns the spec for a format.
func Get(format types.OutputFormat) (*FormatSpec, error) {
	s, ok := specs[format]
	if !ok {
		return nil, errors.Errorf("unsupported output format: %s", format)
	}
	return s, nil
}

// Supported returns the registered format names, sorted.
func Supported() []types.OutputFormat {
	names := maps.Keys(specs)
	slices.Sort(names)
	return names
}

// Validate checks the registry schema: every supported format must define a
// placement for every overlay kind, with sane geometry values.
func Validate() error {
	for _, format := range types.AllFormats {
		s, ok := specs[format]
		if !ok {
			return errors.Errorf("layout: missing spec for format %s", format)
		}
		if err := s.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (s *FormatSpec) validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return errors.Errorf("layout %s: invalid target resolution %dx%d", s.Format, s.Width, s.Height)
	}
	for _, kind := range types.OverlayOrder {
		p, ok := s.Overlays[kind]
		if !ok {
			return errors.Errorf("layout %s: missing placement for overlay kind %s", s.Format, kind)
		}
		if !p.Corner.valid() {
			return errors.Errorf("layout %s/%s: unknown corner %q", s.Format, kind, p.Corner)
		}
		if p.SizeFrac <= 0 || p.SizeFrac > 1 {
			return errors.Errorf("layout %s/%s: size fraction %v out of (0,1]", s.Format, kind, p.SizeFrac)
		}
		if p.Opacity <= 0 || p.Opacity > 1 {
			return errors.Errorf("layout %s/%s: opacity %v out of (0,1]", s.Format, kind, p.Opacity)
		}
		if p.MarginX < 0 || p.MarginY < 0 {
			return errors.Errorf("layout %s/%s: negative margin", s.Format, kind)
		}
	}
	return nil
}

// LoadOverrides replaces registered specs with definitions from a JSON file.
// The file holds a list of FormatSpec objects; each entry is validated before
// it replaces the built-in spec. Called once at process start.
func LoadOverrides(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read layout overrides")
	}
	var loaded []*FormatSpec
	if err := json.Unmarshal(b, &loaded); err != nil {
		return errors.Wrap(err, "parse layout overrides")
	}
	for _, s := range loaded {
		if !s.Format.Valid() {
			return errors.Errorf("layout overrides: unknown format %q", s.Format)
		}
		if err := s.validate(); err != nil {
			return err
		}
		Register(s)
	}
	return Validate()
}
