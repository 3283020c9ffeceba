package plan

import (
	"github.com/janschmiedgen/n8n-video-editing-pipeline/pkg/types"
	"github.com/pkg/errors"
)

// StageKind names one unit of the sequential compositing chain.
type StageKind string

const (
	// StageBackgroundFill scales the input to cover the target box, crops,
	// blurs and darkens it. Used as the letterbox backdrop.
	StageBackgroundFill StageKind = "background-fill"
	// StageForegroundFit scales the input to fit inside the target box
	// without cropping. When the aspect ratios already match this is a
	// direct scale to the target resolution.
	StageForegroundFit StageKind = "foreground-fit"
	// StageOverlayScale scales an overlay image to its configured fraction
	// of the target width, optionally pre-multiplying alpha for opacity.
	StageOverlayScale StageKind = "overlay-scale"
	// StageOverlayComposite overlays one stream onto another at a position.
	StageOverlayComposite StageKind = "overlay-composite"
	// StageCaptionBurn renders an ASS caption track into the stream.
	StageCaptionBurn StageKind = "caption-burn"
	// StagePassThrough renames the running base to the final label.
	StagePassThrough StageKind = "pass-through"
)

// PrimaryInput is the designated label of the source video stream.
const PrimaryInput = "in"

// FinalOutput is the label of the designated render target. Every plan ends
// with a stage producing it.
const FinalOutput = "final"

// Stage is one step of a composition plan. Inputs reference the primary
// input or outputs of earlier stages; overlay-scale stages source their
// pixels from ImagePath instead.
type Stage struct {
	Kind   StageKind
	Inputs []string
	Output string

	// Scale targets. Height may be -2 to preserve aspect on even rows.
	Width  int
	Height int

	// Background-fill parameters.
	BlurRadius int
	BlurPower  int
	Brightness float64

	// Overlay parameters.
	OverlayKind types.OverlayKind
	ImagePath   string
	X           string
	Y           string
	Opacity     float64

	// Caption-burn parameters.
	CaptionPath string
}

// Plan is an ordered stage chain built fresh per (job, format) pair.
type Plan struct {
	Format types.OutputFormat
	Stages []Stage
}

// Validate checks the chain invariants: output labels are unique, every
// input is the primary input or a prior stage's output, and the last stage
// produces the final render target.
func (p *Plan) Validate() error {
	if len(p.Stages) == 0 {
		return errors.New("plan has no stages")
	}
	produced := map[string]bool{}
	for i, s := range p.Stages {
		if s.Output == "" {
			return errors.Errorf("stage %d (%s) has no output label", i, s.Kind)
		}
		if produced[s.Output] {
			return errors.Errorf("stage %d (%s) reuses output label %q", i, s.Kind, s.Output)
		}
		if s.Kind == StageOverlayScale {
			if s.ImagePath == "" {
				return errors.Errorf("stage %d: overlay-scale without image path", i)
			}
		} else if len(s.Inputs) == 0 {
			return errors.Errorf("stage %d (%s) has no inputs", i, s.Kind)
		}
		for _, in := range s.Inputs {
			if in != PrimaryInput && !produced[in] {
				return errors.Errorf("stage %d (%s) references unknown input %q", i, s.Kind, in)
			}
		}
		produced[s.Output] = true
	}
	if last := p.Stages[len(p.Stages)-1]; last.Output != FinalOutput {
		return errors.Errorf("plan ends with label %q, want %q", last.Output, FinalOutput)
	}
	return nil
}

// HasStage reports whether the plan contains a stage of the given kind.
func (p *Plan) HasStage(kind StageKind) bool {
	for _, s := range p.Stages {
		if s.Kind == kind {
			return true
		}
	}
	return false
}
