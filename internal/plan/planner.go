package plan

import (
	"fmt"

	"github.com/janschmiedgen/n8n-video-editing-pipeline/internal/geometry"
	"github.com/janschmiedgen/n8n-video-editing-pipeline/internal/layout"
	"github.com/janschmiedgen/n8n-video-editing-pipeline/pkg/types"
)

// Letterbox backdrop constants. Empirical values carried over from the
// original pipeline; override via Planner fields, not per call.
const (
	DefaultBlurRadius = 20
	DefaultBlurPower  = 2
	DefaultBrightness = -0.2
)

// Request carries everything the planner needs for one (job, format) pair.
type Request struct {
	Geometry geometry.Decision
	Spec     *layout.FormatSpec
	// Overlays maps overlay kinds present in the job to their image paths.
	// Kinds missing from the map or from the format spec are skipped.
	Overlays map[types.OverlayKind]string
	// CaptionsEnabled gates the caption stage. CaptionPath is the
	// format-specific track; FallbackCaptionPath is the generic track used
	// when no format-specific one exists. Both empty means pass-through.
	CaptionsEnabled     bool
	CaptionPath         string
	FallbackCaptionPath string
}

// Planner builds composition plans. It is pure: no storage access, no side
// effects, deterministic output for a given request.
type Planner struct {
	BlurRadius int
	BlurPower  int
	Brightness float64
}

func NewPlanner() *Planner {
	return &Planner{
		BlurRadius: DefaultBlurRadius,
		BlurPower:  DefaultBlurPower,
		Brightness: DefaultBrightness,
	}
}

// Plan produces the ordered stage chain for one output format:
// base stage(s), overlay stages in fixed logo/icon/handle order, then a
// caption-burn or pass-through stage producing the final label.
func (pl *Planner) Plan(req Request) *Plan {
	p := &Plan{Format: req.Spec.Format}
	w, h := req.Spec.Width, req.Spec.Height

	base := pl.baseStages(p, req.Geometry, w, h)
	base = pl.overlayStages(p, req, base)

	captionPath := ""
	if req.CaptionsEnabled {
		captionPath = req.CaptionPath
		if captionPath == "" {
			captionPath = req.FallbackCaptionPath
		}
	}

	if captionPath != "" {
		p.Stages = append(p.Stages, Stage{
			Kind:        StageCaptionBurn,
			Inputs:      []string{base},
			Output:      FinalOutput,
			CaptionPath: captionPath,
		})
	} else {
		p.Stages = append(p.Stages, Stage{
			Kind:   StagePassThrough,
			Inputs: []string{base},
			Output: FinalOutput,
		})
	}
	return p
}

// baseStages emits the letterbox trio (blurred cover background, fitted
// foreground, center merge) when the aspect ratios mismatch, or a single
// direct scale when they match. Returns the running base label.
func (pl *Planner) baseStages(p *Plan, dec geometry.Decision, w, h int) string {
	if !dec.FillRequired {
		p.Stages = append(p.Stages, Stage{
			Kind:   StageForegroundFit,
			Inputs: []string{PrimaryInput},
			Output: "base",
			Width:  w,
			Height: h,
		})
		return "base"
	}

	p.Stages = append(p.Stages,
		Stage{
			Kind:       StageBackgroundFill,
			Inputs:     []string{PrimaryInput},
			Output:     "bg",
			Width:      w,
			Height:     h,
			BlurRadius: pl.BlurRadius,
			BlurPower:  pl.BlurPower,
			Brightness: pl.Brightness,
		},
		Stage{
			Kind:   StageForegroundFit,
			Inputs: []string{PrimaryInput},
			Output: "fg",
			Width:  w,
			Height: h,
		},
		Stage{
			Kind:   StageOverlayComposite,
			Inputs: []string{"bg", "fg"},
			Output: "base",
			X:      "(W-w)/2",
			Y:      "(H-h)/2",
		},
	)
	return "base"
}

// overlayStages chains the configured overlays onto the running base in
// fixed kind order. Skipped kinds leave the chain intact.
func (pl *Planner) overlayStages(p *Plan, req Request, base string) string {
	for _, kind := range types.OverlayOrder {
		imagePath, present := req.Overlays[kind]
		if !present || imagePath == "" {
			continue
		}
		placement, configured := req.Spec.Overlays[kind]
		if !configured {
			continue
		}

		scaled := fmt.Sprintf("%s_scaled", kind)
		scaleW := evenDown(int(float64(req.Spec.Width) * placement.SizeFrac))
		p.Stages = append(p.Stages, Stage{
			Kind:        StageOverlayScale,
			Output:      scaled,
			Width:       scaleW,
			Height:      -2,
			OverlayKind: kind,
			ImagePath:   imagePath,
			Opacity:     placement.Opacity,
		})

		x, y := placement.Position()
		merged := fmt.Sprintf("with_%s", kind)
		p.Stages = append(p.Stages, Stage{
			Kind:        StageOverlayComposite,
			Inputs:      []string{base, scaled},
			Output:      merged,
			OverlayKind: kind,
			X:           x,
			Y:           y,
		})
		base = merged
	}
	return base
}

// evenDown rounds a dimension down to an even value; codecs reject odd
// plane sizes.
func evenDown(v int) int {
	if v < 2 {
		return 2
	}
	return v - v%2
}
